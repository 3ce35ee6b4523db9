package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jobhive/jobhive/internal/apperr"
)

// resumeTypes is the allowlist of document types accepted for resume
// uploads. Detection is by content sniffing, not the client-supplied
// Content-Type.
var resumeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ResumeStore writes uploaded resumes to local disk.
type ResumeStore struct {
	Dir     string
	MaxSize int64
}

func NewResumeStore(dir string, maxSize int64) (*ResumeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ResumeStore{Dir: dir, MaxSize: maxSize}, nil
}

// Store validates and persists one uploaded resume, returning the
// stored filename. The size ceiling is checked before anything is
// written.
func (s *ResumeStore) Store(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.MaxSize {
		return "", apperr.Validation("Resume size should be less than 5MB")
	}

	src, err := fh.Open()
	if err != nil {
		return "", apperr.Internal(err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if !allowedResumeType(mtype) {
		return "", apperr.Validation("Please upload a valid resume (PDF or Word document)")
	}

	// DetectReader consumed the head of the stream
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", apperr.Internal(err)
	}

	name := fmt.Sprintf("resume-%d-%s", time.Now().UnixMilli(), filepath.Base(fh.Filename))
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", apperr.Internal(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", apperr.Internal(err)
	}
	return name, nil
}

func allowedResumeType(mtype *mimetype.MIME) bool {
	for _, t := range resumeTypes {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}
