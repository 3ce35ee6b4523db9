package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jobhive/jobhive/internal/apperr"
	"github.com/jobhive/jobhive/internal/models"
	"gorm.io/gorm"
)

type SavedJobService struct {
	DB *gorm.DB
}

func NewSavedJobService(db *gorm.DB) *SavedJobService {
	return &SavedJobService{DB: db}
}

// List returns the user's bookmarks newest first, each with the job and
// its employer summary.
func (s *SavedJobService) List(userID uuid.UUID) ([]models.SavedJob, error) {
	var saved []models.SavedJob
	err := s.DB.Preload("Job").Preload("Job.Employer").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saved).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return saved, nil
}

// Save bookmarks a job. Saving a job twice is a conflict; the unique
// index on (user_id, job_id) enforces it under races.
func (s *SavedJobService) Save(jobID, userID uuid.UUID, notes string) (*models.SavedJob, error) {
	var job models.Job
	if err := s.DB.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, apperr.FromDB(err, "Job not found", "")
	}

	saved := &models.SavedJob{
		UserID: userID,
		JobID:  jobID,
		Notes:  notes,
	}
	if err := s.DB.Create(saved).Error; err != nil {
		return nil, apperr.FromDB(err, "", "Job already saved")
	}
	return saved, nil
}

// Update edits the notes of the caller's own bookmark. Another user's
// bookmark looks absent, not forbidden.
func (s *SavedJobService) Update(id, userID uuid.UUID, notes string) (*models.SavedJob, error) {
	var saved models.SavedJob
	err := s.DB.First(&saved, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, apperr.FromDB(err, "Saved job not found", "")
	}

	if err := s.DB.Model(&saved).Update("notes", notes).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &saved, nil
}

// Remove deletes the caller's own bookmark, scoped the same way as
// Update.
func (s *SavedJobService) Remove(id, userID uuid.UUID) error {
	var saved models.SavedJob
	err := s.DB.First(&saved, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return apperr.FromDB(err, "Saved job not found", "")
	}
	if err := s.DB.Delete(&saved).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// IsSaved reports whether the user bookmarked the job, returning the
// bookmark when present.
func (s *SavedJobService) IsSaved(jobID, userID uuid.UUID) (*models.SavedJob, error) {
	var saved models.SavedJob
	err := s.DB.First(&saved, "job_id = ? AND user_id = ?", jobID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &saved, nil
}
