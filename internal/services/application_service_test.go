package services

import (
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobhive/jobhive/internal/models"
)

func TestApplyCreatesPendingApplication(t *testing.T) {
	db := testDB(t)
	svc := NewApplicationService(db, nil)
	employer := seedUser(t, db, models.RoleEmployer)
	seeker := seedUser(t, db, models.RoleJobSeeker)
	job := seedJob(t, db, employer, jobOpts{})

	app, err := svc.Apply(job.ID, seeker, "Dear team", "resume.pdf", nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if app.Status != models.ApplicationStatusPending {
		t.Errorf("status = %q, want pending", app.Status)
	}
	if app.JobID != job.ID || app.ApplicantID != seeker.ID {
		t.Error("application not linked to job and applicant")
	}
}

func TestApplyRejectsNonSeeker(t *testing.T) {
	db := testDB(t)
	svc := NewApplicationService(db, nil)
	employer := seedUser(t, db, models.RoleEmployer)
	job := seedJob(t, db, employer, jobOpts{})

	_, err := svc.Apply(job.ID, employer, "", "resume.pdf", nil)
	if got := statusOf(t, err); got != http.StatusForbidden {
		t.Errorf("status = %d, want 403", got)
	}
}

func TestApplyRejectsUnpublishedJob(t *testing.T) {
	db := testDB(t)
	svc := NewApplicationService(db, nil)
	employer := seedUser(t, db, models.RoleEmployer)
	seeker := seedUser(t, db, models.RoleJobSeeker)
	job := seedJob(t, db, employer, jobOpts{status: models.JobStatusDraft})

	_, err := svc.Apply(job.ID, seeker, "", "resume.pdf", nil)
	if got := statusOf(t, err); got != http.StatusNotFound {
		t.Errorf("status = %d, want 404", got)
	}
}

func TestApplyRejectsPastDeadline(t *testing.T) {
	db := testDB(t)
	svc := NewApplicationService(db, nil)
	employer := seedUser(t, db, models.RoleEmployer)
	seeker := seedUser(t, db, models.RoleJobSeeker)
	past := time.Now().Add(-24 * time.Hour)
	job := seedJob(t, db, employer, jobOpts{deadline: &past})

	// Resume omitted too: the deadline check must fire first.
	_, err := svc.Apply(job.ID, seeker, "", "", nil)
	if got := statusOf(t, err); got != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", got)
	}
	if err.Error() != "Application deadline has passed" {
		t.Errorf("message = %q, want deadline error", err.Error())
	}
}

func TestApplyRejectsDuplicate(t *testing.T) {
	db := testDB(t)
	svc := NewApplicationService(db, nil)
	employer := seedUser(t, db, models.RoleEmployer)
	seeker := seedUser(t, db, models.RoleJobSeeker)
	job := seedJob(t, db, employer, jobOpts{})

	if _, err := svc.Apply(job.ID, seeker, "", "resume.pdf", nil); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	_, err := svc.Apply(job.ID, seeker, "", "resume.pdf", nil)
	if got := statusOf(t, err); got != http.StatusConflict {
		t.Errorf("status = %d, want 409", got)
	}

	var count int64
	db.Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", job.ID, seeker.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("application rows = %d, want exactly 1", count)
	}
}

func TestApplyRejectsMissingResume(t *testing.T) {
	db := testDB(t)
	svc := NewApplicationService(db, nil)
	employer := seedUser(t, db, models.RoleEmployer)
	seeker := seedUser(t, db, models.RoleJobSeeker)
	job := seedJob(t, db, employer, jobOpts{})

	_, err := svc.Apply(job.ID, seeker, "cover letter", "", nil)
	if got := statusOf(t, err); got != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", got)
	}
}

func TestApplyChecksJobBeforeTouchingUpload(t *testing.T) {
	db := testDB(t)
	store, err := NewResumeStore(t.TempDir(), 5<<20)
	if err != nil {
		t.Fatalf("resume store: %v", err)
	}
	svc := NewApplicationService(db, store)
	employer := seedUser(t, db, models.RoleEmployer)
	seeker := seedUser(t, db, models.RoleJobSeeker)
	draft := seedJob(t, db, employer, jobOpts{status: models.JobStatusDraft})

	// A garbage upload aimed at a draft job: the job lookup must fire
	// before the file is even looked at.
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	_, err = svc.Apply(draft.ID, seeker, "", "", makeFileHeader(t, "cv.pdf", png))
	if got := statusOf(t, err); got != http.StatusNotFound {
		t.Errorf("draft job: status = %d, want 404", got)
	}

	_, err = svc.Apply(uuid.New(), seeker, "", "", makeFileHeader(t, "cv.pdf", png))
	if got := statusOf(t, err); got != http.StatusNotFound {
		t.Errorf("unknown job: status = %d, want 404", got)
	}

	entries, _ := os.ReadDir(store.Dir)
	if len(entries) != 0 {
		t.Errorf("rejected applications left %d files behind", len(entries))
	}
}

func TestApplyDuplicateLeavesNoUploadBehind(t *testing.T) {
	db := testDB(t)
	store, err := NewResumeStore(t.TempDir(), 5<<20)
	if err != nil {
		t.Fatalf("resume store: %v", err)
	}
	svc := NewApplicationService(db, store)
	employer := seedUser(t, db, models.RoleEmployer)
	seeker := seedUser(t, db, models.RoleJobSeeker)
	job := seedJob(t, db, employer, jobOpts{})

	if _, err := svc.Apply(job.ID, seeker, "", "resume.pdf", nil); err != nil {
		t.Fatalf("first apply: %v", err)
	}

	_, err = svc.Apply(job.ID, seeker, "", "", makeFileHeader(t, "cv.pdf", pdfBytes))
	if got := statusOf(t, err); got != http.StatusConflict {
		t.Errorf("status = %d, want 409", got)
	}

	entries, _ := os.ReadDir(store.Dir)
	if len(entries) != 0 {
		t.Errorf("duplicate apply stored %d files", len(entries))
	}
}

func TestApplyStoresUploadedResume(t *testing.T) {
	db := testDB(t)
	store, err := NewResumeStore(t.TempDir(), 5<<20)
	if err != nil {
		t.Fatalf("resume store: %v", err)
	}
	svc := NewApplicationService(db, store)
	employer := seedUser(t, db, models.RoleEmployer)
	seeker := seedUser(t, db, models.RoleJobSeeker)
	job := seedJob(t, db, employer, jobOpts{})

	app, err := svc.Apply(job.ID, seeker, "", "", makeFileHeader(t, "cv.pdf", pdfBytes))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !strings.HasPrefix(app.ResumeURL, "resume-") {
		t.Errorf("resumeUrl = %q, want stored filename", app.ResumeURL)
	}
	entries, _ := os.ReadDir(store.Dir)
	if len(entries) != 1 {
		t.Errorf("stored files = %d, want 1", len(entries))
	}
}

func TestWithdrawOnlyPendingAndOnlyOwner(t *testing.T) {
	db := testDB(t)
	svc := NewApplicationService(db, nil)
	employer := seedUser(t, db, models.RoleEmployer)
	seeker := seedUser(t, db, models.RoleJobSeeker)
	other := seedUser(t, db, models.RoleJobSeeker)
	job := seedJob(t, db, employer, jobOpts{})

	app, err := svc.Apply(job.ID, seeker, "", "resume.pdf", nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if err := svc.Withdraw(app.ID, other); statusOf(t, err) != http.StatusForbidden {
		t.Error("non-applicant withdraw should be forbidden")
	}

	if _, err := svc.UpdateStatus(app.ID, employer, models.ApplicationStatusReviewed); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := svc.Withdraw(app.ID, seeker); statusOf(t, err) != http.StatusBadRequest {
		t.Error("withdrawing a reviewed application should be a client error")
	}

	if _, err := svc.UpdateStatus(app.ID, employer, models.ApplicationStatusPending); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := svc.Withdraw(app.ID, seeker); err != nil {
		t.Fatalf("withdraw pending: %v", err)
	}

	var count int64
	db.Model(&models.Application{}).Where("id = ?", app.ID).Count(&count)
	if count != 0 {
		t.Error("withdrawn application still present")
	}
}

func TestUpdateStatusAuthorization(t *testing.T) {
	db := testDB(t)
	svc := NewApplicationService(db, nil)
	employer := seedUser(t, db, models.RoleEmployer)
	rival := seedUser(t, db, models.RoleEmployer)
	admin := seedUser(t, db, models.RoleAdmin)
	seeker := seedUser(t, db, models.RoleJobSeeker)
	job := seedJob(t, db, employer, jobOpts{})

	app, err := svc.Apply(job.ID, seeker, "", "resume.pdf", nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := svc.UpdateStatus(app.ID, rival, models.ApplicationStatusReviewed); statusOf(t, err) != http.StatusForbidden {
		t.Error("another employer updating status should be forbidden")
	}
	if _, err := svc.UpdateStatus(app.ID, employer, "bogus"); statusOf(t, err) != http.StatusBadRequest {
		t.Error("unknown status should be a client error")
	}
	// Any-to-any transitions among the five statuses are allowed.
	if _, err := svc.UpdateStatus(app.ID, employer, models.ApplicationStatusAccepted); err != nil {
		t.Errorf("owning employer update: %v", err)
	}
	if _, err := svc.UpdateStatus(app.ID, admin, models.ApplicationStatusInterview); err != nil {
		t.Errorf("admin update: %v", err)
	}
}

func TestListForMyJobsScopedToEmployer(t *testing.T) {
	db := testDB(t)
	svc := NewApplicationService(db, nil)
	employerA := seedUser(t, db, models.RoleEmployer)
	employerB := seedUser(t, db, models.RoleEmployer)
	seeker := seedUser(t, db, models.RoleJobSeeker)
	jobA := seedJob(t, db, employerA, jobOpts{title: "A"})
	jobB := seedJob(t, db, employerB, jobOpts{title: "B"})

	if _, err := svc.Apply(jobA.ID, seeker, "", "resume.pdf", nil); err != nil {
		t.Fatalf("apply A: %v", err)
	}
	if _, err := svc.Apply(jobB.ID, seeker, "", "resume.pdf", nil); err != nil {
		t.Fatalf("apply B: %v", err)
	}

	apps, err := svc.ListForMyJobs(employerA.ID, "", nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("len = %d, want 1", len(apps))
	}
	if apps[0].JobID != jobA.ID {
		t.Error("returned an application belonging to another employer's job")
	}

	filtered, err := svc.ListForMyJobs(employerA.ID, models.ApplicationStatusAccepted, nil)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(filtered) != 0 {
		t.Errorf("status filter: len = %d, want 0", len(filtered))
	}
}

func TestListMine(t *testing.T) {
	db := testDB(t)
	svc := NewApplicationService(db, nil)
	employer := seedUser(t, db, models.RoleEmployer)
	seeker := seedUser(t, db, models.RoleJobSeeker)
	job := seedJob(t, db, employer, jobOpts{})

	if _, err := svc.Apply(job.ID, seeker, "", "resume.pdf", nil); err != nil {
		t.Fatalf("apply: %v", err)
	}

	apps, err := svc.ListMine(seeker.ID)
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("len = %d, want 1", len(apps))
	}
	if apps[0].Job == nil || apps[0].Job.Title != job.Title {
		t.Error("job not preloaded on listed application")
	}
}
