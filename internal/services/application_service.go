package services

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/jobhive/jobhive/internal/apperr"
	"github.com/jobhive/jobhive/internal/models"
	"gorm.io/gorm"
)

type ApplicationService struct {
	DB      *gorm.DB
	Resumes *ResumeStore
}

func NewApplicationService(db *gorm.DB, resumes *ResumeStore) *ApplicationService {
	return &ApplicationService{DB: db, Resumes: resumes}
}

// Apply submits an application. The checks run in a fixed order and
// short-circuit: role, job published, deadline, duplicate, resume.
// The unique index on (job_id, applicant_id) backstops the duplicate
// check under concurrent submission.
func (s *ApplicationService) Apply(jobID uuid.UUID, applicant *models.User, coverLetter, resumeURL string, resume *multipart.FileHeader) (*models.Application, error) {
	if applicant.Role != models.RoleJobSeeker {
		return nil, apperr.Forbidden("Only job seekers can apply for jobs")
	}

	var job models.Job
	err := s.DB.First(&job, "id = ? AND status = ?", jobID, models.JobStatusPublished).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Job not found or not accepting applications")
		}
		return nil, apperr.Internal(err)
	}

	if job.ApplicationDeadline != nil && job.ApplicationDeadline.Before(time.Now()) {
		return nil, apperr.Validation("Application deadline has passed")
	}

	var existing int64
	err = s.DB.Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicant.ID).
		Count(&existing).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing > 0 {
		return nil, apperr.Conflict("You have already applied for this job")
	}

	// The uploaded file is only validated and written once every
	// other check has passed, so a rejected application never leaves
	// a file behind.
	if resume != nil {
		name, err := s.Resumes.Store(resume)
		if err != nil {
			return nil, err
		}
		resumeURL = name
	}
	if resumeURL == "" {
		return nil, apperr.Validation("Please upload your resume")
	}

	application := &models.Application{
		JobID:       jobID,
		ApplicantID: applicant.ID,
		CoverLetter: coverLetter,
		ResumeURL:   resumeURL,
		Status:      models.ApplicationStatusPending,
	}
	if err := s.DB.Create(application).Error; err != nil {
		return nil, apperr.FromDB(err, "", "You have already applied for this job")
	}
	return application, nil
}

// ListMine returns the caller's applications, newest first, with the
// job and its employer summary attached.
func (s *ApplicationService) ListMine(applicantID uuid.UUID) ([]models.Application, error) {
	var applications []models.Application
	err := s.DB.Preload("Job").Preload("Job.Employer").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return applications, nil
}

// ListForMyJobs returns applications against the caller's postings.
// The employer scope is an inner join in the query itself so another
// employer's applications can never leak through.
func (s *ApplicationService) ListForMyJobs(employerID uuid.UUID, status string, jobID *uuid.UUID) ([]models.Application, error) {
	q := s.DB.Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ?", employerID).
		Preload("Job").Preload("Applicant").
		Order("applications.created_at DESC")
	if status != "" {
		q = q.Where("applications.status = ?", status)
	}
	if jobID != nil {
		q = q.Where("applications.job_id = ?", *jobID)
	}

	var applications []models.Application
	if err := q.Find(&applications).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return applications, nil
}

// UpdateStatus moves an application to any of the five known statuses.
// Only an admin or the owning employer of the parent job may do this.
func (s *ApplicationService) UpdateStatus(id uuid.UUID, caller *models.User, status string) (*models.Application, error) {
	if !models.ValidApplicationStatus(status) {
		return nil, apperr.Validation("Invalid status")
	}

	var application models.Application
	err := s.DB.Preload("Job").First(&application, "id = ?", id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "Application not found", "")
	}

	if caller.Role != models.RoleAdmin && (application.Job == nil || application.Job.EmployerID != caller.ID) {
		return nil, apperr.Forbidden("Not authorized to update this application")
	}

	if err := s.DB.Model(&application).Update("status", status).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &application, nil
}

// Withdraw deletes the caller's own application while it is still
// pending.
func (s *ApplicationService) Withdraw(id uuid.UUID, caller *models.User) error {
	var application models.Application
	if err := s.DB.First(&application, "id = ?", id).Error; err != nil {
		return apperr.FromDB(err, "Application not found", "")
	}

	if application.ApplicantID != caller.ID {
		return apperr.Forbidden("Not authorized to withdraw this application")
	}
	if application.Status != models.ApplicationStatusPending {
		return apperr.Validation("Cannot withdraw application that is not in pending status")
	}

	if err := s.DB.Delete(&application).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}
