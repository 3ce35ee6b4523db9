package services

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/jobhive/jobhive/internal/apperr"
	"github.com/jobhive/jobhive/internal/dtos"
	"github.com/jobhive/jobhive/internal/models"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

// visibleJobs scopes a query to postings the public may see: published
// jobs whose employer account is still active. The join is part of the
// visibility rule, not an optimization.
func (s *JobService) visibleJobs() *gorm.DB {
	return s.DB.Model(&models.Job{}).
		Joins("JOIN users ON users.id = jobs.employer_id AND users.is_active = ?", true).
		Where("jobs.status = ?", models.JobStatusPublished)
}

// List returns one page of published jobs matching the filters, plus
// the total match count for pagination.
func (s *JobService) List(filters JobFilters, sort string, page, limit int) ([]models.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := filters.Apply(s.visibleJobs()).Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err)
	}

	var jobs []models.Job
	err := filters.Apply(s.visibleJobs()).
		Preload("Employer").
		Order(OrderClause(sort)).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return jobs, total, nil
}

// Get fetches one job by id, applying the visibility rule: drafts and
// other non-published postings look absent to everyone but their owner
// and admins. hasApplied is only computed for job seekers.
func (s *JobService) Get(id uuid.UUID, caller *models.User) (*models.Job, bool, error) {
	var job models.Job
	err := s.DB.Preload("Employer").First(&job, "id = ?", id).Error
	if err != nil {
		return nil, false, apperr.FromDB(err, "Job not found", "")
	}

	if job.Status != models.JobStatusPublished && !canManageJob(caller, &job) {
		// Indistinguishable from true absence on purpose
		return nil, false, apperr.NotFound("Job not found or not published")
	}

	hasApplied := false
	if caller != nil && caller.Role == models.RoleJobSeeker {
		var count int64
		err := s.DB.Model(&models.Application{}).
			Where("job_id = ? AND applicant_id = ?", job.ID, caller.ID).
			Count(&count).Error
		if err != nil {
			return nil, false, apperr.Internal(err)
		}
		hasApplied = count > 0
	}
	return &job, hasApplied, nil
}

// Create inserts a posting owned by employerID.
func (s *JobService) Create(employerID uuid.UUID, req *dtos.CreateJobRequest) (*models.Job, error) {
	jobType := normalize(req.JobType)
	if !models.ValidJobType(jobType) {
		return nil, apperr.Validationf("Invalid job type: %s", req.JobType)
	}
	status := req.Status
	if status == "" {
		status = models.JobStatusDraft
	}
	if !models.ValidJobStatus(status) {
		return nil, apperr.Validationf("Invalid status: %s", req.Status)
	}

	job := &models.Job{
		EmployerID:          employerID,
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		JobType:             jobType,
		Status:              status,
		IsRemote:            req.IsRemote,
		Skills:              pq.StringArray(req.Skills),
		ApplicationDeadline: req.ApplicationDeadline,
	}
	if req.ExperienceLevel != "" {
		level := normalize(req.ExperienceLevel)
		if !models.ValidExperienceLevel(level) {
			return nil, apperr.Validationf("Invalid experience level: %s", req.ExperienceLevel)
		}
		job.ExperienceLevel = &level
	}
	if req.SalaryMin != nil || req.SalaryMax != nil {
		salary, err := marshalSalary(req.SalaryMin, req.SalaryMax, req.SalaryCurrency, req.SalaryPeriod)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		job.SalaryRange = salary
	}

	if err := s.DB.Create(job).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return job, nil
}

// Update applies a partial update; only the owner or an admin may touch
// a posting.
func (s *JobService) Update(id uuid.UUID, caller *models.User, req *dtos.UpdateJobRequest) (*models.Job, error) {
	var job models.Job
	if err := s.DB.First(&job, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Job not found", "")
	}
	if !canManageJob(caller, &job) {
		return nil, apperr.Forbidden("Not authorized to update this job")
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.JobType != nil {
		jobType := normalize(*req.JobType)
		if !models.ValidJobType(jobType) {
			return nil, apperr.Validationf("Invalid job type: %s", *req.JobType)
		}
		updates["job_type"] = jobType
	}
	if req.Status != nil {
		if !models.ValidJobStatus(*req.Status) {
			return nil, apperr.Validationf("Invalid status: %s", *req.Status)
		}
		updates["status"] = *req.Status
	}
	if req.IsRemote != nil {
		updates["is_remote"] = *req.IsRemote
	}
	if req.ExperienceLevel != nil {
		level := normalize(*req.ExperienceLevel)
		if !models.ValidExperienceLevel(level) {
			return nil, apperr.Validationf("Invalid experience level: %s", *req.ExperienceLevel)
		}
		updates["experience_level"] = level
	}
	if req.Skills != nil {
		updates["skills"] = pq.StringArray(req.Skills)
	}
	if req.ApplicationDeadline != nil {
		updates["application_deadline"] = *req.ApplicationDeadline
	}
	if req.SalaryMin != nil || req.SalaryMax != nil || req.SalaryCurrency != nil || req.SalaryPeriod != nil {
		// A lone bound merges into the stored range instead of
		// replacing it, so the other bound and currency survive
		// partial updates.
		var salary models.SalaryRangeValue
		if len(job.SalaryRange) > 0 {
			if err := json.Unmarshal(job.SalaryRange, &salary); err != nil {
				return nil, apperr.Internal(err)
			}
		}
		if req.SalaryMin != nil {
			salary.Min = req.SalaryMin
		}
		if req.SalaryMax != nil {
			salary.Max = req.SalaryMax
		}
		if req.SalaryCurrency != nil {
			salary.Currency = *req.SalaryCurrency
		}
		if req.SalaryPeriod != nil {
			salary.Period = *req.SalaryPeriod
		}
		merged, err := marshalSalary(salary.Min, salary.Max, salary.Currency, salary.Period)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		updates["salary_range"] = merged
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&job).Updates(updates).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return &job, nil
}

// Delete removes a posting together with its applications and saved-job
// entries in one transaction, so readers never observe orphans.
func (s *JobService) Delete(id uuid.UUID, caller *models.User) error {
	var job models.Job
	if err := s.DB.First(&job, "id = ?", id).Error; err != nil {
		return apperr.FromDB(err, "Job not found", "")
	}
	if !canManageJob(caller, &job) {
		return apperr.Forbidden("Not authorized to delete this job")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.ID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", job.ID).Delete(&models.SavedJob{}).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// MyJobs lists the caller's own postings regardless of status, with an
// optional status filter.
func (s *JobService) MyJobs(employerID uuid.UUID, status string) ([]models.Job, error) {
	q := s.DB.Preload("Applications").
		Where("employer_id = ?", employerID).
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return jobs, nil
}

// ByEmployer lists an employer's published postings for public viewing.
func (s *JobService) ByEmployer(employerID uuid.UUID) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.Preload("Employer").
		Where("employer_id = ? AND status = ?", employerID, models.JobStatusPublished).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return jobs, nil
}

// canManageJob is the ownership predicate shared by update, delete and
// draft visibility.
func canManageJob(caller *models.User, job *models.Job) bool {
	if caller == nil {
		return false
	}
	return caller.Role == models.RoleAdmin || job.EmployerID == caller.ID
}

func marshalSalary(min, max *float64, currency, period string) (datatypes.JSON, error) {
	if currency == "" {
		currency = "USD"
	}
	if period == "" {
		period = "year"
	}
	raw, err := json.Marshal(models.SalaryRangeValue{
		Min:      min,
		Max:      max,
		Currency: currency,
		Period:   period,
	})
	return datatypes.JSON(raw), err
}

// normalize lowercases user-supplied enum values.
func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
