package services

import (
	"github.com/google/uuid"
	"github.com/jobhive/jobhive/internal/apperr"
	"github.com/jobhive/jobhive/internal/dtos"
	"github.com/jobhive/jobhive/internal/models"
	"gorm.io/gorm"
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// DashboardStats computes the five dashboard counts at request time;
// nothing is cached so the numbers always reflect the latest writes.
func (s *AdminService) DashboardStats() (*dtos.DashboardStats, error) {
	stats := &dtos.DashboardStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, s.DB.Model(&models.User{})},
		{&stats.TotalJobs, s.DB.Model(&models.Job{})},
		{&stats.TotalEmployers, s.DB.Model(&models.User{}).Where("role = ?", models.RoleEmployer)},
		{&stats.TotalJobSeekers, s.DB.Model(&models.User{}).Where("role = ?", models.RoleJobSeeker)},
		{&stats.PendingApprovals, s.DB.Model(&models.Job{}).Where("status = ?", models.JobStatusDraft)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return stats, nil
}

// RecentUsers returns the 10 most recently created accounts.
func (s *AdminService) RecentUsers() ([]models.User, error) {
	return s.listUsers(10)
}

// AllUsers returns every account, newest first.
func (s *AdminService) AllUsers() ([]models.User, error) {
	return s.listUsers(0)
}

func (s *AdminService) listUsers(limit int) ([]models.User, error) {
	q := s.DB.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// RecentJobs returns the 10 most recently created postings with their
// employer summary.
func (s *AdminService) RecentJobs() ([]models.Job, error) {
	return s.listJobs(10)
}

// AllJobs returns every posting, newest first.
func (s *AdminService) AllJobs() ([]models.Job, error) {
	return s.listJobs(0)
}

func (s *AdminService) listJobs(limit int) ([]models.Job, error) {
	q := s.DB.Preload("Employer").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var jobs []models.Job
	if err := q.Find(&jobs).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return jobs, nil
}

// PendingApprovals is the moderation queue: draft jobs plus inactive
// users, with a combined count.
func (s *AdminService) PendingApprovals() ([]models.Job, []models.User, error) {
	var jobs []models.Job
	err := s.DB.Preload("Employer").
		Where("status = ?", models.JobStatusDraft).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	var users []models.User
	err = s.DB.Where("is_active = ?", false).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	return jobs, users, nil
}

// UpdateJobStatus flips a posting's status. No cascade to applications
// or bookmarks.
func (s *AdminService) UpdateJobStatus(id uuid.UUID, status string) (*models.Job, error) {
	if !models.ValidJobStatus(status) {
		return nil, apperr.Validationf("Invalid status: %s", status)
	}

	var job models.Job
	if err := s.DB.First(&job, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "Job not found", "")
	}
	if err := s.DB.Model(&job).Update("status", status).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &job, nil
}

// UpdateUserStatus toggles the active flag. Deactivation locks the
// account out at the auth gate on the next request.
func (s *AdminService) UpdateUserStatus(id uuid.UUID, isActive bool) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "User not found", "")
	}
	if err := s.DB.Model(&user).Update("is_active", isActive).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	user.IsActive = &isActive
	return &user, nil
}
