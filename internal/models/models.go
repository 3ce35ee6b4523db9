package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role values stored on User.Role.
const (
	RoleAdmin     = "admin"
	RoleEmployer  = "employer"
	RoleJobSeeker = "job_seeker"
)

// Job status values.
const (
	JobStatusDraft     = "draft"
	JobStatusPublished = "published"
	JobStatusArchived  = "archived"
	JobStatusClosed    = "closed"
)

// Application status values.
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusReviewed  = "reviewed"
	ApplicationStatusInterview = "interview"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusAccepted  = "accepted"
)

// ValidRole reports whether r is a known role value.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleEmployer || r == RoleJobSeeker
}

// ValidJobStatus reports whether s is a known job status.
func ValidJobStatus(s string) bool {
	return s == JobStatusDraft || s == JobStatusPublished ||
		s == JobStatusArchived || s == JobStatusClosed
}

// ValidJobType reports whether t is a known job type.
func ValidJobType(t string) bool {
	switch t {
	case "full-time", "part-time", "contract", "temporary", "internship":
		return true
	}
	return false
}

// ValidExperienceLevel reports whether l is a known experience level.
func ValidExperienceLevel(l string) bool {
	switch l {
	case "entry", "mid", "senior", "lead", "executive":
		return true
	}
	return false
}

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed,
		ApplicationStatusInterview, ApplicationStatusRejected,
		ApplicationStatusAccepted:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Role         string         `gorm:"not null;default:'job_seeker'" json:"role"`
	ProfileData  datatypes.JSON `json:"profileData,omitempty"`
	IsActive     *bool          `gorm:"not null;default:true" json:"isActive"`
	LastLogin    *time.Time     `json:"lastLogin,omitempty"`

	// 'omitempty' keeps associations out of responses unless preloaded
	PostedJobs   []Job         `gorm:"foreignKey:EmployerID" json:"postedJobs,omitempty"`
	Applications []Application `gorm:"foreignKey:ApplicantID" json:"applications,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Active treats a nil flag as active, matching the column default.
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

type Job struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Foreign key to the posting employer's profile
	EmployerID uuid.UUID `gorm:"type:uuid;not null;index" json:"employerId"`
	Employer   *User     `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`

	Title               string         `gorm:"not null" json:"title"`
	Description         string         `gorm:"type:text;not null" json:"description"`
	Location            string         `gorm:"not null" json:"location"`
	JobType             string         `gorm:"not null" json:"jobType"`
	SalaryRange         datatypes.JSON `json:"salaryRange,omitempty"`
	Skills              pq.StringArray `gorm:"type:text[]" json:"skills"`
	ExperienceLevel     *string        `json:"experienceLevel,omitempty"`
	IsRemote            bool           `gorm:"not null;default:false" json:"isRemote"`
	Status              string         `gorm:"not null;default:'draft';index" json:"status"`
	ApplicationDeadline *time.Time     `json:"applicationDeadline,omitempty"`

	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
	SavedBy      []SavedJob    `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// SalaryRangeValue is the shape stored in Job.SalaryRange.
type SalaryRangeValue struct {
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Currency string   `json:"currency"`
	Period   string   `json:"period"`
}

type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// One application per (job, applicant) pair, enforced by the index
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant" json:"jobId"`
	Job         *Job      `gorm:"foreignKey:JobID" json:"job,omitempty"`
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant" json:"applicantId"`
	Applicant   *User     `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`

	CoverLetter    string         `gorm:"type:text" json:"coverLetter,omitempty"`
	ResumeURL      string         `gorm:"not null" json:"resumeUrl"`
	Status         string         `gorm:"not null;default:'pending'" json:"status"`
	AdditionalInfo datatypes.JSON `json:"additionalInfo,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type SavedJob struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_jobs_user_job" json:"userId"`
	JobID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_jobs_user_job" json:"jobId"`
	Job    *Job      `gorm:"foreignKey:JobID" json:"job,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`
}

func (s *SavedJob) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
