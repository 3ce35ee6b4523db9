package dtos

import "time"

type CreateJobRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	JobType     string `json:"jobType" binding:"required"`

	// Optional Fields
	Status              string     `json:"status"` // Defaults to "draft" if empty
	IsRemote            bool       `json:"isRemote"`
	ExperienceLevel     string     `json:"experienceLevel"`
	Skills              []string   `json:"skills"`
	SalaryMin           *float64   `json:"salaryMin"`
	SalaryMax           *float64   `json:"salaryMax"`
	SalaryCurrency      string     `json:"salaryCurrency"`
	SalaryPeriod        string     `json:"salaryPeriod"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
}

type UpdateJobRequest struct {
	Title               *string    `json:"title"`
	Description         *string    `json:"description"`
	Location            *string    `json:"location"`
	JobType             *string    `json:"jobType"`
	Status              *string    `json:"status"`
	IsRemote            *bool      `json:"isRemote"`
	ExperienceLevel     *string    `json:"experienceLevel"`
	Skills              []string   `json:"skills"`
	SalaryMin           *float64   `json:"salaryMin"`
	SalaryMax           *float64   `json:"salaryMax"`
	SalaryCurrency      *string    `json:"salaryCurrency"`
	SalaryPeriod        *string    `json:"salaryPeriod"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
}

// JobListQuery carries the GET /jobs query string. Repeated jobType and
// experience params collect into slices.
type JobListQuery struct {
	Search     string   `form:"search"`
	Location   string   `form:"location"`
	JobType    []string `form:"jobType"`
	Experience []string `form:"experience"`
	IsRemote   *bool    `form:"isRemote"`
	MinSalary  *float64 `form:"minSalary"`
	MaxSalary  *float64 `form:"maxSalary"`
	Sort       string   `form:"sort"`
	Page       int      `form:"page,default=1"`
	Limit      int      `form:"limit,default=10"`
}
