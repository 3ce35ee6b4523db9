package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jobhive/jobhive/internal/apperr"
	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/dtos"
	"github.com/jobhive/jobhive/internal/models"
	"github.com/jobhive/jobhive/internal/services"
	"gorm.io/datatypes"
)

type JobHandler struct {
	Jobs *services.JobService
}

func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{Jobs: jobs}
}

// userSummary is the denormalized user block attached to job and
// application responses. Everything else on the profile stays private.
type userSummary struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	ProfileData datatypes.JSON `json:"profileData,omitempty"`
}

func summarizeUser(u *models.User) *userSummary {
	if u == nil {
		return nil
	}
	return &userSummary{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		ProfileData: u.ProfileData,
	}
}

// jobView shadows the preloaded Employer association with the summary.
type jobView struct {
	*models.Job
	Employer   *userSummary `json:"employer,omitempty"`
	HasApplied *bool        `json:"hasApplied,omitempty"`
}

func viewJob(job *models.Job) jobView {
	return jobView{Job: job, Employer: summarizeUser(job.Employer)}
}

func viewJobs(jobs []models.Job) []jobView {
	views := make([]jobView, len(jobs))
	for i := range jobs {
		views[i] = viewJob(&jobs[i])
	}
	return views
}

// List is GET /jobs
func (h *JobHandler) List(c *gin.Context) {
	var query dtos.JobListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	filters := services.JobFilters{
		Search:     query.Search,
		Location:   query.Location,
		JobTypes:   query.JobType,
		Experience: query.Experience,
		IsRemote:   query.IsRemote,
		MinSalary:  query.MinSalary,
		MaxSalary:  query.MaxSalary,
	}

	jobs, total, err := h.Jobs.List(filters, query.Sort, query.Page, query.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	limit := query.Limit
	if limit < 1 {
		limit = 10
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"count":       len(jobs),
		"total":       total,
		"totalPages":  totalPages,
		"currentPage": max(query.Page, 1),
		"data":        viewJobs(jobs),
	})
}

// Get is GET /jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid job ID."))
		return
	}

	caller := auth.CurrentUser(c)
	job, hasApplied, err := h.Jobs.Get(id, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	view := viewJob(job)
	if caller != nil && caller.Role == models.RoleJobSeeker {
		view.HasApplied = &hasApplied
	}
	respondData(c, http.StatusOK, view)
}

// Create is POST /jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	job, err := h.Jobs.Create(auth.CurrentUser(c).ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, job)
}

// Update is PUT /jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid job ID."))
		return
	}

	var req dtos.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	job, err := h.Jobs.Update(id, auth.CurrentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, job)
}

// Delete is DELETE /jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid job ID."))
		return
	}

	if err := h.Jobs.Delete(id, auth.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}

// MyJobs is GET /jobs/my-jobs
func (h *JobHandler) MyJobs(c *gin.Context) {
	jobs, err := h.Jobs.MyJobs(auth.CurrentUser(c).ID, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(jobs),
		"data":    jobs,
	})
}

// ByEmployer is GET /jobs/employer/:employerId
func (h *JobHandler) ByEmployer(c *gin.Context) {
	employerID, err := uuid.Parse(c.Param("employerId"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid employer ID."))
		return
	}

	jobs, err := h.Jobs.ByEmployer(employerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(jobs),
		"data":    viewJobs(jobs),
	})
}
