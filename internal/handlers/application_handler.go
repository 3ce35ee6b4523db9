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
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Applications: applications}
}

// applicationView shadows the preloaded associations with their
// trimmed summaries.
type applicationView struct {
	*models.Application
	Job       *jobView     `json:"job,omitempty"`
	Applicant *userSummary `json:"applicant,omitempty"`
}

func viewApplication(a *models.Application) applicationView {
	view := applicationView{Application: a}
	if a.Job != nil {
		jv := viewJob(a.Job)
		view.Job = &jv
	}
	view.Applicant = summarizeUser(a.Applicant)
	return view
}

func viewApplications(apps []models.Application) []applicationView {
	views := make([]applicationView, len(apps))
	for i := range apps {
		views[i] = viewApplication(&apps[i])
	}
	return views
}

// Apply is POST /jobs/:id/apply. Accepts either a JSON body with a
// pre-hosted resumeUrl or a multipart form carrying a resume file.
// The file itself is handed to the service untouched so the workflow
// checks run before anything is stored.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid job ID."))
		return
	}

	var req dtos.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resume, _ := c.FormFile("resume")

	application, err := h.Applications.Apply(jobID, auth.CurrentUser(c), req.CoverLetter, req.ResumeURL, resume)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, viewApplication(application))
}

// Mine is GET /applications/me
func (h *ApplicationHandler) Mine(c *gin.Context) {
	applications, err := h.Applications.ListMine(auth.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(applications),
		"data":    viewApplications(applications),
	})
}

// ForMyJobs is GET /applications/my-jobs
func (h *ApplicationHandler) ForMyJobs(c *gin.Context) {
	var query dtos.MyJobsApplicationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	var jobID *uuid.UUID
	if query.JobID != "" {
		id, err := uuid.Parse(query.JobID)
		if err != nil {
			respondError(c, apperr.Validation("Invalid job ID."))
			return
		}
		jobID = &id
	}

	applications, err := h.Applications.ListForMyJobs(auth.CurrentUser(c).ID, query.Status, jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(applications),
		"data":    viewApplications(applications),
	})
}

// UpdateStatus is PUT /applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid application ID."))
		return
	}

	var req dtos.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	application, err := h.Applications.UpdateStatus(id, auth.CurrentUser(c), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, viewApplication(application))
}

// Withdraw is DELETE /applications/:id
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid application ID."))
		return
	}

	if err := h.Applications.Withdraw(id, auth.CurrentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}
