package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jobhive/jobhive/internal/apperr"
	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/dtos"
	"github.com/jobhive/jobhive/internal/services"
)

type SavedJobHandler struct {
	SavedJobs *services.SavedJobService
}

func NewSavedJobHandler(savedJobs *services.SavedJobService) *SavedJobHandler {
	return &SavedJobHandler{SavedJobs: savedJobs}
}

// List is GET /saved-jobs
func (h *SavedJobHandler) List(c *gin.Context) {
	saved, err := h.SavedJobs.List(auth.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(saved),
		"data":    saved,
	})
}

// Save is POST /jobs/:id/save
func (h *SavedJobHandler) Save(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid job ID."))
		return
	}

	var req dtos.SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondBindError(c, err)
		return
	}

	saved, err := h.SavedJobs.Save(jobID, auth.CurrentUser(c).ID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, saved)
}

// Update is PUT /saved-jobs/:id
func (h *SavedJobHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid saved job ID."))
		return
	}

	var req dtos.UpdateSavedJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	saved, err := h.SavedJobs.Update(id, auth.CurrentUser(c).ID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, saved)
}

// Remove is DELETE /saved-jobs/:id
func (h *SavedJobHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid saved job ID."))
		return
	}

	if err := h.SavedJobs.Remove(id, auth.CurrentUser(c).ID); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}

// IsSaved is GET /jobs/:id/is-saved
func (h *SavedJobHandler) IsSaved(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid job ID."))
		return
	}

	saved, err := h.SavedJobs.IsSaved(jobID, auth.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"isSaved": saved != nil,
		"data":    saved,
	})
}
