package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jobhive/jobhive/internal/apperr"
	"github.com/jobhive/jobhive/internal/dtos"
	"github.com/jobhive/jobhive/internal/services"
)

type AdminHandler struct {
	Admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{Admin: admin}
}

// Stats is GET /admin/dashboard/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.Admin.DashboardStats()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

// RecentUsers is GET /admin/users/recent
func (h *AdminHandler) RecentUsers(c *gin.Context) {
	users, err := h.Admin.RecentUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, users)
}

// AllUsers is GET /admin/users
func (h *AdminHandler) AllUsers(c *gin.Context) {
	users, err := h.Admin.AllUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, users)
}

// RecentJobs is GET /admin/jobs/recent
func (h *AdminHandler) RecentJobs(c *gin.Context) {
	jobs, err := h.Admin.RecentJobs()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, viewJobs(jobs))
}

// AllJobs is GET /admin/jobs
func (h *AdminHandler) AllJobs(c *gin.Context) {
	jobs, err := h.Admin.AllJobs()
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, viewJobs(jobs))
}

// PendingApprovals is GET /admin/approvals/pending
func (h *AdminHandler) PendingApprovals(c *gin.Context) {
	jobs, users, err := h.Admin.PendingApprovals()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"pendingJobs":  viewJobs(jobs),
		"pendingUsers": users,
		"total":        len(jobs) + len(users),
	})
}

// UpdateJobStatus is PUT /admin/jobs/:id/status
func (h *AdminHandler) UpdateJobStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid job ID."))
		return
	}

	var req dtos.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	job, err := h.Admin.UpdateJobStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, job)
}

// UpdateUserStatus is PUT /admin/users/:id/status
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("Invalid user ID."))
		return
	}

	var req dtos.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.Admin.UpdateUserStatus(id, *req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}
