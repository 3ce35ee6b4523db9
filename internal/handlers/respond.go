package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobhive/jobhive/internal/apperr"
)

// respondError maps a domain error onto the shared error envelope.
// Internal details stay out of the response body.
func respondError(c *gin.Context, err error) {
	status, message := apperr.StatusOf(err)
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Invalid request: " + err.Error(),
	})
}
