package handler

import (
	"log"
	"net/http"

	"triviahub/backend/internal/apierr"
	"triviahub/backend/internal/filter"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// respondData writes the success envelope around a single entity.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondList writes the success envelope around a collection.
func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

// respondPage writes the success envelope around a filtered page.
func respondPage(c *gin.Context, data interface{}, count int, total int64, pagination filter.Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      count,
		"total":      total,
		"pagination": pagination,
		"data":       data,
	})
}

// respondError is the single boundary that turns a domain error into an HTTP
// status and the failure envelope. Unrecognized errors become a generic 500.
func respondError(c *gin.Context, err error) {
	status := apierr.StatusCode(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   ErrorBody{Message: apierr.Message(err), StatusCode: status},
	})
}

// respondBindingError normalizes request binding failures into the
// Validation kind.
func respondBindingError(c *gin.Context, err error) {
	respondError(c, apierr.Wrap(apierr.Validation, err, "%s", err.Error()))
}
