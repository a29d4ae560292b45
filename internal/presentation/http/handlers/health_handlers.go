// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandlers contains liveness endpoints
type HealthHandlers struct{}

// NewHealthHandlers creates health handlers
func NewHealthHandlers() *HealthHandlers {
	return &HealthHandlers{}
}

// GetRoot handles GET / - the health greeting
func (h *HealthHandlers) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Namaste! Munim Ji engine is running."})
}
