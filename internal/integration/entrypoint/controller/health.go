// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController reports service readiness. The bank feed provider and the
// integration suite both poll it before sending traffic.
type HealthController struct {
	dbReady func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	CheckedAt string `json:"checked_at"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbReady func() bool) *HealthController {
	return &HealthController{dbReady: dbReady}
}

// Check handles GET /health requests. A reachable process with an
// unreachable database still answers 200 so a poller can tell the two
// failure modes apart.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbReady != nil && h.dbReady() {
		dbStatus = "connected"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		CheckedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
