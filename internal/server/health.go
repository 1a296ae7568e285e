package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	healthyMessage  = "Application is healthy"
	readyMessage    = "Application is ready"
	notReadyMessage = "Database is not connected"

	timestampLayout = "2006-01-02T15:04:05.000Z07:00"

	databaseConnected = "connected"
)

// HealthResponse is the body of the liveness endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ReadinessResponse adds the database state to HealthResponse.
type ReadinessResponse struct {
	HealthResponse
	Database string `json:"database"`
}

func timestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    statusSuccess,
		Message:   healthyMessage,
		Timestamp: timestamp(),
	})
}

func headHealthHandler(c *gin.Context) {
	c.Header("Content-Type", "application/json; charset=utf-8")
	c.Status(http.StatusOK)
}

func readinessHandler(probe DatabaseProbe) gin.HandlerFunc {
	return func(c *gin.Context) {
		if probe != nil && !probe.Ready() {
			c.JSON(http.StatusServiceUnavailable, ReadinessResponse{
				HealthResponse: HealthResponse{Status: statusError, Message: notReadyMessage, Timestamp: timestamp()},
				Database:       probe.Status(),
			})
			return
		}

		c.JSON(http.StatusOK, ReadinessResponse{
			HealthResponse: HealthResponse{Status: statusSuccess, Message: readyMessage, Timestamp: timestamp()},
			Database:       databaseConnected,
		})
	}
}
