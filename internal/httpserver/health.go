package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repo-relay/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "repo-relay webhook listener"
	HealthVersion = "1.0.0"
	ServiceName   = "repo-relay"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready only while the listener is accepting requests.
// @Summary Readiness Check
// @Description Check if the listener is accepting webhook deliveries
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} map[string]interface{} "Listener is starting or stopping"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	state := srv.State()
	body := gin.H{
		"status":  "ready",
		"state":   state.String(),
		"version": HealthVersion,
		"service": ServiceName,
	}
	if state != StateListening {
		body["status"] = "not ready"
		c.JSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: http.StatusServiceUnavailable,
			Message:   "listener is " + state.String(),
			Data:      body,
		})
		return
	}
	response.OK(c, body)
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}
