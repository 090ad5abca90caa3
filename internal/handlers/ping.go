package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PingHandler struct {
	metrics *IntercomMetrics
}

func NewPingHandler(metrics *IntercomMetrics) *PingHandler {
	return &PingHandler{metrics: metrics}
}

// Handle counts an authenticated ping.
func (h *PingHandler) Handle(c *gin.Context) {
	h.metrics.IncPing()
	c.Status(http.StatusOK)
}
