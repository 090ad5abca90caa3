package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index answers liveness probes with 204 and no body.
func Index(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
