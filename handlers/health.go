package handlers

import (
	"net/http"

	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last backend health snapshot.
type HealthHandler struct{}

func (h *HealthHandler) Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	healthy := status.Mongo
	for _, r := range status.Redis {
		healthy = healthy && r
	}
	state := "ok"
	if !healthy {
		state = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": state, "message": "LexAid API", "services": status})
}
