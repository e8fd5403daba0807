package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/boatapi/internal/api/dto"
)

// Health handles GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status: "ok",
		Time:   time.Now().Format(time.RFC3339),
	})
}
