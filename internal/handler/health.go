package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiddoland/backend/internal/model"
)

const (
	serviceName    = "KiddoLand API"
	serviceVersion = "1.0.0"
)

// Root godoc
// @Summary Service banner
// @Tags health
// @Produce json
// @Success 200 {object} model.RootResponse
// @Router / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Status:  "online",
		Service: serviceName,
		Version: serviceVersion,
	})
}

// Health godoc
// @Summary 헬스체크
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{Status: "healthy"})
}
