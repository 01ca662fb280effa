// Package health exposes liveness and readiness checks.
package health

import (
	"github.com/gin-gonic/gin"
	"github.com/typeless-cms/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.check)
}

func (h *Handler) check(c *gin.Context) {
	status := gin.H{"status": "ok", "database": "ok"}

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
	}
	response.OK(c, status)
}
