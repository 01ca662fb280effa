package export

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/typeless-cms/core/internal/middleware"
	"github.com/typeless-cms/core/internal/modules/workspace"
	"github.com/typeless-cms/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/workspaces/:id/export", authMW, h.export)
}

func (h *Handler) export(c *gin.Context) {
	result, err := h.svc.Export(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	switch {
	case err == nil:
		response.Created(c, result)
	case errors.Is(err, ErrNotConfigured):
		response.BadRequest(c, "Export storage is not configured")
	case errors.Is(err, workspace.ErrNotFound), errors.Is(err, workspace.ErrAccessDenied):
		workspace.RespondError(c, err)
	default:
		response.InternalError(c)
	}
}
