package accesslog

import (
	"github.com/gin-gonic/gin"
	"github.com/typeless-cms/core/internal/middleware"
	"github.com/typeless-cms/core/internal/modules/workspace"
	"github.com/typeless-cms/core/internal/pkg/pagination"
	"github.com/typeless-cms/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/workspaces/:id/access-logs", authMW, h.list)
}

func (h *Handler) list(c *gin.Context) {
	logs, page, err := h.svc.List(c.Param("id"), middleware.CurrentUserID(c), pagination.FromContext(c))
	if err != nil {
		workspace.RespondError(c, err)
		return
	}
	response.Paged(c, logs, page)
}
