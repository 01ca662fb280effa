package publicapi

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/typeless-cms/core/internal/modules/accesslog"
	"github.com/typeless-cms/core/internal/pkg/pagination"
	"github.com/typeless-cms/core/internal/pkg/response"
)

// Handler is the unauthenticated content delivery surface.
type Handler struct {
	svc  *Service
	logs *accesslog.Service
}

func NewHandler(svc *Service, logs *accesslog.Service) *Handler {
	return &Handler{svc: svc, logs: logs}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	api := rg.Group("/api")
	api.GET("/:workspace_slug/:object_type_slug", h.listEntries)
	api.GET("/:workspace_slug/:object_type_slug/:entry_id", h.getEntry)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrWorkspaceNotFound):
		response.NotFound(c, "Workspace not found")
	case errors.Is(err, ErrObjectTypeNotFound):
		response.NotFound(c, "Object type not found")
	case errors.Is(err, ErrEntryNotFound):
		response.NotFound(c, "Entry not found")
	default:
		response.InternalError(c)
	}
}

func (h *Handler) listEntries(c *gin.Context) {
	res, err := h.svc.ListEntries(
		c.Request.Context(),
		c.Param("workspace_slug"),
		c.Param("object_type_slug"),
		pagination.FromContext(c),
		c.Query("sort"),
		c.Query("order"),
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ids := make([]string, 0, len(res.Data))
	for _, e := range res.Data {
		ids = append(ids, e.ID)
	}
	h.logs.Log(ids, c.ClientIP())

	response.OK(c, res)
}

func (h *Handler) getEntry(c *gin.Context) {
	res, err := h.svc.GetEntry(
		c.Request.Context(),
		c.Param("workspace_slug"),
		c.Param("object_type_slug"),
		c.Param("entry_id"),
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logs.Log([]string{res.Data.ID}, c.ClientIP())

	response.OK(c, res)
}
