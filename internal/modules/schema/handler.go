package schema

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/typeless-cms/core/internal/middleware"
	"github.com/typeless-cms/core/internal/modules/workspace"
	"github.com/typeless-cms/core/internal/pkg/response"
)

// Handler exposes the schema service. The same handlers register twice:
// under /contents and under the legacy /object-types naming. One
// abstraction, two routing adapters.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	for _, prefix := range []string{"/contents", "/object-types"} {
		g := rg.Group(prefix, authMW)
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:id", h.get)
		g.PATCH("/:id", h.update)
		g.DELETE("/:id", h.delete)
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		response.BadRequest(c, ve.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Content type not found")
	case errors.Is(err, ErrSlugTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, workspace.ErrNotFound), errors.Is(err, workspace.ErrAccessDenied):
		workspace.RespondError(c, err)
	default:
		// Unexpected errors, database ones included, must not leak
		// driver text into the response body.
		response.InternalError(c)
	}
}

func (h *Handler) list(c *gin.Context) {
	workspaceID := c.Query("workspace_id")
	if workspaceID == "" {
		response.BadRequest(c, "workspace_id is required")
		return
	}
	types, err := h.svc.List(workspaceID, middleware.CurrentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, gin.H{"data": types})
}

func (h *Handler) get(c *gin.Context) {
	ct, err := h.svc.Get(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, ct)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateContentTypeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ct, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Created(c, ct)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateContentTypeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ct, err := h.svc.Update(c.Param("id"), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, ct)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	response.NoContent(c)
}
