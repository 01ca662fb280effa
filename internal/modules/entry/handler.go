package entry

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/typeless-cms/core/internal/middleware"
	"github.com/typeless-cms/core/internal/modules/workspace"
	"github.com/typeless-cms/core/internal/pkg/pagination"
	"github.com/typeless-cms/core/internal/pkg/response"
)

// Handler exposes entry CRUD. Like the schema surface, the handlers
// register under both /content-entries and the legacy /entries naming.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	for _, prefix := range []string{"/content-entries", "/entries"} {
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
		response.NotFound(c, "Entry not found")
	case errors.Is(err, ErrContentTypeNotFound):
		response.NotFound(c, "Content type not found")
	case errors.Is(err, workspace.ErrNotFound), errors.Is(err, workspace.ErrAccessDenied):
		workspace.RespondError(c, err)
	default:
		response.InternalError(c)
	}
}

func (h *Handler) list(c *gin.Context) {
	contentTypeID := c.Query("content_type_id")
	if contentTypeID == "" {
		response.BadRequest(c, "content_type_id is required")
		return
	}

	entries, page, err := h.svc.List(
		c.Request.Context(), contentTypeID, middleware.CurrentUserID(c), pagination.FromContext(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Paged(c, entries, page)
}

func (h *Handler) get(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, e)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateEntryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	e, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Created(c, e)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateEntryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	e, err := h.svc.Update(c.Param("id"), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, e)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	response.NoContent(c)
}
