package media

import (
	"errors"

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
	g := rg.Group("/media", authMW)
	g.GET("", h.list)
	g.POST("/upload", h.upload)
	g.POST("/upload-base64", h.uploadBase64)
	g.GET("/:id", h.get)
	g.GET("/:id/transform", h.transform)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Media not found")
	case errors.Is(err, ErrTooLarge):
		response.BadRequest(c, "File exceeds the upload size limit")
	case errors.Is(err, ErrNoTransform):
		response.BadRequest(c, "This media type does not support transformations")
	case errors.Is(err, workspace.ErrNotFound), errors.Is(err, workspace.ErrAccessDenied):
		workspace.RespondError(c, err)
	default:
		response.InternalError(c)
	}
}

func (h *Handler) list(c *gin.Context) {
	workspaceID := c.Query("workspace_id")
	if workspaceID == "" {
		response.BadRequest(c, "workspace_id is required")
		return
	}

	items, page, err := h.svc.List(workspaceID, middleware.CurrentUserID(c), pagination.FromContext(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Paged(c, items, page)
}

func (h *Handler) upload(c *gin.Context) {
	workspaceID := c.PostForm("workspace_id")
	if workspaceID == "" {
		response.BadRequest(c, "workspace_id is required")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if file.Size > h.svc.MaxBytes() {
		h.respondError(c, ErrTooLarge)
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = file.Filename
	}

	src, err := file.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer src.Close()

	m, err := h.svc.Upload(c.Request.Context(), middleware.CurrentUserID(c), workspaceID, name, src, file.Size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Created(c, m)
}

func (h *Handler) uploadBase64(c *gin.Context) {
	var dto UploadBase64DTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.UploadBase64(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Created(c, m)
}

func (h *Handler) get(c *gin.Context) {
	m, err := h.svc.Get(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, m)
}

func (h *Handler) transform(c *gin.Context) {
	var q TransformQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	url, err := h.svc.TransformURL(c.Param("id"), middleware.CurrentUserID(c), &q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, gin.H{"url": url})
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateMediaDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Update(c.Param("id"), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, m)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	response.NoContent(c)
}
