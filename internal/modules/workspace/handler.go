package workspace

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/typeless-cms/core/internal/middleware"
	"github.com/typeless-cms/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	ws := rg.Group("/workspaces", authMW)
	ws.GET("", h.list)
	ws.POST("", h.create)
	ws.GET("/:id", h.get)
	ws.PATCH("/:id", h.update)
	ws.DELETE("/:id", h.delete)

	ws.GET("/:id/members", h.listMembers)
	ws.POST("/:id/members", h.addMember)
	ws.DELETE("/:id/members/:member_id", h.deactivateMember)
}

// RespondError maps workspace sentinel errors onto the HTTP contract.
// Other modules lean on this for errors bubbling out of Authorize.
// Anything unrecognized becomes a generic 500; raw driver text never
// reaches the client.
func RespondError(c *gin.Context, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		response.BadRequest(c, ve.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Workspace not found")
	case errors.Is(err, ErrAccessDenied):
		response.Forbidden(c, "You do not have access to this workspace")
	case errors.Is(err, ErrSlugTaken):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c)
	}
}

func (h *Handler) list(c *gin.Context) {
	workspaces, err := h.svc.List(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"data": workspaces})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateWorkspaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ws, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		RespondError(c, err)
		return
	}
	response.Created(c, ws)
}

func (h *Handler) get(c *gin.Context) {
	ws, err := h.svc.Authorize(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	response.OK(c, ws)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateWorkspaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ws, err := h.svc.Update(c.Param("id"), middleware.CurrentUserID(c), &dto)
	if err != nil {
		RespondError(c, err)
		return
	}
	response.OK(c, ws)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		RespondError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listMembers(c *gin.Context) {
	members, err := h.svc.Members(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	response.OK(c, gin.H{"data": members})
}

func (h *Handler) addMember(c *gin.Context) {
	var dto AddMemberDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	member, err := h.svc.AddMember(c.Param("id"), middleware.CurrentUserID(c), &dto)
	if err != nil {
		RespondError(c, err)
		return
	}
	response.Created(c, member)
}

func (h *Handler) deactivateMember(c *gin.Context) {
	err := h.svc.DeactivateMember(c.Param("id"), middleware.CurrentUserID(c), c.Param("member_id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	response.NoContent(c)
}
