package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/typeless-cms/core/internal/middleware"
	"github.com/typeless-cms/core/internal/pkg/response"
)

type Handler struct {
	svc          *Service
	dashboardURL string
}

func NewHandler(svc *Service, dashboardURL string) *Handler {
	return &Handler{svc: svc, dashboardURL: dashboardURL}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")
	g.POST("/oauth/callback", h.callback)
	g.GET("/oauth/callback", h.callbackRedirect)
	g.POST("/oauth/sync", authMW, h.sync)
	g.POST("/refresh", authMW, h.refresh)
	g.POST("/logout", authMW, h.logout)
	g.GET("/me", authMW, h.me)
}

func (h *Handler) callback(c *gin.Context) {
	var dto OAuthCallbackDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.svc.SignIn(dto.AccessToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, SessionResponse{Token: token, User: user})
}

// callbackRedirect handles the browser leg of the OAuth flow. The token
// rides the URL fragment so it never reaches dashboard server logs.
func (h *Handler) callbackRedirect(c *gin.Context) {
	accessToken := c.Query("access_token")
	if accessToken == "" {
		accessToken = c.Query("token")
	}
	if accessToken == "" {
		response.BadRequest(c, "access_token is required")
		return
	}

	token, _, err := h.svc.SignIn(accessToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.dashboardURL+"/#token="+token)
}

func (h *Handler) sync(c *gin.Context) {
	var dto OAuthCallbackDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.svc.Sync(middleware.CurrentUserID(c), dto.AccessToken)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.OK(c, user)
}

func (h *Handler) refresh(c *gin.Context) {
	token, err := h.svc.Refresh(middleware.CurrentUserID(c), middleware.CurrentSessionID(c))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"token": token})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.svc.SignOut(middleware.CurrentSessionID(c)); err != nil {
		response.InternalError(c)
		return
	}
	response.NoContent(c)
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.User(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, user)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, ErrBadToken) {
		response.Unauthorized(c, "Invalid access token")
		return
	}
	response.InternalError(c)
}
