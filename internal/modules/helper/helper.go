// Package helper hosts small utility endpoints for the dashboard.
package helper

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/typeless-cms/core/internal/pkg/response"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type renderDTO struct {
	Markdown string `json:"markdown" binding:"required"`
}

type Handler struct {
	md goldmark.Markdown
}

func NewHandler() *Handler {
	return &Handler{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/helper", authMW)
	g.POST("/markdown", h.renderMarkdown)
}

// RenderMarkdown converts markdown to HTML for rich text previews.
func (h *Handler) RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (h *Handler) renderMarkdown(c *gin.Context) {
	var dto renderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rendered, err := h.RenderMarkdown(dto.Markdown)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"html": rendered})
}
