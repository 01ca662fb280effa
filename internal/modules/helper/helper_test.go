package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	h := NewHandler()

	html, err := h.RenderMarkdown("# Hello\n\nSome *emphasis*.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Hello</h1>")
	assert.Contains(t, html, "<em>emphasis</em>")
}

func TestRenderMarkdown_GFMTable(t *testing.T) {
	h := NewHandler()

	html, err := h.RenderMarkdown("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
}

func TestRenderMarkdown_Empty(t *testing.T) {
	h := NewHandler()

	html, err := h.RenderMarkdown("")
	require.NoError(t, err)
	assert.Empty(t, html)
}
