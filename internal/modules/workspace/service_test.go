package workspace

import (
	"errors"
	"strings"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/typeless-cms/core/internal/models"
)

func TestValidSlug(t *testing.T) {
	valid := []string{"blog", "my-site", "a", "site-2", "a-b-c-1"}
	for _, s := range valid {
		assert.True(t, ValidSlug(s), s)
	}

	invalid := []string{
		"", "My-Site", "-leading", "trailing-", "double--hyphen",
		"under_score", "with space", "ünïcode", strings.Repeat("a", 192),
	}
	for _, s := range invalid {
		assert.False(t, ValidSlug(s), s)
	}
}

func TestAccessGranted(t *testing.T) {
	ws := &models.WorkspaceModel{CreatorID: "creator"}
	ws.ID = "ws-1"

	activeMember := &models.MembershipModel{
		UserID:      "member",
		WorkspaceID: "ws-1",
		Status:      models.MembershipActive,
	}
	inactiveMember := &models.MembershipModel{
		UserID:      "member",
		WorkspaceID: "ws-1",
		Status:      models.MembershipInactive,
	}
	otherWorkspaceMember := &models.MembershipModel{
		UserID:      "member",
		WorkspaceID: "ws-2",
		Status:      models.MembershipActive,
	}

	tests := []struct {
		name       string
		userID     string
		membership *models.MembershipModel
		want       bool
	}{
		{"creator without membership", "creator", nil, true},
		{"active member", "member", activeMember, true},
		{"inactive member denied", "member", inactiveMember, false},
		{"membership of another workspace denied", "member", otherWorkspaceMember, false},
		{"stranger denied", "stranger", nil, false},
		{"membership of someone else denied", "stranger", activeMember, false},
		{"empty user denied", "", activeMember, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AccessGranted(ws, tt.userID, tt.membership))
		})
	}

	assert.False(t, AccessGranted(nil, "creator", nil))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Blog", "my-blog"},
		{"  Spaces  Everywhere  ", "spaces-everywhere"},
		{"Already-Fine-123", "already-fine-123"},
		{"crème brûlée", "cr-me-br-l-e"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), tt.in)
	}
}

func TestIsDuplicateSlugError(t *testing.T) {
	dup := &mysqlDriver.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'blog' for key 'idx_workspace_slug'",
	}
	assert.True(t, IsDuplicateSlugError(dup))
	assert.True(t, IsDuplicateSlugError(errors.New("Duplicate entry 'blog' for key 'workspaces.slug'")))

	otherIndex := &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry for key 'PRIMARY'"}
	assert.False(t, IsDuplicateSlugError(otherIndex))
	assert.False(t, IsDuplicateSlugError(errors.New("connection refused")))
}
