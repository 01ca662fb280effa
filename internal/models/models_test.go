package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func uniqueIndexColumns(t *testing.T, model interface{}, name string) []string {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	idx, ok := s.ParseIndexes()[name]
	require.True(t, ok, "index %s not declared", name)
	require.Equal(t, "UNIQUE", idx.Class)
	cols := make([]string, 0, len(idx.Fields))
	for _, f := range idx.Fields {
		cols = append(cols, f.DBName)
	}
	return cols
}

// Slug uniqueness must hold only among live rows. That requires
// deleted_at to actually be a column of the unique index, otherwise a
// soft-deleted workspace would pin its slug forever and recreating it
// would die on the database constraint behind the service's back.
func TestWorkspaceSlugIndexSpansDeletedAt(t *testing.T) {
	cols := uniqueIndexColumns(t, &WorkspaceModel{}, "idx_workspace_slug")
	assert.Equal(t, []string{"slug", "deleted_at"}, cols)
}

func TestContentTypeSlugIndexSpansDeletedAt(t *testing.T) {
	cols := uniqueIndexColumns(t, &ContentTypeModel{}, "idx_content_type_slug")
	assert.Equal(t, []string{"workspace_id", "slug", "deleted_at"}, cols)
}

func TestUserExternalIDIndexSpansDeletedAt(t *testing.T) {
	cols := uniqueIndexColumns(t, &UserModel{}, "idx_user_external")
	assert.Equal(t, []string{"external_id", "deleted_at"}, cols)
}
