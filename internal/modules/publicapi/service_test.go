package publicapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/typeless-cms/core/internal/models"
)

func TestSortClause(t *testing.T) {
	tests := []struct {
		name  string
		sort  string
		order string
		want  string
	}{
		{"default", "", "", "created_at DESC"},
		{"created ascending", "created_at", "asc", "created_at ASC"},
		{"updated descending", "updated_at", "desc", "updated_at DESC"},
		{"id ascending", "id", "ASC", "id ASC"},
		{"case insensitive column", "Created_At", "Asc", "created_at ASC"},
		{"unknown column falls back", "name", "asc", "created_at ASC"},
		{"data path rejected", "data.title", "asc", "created_at ASC"},
		{"injection rejected", "created_at; DROP TABLE entries", "asc", "created_at ASC"},
		{"unknown order falls back to desc", "id", "sideways", "id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SortClause(tt.sort, tt.order))
		})
	}
}

func TestFieldSummaries(t *testing.T) {
	target := models.ContentTypeModel{Name: "Author", Slug: "authors"}
	target.ID = "ct-authors"
	targetID := target.ID

	fields := []models.FieldDefinitionModel{
		{
			Name:        "title",
			DisplayName: "Title",
			Type:        models.FieldText,
			Required:    true,
		},
		{
			Name:         "author",
			DisplayName:  "Author",
			Type:         models.FieldReference,
			RelationToID: &targetID,
			RelationTo:   &target,
		},
		{
			Name:        "tags",
			DisplayName: "Tags",
			Type:        models.FieldReferences,
			Multiple:    true,
			// Preload missing; the summary simply omits the target.
			RelationToID: &targetID,
		},
	}

	summaries := FieldSummaries(fields)
	assert.Len(t, summaries, 3)

	assert.Equal(t, "title", summaries[0].Name)
	assert.True(t, summaries[0].Required)
	assert.Nil(t, summaries[0].RelationTo)

	assert.Equal(t, &RelationRef{ID: "ct-authors", Name: "Author", Slug: "authors"}, summaries[1].RelationTo)

	assert.True(t, summaries[2].Multiple)
	assert.Nil(t, summaries[2].RelationTo)
}

func TestFieldSummaries_Empty(t *testing.T) {
	assert.Empty(t, FieldSummaries(nil))
	assert.NotNil(t, FieldSummaries(nil))
}
