package publicapi

import (
	"github.com/typeless-cms/core/internal/models"
	"github.com/typeless-cms/core/internal/pkg/response"
)

// RelationRef is the projection of a relation target exposed publicly.
type RelationRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// FieldSummary is the public projection of a field definition, returned
// as response schema metadata.
type FieldSummary struct {
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Type        models.FieldType `json:"type"`
	Required    bool             `json:"required"`
	Multiple    bool             `json:"multiple"`
	RelationTo  *RelationRef     `json:"relation_to,omitempty"`
}

type objectTypeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type workspaceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ListMeta is the meta block of a list response.
type ListMeta struct {
	ObjectType objectTypeRef       `json:"object_type"`
	Workspace  workspaceRef        `json:"workspace"`
	Pagination response.Pagination `json:"pagination"`
	Schema     []FieldSummary      `json:"schema"`
}

// EntryMeta is the meta block of a single-entry response.
type EntryMeta struct {
	ObjectType objectTypeRef  `json:"object_type"`
	Workspace  workspaceRef   `json:"workspace"`
	Schema     []FieldSummary `json:"schema"`
}

// ListResponse is the body of GET /api/:workspace_slug/:object_type_slug.
type ListResponse struct {
	Data []models.EntryModel `json:"data"`
	Meta ListMeta            `json:"meta"`
}

// EntryResponse is the body of GET /api/:workspace_slug/:object_type_slug/:entry_id.
type EntryResponse struct {
	Data models.EntryModel `json:"data"`
	Meta EntryMeta         `json:"meta"`
}

// FieldSummaries projects field definitions for public consumption.
func FieldSummaries(fields []models.FieldDefinitionModel) []FieldSummary {
	out := make([]FieldSummary, 0, len(fields))
	for _, f := range fields {
		summary := FieldSummary{
			Name:        f.Name,
			DisplayName: f.DisplayName,
			Type:        f.Type,
			Required:    f.Required,
			Multiple:    f.Multiple,
		}
		if f.RelationTo != nil {
			summary.RelationTo = &RelationRef{
				ID:   f.RelationTo.ID,
				Name: f.RelationTo.Name,
				Slug: f.RelationTo.Slug,
			}
		}
		out = append(out, summary)
	}
	return out
}
