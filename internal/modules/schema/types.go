package schema

// FieldDTO is one field definition in a create/update payload. Order in
// the slice is the schema order.
type FieldDTO struct {
	Name         string  `json:"name" binding:"required"`
	DisplayName  string  `json:"display_name" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	Required     bool    `json:"required"`
	Multiple     bool    `json:"multiple"`
	Placeholder  string  `json:"placeholder"`
	DefaultValue string  `json:"default_value"`
	RelationToID *string `json:"relation_to_id"`
}

type CreateContentTypeDTO struct {
	WorkspaceID string     `json:"workspace_id" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Slug        string     `json:"slug" binding:"required"`
	Fields      []FieldDTO `json:"fields"`
}

type UpdateContentTypeDTO struct {
	Name   *string     `json:"name"`
	Slug   *string     `json:"slug"`
	Fields *[]FieldDTO `json:"fields"`
}
