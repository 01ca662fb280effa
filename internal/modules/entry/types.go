package entry

import "github.com/typeless-cms/core/internal/models"

type CreateEntryDTO struct {
	ContentTypeID string         `json:"content_type_id" binding:"required"`
	Data          models.JSONMap `json:"data" binding:"required"`
}

type UpdateEntryDTO struct {
	// A nil Data leaves the entry untouched; a present Data replaces the
	// object and is validated against all field definitions.
	Data *models.JSONMap `json:"data"`
}
