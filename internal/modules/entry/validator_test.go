package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typeless-cms/core/internal/models"
)

func field(name, displayName string, fieldType models.FieldType, required bool) models.FieldDefinitionModel {
	return models.FieldDefinitionModel{
		Name:        name,
		DisplayName: displayName,
		Type:        fieldType,
		Required:    required,
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	fields := []models.FieldDefinitionModel{
		field("title", "Title", models.FieldText, true),
		field("body", "Body", models.FieldRichText, false),
	}

	tests := []struct {
		name       string
		data       models.JSONMap
		violations []Violation
	}{
		{
			name:       "missing required field",
			data:       models.JSONMap{"body": "hello"},
			violations: []Violation{{Field: "title", Message: "Field 'Title' is required"}},
		},
		{
			name:       "explicit null counts as missing",
			data:       models.JSONMap{"title": nil},
			violations: []Violation{{Field: "title", Message: "Field 'Title' is required"}},
		},
		{
			name: "required field present",
			data: models.JSONMap{"title": "hello"},
		},
		{
			name: "optional field absent",
			data: models.JSONMap{"title": "hello"},
		},
		{
			name: "empty string satisfies required",
			data: models.JSONMap{"title": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.violations, Validate(tt.data, fields))
		})
	}
}

func TestValidate_TypedFields(t *testing.T) {
	fields := []models.FieldDefinitionModel{
		field("price", "Price", models.FieldNumber, false),
		field("published", "Published", models.FieldBoolean, false),
		field("contact", "Contact", models.FieldEmail, false),
	}

	tests := []struct {
		name    string
		data    models.JSONMap
		wantLen int
		message string
	}{
		{
			name: "valid values",
			data: models.JSONMap{"price": 12.5, "published": true, "contact": "a@b.co"},
		},
		{
			name:    "number rejects string",
			data:    models.JSONMap{"price": "12.5"},
			wantLen: 1,
			message: "Field 'Price' must be a number",
		},
		{
			name:    "boolean rejects number",
			data:    models.JSONMap{"published": 1},
			wantLen: 1,
			message: "Field 'Published' must be a boolean",
		},
		{
			name:    "email rejects malformed address",
			data:    models.JSONMap{"contact": "not-an-email"},
			wantLen: 1,
			message: "Field 'Contact' must be a valid email address",
		},
		{
			name:    "email rejects non-string",
			data:    models.JSONMap{"contact": 42},
			wantLen: 1,
			message: "Field 'Contact' must be a valid email address",
		},
		{
			name: "integer is numeric",
			data: models.JSONMap{"price": 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Validate(tt.data, fields)
			require.Len(t, violations, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.message, violations[0].Message)
			}
		})
	}
}

func TestValidate_PermissiveTypes(t *testing.T) {
	// Declared types without structural rules accept any JSON value.
	fields := []models.FieldDefinitionModel{
		field("when", "When", models.FieldDate, false),
		field("tags", "Tags", models.FieldSelect, false),
		field("cover", "Cover", models.FieldImage, false),
	}
	data := models.JSONMap{
		"when":  12345,
		"tags":  []interface{}{"a", true, 3},
		"cover": map[string]interface{}{"nested": "object"},
	}
	assert.Empty(t, Validate(data, fields))
}

func TestValidate_UndeclaredKeysIgnored(t *testing.T) {
	fields := []models.FieldDefinitionModel{
		field("title", "Title", models.FieldText, true),
	}
	data := models.JSONMap{"title": "x", "extra": map[string]interface{}{"free": "form"}}
	assert.Empty(t, Validate(data, fields))
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	fields := []models.FieldDefinitionModel{
		field("title", "Title", models.FieldText, true),
		field("price", "Price", models.FieldNumber, true),
	}
	violations := Validate(models.JSONMap{"price": "nope"}, fields)
	require.Len(t, violations, 2)
	assert.Equal(t, "title", violations[0].Field)
	assert.Equal(t, "price", violations[1].Field)
}
