package models

import "gorm.io/plugin/soft_delete"

// FieldType enumerates the declared types a field definition may carry.
// Only NUMBER, BOOLEAN and EMAIL get structural validation; everything
// else is accepted as-is at write time.
type FieldType string

const (
	FieldText       FieldType = "TEXT"
	FieldTextarea   FieldType = "TEXTAREA"
	FieldRichText   FieldType = "RICHTEXT"
	FieldImage      FieldType = "IMAGE"
	FieldImages     FieldType = "IMAGES"
	FieldDate       FieldType = "DATE"
	FieldBoolean    FieldType = "BOOLEAN"
	FieldSelect     FieldType = "SELECT"
	FieldReference  FieldType = "REFERENCE"
	FieldReferences FieldType = "REFERENCES"
	FieldNumber     FieldType = "NUMBER"
	FieldEmail      FieldType = "EMAIL"
)

// ValidFieldType reports whether t is a known field type.
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldText, FieldTextarea, FieldRichText, FieldImage, FieldImages,
		FieldDate, FieldBoolean, FieldSelect, FieldReference, FieldReferences,
		FieldNumber, FieldEmail:
		return true
	}
	return false
}

// IsReference reports whether t points at another content type.
func (t FieldType) IsReference() bool {
	return t == FieldReference || t == FieldReferences
}

// ContentTypeModel is one entry collection's schema. Slug is unique
// within its workspace among live content types; deleted_at sits in the
// unique index so a deleted content type frees its slug.
type ContentTypeModel struct {
	AuditBase
	Name        string                `json:"name"         gorm:"not null"`
	Slug        string                `json:"slug"         gorm:"size:191;not null;uniqueIndex:idx_content_type_slug,priority:2"`
	WorkspaceID string                `json:"workspace_id" gorm:"type:char(36);not null;uniqueIndex:idx_content_type_slug,priority:1"`
	DeletedAt   soft_delete.DeletedAt `json:"-"            gorm:"uniqueIndex:idx_content_type_slug,priority:3"`

	Fields []FieldDefinitionModel `json:"fields,omitempty" gorm:"foreignKey:ContentTypeID"`
}

func (ContentTypeModel) TableName() string { return "content_types" }

// FieldDefinitionModel is one schema field. Name is the machine key
// into entry data; RelationToID targets another content type when the
// declared type is a reference kind.
type FieldDefinitionModel struct {
	Base
	DeletedAt     soft_delete.DeletedAt `json:"-"               gorm:"index"`
	ContentTypeID string                `json:"content_type_id" gorm:"type:char(36);index;not null"`
	Name          string                `json:"name"            gorm:"size:191;not null"`
	DisplayName   string                `json:"display_name"    gorm:"not null"`
	Type          FieldType             `json:"type"            gorm:"size:32;not null"`
	Required      bool                  `json:"required"        gorm:"default:false"`
	Multiple      bool                  `json:"multiple"        gorm:"default:false"`
	Placeholder   string                `json:"placeholder"`
	DefaultValue  string                `json:"default_value"`
	Position      int                   `json:"position"        gorm:"default:0"`
	RelationToID  *string               `json:"relation_to_id"  gorm:"type:char(36)"`

	RelationTo *ContentTypeModel `json:"relation_to,omitempty" gorm:"foreignKey:RelationToID"`
}

func (FieldDefinitionModel) TableName() string { return "field_definitions" }
