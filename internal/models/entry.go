package models

import "gorm.io/plugin/soft_delete"

// EntryModel is one record of a content type. Data is an open JSON
// object whose keys are field-definition names; it is validated against
// the schema at write time only, never retroactively.
type EntryModel struct {
	AuditBase
	ContentTypeID string                `json:"content_type_id" gorm:"type:char(36);index;not null"`
	Data          JSONMap               `json:"data"            gorm:"type:json"`
	DeletedAt     soft_delete.DeletedAt `json:"-"               gorm:"index"`
}

func (EntryModel) TableName() string { return "entries" }
