package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identity and timestamp columns shared by every
// entity. Soft deletion is declared per model rather than here: the
// deleted_at column is an integer (0 while live, unix timestamp once
// deleted), so slug-bearing models can fold it into their unique
// indexes. A nullable deleted_at cannot serve there because MySQL never
// treats two NULLs as equal inside a unique index.
type Base struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// AuditBase extends Base with creator/modifier stamps, shared by every
// workspace-owned entity.
type AuditBase struct {
	Base
	CreatorID  string  `json:"creator_id"            gorm:"type:char(36);index"`
	ModifierID *string `json:"modifier_id,omitempty" gorm:"type:char(36)"`
}
