package models

import "gorm.io/plugin/soft_delete"

// MediaType classifies a stored asset.
type MediaType string

const (
	MediaImage    MediaType = "IMAGE"
	MediaVideo    MediaType = "VIDEO"
	MediaDocument MediaType = "DOCUMENT"
	MediaFile     MediaType = "FILE"
)

// MediaModel is one uploaded asset. The binary lives at the storage
// provider; URL/PublicID point at it. Local soft-delete and remote
// deletion are independent: the row is gone from the API even when the
// remote destroy fails.
type MediaModel struct {
	AuditBase
	WorkspaceID string                `json:"workspace_id" gorm:"type:char(36);index;not null"`
	Name        string                `json:"name"         gorm:"not null"`
	Type        MediaType             `json:"type"         gorm:"size:32;not null"`
	Size        int64                 `json:"size"`
	URL         string                `json:"url"`
	PublicID    string                `json:"-"            gorm:"size:255"`
	Width       *int                  `json:"width,omitempty"`
	Height      *int                  `json:"height,omitempty"`
	AltText     string                `json:"alt_text"`
	Description string                `json:"description"`
	DeletedAt   soft_delete.DeletedAt `json:"-"            gorm:"index"`
}

func (MediaModel) TableName() string { return "media" }
