package models

import "gorm.io/plugin/soft_delete"

// UserModel mirrors the identity-provider user locally. The provider
// owns credentials; this row only carries profile data and the link to
// the external identity.
type UserModel struct {
	Base
	ExternalID string                `json:"external_id" gorm:"size:191;not null;uniqueIndex:idx_user_external,priority:1"`
	DeletedAt  soft_delete.DeletedAt `json:"-"           gorm:"uniqueIndex:idx_user_external,priority:2"`
	Email      string                `json:"email"       gorm:"index;size:191"`
	Name       string                `json:"name"`
	AvatarURL  string                `json:"avatar_url"`
}

func (UserModel) TableName() string { return "users" }
