package models

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

// UserSession is one signed-in dashboard session. Tokens embed the
// session ID so revoking the row invalidates the token.
type UserSession struct {
	Base
	UserID     string                `json:"user_id"     gorm:"type:char(36);index;not null"`
	Revoked    bool                  `json:"revoked"     gorm:"default:false"`
	LastSeenAt *time.Time            `json:"last_seen_at"`
	UserAgent  string                `json:"user_agent"`
	IP         string                `json:"ip"`
	DeletedAt  soft_delete.DeletedAt `json:"-"           gorm:"index"`
}

func (UserSession) TableName() string { return "user_sessions" }
