package models

import "time"

// EntryAccessLogModel is an append-only record of a public read.
// Writes are best-effort; the read that triggers one never waits on it.
type EntryAccessLogModel struct {
	ID        uint      `json:"id"        gorm:"primaryKey;autoIncrement"`
	EntryID   string    `json:"entry_id"  gorm:"type:char(36);index;not null"`
	IP        string    `json:"ip"        gorm:"size:64"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

func (EntryAccessLogModel) TableName() string { return "entry_access_logs" }
