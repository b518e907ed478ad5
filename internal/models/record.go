package models

import (
	"time"
)

// Play status values a record may hold.
const (
	StatusUnplayed = "Unplayed"
	StatusPlaying  = "Playing"
	StatusShelved  = "Shelved"
	StatusFinished = "Finished"
)

// PlayStatuses lists the accepted play_status values in display order.
var PlayStatuses = []string{StatusUnplayed, StatusPlaying, StatusShelved, StatusFinished}

// Record tracks one user's history with one mod. The composite unique
// index keeps a (user, mod) pair down to a single row.
type Record struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_mod" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ModID      uint      `gorm:"not null;uniqueIndex:idx_user_mod" json:"mod_id"`
	Mod        *Mod      `gorm:"foreignKey:ModID" json:"mod,omitempty"`
	UserNotes  string    `gorm:"type:text" json:"user_notes"`
	UserReview string    `gorm:"type:text" json:"user_review"`
	NowPlaying bool      `gorm:"default:false" json:"now_playing"`
	PlayStatus string    `gorm:"size:20;default:'Unplayed'" json:"play_status"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ValidPlayStatus reports whether s is one of the accepted statuses.
func ValidPlayStatus(s string) bool {
	for _, v := range PlayStatuses {
		if s == v {
			return true
		}
	}
	return false
}
