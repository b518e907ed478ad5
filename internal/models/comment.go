package models

import (
	"time"
)

// Comment is a note one user leaves on another user's profile. Comments
// are append-only.
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TargetUserID uint      `gorm:"not null;index" json:"target_user_id"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"time"`
}
