package models

import (
	"time"
)

// DefaultImageURL is used when a user registers without an avatar.
const DefaultImageURL = "/static/images/default-pic.png"

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"unique;not null;size:80" json:"username"`
	Email         string    `gorm:"not null;size:120" json:"email"`
	PasswordHash  string    `gorm:"not null;size:255" json:"-"`
	ImageURL      string    `gorm:"size:255" json:"image_url"`
	RememberToken string    `gorm:"unique;index;size:36" json:"-"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Records       []Record  `gorm:"foreignKey:UserID" json:"records,omitempty"`
}
