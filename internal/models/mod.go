package models

import (
	"time"
)

// Mod is one listing imported from the idgames archive. FileID is the
// archive's own file identifier and guards against duplicate imports.
type Mod struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FileID       int64     `gorm:"column:file_id;unique;not null;index" json:"file_id"`
	Title        string    `gorm:"not null;size:255" json:"title"`
	URL          string    `gorm:"type:text" json:"url"`
	Description  string    `gorm:"type:text" json:"description"`
	DateUploaded string    `gorm:"size:50" json:"date_uploaded"`
	Author       string    `gorm:"size:255" json:"author"`
	Category     string    `gorm:"size:100;index" json:"category"`
	Rating       float64   `gorm:"default:0" json:"rating"`
	RatingCount  int       `gorm:"default:0" json:"rating_count"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Records      []Record  `gorm:"foreignKey:ModID;constraint:OnDelete:CASCADE" json:"records,omitempty"`
}
