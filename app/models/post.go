package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Body          string    `gorm:"type:text;not null" json:"body" validate:"required"`
	ImageFilename *string   `gorm:"type:varchar(255)" json:"image_filename,omitempty"`
	CreatedAt     time.Time `gorm:"not null;index" json:"created_at"`
	// relations
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

// FindPostByID finds a post by its primary key.
func FindPostByID(db *gorm.DB, id uint) (*Post, error) {
	var post Post
	result := db.First(&post, id)
	return &post, result.Error
}
