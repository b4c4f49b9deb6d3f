package models

import (
	"time"
)

// DefaultCommentAuthor is used when a commenter leaves the name blank.
const DefaultCommentAuthor = "Anonymous"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	Author    string    `gorm:"type:varchar(255);not null" json:"author"`
	Body      string    `gorm:"type:text;not null" json:"body" validate:"required,min=1"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
