package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"lanblog/app/models"
)

// ErrPostNotFound reports a missing post; callers map it to a 404
// instead of a storage fault.
var ErrPostNotFound = errors.New("post not found")

// BlogRepository defines the interface for post and comment database
// operations.
type BlogRepository interface {
	// ListPosts returns posts in descending created_at order. With a
	// non-nil day, only posts created on that calendar date (UTC) are
	// returned.
	ListPosts(day *time.Time) ([]models.Post, error)
	// ListPostDates returns the distinct calendar dates (YYYY-MM-DD)
	// that have at least one post, ascending.
	ListPostDates() ([]string, error)
	// CommentsForPosts returns comments for the given posts grouped by
	// post id, each group in ascending created_at order. An empty id
	// slice returns an empty map without touching the database.
	CommentsForPosts(postIDs []uint) (map[uint][]models.Comment, error)
	CreatePost(post *models.Post) error
	// AddComment inserts a comment after verifying, inside the same
	// transaction, that the target post exists.
	AddComment(comment *models.Comment) error
	// DeletePost removes a post and its comments in one transaction and
	// returns the image filename the post carried, if any, so the
	// caller can clean up the file after commit.
	DeletePost(id uint) (string, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Blog BlogRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Blog: NewBlogRepository(db),
	}
}
