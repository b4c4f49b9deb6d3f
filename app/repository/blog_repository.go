package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"lanblog/app/models"
)

// blogRepository implements the BlogRepository interface
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository instance
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// ListPosts retrieves posts, newest first, optionally restricted to one
// calendar date. The filter compares against day bounds rather than a
// formatted string so the stored timestamp format never matters.
func (r *blogRepository) ListPosts(day *time.Time) ([]models.Post, error) {
	var posts []models.Post
	query := r.db.Order("created_at DESC, id DESC")
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		query = query.Where("created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour))
	}
	err := query.Find(&posts).Error
	return posts, err
}

// ListPostDates returns every calendar date that has posts, ascending.
func (r *blogRepository) ListPostDates() ([]string, error) {
	var stamps []time.Time
	err := r.db.Model(&models.Post{}).Order("created_at ASC").Pluck("created_at", &stamps).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(stamps))
	dates := make([]string, 0, len(stamps))
	for _, stamp := range stamps {
		date := stamp.UTC().Format("2006-01-02")
		if !seen[date] {
			seen[date] = true
			dates = append(dates, date)
		}
	}
	return dates, nil
}

// CommentsForPosts fetches comments for all given posts in one batched
// query and groups them by post id.
func (r *blogRepository) CommentsForPosts(postIDs []uint) (map[uint][]models.Comment, error) {
	grouped := make(map[uint][]models.Comment)
	if len(postIDs) == 0 {
		return grouped, nil
	}

	var comments []models.Comment
	err := r.db.Where("post_id IN ?", postIDs).
		Order("created_at ASC, id ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}

	for _, comment := range comments {
		grouped[comment.PostID] = append(grouped[comment.PostID], comment)
	}
	return grouped, nil
}

// CreatePost inserts a new post in its own transaction.
func (r *blogRepository) CreatePost(post *models.Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(post).Error
	})
}

// AddComment inserts a comment. The existence check and the insert run
// in one transaction so a concurrent post delete cannot slip between
// them.
func (r *blogRepository) AddComment(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, comment.PostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		return tx.Create(comment).Error
	})
}

// DeletePost removes the post and its comments atomically. The image
// filename is returned so the caller can remove the file after the
// transaction commits; file cleanup is deliberately kept outside the
// transaction.
func (r *blogRepository) DeletePost(id uint) (string, error) {
	var imageFilename string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "image_filename").First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		if post.ImageFilename != nil {
			imageFilename = *post.ImageFilename
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return "", err
	}
	return imageFilename, nil
}
