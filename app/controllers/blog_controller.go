package controllers

import (
	"errors"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"lanblog/app/models"
	"lanblog/app/repository"
	"lanblog/internal/pkg/env"
	"lanblog/internal/pkg/upload"
	"lanblog/internal/pkg/viewmodel"
)

var validate = validator.New()

type postForm struct {
	Title string `validate:"required"`
	Body  string `validate:"required"`
}

type commentForm struct {
	Body string `validate:"required"`
}

func blogRepo() repository.BlogRepository {
	return repository.GetGlobalFactory().GetBlogRepository()
}

func uploads() *upload.Manager {
	return upload.NewManager(env.GetEnv("BLOG_UPLOAD_DIR", "uploads"))
}

// HandleIndex renders the post listing, optionally filtered to one
// calendar date via ?date=YYYY-MM-DD.
func HandleIndex(c *fiber.Ctx) error {
	repo := blogRepo()

	var day *time.Time
	selectedDate := c.Query("date")
	if selectedDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", selectedDate, time.UTC)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD.")
		}
		day = &parsed
	}

	posts, err := repo.ListPosts(day)
	if err != nil {
		fiberlog.Errorf("listing posts failed: %v", err)
		return fiber.ErrInternalServerError
	}

	dates, err := repo.ListPostDates()
	if err != nil {
		fiberlog.Errorf("listing post dates failed: %v", err)
		return fiber.ErrInternalServerError
	}

	postIDs := make([]uint, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}
	commentsByPost, err := repo.CommentsForPosts(postIDs)
	if err != nil {
		fiberlog.Errorf("listing comments failed: %v", err)
		return fiber.ErrInternalServerError
	}

	page := viewmodel.NewBlogIndex(posts, commentsByPost, dates, selectedDate)

	return c.Render("index", fiber.Map{
		"Posts":        page.Posts,
		"PostDates":    page.PostDates,
		"SelectedDate": page.SelectedDate,
		"Flash":        flash.Get(c),
	})
}

// HandleCreatePost creates a post from the submitted form. The optional
// image attachment is validated and stored before the row is inserted.
func HandleCreatePost(c *fiber.Ctx) error {
	form := postForm{
		Title: strings.TrimSpace(c.FormValue("title")),
		Body:  strings.TrimSpace(c.FormValue("body")),
	}
	if err := validate.Struct(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Title and body are required.")
	}

	var imageFilename *string
	if file, err := c.FormFile("image"); err == nil && file != nil && file.Filename != "" {
		name, err := uploads().Save(file)
		if err != nil {
			if errors.Is(err, upload.ErrUnsupportedType) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			fiberlog.Errorf("storing upload failed: %v", err)
			return fiber.ErrInternalServerError
		}
		imageFilename = &name
	}

	post := &models.Post{
		Title:         form.Title,
		Body:          form.Body,
		ImageFilename: imageFilename,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
	if err := blogRepo().CreatePost(post); err != nil {
		fiberlog.Errorf("creating post failed: %v", err)
		return fiber.ErrInternalServerError
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post published.",
	}
	return flash.WithSuccess(c, fm).Redirect("/")
}

// HandleAddComment appends a comment to an existing post.
func HandleAddComment(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID <= 0 {
		return fiber.ErrNotFound
	}

	form := commentForm{
		Body: strings.TrimSpace(c.FormValue("body")),
	}
	if err := validate.Struct(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Comment body is required.")
	}

	author := strings.TrimSpace(c.FormValue("author"))
	if author == "" {
		author = models.DefaultCommentAuthor
	}

	comment := &models.Comment{
		PostID:    uint(postID),
		Author:    author,
		Body:      form.Body,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := blogRepo().AddComment(comment); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return fiber.ErrNotFound
		}
		fiberlog.Errorf("adding comment to post %d failed: %v", postID, err)
		return fiber.ErrInternalServerError
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Comment added.",
	}
	return flash.WithSuccess(c, fm).Redirect("/")
}

// HandleDeletePost deletes a post with its comments and, after the
// transaction commits, removes its image file. File cleanup is
// best-effort: a failure is logged but the delete stands.
func HandleDeletePost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID <= 0 {
		return fiber.ErrNotFound
	}

	imageFilename, err := blogRepo().DeletePost(uint(postID))
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return fiber.ErrNotFound
		}
		fiberlog.Errorf("deleting post %d failed: %v", postID, err)
		return fiber.ErrInternalServerError
	}

	if imageFilename != "" {
		if err := uploads().Remove(imageFilename); err != nil {
			fiberlog.Errorf("removing image %s for deleted post %d failed: %v", imageFilename, postID, err)
		}
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post deleted.",
	}
	return flash.WithSuccess(c, fm).Redirect("/")
}

// HandleUploadedFile streams a stored image back to the client. Names
// that are not plain filenames never reach the filesystem.
func HandleUploadedFile(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("filename"))
	if err != nil {
		return fiber.ErrNotFound
	}

	fullPath, err := uploads().Resolve(name)
	if err != nil {
		return fiber.ErrNotFound
	}
	if _, err := os.Stat(fullPath); err != nil {
		return fiber.ErrNotFound
	}

	return c.SendFile(fullPath)
}
