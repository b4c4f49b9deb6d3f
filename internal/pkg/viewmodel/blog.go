package viewmodel

import (
	"lanblog/app/models"
)

const displayTimeFormat = "2006-01-02 15:04:05"

// BlogIndex is the structured data handed to the listing template.
type BlogIndex struct {
	Posts        []PostView
	PostDates    []string
	SelectedDate string
}

type PostView struct {
	ID            uint
	Title         string
	Body          string
	ImageFilename string
	CreatedAt     string
	Comments      []CommentView
}

type CommentView struct {
	Author    string
	Body      string
	CreatedAt string
}

// NewBlogIndex assembles the listing page from posts, their batched
// comments and the distinct post dates.
func NewBlogIndex(posts []models.Post, commentsByPost map[uint][]models.Comment, dates []string, selectedDate string) BlogIndex {
	page := BlogIndex{
		Posts:        make([]PostView, 0, len(posts)),
		PostDates:    dates,
		SelectedDate: selectedDate,
	}

	for _, post := range posts {
		view := PostView{
			ID:        post.ID,
			Title:     post.Title,
			Body:      post.Body,
			CreatedAt: post.CreatedAt.UTC().Format(displayTimeFormat),
		}
		if post.ImageFilename != nil {
			view.ImageFilename = *post.ImageFilename
		}
		for _, comment := range commentsByPost[post.ID] {
			view.Comments = append(view.Comments, CommentView{
				Author:    comment.Author,
				Body:      comment.Body,
				CreatedAt: comment.CreatedAt.UTC().Format(displayTimeFormat),
			})
		}
		page.Posts = append(page.Posts, view)
	}

	return page
}
