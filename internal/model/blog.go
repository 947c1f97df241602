package model

import (
	"time"

	"github.com/google/uuid"
)

// Reaction kinds for blog posts. Like and dislike are mutually exclusive
// per (blog, user) pair.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Blog is an article with a view counter and per-user reactions.
type Blog struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Title      string     `json:"title" db:"title"`
	Body       string     `json:"body" db:"body"`
	CategoryID *uuid.UUID `json:"categoryId,omitempty" db:"category_id"`
	AuthorID   *uuid.UUID `json:"authorId,omitempty" db:"author_id"`
	Views      int        `json:"views" db:"views"`
	Likes      int        `json:"likes" db:"-"`
	Dislikes   int        `json:"dislikes" db:"-"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// BlogCategory groups blog posts.
type BlogCategory struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// CreateBlogRequest is the payload for POST /api/blog.
type CreateBlogRequest struct {
	Title      string `json:"title" validate:"required"`
	Body       string `json:"body" validate:"required"`
	CategoryID string `json:"categoryId" validate:"omitempty,uuid"`
}

// CreateBlogCategoryRequest is the payload for POST /api/blog-category.
type CreateBlogCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateBlogRequest carries a partial-merge blog update.
type UpdateBlogRequest struct {
	Title      *string `json:"title,omitempty"`
	Body       *string `json:"body,omitempty"`
	CategoryID *string `json:"categoryId,omitempty" validate:"omitempty,uuid"`
}
