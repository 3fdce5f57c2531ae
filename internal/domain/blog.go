package domain

import "time"

// Blog is an editorial article, optionally attached to a state so the
// state page can surface its stories.
type Blog struct {
	BlogID      string    `json:"id" dynamodbav:"blog_id"`
	Title       string    `json:"title" dynamodbav:"title"`
	Slug        string    `json:"slug" dynamodbav:"slug"`
	Content     string    `json:"content" dynamodbav:"content"` // rich-text HTML
	CoverKey    string    `json:"cover_key,omitempty" dynamodbav:"cover_key"`
	StateID     string    `json:"state_id,omitempty" dynamodbav:"state_id"`
	Enable      bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateBlogRequest struct {
	Title    string `json:"title" validate:"required"`
	Slug     string `json:"slug" validate:"required"`
	Content  string `json:"content" validate:"required"`
	CoverKey string `json:"cover_key"`
	StateID  string `json:"state_id"`
}

type UpdateBlogRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	CoverKey *string `json:"cover_key"`
	StateID  *string `json:"state_id"`
	Enable   *bool   `json:"enable"`
}
