package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Post is a single post fetched from the remote API. Posts are immutable
// once fetched and are replaced wholesale on each successful load.
type Post struct {
	ID    int    `json:"id" validate:"required,gte=0"`
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// Comment is a comment on a post, keyed under its parent post's id.
// Only Body is ever mutated through updates; identity never changes.
type Comment struct {
	ID     int    `json:"id" validate:"required,gte=0"`
	PostID int    `json:"postId" validate:"required,gte=0"`
	Name   string `json:"name"`
	Email  string `json:"email" validate:"omitempty,email"`
	Body   string `json:"body" validate:"required"`
}

// Session is the persisted proof of a completed login: an opaque token
// and the phone number it was issued for. Token and PhoneNumber are set
// and cleared together, never one without the other.
type Session struct {
	IsAuthenticated bool
	PhoneNumber     string
	Token           string
}
