package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"postify/app/models"
)

// PostAPI is the remote interface the post/comment store depends on.
type PostAPI interface {
	FetchPosts(ctx context.Context) ([]models.Post, error)
	FetchCommentsByPostID(ctx context.Context, postID int) ([]models.Comment, error)
	UpdateComment(ctx context.Context, commentID int, body string) (*models.Comment, error)
}

// Client is a thin typed wrapper over the remote post API. The remote
// target is a public test fixture: it echoes writes but does not persist
// them, so callers must not assume durability.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchPosts retrieves the full post collection, in API response order.
func (c *Client) FetchPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.getJSON(ctx, "/posts", "fetch posts", &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// FetchCommentsByPostID retrieves the comments for a post. A post with no
// comments yields an empty slice, not an error.
func (c *Client) FetchCommentsByPostID(ctx context.Context, postID int) ([]models.Comment, error) {
	var comments []models.Comment
	path := fmt.Sprintf("/posts/%d/comments", postID)
	if err := c.getJSON(ctx, path, "fetch comments", &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// GetComment retrieves a single comment by id.
func (c *Client) GetComment(ctx context.Context, commentID int) (*models.Comment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/comments/%d", c.baseURL, commentID), nil)
	if err != nil {
		return nil, &TransportError{Op: "get comment", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "get comment", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCommentNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Op: "get comment", StatusCode: resp.StatusCode}
	}

	var comment models.Comment
	if err := json.NewDecoder(resp.Body).Decode(&comment); err != nil {
		return nil, &TransportError{Op: "get comment", Err: err}
	}
	return &comment, nil
}

// UpdateComment validates the new body locally, fetches the current
// remote representation, overlays the trimmed body and issues a PUT of
// the full payload. The returned comment is the server's echo; the
// fixture does not persist it.
func (c *Client) UpdateComment(ctx context.Context, commentID int, body string) (*models.Comment, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, ErrEmptyCommentBody
	}
	// Characters, not bytes: a two-rune multibyte body is still too short.
	if utf8.RuneCountInString(trimmed) < 3 {
		return nil, ErrCommentTooShort
	}

	current, err := c.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	payload := current.WithBody(trimmed)
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &TransportError{Op: "update comment", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/comments/%d", c.baseURL, commentID), bytes.NewReader(data))
	if err != nil {
		return nil, &TransportError{Op: "update comment", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "update comment", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Op: "update comment", StatusCode: resp.StatusCode}
	}

	var updated models.Comment
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, &TransportError{Op: "update comment", Err: err}
	}
	return &updated, nil
}

// getJSON issues a GET for path and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path, op string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}
