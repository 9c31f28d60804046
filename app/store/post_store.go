package store

import (
	"context"
	"sync"

	"postify/app/api"
	"postify/app/models"
)

// Phase is the load state of a per-post comment entry. The zero value is
// NotLoaded: a post id that was never fetched, which is distinct from a
// post whose fetch returned an empty collection.
type Phase int

const (
	NotLoaded Phase = iota
	Loading
	Loaded
	Failed
)

// CommentState is a snapshot of one post's comment entry. On Failed,
// Comments retains whatever an earlier successful load produced.
type CommentState struct {
	Phase    Phase
	Comments []models.Comment
	Err      string
}

// NeedsLoad reports whether a call-site guard should fetch this entry:
// it was never fetched, or the last fetch failed and a retry is wanted.
// Loading and Loaded entries are left alone.
func (s CommentState) NeedsLoad() bool {
	return s.Phase == NotLoaded || s.Phase == Failed
}

// entry is the store-internal comment state for one post id. gen guards
// against out-of-order completions: a fetch result is applied only if no
// newer load has started for the same key in the meantime.
type entry struct {
	phase    Phase
	comments []models.Comment
	err      string
	gen      uint64
}

// Store is the single source of truth for fetched content. All mutation
// goes through its operations; it holds posts, per-post comment entries
// and their loading/error state under one mutex.
type Store struct {
	mu  sync.Mutex
	api api.PostAPI

	posts        []models.Post
	postsLoading bool
	postsError   string

	comments map[int]*entry
}

// NewStore creates a Store backed by the given remote API.
func NewStore(remote api.PostAPI) *Store {
	return &Store{
		api:      remote,
		comments: make(map[int]*entry),
	}
}

// LoadPosts fetches the full post collection and replaces the cached
// sequence wholesale on success, preserving API response order. On
// failure the previous posts are kept and the global error is set.
// There is no automatic retry; callers re-invoke.
func (s *Store) LoadPosts(ctx context.Context) error {
	s.mu.Lock()
	s.postsLoading = true
	s.postsError = ""
	s.mu.Unlock()

	posts, err := s.api.FetchPosts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.postsLoading = false
	if err != nil {
		s.postsError = err.Error()
		return err
	}
	s.posts = posts
	return nil
}

// LoadComments fetches the comments for postID. The entry is marked
// Loading and its error cleared before the fetch; on success the comment
// sequence (possibly empty) replaces the entry, on failure the error is
// recorded and previously cached comments are left untouched. A
// completion that lost to a newer load for the same key is discarded.
func (s *Store) LoadComments(ctx context.Context, postID int) error {
	s.mu.Lock()
	e, ok := s.comments[postID]
	if !ok {
		e = &entry{}
		s.comments[postID] = e
	}
	e.phase = Loading
	e.err = ""
	e.gen++
	gen := e.gen
	s.mu.Unlock()

	comments, err := s.api.FetchCommentsByPostID(ctx, postID)

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok = s.comments[postID]
	if !ok || e.gen != gen {
		// A newer load owns this key now, or the store was reset.
		return nil
	}
	if err != nil {
		e.phase = Failed
		e.err = err.Error()
		return err
	}
	e.phase = Loaded
	e.comments = comments
	e.err = ""
	return nil
}

// UpdateComment pushes a new body for a comment to the remote API and,
// on success, patches the cached entry for postID in place by id match,
// replacing only the body. The cache is deliberately not refetched: the
// remote fixture does not persist writes, so a refetch would revert the
// edit. On failure the cache is untouched and the error is returned to
// the caller rather than stored in the entry's error slot.
func (s *Store) UpdateComment(ctx context.Context, commentID int, body string, postID int) (*models.Comment, error) {
	updated, err := s.api.UpdateComment(ctx, commentID, body)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.comments[postID]; ok {
		for i := range e.comments {
			if e.comments[i].ID == commentID {
				e.comments[i].Body = updated.Body
				break
			}
		}
	}
	return updated, nil
}

// Posts returns a copy of the cached post sequence.
func (s *Store) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.posts == nil {
		return nil
	}
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// PostsLoading reports whether a post fetch is in flight.
func (s *Store) PostsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.postsLoading
}

// PostsError returns the global post-fetch error message, empty when the
// last load succeeded or none ran yet.
func (s *Store) PostsError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.postsError
}

// Comments returns a snapshot of the comment entry for postID. A post id
// that was never fetched yields a NotLoaded state with nil Comments.
func (s *Store) Comments(postID int) CommentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.comments[postID]
	if !ok {
		return CommentState{Phase: NotLoaded}
	}
	state := CommentState{Phase: e.phase, Err: e.err}
	if e.comments != nil {
		state.Comments = make([]models.Comment, len(e.comments))
		copy(state.Comments, e.comments)
	}
	return state
}

// Reset clears all state back to initial empty values.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = nil
	s.postsLoading = false
	s.postsError = ""
	s.comments = make(map[int]*entry)
}
