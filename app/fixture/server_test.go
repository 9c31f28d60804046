package fixture

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postify/app/models"
)

func TestFixtureRoutes(t *testing.T) {
	router := NewServer().Router()

	t.Run("list posts", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var posts []models.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
		assert.Len(t, posts, len(SeedPosts()))
	})

	t.Run("comments for unknown post are an empty collection", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/42/comments", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("unknown comment is 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comments/99999", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("put echoes without persisting", func(t *testing.T) {
		payload, err := json.Marshal(models.Comment{
			ID: 101, PostID: 1, Name: "John Doe", Email: "john.doe@example.com", Body: "edited",
		})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/comments/101", bytes.NewReader(payload)))
		assert.Equal(t, http.StatusOK, rec.Code)

		var echoed models.Comment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &echoed))
		assert.Equal(t, "edited", echoed.Body)

		// The stored copy is unchanged.
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comments/101", nil))
		var stored models.Comment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
		assert.NotEqual(t, "edited", stored.Body)
	})

	t.Run("put to unknown comment is 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/comments/99999", bytes.NewReader([]byte(`{}`))))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
