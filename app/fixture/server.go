package fixture

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"postify/app/models"
)

// Server emulates the remote post API surface locally: GET /posts,
// GET /posts/{id}/comments, GET /comments/{id} and PUT /comments/{id}.
// Like the public fixture it echoes PUT bodies without persisting them.
type Server struct {
	posts    []models.Post
	comments map[int][]models.Comment
}

// NewServer creates a Server with the default seed data.
func NewServer() *Server {
	return &Server{
		posts:    SeedPosts(),
		comments: SeedComments(),
	}
}

// Router builds the fixture's route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(Logger, Recoverer)
	r.HandleFunc("/posts", s.listPosts).Methods(http.MethodGet)
	r.HandleFunc("/posts/{postId:[0-9]+}/comments", s.listComments).Methods(http.MethodGet)
	r.HandleFunc("/comments/{id:[0-9]+}", s.getComment).Methods(http.MethodGet)
	r.HandleFunc("/comments/{id:[0-9]+}", s.updateComment).Methods(http.MethodPut)
	return r
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, s.posts)
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["postId"])
	if err != nil {
		s.sendError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	comments := s.comments[postID]
	if comments == nil {
		// The real fixture serves an empty collection for unknown posts.
		comments = []models.Comment{}
	}
	s.sendJSON(w, comments)
}

func (s *Server) getComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		s.sendError(w, "invalid comment id", http.StatusBadRequest)
		return
	}

	if comment, ok := s.findComment(id); ok {
		s.sendJSON(w, comment)
		return
	}
	s.sendError(w, "comment not found", http.StatusNotFound)
}

// updateComment echoes the submitted comment without persisting it,
// matching the public fixture's behaviour.
func (s *Server) updateComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		s.sendError(w, "invalid comment id", http.StatusBadRequest)
		return
	}

	if _, ok := s.findComment(id); !ok {
		s.sendError(w, "comment not found", http.StatusNotFound)
		return
	}

	var comment models.Comment
	if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
		s.sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	comment.ID = id

	s.sendJSON(w, comment)
}

func (s *Server) findComment(id int) (models.Comment, bool) {
	for _, comments := range s.comments {
		for _, c := range comments {
			if c.ID == id {
				return c, true
			}
		}
	}
	return models.Comment{}, false
}

func (s *Server) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (s *Server) sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
