package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ankit/blogd/internal/auth"
	"github.com/ankit/blogd/internal/model"
	"github.com/ankit/blogd/internal/service"
)

// PostHandler manages post reads and author-gated mutations.
//
// ROUTE SHAPES:
// The mutation routes keep their historical shapes — /edit-post takes the
// post id as a ?post_id= query parameter while /delete-post takes it as a
// path segment. The handler only parses HTTP; the guard decision itself
// lives in the service layer.
type PostHandler struct {
	posts    *service.PostService
	comments *service.CommentService
	logger   *slog.Logger
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(posts *service.PostService, comments *service.CommentService, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, comments: comments, logger: logger}
}

type postRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Link     string `json:"link"`
	Body     string `json:"body"`
	ImgURL   string `json:"imgUrl"`
}

// postWithComments is the full-post response: the rendering layer gets the
// post plus its comment thread in one bag.
type postWithComments struct {
	model.Post
	Comments []model.Comment `json:"comments"`
}

// HandleList returns all posts, newest first.
//
// HTTP: GET /posts?limit=&offset=
// Auth: none — anyone can read.
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	posts, err := h.posts.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// HandleGet returns a single post with its comments.
//
// HTTP: GET /posts/{id}
// Auth: none.
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	comments, err := h.comments.ListByPost(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postWithComments{Post: *post, Comments: comments})
}

// HandleCreate publishes a new post authored by the current user.
//
// HTTP: POST /new-post
// Auth: required (any authenticated user — this is how one becomes an
// author).
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	post, err := h.posts.Create(r.Context(), userID, req.Title, req.Subtitle, req.Link, req.Body, req.ImgURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// HandleEdit updates an existing post.
//
// HTTP: POST /edit-post?post_id=
// Auth: author guard — a 403 here is a hard denial, not a retryable fault.
func (h *PostHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	postID := r.URL.Query().Get("post_id")

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	post, err := h.posts.Update(r.Context(), userID, postID, req.Title, req.Subtitle, req.Link, req.Body, req.ImgURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// HandleDelete removes a post (and, via the store, its comments).
//
// HTTP: POST /delete-post/{id}
// Auth: author guard.
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Post ID is required", http.StatusBadRequest)
		return
	}

	if err := h.posts.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
