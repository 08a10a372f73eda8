package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ankit/blogd/internal/auth"
	"github.com/ankit/blogd/internal/service"
)

// CommentHandler manages comment creation and deletion.
type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// HandleCreate adds a comment to a post.
//
// HTTP: POST /comment?post_id=
// Auth: required — an anonymous visitor gets a 401 telling them to log in
// before the comment is even parsed.
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	postID := r.URL.Query().Get("post_id")

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	comment, err := h.comments.Create(r.Context(), userID, postID, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// HandleDelete removes a comment.
//
// HTTP: GET /delete-comment?comment_id=&post_id=
//
// Historically this route's login check was wired so that it never actually
// ran before the route logic. Here it sits behind RequireAuth and the same
// author guard as post mutation — the deliberate, conservative reading of
// the old behavior.
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	commentID := r.URL.Query().Get("comment_id")

	if err := h.comments.Delete(r.Context(), userID, commentID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
