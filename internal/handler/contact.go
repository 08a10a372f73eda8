package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ankit/blogd/internal/apperror"
	"github.com/ankit/blogd/internal/mail"
	"github.com/ankit/blogd/internal/model"
)

// ContactHandler accepts contact-form submissions and hands them to the
// mail boundary. Nothing is persisted; a delivery failure surfaces as a
// generic error, never the raw SMTP fault.
type ContactHandler struct {
	sender mail.Sender
	logger *slog.Logger
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(sender mail.Sender, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{sender: sender, logger: logger}
}

// HandleContact sends one contact message to the blog owner.
//
// HTTP: POST /contact
// Auth: none — anyone may write in.
func (h *ContactHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	var msg model.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(msg.Name) == "" {
		writeError(w, apperror.ValidationFailed("name", "name is required"))
		return
	}
	if strings.TrimSpace(msg.Email) == "" {
		writeError(w, apperror.ValidationFailed("email", "email is required"))
		return
	}
	if strings.TrimSpace(msg.Message) == "" {
		writeError(w, apperror.ValidationFailed("message", "message is required"))
		return
	}

	if err := h.sender.SendContactMessage(r.Context(), msg); err != nil {
		h.logger.Error("contact message delivery failed", slog.String("error", err.Error()))
		writeError(w, err) // unknown kind → generic 500
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"msgSent": true})
}
