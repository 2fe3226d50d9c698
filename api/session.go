package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/arogyasathi/sathi/internal/session"
)

// SessionHandler handles session-related HTTP endpoints.
type SessionHandler struct {
	store  *session.Store
	logger *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(store *session.Store, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{store: store, logger: logger}
}

// RegisterRoutes registers session routes on the given mux.
func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", h.create)
	mux.HandleFunc("GET /api/sessions/{id}", h.get)
}

// CreateSessionResponse is the response body for creating a session.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// create mints a fresh session ID and registers an empty session.
// The same ID handed back here can be sent with /api/chat requests.
func (h *SessionHandler) create(w http.ResponseWriter, _ *http.Request) {
	if h.store == nil {
		h.logger.Error("session store is nil")
		writeError(w, http.StatusInternalServerError, "internal", "session store unavailable")
		return
	}

	id := uuid.NewString()
	if _, err := h.store.GetOrCreate(id); err != nil {
		h.logger.Error("failed to create session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, CreateSessionResponse{SessionID: id})
}

// TranscriptResponse is the response body for fetching a session transcript.
type TranscriptResponse struct {
	SessionID string         `json:"session_id"`
	Turns     []session.Turn `json:"turns"`
	Length    int            `json:"length"`
}

// get returns the transcript of an existing session.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.logger.Error("session store is nil")
		writeError(w, http.StatusInternalServerError, "internal", "session store unavailable")
		return
	}

	id := r.PathValue("id")
	sess, err := h.store.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrEmptySessionID):
			writeError(w, http.StatusBadRequest, "invalid_session_id", "session id is required")
		case errors.Is(err, session.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "session_not_found", "no session with id "+id)
		default:
			h.logger.Error("failed to fetch session", "error", err, "session_id", id)
			writeError(w, http.StatusInternalServerError, "internal", "failed to fetch session")
		}
		return
	}

	turns := sess.Turns()
	if turns == nil {
		turns = []session.Turn{}
	}
	writeJSON(w, http.StatusOK, TranscriptResponse{
		SessionID: sess.ID(),
		Turns:     turns,
		Length:    len(turns),
	})
}
