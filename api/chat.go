package api

import (
	"log/slog"
	"net/http"

	"github.com/firebase/genkit/go/genkit"

	"github.com/arogyasathi/sathi/internal/rag"
)

// ChatHandler exposes the symptom analysis Flow over HTTP.
//
// Design: genkit.Handler wraps the Flow so the endpoint speaks Genkit's
// standard envelope ({"data": {...}} request, {"result": {...}} response)
// and stays callable from the Genkit developer UI.
type ChatHandler struct {
	chatFlow *rag.Flow
	logger   *slog.Logger
}

// NewChatHandler creates a new chat handler with the given Flow.
// The Flow should be obtained from rag.NewFlow.
func NewChatHandler(flow *rag.Flow, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chatFlow: flow, logger: logger}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	if h.chatFlow == nil {
		if h.logger != nil {
			h.logger.Warn("chat flow is nil, chat endpoint not registered")
		}
		return
	}
	mux.Handle("POST /api/chat", genkit.Handler(h.chatFlow))
}
