package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/warungio/stockpilot/internal/assistant"
	userhttp "github.com/warungio/stockpilot/internal/user/delivery/http"
)

// maxPromptLength bounds one chat message.
const maxPromptLength = 4000

// ChatHandler handles HTTP requests for the assistant
type ChatHandler struct {
	agent *assistant.Agent
}

// NewChatHandler creates a new chat handler
func NewChatHandler(agent *assistant.Agent) *ChatHandler {
	return &ChatHandler{agent: agent}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		h.respondError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if len(req.Message) > maxPromptLength {
		h.respondError(w, http.StatusBadRequest, "Message is too long")
		return
	}

	reply := h.agent.Chat(r.Context(), userID, req.Message)

	h.respondJSON(w, http.StatusOK, map[string]string{"response": reply})
}

func (h *ChatHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *ChatHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the chat route behind authentication plus
// any extra middleware (rate limiting) supplied by the server.
func (h *ChatHandler) RegisterRoutes(router *mux.Router, extra ...func(http.HandlerFunc) http.HandlerFunc) {
	handler := userhttp.AuthMiddleware(h.Chat)
	for _, mw := range extra {
		handler = mw(handler)
	}
	router.HandleFunc("/api/chat", handler).Methods("POST")
}
