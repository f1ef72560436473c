package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/mmuslimabdulj/likechat/internal/config"
	"github.com/mmuslimabdulj/likechat/internal/delivery/ws"
	"github.com/mmuslimabdulj/likechat/internal/domain"
	"github.com/mmuslimabdulj/likechat/internal/usecase"
)

// Handler serves the websocket gateway and the REST API
type Handler struct {
	hub      *ws.Hub
	admin    *usecase.AdminAuth
	upgrader websocket.Upgrader
}

// NewHandler creates a Handler. Origins are checked against cfg.
func NewHandler(hub *ws.Hub, admin *usecase.AdminAuth, cfg *config.Config) *Handler {
	return &Handler{
		hub:   hub,
		admin: admin,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return cfg.IsOriginAllowed(r.Header.Get("Origin"))
			},
		},
	}
}

// Router wires every route onto a gorilla/mux router
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", h.HandleWebSocket).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HandleHealth).Methods(http.MethodGet)

	// Registered on the root router so a method mismatch answers 405
	r.HandleFunc("/api/messages", h.HandleMessages).Methods(http.MethodGet)
	r.HandleFunc("/api/messages/{id}", h.HandleDeleteMessage).Methods(http.MethodDelete)
	r.HandleFunc("/api/users", h.HandleUsers).Methods(http.MethodGet)
	return r
}

// HandleWebSocket upgrades HTTP to WebSocket and attaches a new client
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// HandleMessages returns the most recent public messages. An optional
// limit query parameter can only lower the default.
func (h *Handler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	msgs, err := h.hub.RecentMessages(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Chat unavailable")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// HandleUsers returns the identities currently online
func (h *Handler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.hub.Users(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Chat unavailable")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleDeleteMessage removes a public message when the admin secret matches
func (h *Handler) HandleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		AdminPassword string `json:"adminPassword"`
	}
	// A missing or malformed body leaves the secret empty and fails below
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req)

	if err := h.admin.Verify(req.AdminPassword); err != nil {
		log.Printf("[http] Rejected admin delete from %s", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	err := h.hub.RemoveMessage(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Message not found")
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, "Chat unavailable")
	default:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// HandleHealth reports liveness with connection and user counts
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	users, err := h.hub.Users(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "stopping"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"connections": h.hub.ClientCount(),
		"users":       len(users),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
