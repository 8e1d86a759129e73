package handlers

import (
	"context"
	"net/http"

	"peerchat/internal/auth"
	"peerchat/internal/config"
	"peerchat/internal/models"
	"peerchat/internal/services"
	ws "peerchat/internal/websocket"
	"peerchat/pkg/logger"

	"github.com/gorilla/websocket"
)

type WebSocketHandlers struct {
	authService   *auth.Service
	registry      *ws.Registry
	adminRegistry *ws.Registry
	presence      *services.PresenceService
	router        *services.EventRouter
	sendBuffer    int
	upgrader      websocket.Upgrader
}

func NewWebSocketHandlers(authService *auth.Service, registry, adminRegistry *ws.Registry, presence *services.PresenceService, router *services.EventRouter, cfg config.WebSocketConfig) *WebSocketHandlers {
	return &WebSocketHandlers{
		authService:   authService,
		registry:      registry,
		adminRegistry: adminRegistry,
		presence:      presence,
		router:        router,
		sendBuffer:    cfg.SendBuffer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // Configure for production
		},
	}
}

// HandleWebSocket is the user-facing connect path: verify identity, register
// the connection, announce presence, then pump frames into the router.
func (h *WebSocketHandlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.verify(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Upgrade error: %v", err)
		return
	}

	client := ws.NewClient(conn, claims.UserID, h.sendBuffer)
	h.registry.Register(claims.UserID, client)

	go client.WritePump()
	h.presence.UserConnected(r.Context(), claims.UserID)

	go client.ReadPump(
		func(frame []byte) {
			h.router.Dispatch(claims.UserID, frame)
		},
		func() {
			// Only the connection still owning the registry entry
			// announces the offline transition; a replaced
			// connection's late close is a no-op. An evicted
			// connection was already removed, so it claims the
			// transition through its closed send channel instead.
			removed := h.registry.Unregister(claims.UserID, client)
			if removed || client.Closed() {
				h.presence.UserDisconnected(context.Background(), claims.UserID)
			}
		},
	)
}

// HandleAdminWebSocket admits privileged observers only. Admin connections
// receive synthesized operational events and nothing user-directed; inbound
// frames on this channel are ignored.
func (h *WebSocketHandlers) HandleAdminWebSocket(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.verify(w, r)
	if !ok {
		return
	}
	if claims.Role != models.RoleAdmin {
		http.Error(w, "admin role required", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Upgrade error: %v", err)
		return
	}

	client := ws.NewClient(conn, claims.UserID, h.sendBuffer)
	h.adminRegistry.Register(claims.UserID, client)
	logger.Info("Admin %d connected", claims.UserID)

	go client.WritePump()
	go client.ReadPump(
		func(frame []byte) {},
		func() {
			h.adminRegistry.Unregister(claims.UserID, client)
			logger.Info("Admin %d disconnected", claims.UserID)
		},
	)
}

func (h *WebSocketHandlers) verify(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return nil, false
	}

	claims, err := h.authService.VerifyToken(tokenStr)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return nil, false
	}

	return claims, true
}
