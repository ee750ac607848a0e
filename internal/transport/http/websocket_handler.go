package http

import (
	"log/slog"
	"net/http"

	gws "github.com/gorilla/websocket"

	"assetgauge/internal/infrastructure"
	ws "assetgauge/internal/websocket"
)

// WebSocketHandler upgrades connections and hands them to the hub. Clients
// receive a dataset:replaced event whenever an upload lands, so open
// dashboards can refresh their views.
type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader gws.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler creates a new websocket handler.
func NewWebSocketHandler(hub *ws.Hub, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		upgrader: ws.Upgrader(allowedOrigins),
		logger:   infrastructure.WithComponent(logger, "websocket_handler"),
	}
}

// ServeHTTP handles GET /ws.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote its own response; log and move on.
		infrastructure.WithError(h.logger, err).WarnContext(r.Context(), "websocket upgrade failed",
			slog.String("remote_addr", r.RemoteAddr),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, h.logger)
	client.Start()
}
