package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
	"golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// WSMessage is the envelope for every message pushed to clients.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WebSocketHandler broadcasts analysis lifecycle events to connected UI
// clients. Writes to a connection are serialized through a per-connection
// mutex because gorilla/websocket allows only one concurrent writer.
type WebSocketHandler struct {
	logger           arbor.ILogger
	clients          map[*websocket.Conn]bool
	clientMutex      map[*websocket.Conn]*sync.Mutex
	mu               sync.RWMutex
	eventService     interfaces.EventService
	allowedEvents    map[string]bool // Whitelist of events to broadcast (empty = allow all)
	reportThrottler  *rate.Limiter   // Rate limiter for report_created events
	serverInstanceID string          // Unique ID generated on startup - clients use to detect server restart
}

func NewWebSocketHandler(eventService interfaces.EventService, logger arbor.ILogger, config *common.WebSocketConfig) *WebSocketHandler {
	h := &WebSocketHandler{
		logger:           logger,
		clients:          make(map[*websocket.Conn]bool),
		clientMutex:      make(map[*websocket.Conn]*sync.Mutex),
		eventService:     eventService,
		serverInstanceID: uuid.New().String(),
	}

	// Empty whitelist means allow all events
	h.allowedEvents = make(map[string]bool)
	if config != nil && len(config.AllowedEvents) > 0 {
		for _, eventType := range config.AllowedEvents {
			h.allowedEvents[eventType] = true
		}
		logger.Debug().
			Int("allowed_events", len(h.allowedEvents)).
			Msg("Initialized event whitelist for WebSocketHandler")
	}

	// A seven-type run emits report_created in quick succession; the
	// throttler keeps the UI from redrawing on every single one.
	if config != nil && len(config.ThrottleIntervals) > 0 {
		if intervalStr, ok := config.ThrottleIntervals["report_created"]; ok {
			if duration, err := time.ParseDuration(intervalStr); err == nil {
				h.reportThrottler = rate.NewLimiter(rate.Every(duration), 1)
				logger.Debug().
					Str("event_type", "report_created").
					Str("interval", intervalStr).
					Msg("Throttler initialized for report_created events")
			} else {
				logger.Warn().
					Err(err).
					Str("interval", intervalStr).
					Msg("Failed to parse report_created throttle interval - throttler disabled")
			}
		}
	}

	if eventService != nil {
		h.SubscribeToAnalysisEvents()
	}

	return h
}

// HandleWebSocket handles WebSocket connections
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.clientMutex[conn] = &sync.Mutex{}
	clientCount := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug().Msgf("WebSocket client connected (total: %d)", clientCount)

	h.sendStatus(conn)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		delete(h.clientMutex, conn)
		remaining := len(h.clients)
		h.mu.Unlock()

		conn.Close()
		h.logger.Debug().Msgf("WebSocket client disconnected (remaining: %d)", remaining)
	}()

	// Read messages from client (keep connection alive)
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn().Err(err).Msg("WebSocket error")
			}
			break
		}
	}
}

// sendStatus sends the initial status message to a newly connected client.
func (h *WebSocketHandler) sendStatus(conn *websocket.Conn) {
	msg := WSMessage{
		Type: "status",
		Payload: map[string]interface{}{
			"service":            "ONLINE",
			"server_instance_id": h.serverInstanceID,
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal initial status")
		return
	}

	h.mu.RLock()
	mutex := h.clientMutex[conn]
	h.mu.RUnlock()

	if mutex != nil {
		mutex.Lock()
		err := conn.WriteMessage(websocket.TextMessage, data)
		mutex.Unlock()

		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to send initial status")
		}
	}
}

// Broadcast sends a message to all connected clients.
func (h *WebSocketHandler) Broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Str("type", msg.Type).Msg("Failed to marshal WebSocket message")
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	mutexes := make([]*sync.Mutex, 0, len(h.clients))
	for conn := range h.clients {
		clients = append(clients, conn)
		mutexes = append(mutexes, h.clientMutex[conn])
	}
	h.mu.RUnlock()

	for i, conn := range clients {
		mutex := mutexes[i]
		mutex.Lock()
		err := conn.WriteMessage(websocket.TextMessage, data)
		mutex.Unlock()

		if err != nil {
			h.logger.Warn().Err(err).Str("type", msg.Type).Msg("Failed to send message to client")
		}
	}
}

// allowEvent applies the whitelist and per-type throttling.
func (h *WebSocketHandler) allowEvent(eventType string) bool {
	if len(h.allowedEvents) > 0 && !h.allowedEvents[eventType] {
		return false
	}
	if eventType == string(interfaces.EventReportCreated) &&
		h.reportThrottler != nil && !h.reportThrottler.Allow() {
		return false
	}
	return true
}

// SubscribeToAnalysisEvents wires the analysis lifecycle events through to
// connected clients. Terminal events are never throttled; a client must
// always see completion.
func (h *WebSocketHandler) SubscribeToAnalysisEvents() {
	if h.eventService == nil {
		return
	}

	eventTypes := []interfaces.EventType{
		interfaces.EventRequestCreated,
		interfaces.EventRequestProcessing,
		interfaces.EventReportCreated,
		interfaces.EventRequestCompleted,
		interfaces.EventRequestFailed,
	}

	for _, eventType := range eventTypes {
		eventType := eventType
		h.eventService.Subscribe(eventType, func(ctx context.Context, event interfaces.Event) error {
			if !h.allowEvent(string(eventType)) {
				return nil
			}

			h.Broadcast(WSMessage{
				Type:    string(eventType),
				Payload: event.Payload,
			})
			return nil
		})
	}
}
