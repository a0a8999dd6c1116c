package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JastejS28/intel3/internal/domain/entities"
	"github.com/JastejS28/intel3/internal/domain/providers"
)

// SSEHandler handles Server-Sent Events for real-time queue updates, so
// kiosks in the waiting area refresh their positions without polling.
type SSEHandler struct {
	eventBus providers.EventBus
	clients  map[chan *entities.QueueEvent]bool
	mu       sync.RWMutex
}

// NewSSEHandler creates a new SSE handler.
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		clients:  make(map[chan *entities.QueueEvent]bool),
	}
}

// StreamQueueUpdates handles SSE connections for queue updates
// GET /api/stream/queue
func (h *SSEHandler) StreamQueueUpdates(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	clientChan := make(chan *entities.QueueEvent, 10)
	h.registerClient(clientChan)
	defer h.unregisterClient(clientChan)

	eventChan, err := h.eventBus.Subscribe(r.Context(), providers.EventChannelQueueUpdates)
	if err != nil {
		log.Error().Err(err).Msg("Failed to subscribe to queue updates")
		return
	}

	h.sendEvent(w, "connected", map[string]interface{}{
		"timestamp": time.Now(),
	})
	flusher.Flush()

	go h.forwardEvents(r.Context(), eventChan, clientChan)

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Msg("Client disconnected from queue stream")
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

func (h *SSEHandler) registerClient(clientChan chan *entities.QueueEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientChan] = true
}

// unregisterClient drops the client from the registry. The channel is never
// closed here: forwardEvents may still be in a send, and it exits on its own
// when the request context ends. The abandoned channel is just garbage
// collected.
func (h *SSEHandler) unregisterClient(clientChan chan *entities.QueueEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, clientChan)
}

// forwardEvents forwards bus events into the client channel until the
// connection closes.
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.QueueEvent, clientChan chan *entities.QueueEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			select {
			case clientChan <- event:
			default:
				// Slow client; drop rather than block the bus.
			}
		}
	}
}

func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, payload)
}

// ClientCount returns the number of connected SSE clients.
func (h *SSEHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
