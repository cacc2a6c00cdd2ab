package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/medisense/backend/internal/domain/entities"
	"github.com/medisense/backend/internal/domain/providers"
	"github.com/medisense/backend/internal/infrastructure/observability"
)

const (
	// heartbeatInterval keeps idle proxies from closing the stream
	heartbeatInterval = 30 * time.Second

	// reconnectDelayMs is the retry hint sent to EventSource clients
	reconnectDelayMs = 3000
)

// SSEHandler streams booking ledger changes to the admin dashboard
type SSEHandler struct {
	eventBus  providers.EventBus
	clients   atomic.Int64
	heartbeat time.Duration
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus:  eventBus,
		heartbeat: heartbeatInterval,
	}
}

// eventStream writes Server-Sent Events frames and flushes after each one
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (s eventStream) send(id, name string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var b strings.Builder
	if id != "" {
		fmt.Fprintf(&b, "id: %s\n", id)
	}
	fmt.Fprintf(&b, "event: %s\ndata: %s\n\n", name, data)
	if _, err := s.w.Write([]byte(b.String())); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s eventStream) comment(text string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", text); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// StreamBookings handles GET /api/admin/stream[?provider=name][&type=booking_created]
// Without a provider every ledger change is streamed; type narrows the
// stream to one kind of change.
func (h *SSEHandler) StreamBookings(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	ctx := r.Context()
	logger := observability.LoggerFromContext(ctx)

	channel := providers.EventChannelBookings
	if provider := strings.TrimSpace(r.URL.Query().Get("provider")); provider != "" {
		channel = providers.GetProviderChannel(provider)
	}
	only := entities.BookingEventType(r.URL.Query().Get("type"))

	events, err := h.eventBus.Subscribe(ctx, channel)
	if err != nil {
		logger.Error().Err(err).Str("channel", channel).Msg("Failed to subscribe to booking events")
		respondWithError(w, http.StatusServiceUnavailable, "event stream unavailable")
		return
	}

	h.clients.Add(1)
	defer h.clients.Add(-1)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	stream := eventStream{w: w, flusher: flusher}
	fmt.Fprintf(w, "retry: %d\n\n", reconnectDelayMs)
	if err := stream.send("", "connected", map[string]interface{}{
		"channel":   channel,
		"timestamp": time.Now(),
	}); err != nil {
		return
	}
	logger.Debug().Str("channel", channel).Msg("Admin stream opened")

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Str("channel", channel).Msg("Admin stream closed")
			return
		case <-ticker.C:
			if err := stream.comment("heartbeat"); err != nil {
				return
			}
		case event, ok := <-events:
			if !ok {
				return
			}
			if event == nil || (only != "" && event.Type != only) {
				continue
			}
			if err := stream.send(event.ID, string(event.Type), event); err != nil {
				logger.Warn().Err(err).Str("event_id", event.ID).Msg("Failed to write booking event")
				return
			}
		}
	}
}

// GetClientCount returns the number of open admin streams
func (h *SSEHandler) GetClientCount() int {
	return int(h.clients.Load())
}
