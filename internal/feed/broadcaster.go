// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/taibuivan/yomira-kids/internal/core/book"
	"github.com/taibuivan/yomira-kids/internal/platform/apperr"
	"github.com/taibuivan/yomira-kids/internal/platform/constants"
	"github.com/taibuivan/yomira-kids/internal/platform/respond"
	"github.com/taibuivan/yomira-kids/pkg/uuid"
)

// EventConnected is the first event written to every new stream.
const EventConnected = "connected"

var errStreamingUnsupported = errors.New("feed: response writer does not support flushing")

// Event is a single Server-Sent Event.
type Event struct {
	Event string // Event name (optional)
	ID    string // Event ID (optional)
	Data  any    // JSON-encoded into the data line
}

// # Broadcaster

// Broadcaster fans favorite changes out to every connected SSE client.
//
// Run must be running for clients to connect; a client whose queue is full
// misses events rather than slowing the others down.
type Broadcaster struct {
	clients    map[chan Event]struct{}
	register   chan chan Event
	unregister chan chan Event
	events     chan Event
	done       chan struct{}
	mu         sync.RWMutex
	logger     *slog.Logger
	keepAlive  time.Duration
}

// NewBroadcaster creates a broadcaster. Call Run in its own goroutine.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		clients:    make(map[chan Event]struct{}),
		register:   make(chan chan Event),
		unregister: make(chan chan Event),
		events:     make(chan Event, constants.FeedEventBuffer),
		done:       make(chan struct{}),
		logger:     logger,
		keepAlive:  constants.FeedKeepAliveInterval,
	}
}

// Run is the broadcaster's event loop. It returns when ctx is cancelled,
// after which every open stream ends.
func (b *Broadcaster) Run(ctx context.Context) {
	defer close(b.done)

	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			b.clients = make(map[chan Event]struct{})
			b.mu.Unlock()
			b.logger.Info("feed_broadcaster_stopped")
			return

		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = struct{}{}
			total := len(b.clients)
			b.mu.Unlock()
			b.logger.Debug("feed_client_connected", slog.Int("total_clients", total))

		case client := <-b.unregister:
			b.mu.Lock()
			delete(b.clients, client)
			total := len(b.clients)
			b.mu.Unlock()
			b.logger.Debug("feed_client_disconnected", slog.Int("total_clients", total))

		case event := <-b.events:
			b.mu.RLock()
			for client := range b.clients {
				select {
				case client <- event:
				default:
					b.logger.Warn("feed_client_buffer_full", slog.String("event", event.Event))
				}
			}
			b.mu.RUnlock()
		}
	}
}

// Notify is a [book.Listener]. It never blocks the store.
func (b *Broadcaster) Notify(change book.Change) {
	b.Broadcast(Event{
		Event: string(change.Type),
		ID:    uuid.New(),
		Data:  NewMessage(change),
	})
}

// Broadcast queues event for every connected client.
func (b *Broadcaster) Broadcast(event Event) {
	select {
	case b.events <- event:
	default:
		b.logger.Warn("feed_event_dropped", slog.String("event", event.Event))
	}
}

// ClientCount returns the number of connected SSE clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// # SSE Endpoint

/*
ServeHTTP streams favorite changes as Server-Sent Events.

Response:
  - 200: text/event-stream; first event is "connected", then "favorited"/"unfavorited"
  - 500: the response writer cannot stream
  - 503: the broadcaster is not running
*/
func (b *Broadcaster) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	flusher, ok := writer.(http.Flusher)
	if !ok {
		respond.Error(writer, request, apperr.Internal(errStreamingUnsupported))
		return
	}

	client := make(chan Event, constants.FeedClientBuffer)

	select {
	case b.register <- client:
	case <-b.done:
		respond.Error(writer, request, apperr.ServiceUnavailable("Change feed unavailable"))
		return
	case <-request.Context().Done():
		return
	}

	defer func() {
		select {
		case b.unregister <- client:
		case <-b.done:
		}
	}()

	header := writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	writer.WriteHeader(http.StatusOK)

	b.writeEvent(writer, flusher, Event{
		Event: EventConnected,
		Data:  map[string]any{"timestamp": time.Now().UTC()},
	})

	ticker := time.NewTicker(b.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case event := <-client:
			b.writeEvent(writer, flusher, event)

		case <-ticker.C:
			_, _ = fmt.Fprint(writer, ": keep-alive\n\n")
			flusher.Flush()

		case <-request.Context().Done():
			return

		case <-b.done:
			return
		}
	}
}

// writeEvent writes an SSE event to the response writer.
func (b *Broadcaster) writeEvent(writer http.ResponseWriter, flusher http.Flusher, event Event) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		b.logger.Error("feed_event_marshal_failed", slog.Any("error", err))
		return
	}

	if event.Event != "" {
		_, _ = fmt.Fprintf(writer, "event: %s\n", event.Event)
	}
	if event.ID != "" {
		_, _ = fmt.Fprintf(writer, "id: %s\n", event.ID)
	}
	_, _ = fmt.Fprintf(writer, "data: %s\n\n", data)

	flusher.Flush()
}
