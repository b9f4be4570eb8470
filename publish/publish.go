// Package publish emits catalog-change events to NATS so downstream
// documentation builders can rebuild translated output without
// polling the filesystem.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/c360studio/docloc/stats"
	"github.com/c360studio/docloc/watch"
)

// SubjectPrefix is the subject root for catalog events; the watch
// operation is appended (e.g. "catalog.update.modify").
const SubjectPrefix = "catalog.update"

// Event is the message format for catalog updates.
type Event struct {
	// EventID uniquely identifies this event.
	EventID string `json:"event_id"`

	// Path is the catalog path relative to the watch root.
	Path string `json:"path"`

	// Operation is the change type (create, modify, delete).
	Operation string `json:"operation"`

	// Language is the catalog's declared language, when known.
	Language string `json:"language,omitempty"`

	// Stats carries translation progress after the change.
	Stats *stats.Stats `json:"stats,omitempty"`

	// ParseError is set when the changed catalog failed to parse.
	ParseError string `json:"parse_error,omitempty"`

	// Timestamp is when the event was published.
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes catalog events to NATS.
type Publisher struct {
	nc *nats.Conn
}

// New creates a publisher over an existing NATS connection. A nil
// connection yields a publisher that silently drops events, so
// callers need no special casing when NATS is not configured.
func New(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

// Connect dials NATS and returns a publisher over the connection.
func Connect(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &Publisher{nc: nc}, nil
}

// Close drains the underlying connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
	}
}

// PublishChange publishes one watch event as a catalog event.
func (p *Publisher) PublishChange(ctx context.Context, ev watch.Event) error {
	if p.nc == nil {
		return nil // Skip publishing if no NATS connection (graceful degradation)
	}

	event := Event{
		EventID:   uuid.New().String(),
		Path:      ev.Path,
		Operation: string(ev.Operation),
		Timestamp: time.Now(),
	}
	if ev.Err != nil {
		event.ParseError = ev.Err.Error()
	}
	if ev.File != nil {
		st := stats.Collect(ev.File)
		event.Language = st.Language
		event.Stats = &st
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal catalog event: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", SubjectPrefix, ev.Operation)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish catalog event: %w", err)
	}
	return nil
}
