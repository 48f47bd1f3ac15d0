package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
)

// Event is a lifecycle event emitted after a successful mutation, e.g.
// projects.created or members.added.
type Event struct {
	ID        string          `json:"id"`
	Subject   string          `json:"subject"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Publisher publishes lifecycle events to JetStream.
type Publisher struct {
	js jetstream.JetStream
}

// NewPublisher creates a new Publisher.
func NewPublisher(js jetstream.JetStream) *Publisher {
	return &Publisher{js: js}
}

// Publish sends one event. Callers treat this as best-effort: a failed
// publish is logged by the caller and never rolls back the mutation.
func (p *Publisher) Publish(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	evt := Event{
		ID:        uuid.NewString(),
		Subject:   subject,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ack, err := p.js.Publish(ctx, subject, body,
		jetstream.WithMsgID(evt.ID), // Deduplication
	)
	if err != nil {
		return fmt.Errorf("publish to JetStream: %w", err)
	}

	slog.Debug("event published",
		"event_id", evt.ID,
		"subject", subject,
		"stream", ack.Stream,
		"seq", ack.Sequence,
	)
	return nil
}
