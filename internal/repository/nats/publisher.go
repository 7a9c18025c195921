package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

type conn interface {
	Publish(subj string, data []byte) error
}

// Publisher encodes messages as JSON and publishes them on core NATS.
type Publisher struct {
	conn conn
}

func NewPublisher(nc *nats.Conn) (*Publisher, error) {
	if nc == nil {
		return nil, errors.New("NATS connection cannot be nil")
	}
	return &Publisher{conn: nc}, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, message any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message for subject %s: %w", subject, err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to NATS subject %s: %w", subject, err)
	}
	return nil
}
