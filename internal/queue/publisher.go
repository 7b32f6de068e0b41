package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ScrapeCompleted announces a scrape that produced records.
type ScrapeCompleted struct {
	SessionID    string    `json:"session_id"`
	URL          string    `json:"url"`
	FinalURL     string    `json:"final_url"`
	TotalRecords int       `json:"total_records"`
	Blocked      bool      `json:"blocked,omitempty"`
	ScrapedAt    time.Time `json:"scraped_at"`
}

// JetStreamPublisher is the part of jetstream.JetStream the publisher uses.
type JetStreamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}

type Publisher struct {
	js JetStreamPublisher
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{js: jsAdapter{client}}
}

func NewPublisherWith(js JetStreamPublisher) *Publisher {
	return &Publisher{js: js}
}

func (p *Publisher) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := p.js.Publish(ctx, subject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	return nil
}

func (p *Publisher) PublishScrapeCompleted(ctx context.Context, event ScrapeCompleted) error {
	return p.Publish(ctx, SubjectScrapeCompleted, event)
}

type jsAdapter struct {
	client *Client
}

func (a jsAdapter) Publish(ctx context.Context, subject string, payload []byte) error {
	_, err := a.client.js.Publish(ctx, subject, payload)
	return err
}
