package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cbu-recon/payscraper/pkg/payment"
)

var ErrNotFound = errors.New("session expired or not found")

// Session holds one scrape result while the user reviews and annotates it.
type Session struct {
	ID        string           `json:"id" bson:"_id"`
	URL       string           `json:"url" bson:"url"`
	Records   []payment.Record `json:"records" bson:"records"`
	Columns   []string         `json:"columns" bson:"columns"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time        `json:"expires_at" bson:"expires_at"`
}

// Store keeps sessions until they expire. Every Save sets a new expiry.
type Store interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Sweeper is implemented by stores that need expired entries removed
// explicitly.
type Sweeper interface {
	Sweep(now time.Time) int
}

// New creates a session for freshly scraped records.
func New(url string, records []payment.Record) *Session {
	var columns []string
	if len(records) > 0 {
		columns = records[0].Columns()
	}
	return &Session{
		ID:        uuid.New().String(),
		URL:       url,
		Records:   records,
		Columns:   columns,
		CreatedAt: time.Now(),
	}
}

func (s *Session) clone() *Session {
	cp := *s
	cp.Records = make([]payment.Record, len(s.Records))
	for i, r := range s.Records {
		cp.Records[i] = r.Clone()
	}
	cp.Columns = append([]string(nil), s.Columns...)
	return &cp
}
