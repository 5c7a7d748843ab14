package storage

import (
	"context"
	"time"

	"github.com/landaireal/landai-rent/internal/adapters/observability"
	"github.com/landaireal/landai-rent/internal/domain"
)

type instrumented struct {
	backend string
	next    domain.Storage
}

// Instrument records count and latency of every storage call.
func Instrument(backend string, next domain.Storage) domain.Storage {
	return &instrumented{backend: backend, next: next}
}

func (s *instrumented) GetProperties(ctx context.Context) ([]domain.Property, error) {
	start := time.Now()
	out, err := s.next.GetProperties(ctx)
	observability.ObserveStorage(s.backend, "get_properties", err, time.Since(start))
	return out, err
}

func (s *instrumented) GetProperty(ctx context.Context, id int64) (domain.Property, bool, error) {
	start := time.Now()
	p, ok, err := s.next.GetProperty(ctx, id)
	observability.ObserveStorage(s.backend, "get_property", err, time.Since(start))
	return p, ok, err
}

func (s *instrumented) CreateProperty(ctx context.Context, in domain.PropertyInput) (domain.Property, error) {
	start := time.Now()
	p, err := s.next.CreateProperty(ctx, in)
	observability.ObserveStorage(s.backend, "create_property", err, time.Since(start))
	return p, err
}

func (s *instrumented) CreateInquiry(ctx context.Context, in domain.InquiryInput) (domain.Inquiry, error) {
	start := time.Now()
	q, err := s.next.CreateInquiry(ctx, in)
	observability.ObserveStorage(s.backend, "create_inquiry", err, time.Since(start))
	return q, err
}
