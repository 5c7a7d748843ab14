// Package memory is the process-local storage backend used when no database
// is configured. Nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/landaireal/landai-rent/internal/domain"
)

type Store struct {
	mu             sync.Mutex
	properties     []domain.Property
	inquiries      []domain.Inquiry
	nextPropertyID int64
	nextInquiryID  int64
	now            func() time.Time
}

func New() *Store {
	return &Store{nextPropertyID: 1, nextInquiryID: 1, now: time.Now}
}

// WithClock swaps the time source; tests use it to pin createdAt.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
	return s
}

func (s *Store) GetProperties(_ context.Context) ([]domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Property, len(s.properties))
	for i, p := range s.properties {
		out[i] = p.Clone()
	}
	return out, nil
}

func (s *Store) GetProperty(_ context.Context, id int64) (domain.Property, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// ids are dense and never deleted, so the slot is id-1
	if id < 1 || id > int64(len(s.properties)) {
		return domain.Property{}, false, nil
	}
	return s.properties[id-1].Clone(), true, nil
}

func (s *Store) CreateProperty(_ context.Context, in domain.PropertyInput) (domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.Property{ID: s.nextPropertyID, PropertyInput: in, CreatedAt: s.now()}
	p = p.Clone()
	s.nextPropertyID++
	s.properties = append(s.properties, p)
	return p.Clone(), nil
}

func (s *Store) CreateInquiry(_ context.Context, in domain.InquiryInput) (domain.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := domain.Inquiry{ID: s.nextInquiryID, InquiryInput: in, CreatedAt: s.now()}.Clone()
	s.nextInquiryID++
	s.inquiries = append(s.inquiries, q)
	return q.Clone(), nil
}

// Inquiries returns a snapshot of stored inquiries; there is no read
// operation on the API, this is for tests and the seed command.
func (s *Store) Inquiries() []domain.Inquiry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Inquiry, len(s.inquiries))
	for i, q := range s.inquiries {
		out[i] = q.Clone()
	}
	return out
}
