package domain

import "context"

// Storage is the persistence port. Exactly one implementation is chosen at
// startup and injected everywhere else.
type Storage interface {
	GetProperties(ctx context.Context) ([]Property, error)
	// GetProperty reports ok=false when no record has that id; a miss is not an error.
	GetProperty(ctx context.Context, id int64) (p Property, ok bool, err error)
	CreateProperty(ctx context.Context, in PropertyInput) (Property, error)
	CreateInquiry(ctx context.Context, in InquiryInput) (Inquiry, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	// Incr bumps an integer counter, creating it at 1. Counters never expire.
	Incr(ctx context.Context, key string) (int64, error)
}

// InquiryNotifier hands a stored inquiry to whoever follows up on it.
type InquiryNotifier interface {
	NotifyInquiry(ctx context.Context, in Inquiry) error
}
