package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/landaireal/landai-rent/internal/domain"
)

// The list entry is versioned: creates bump propertiesGenKey instead of
// deleting, so a slow reader can only refill a generation nobody reads any
// more.
const propertiesGenKey = "properties:gen"

func propertiesListKey(gen int64) string { return fmt.Sprintf("properties:all:v%d", gen) }

func propertyKey(id int64) string { return fmt.Sprintf("property:%d", id) }

type QueryService struct {
	store    domain.Storage
	cache    domain.Cache // nil disables caching
	cacheTTL time.Duration
}

func NewQueryService(s domain.Storage, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{store: s, cache: c, cacheTTL: ttl}
}

// ListProperties caches the full collection and filters per call, so one
// cache entry serves every search.
func (s *QueryService) ListProperties(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	var (
		all    []domain.Property
		key    string
		cached = s.cache != nil
	)
	if cached {
		// the generation must be read before the store
		var gen int64
		if _, err := s.cache.Get(ctx, propertiesGenKey, &gen); err != nil {
			log.Warn().Err(err).Msg("read properties generation failed; bypassing cache")
			cached = false
		}
		key = propertiesListKey(gen)
	}
	if cached {
		if ok, _ := s.cache.Get(ctx, key, &all); ok && all != nil {
			return domain.FilterProperties(all, f), nil
		}
	}
	all, err := s.store.GetProperties(ctx)
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = []domain.Property{}
	}
	if cached {
		_ = s.cache.Set(ctx, key, all, int(s.cacheTTL.Seconds()))
	}
	return domain.FilterProperties(all, f), nil
}

// GetProperty reports ok=false for unknown ids. Misses are not cached.
func (s *QueryService) GetProperty(ctx context.Context, id int64) (domain.Property, bool, error) {
	key := propertyKey(id)
	var p domain.Property
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &p); ok {
			return p, true, nil
		}
	}
	p, ok, err := s.store.GetProperty(ctx, id)
	if err != nil || !ok {
		return domain.Property{}, false, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, p, int(s.cacheTTL.Seconds()))
	}
	return p, true, nil
}
