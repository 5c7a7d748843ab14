package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/landaireal/landai-rent/internal/domain"
	"github.com/landaireal/landai-rent/internal/schema"
)

// PropertyCreator is satisfied by the storage backends and by the API client.
type PropertyCreator interface {
	CreateProperty(ctx context.Context, in domain.PropertyInput) (domain.Property, error)
}

type ImportReport struct {
	Created []int64
	Failed  map[int]error // keyed by position in the input
}

// ParsePropertyFile reads a JSON array of property payloads and validates
// each one the way POST /api/properties does.
func ParsePropertyFile(b []byte) ([]domain.PropertyInput, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("property file must be a JSON array: %w", err)
	}
	out := make([]domain.PropertyInput, 0, len(raw))
	for i, r := range raw {
		in, err := schema.DecodePropertyInput(r)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, in)
	}
	return out, nil
}

type Importer struct {
	dst     PropertyCreator
	workers int
}

func NewImporter(dst PropertyCreator, workers int) *Importer {
	if workers <= 0 {
		workers = 1
	}
	return &Importer{dst: dst, workers: workers}
}

// Import creates every item, at most workers at a time. One failing item
// does not stop the others; Created keeps input order.
func (im *Importer) Import(ctx context.Context, items []domain.PropertyInput) (ImportReport, error) {
	sem := semaphore.NewWeighted(int64(im.workers))
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make([]int64, len(items))
		rep = ImportReport{Failed: map[int]error{}}
	)

	for i, in := range items {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return rep, err
		}
		wg.Add(1)
		go func(i int, in domain.PropertyInput) {
			defer wg.Done()
			defer sem.Release(1)

			p, err := im.dst.CreateProperty(ctx, in)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rep.Failed[i] = err
				log.Warn().Int("item", i).Str("title", in.TitleEn).Err(err).Msg("import failed")
				return
			}
			ids[i] = p.ID
			log.Info().Int("item", i).Int64("id", p.ID).Msg("import ok")
		}(i, in)
	}
	wg.Wait()

	for i, id := range ids {
		if _, failed := rep.Failed[i]; !failed {
			rep.Created = append(rep.Created, id)
		}
	}
	return rep, nil
}
