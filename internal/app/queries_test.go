package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/landaireal/landai-rent/internal/app"
	"github.com/landaireal/landai-rent/internal/domain"
	"github.com/landaireal/landai-rent/internal/storage/memory"
)

// ---- fakes ----

// fakeCache stores JSON like the redis adapter does, so cached values never
// alias what the caller holds.
type fakeCache struct {
	store map[string][]byte
	incrs []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	c.store[key] = b
	return err
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}
func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	c.incrs = append(c.incrs, key)
	var n int64
	if b, ok := c.store[key]; ok {
		if err := json.Unmarshal(b, &n); err != nil {
			return 0, err
		}
	}
	n++
	return n, c.Set(ctx, key, n, 0)
}

type failingStore struct{ domain.Storage }

var errDown = errors.New("db down")

func (failingStore) GetProperties(context.Context) ([]domain.Property, error) { return nil, errDown }
func (failingStore) GetProperty(context.Context, int64) (domain.Property, bool, error) {
	return domain.Property{}, false, errDown
}

func sample() domain.PropertyInput { return app.SampleProperties()[0] }

// ---- tests ----

func TestGetProperty_CacheMissThenHit(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	created, _ := store.CreateProperty(ctx, sample())
	cache := &fakeCache{}
	q := app.NewQueryService(store, cache, 10*time.Minute)

	p, ok, err := q.GetProperty(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if p.TitleEn != sample().TitleEn {
		t.Fatalf("unexpected property: %+v", p)
	}
	if _, cached := cache.store["property:1"]; !cached {
		t.Fatal("expected property:1 to be cached")
	}

	// served from cache from now on
	cache.store["property:1"] = []byte(`{"id":1,"titleEn":"from cache"}`)
	p, ok, _ = q.GetProperty(ctx, 1)
	if !ok || p.TitleEn != "from cache" {
		t.Fatalf("expected cached title, got %q", p.TitleEn)
	}
}

func TestGetProperty_MissIsNotCached(t *testing.T) {
	cache := &fakeCache{}
	q := app.NewQueryService(memory.New(), cache, time.Minute)
	_, ok, err := q.GetProperty(context.Background(), 999)
	if err != nil || ok {
		t.Fatalf("want clean miss, got ok=%v err=%v", ok, err)
	}
	if len(cache.store) != 0 {
		t.Fatalf("miss should not be cached: %v", cache.store)
	}
}

func TestListProperties_EmptyStore(t *testing.T) {
	q := app.NewQueryService(memory.New(), nil, time.Minute)
	out, err := q.ListProperties(context.Background(), domain.PropertyFilter{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", out)
	}
}

func TestListProperties_FilterAndCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if _, err := app.NewCommandService(store, nil, nil).Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cache := &fakeCache{}
	q := app.NewQueryService(store, cache, time.Minute)
	cmd := app.NewCommandService(store, cache, nil)

	rent, err := q.ListProperties(ctx, domain.PropertyFilter{Type: "rent"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rent) != 2 {
		t.Fatalf("want 2 rentals, got %d", len(rent))
	}

	if _, err := cmd.CreateProperty(ctx, sample()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(cache.incrs) != 1 || cache.incrs[0] != "properties:gen" {
		t.Fatalf("expected list invalidation, got %v", cache.incrs)
	}
	if _, stale := cache.store["properties:all:v0"]; !stale {
		t.Fatal("expected the first generation to have been cached")
	}

	all, _ := q.ListProperties(ctx, domain.PropertyFilter{})
	if len(all) != 5 {
		t.Fatalf("want 5 after create, got %d", len(all))
	}
	if all[4].ID != 5 {
		t.Fatalf("insertion order lost: %+v", all[4])
	}
}

// staleReadStore snapshots the collection, lets a write land, then returns
// the snapshot: a list read that lost the race with a create.
type staleReadStore struct {
	domain.Storage
	during func()
}

func (s *staleReadStore) GetProperties(ctx context.Context) ([]domain.Property, error) {
	out, err := s.Storage.GetProperties(ctx)
	if s.during != nil {
		f := s.during
		s.during = nil
		f()
	}
	return out, err
}

func TestListProperties_SlowReaderCannotHideCreate(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	store := &staleReadStore{Storage: mem}
	cache := &fakeCache{}
	q := app.NewQueryService(store, cache, time.Hour)
	cmd := app.NewCommandService(mem, cache, nil)

	store.during = func() {
		if _, err := cmd.CreateProperty(ctx, sample()); err != nil {
			t.Errorf("create: %v", err)
		}
	}
	first, err := q.ListProperties(ctx, domain.PropertyFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 0 {
		t.Fatalf("the racing read should see the old collection, got %d", len(first))
	}

	after, err := q.ListProperties(ctx, domain.PropertyFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(after) != 1 {
		t.Fatalf("create hidden by a stale cache fill: got %d listings", len(after))
	}
}

func TestSeed_RetiresCachedList(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	cache := &fakeCache{}
	q := app.NewQueryService(store, cache, time.Hour)

	if out, _ := q.ListProperties(ctx, domain.PropertyFilter{}); len(out) != 0 {
		t.Fatalf("want empty, got %d", len(out))
	}
	n, err := app.NewCommandService(store, cache, nil).Seed(ctx)
	if err != nil || n != 4 {
		t.Fatalf("seed: n=%d err=%v", n, err)
	}
	if len(cache.incrs) != 1 {
		t.Fatalf("seed should retire the list once, got %v", cache.incrs)
	}
	if out, _ := q.ListProperties(ctx, domain.PropertyFilter{}); len(out) != 4 {
		t.Fatalf("seeded listings hidden by cache: got %d", len(out))
	}
}

func TestStorageFaultsPropagate(t *testing.T) {
	q := app.NewQueryService(failingStore{}, &fakeCache{}, time.Minute)
	if _, err := q.ListProperties(context.Background(), domain.PropertyFilter{}); !errors.Is(err, errDown) {
		t.Fatalf("want errDown, got %v", err)
	}
	if _, _, err := q.GetProperty(context.Background(), 1); !errors.Is(err, errDown) {
		t.Fatalf("want errDown, got %v", err)
	}
}
