package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landaireal/landai-rent/internal/domain"
)

func input(title string) domain.PropertyInput {
	return domain.PropertyInput{
		TitleEn: title, TitleAr: "فيلا", DescriptionEn: "d", DescriptionAr: "د",
		Type: domain.TypeSale, Category: domain.CategoryVilla, Location: "Dubai",
		Price: 1000000, Area: 5000, ImageURL: "http://x/y.jpg", Features: []string{"Pool", "Garden"},
	}
}

func TestEmptyStore(t *testing.T) {
	s := New()
	ps, err := s.GetProperties(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ps)
	assert.Empty(t, ps)

	_, ok, err := s.GetProperty(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	before := time.Now()
	s := New()

	p, err := s.CreateProperty(ctx, input("Villa"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.False(t, p.CreatedAt.Before(before))

	got, ok, err := s.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p, got)

	p2, err := s.CreateProperty(ctx, input("Flat"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), p2.ID)

	all, err := s.GetProperties(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Villa", all[0].TitleEn)
	assert.Equal(t, "Flat", all[1].TitleEn)

	for _, id := range []int64{0, -1, 3, 999} {
		_, ok, err := s.GetProperty(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok, id)
	}
}

func TestReturnedRecordsDoNotAliasStorage(t *testing.T) {
	ctx := context.Background()
	s := New()
	in := input("Villa")
	p, _ := s.CreateProperty(ctx, in)

	in.Features[0] = "changed"
	p.Features[1] = "changed"
	got, _, _ := s.GetProperty(ctx, 1)
	got.Features = append(got.Features, "more")

	again, _, _ := s.GetProperty(ctx, 1)
	assert.Equal(t, []string{"Pool", "Garden"}, again.Features)
}

func TestConcurrentCreatesGetDistinctIDs(t *testing.T) {
	const n = 200
	s := New()
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.CreateProperty(context.Background(), input("x"))
			if err != nil {
				t.Error(err)
				return
			}
			ids <- p.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	for id := int64(1); id <= n; id++ {
		p, ok, _ := s.GetProperty(context.Background(), id)
		require.True(t, ok)
		assert.Equal(t, id, p.ID)
	}
}

func TestInquiries(t *testing.T) {
	pinned := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := New().WithClock(func() time.Time { return pinned })
	pid := int64(42)
	q, err := s.CreateInquiry(context.Background(), domain.InquiryInput{
		Name: "A", Email: "a@b.c", Phone: "1", Message: "hi", PropertyID: &pid,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), q.ID)
	assert.Equal(t, pinned, q.CreatedAt)
	// no referential check against properties
	assert.Equal(t, int64(42), *q.PropertyID)

	q2, _ := s.CreateInquiry(context.Background(), domain.InquiryInput{Name: "B"})
	assert.Equal(t, int64(2), q2.ID)
	assert.Nil(t, q2.PropertyID)
	assert.Len(t, s.Inquiries(), 2)
}

func TestReturnedInquiriesDoNotAliasStorage(t *testing.T) {
	s := New()
	pid := int64(7)
	q, err := s.CreateInquiry(context.Background(), domain.InquiryInput{Name: "A", PropertyID: &pid})
	require.NoError(t, err)

	pid = 8
	*q.PropertyID = 9
	snap := s.Inquiries()
	require.NotNil(t, snap[0].PropertyID)
	assert.Equal(t, int64(7), *snap[0].PropertyID)

	*snap[0].PropertyID = 10
	assert.Equal(t, int64(7), *s.Inquiries()[0].PropertyID)
}
