package redisad

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landaireal/landai-rent/internal/domain"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:")
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	require.NoError(t, c.Ping(ctx))

	var out []domain.Property
	ok, err := c.Get(ctx, "properties:all", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	in := []domain.Property{{ID: 1, PropertyInput: domain.PropertyInput{TitleEn: "Villa", Features: []string{"Pool"}}}}
	require.NoError(t, c.Set(ctx, "properties:all", in, 60))
	assert.True(t, mr.Exists("test:properties:all"))

	ok, err = c.Get(ctx, "properties:all", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in[0].TitleEn, out[0].TitleEn)
	assert.Equal(t, []string{"Pool"}, out[0].Features)

	require.NoError(t, c.Del(ctx, "properties:all"))
	ok, _ = c.Get(ctx, "properties:all", &out)
	assert.False(t, ok)
}

func TestTTLExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	require.NoError(t, c.Set(ctx, "property:1", domain.Property{ID: 1}, 30))
	assert.Equal(t, 30*time.Second, mr.TTL("test:property:1"))

	mr.FastForward(31 * time.Second)
	var p domain.Property
	ok, err := c.Get(ctx, "property:1", &p)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCorruptEntry(t *testing.T) {
	c, mr := newCache(t)
	require.NoError(t, mr.Set("test:property:2", "not json"))
	var p domain.Property
	ok, err := c.Get(context.Background(), "property:2", &p)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestUnavailableServer(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()
	var p domain.Property
	ok, err := c.Get(context.Background(), "property:1", &p)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestIncrAndNamespace(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)

	n, err := c.Incr(ctx, "properties:gen")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, _ = c.Incr(ctx, "properties:gen")
	assert.Equal(t, int64(2), n)

	// counters read back through Get like any JSON value
	var gen int64
	ok, err := c.Get(ctx, "properties:gen", &gen)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), gen)

	a, b := c.WithNamespace("mem-a"), c.WithNamespace("mem-b")
	require.NoError(t, a.Set(ctx, "property:1", domain.Property{ID: 1, PropertyInput: domain.PropertyInput{TitleEn: "A"}}, 60))
	assert.True(t, mr.Exists("test:mem-a:property:1"))
	var p domain.Property
	ok, err = b.Get(ctx, "property:1", &p)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Same(t, c, c.WithNamespace(""))
}
