package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landaireal/landai-rent/internal/domain"
)

func TestBackend(t *testing.T) {
	cases := map[string]string{
		"":                                 BackendMemory,
		"postgres://u:p@db:5432/landai":    BackendPostgres,
		"postgresql://db/landai":           BackendPostgres,
		"mysql://root:root@db:3306/landai": BackendMySQL,
		"sqlite::memory:":                  BackendSQLite,
		"sqlite:///var/lib/landai.db":      BackendSQLite,
	}
	for url, want := range cases {
		got, err := Backend(url)
		require.NoError(t, err, url)
		assert.Equal(t, want, got, url)
	}

	_, err := Backend("mongodb://u:secret@db/landai")
	require.Error(t, err)
	_, err = Backend("no-scheme")
	require.Error(t, err)
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "***@db/x", redact("postgres://u:secret@db/x"))
	assert.Equal(t, "plain", redact("plain"))
}

func TestOpenMemory(t *testing.T) {
	h, err := Open(context.Background(), Options{})
	require.NoError(t, err)
	defer h.Close()
	assert.Equal(t, BackendMemory, h.Backend)

	p, err := h.Store.CreateProperty(context.Background(), domain.PropertyInput{TitleEn: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	other, err := Open(context.Background(), Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, h.CacheNamespace)
	assert.NotEqual(t, h.CacheNamespace, other.CacheNamespace)
}

func TestOpenSQLiteMigrates(t *testing.T) {
	ctx := context.Background()
	h, err := Open(ctx, Options{DatabaseURL: "sqlite::memory:", AutoMigrate: true})
	require.NoError(t, err)
	defer h.Close()
	assert.Equal(t, BackendSQLite, h.Backend)
	assert.Empty(t, h.CacheNamespace)

	ps, err := h.Store.GetProperties(ctx)
	require.NoError(t, err)
	assert.Empty(t, ps)

	q, err := h.Store.CreateInquiry(ctx, domain.InquiryInput{Name: "a", Email: "b", Phone: "c", Message: "d"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), q.ID)
}

func TestOpenSQLiteWithoutMigrationFails(t *testing.T) {
	ctx := context.Background()
	h, err := Open(ctx, Options{DatabaseURL: "sqlite::memory:"})
	require.NoError(t, err)
	defer h.Close()
	_, err = h.Store.GetProperties(ctx)
	require.Error(t, err)
}

func TestNilHandleClose(t *testing.T) {
	var h *Handle
	assert.NoError(t, h.Close())
}
