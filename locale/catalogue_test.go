package locale

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/redis"
	"github.com/kbukum/speechkit/speechapi"
)

type fakeLister struct {
	models []speechapi.Model
	err    error
	calls  atomic.Int32
}

func (f *fakeLister) ListModels(context.Context) ([]speechapi.Model, error) {
	f.calls.Add(1)
	return f.models, f.err
}

func TestCatalogue_DerivesSortedUniqueLocales(t *testing.T) {
	src := &fakeLister{models: []speechapi.Model{
		{Locale: "fr-FR", DisplayName: "French base"},
		{Locale: "de-DE"},
		{Locale: "fr-FR", DisplayName: "French custom"},
		{Locale: "xx-XX"},
		{Locale: ""},
	}}
	cat := NewCatalogue(src, logger.Nop())

	got := cat.List(context.Background())
	assert.Equal(t, []Info{
		{Code: "de-DE", Name: "German (Germany)"},
		{Code: "fr-FR", Name: "French base"},
		{Code: "xx-XX", Name: "xx-XX"},
	}, got)
	assert.Equal(t, []string{"de-DE", "fr-FR", "xx-XX"}, cat.Codes(context.Background()))
	assert.Equal(t, int32(1), src.calls.Load(), "second call must be served from cache")
}

func TestCatalogue_Fallback(t *testing.T) {
	tests := []struct {
		name string
		src  ModelLister
	}{
		{"platform error", &fakeLister{err: fmt.Errorf("401")}},
		{"no models", &fakeLister{}},
		{"no source", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCatalogue(tt.src, logger.Nop()).List(context.Background())
			require.Len(t, got, 30)
			assert.Equal(t, "en-US", got[0].Code)
		})
	}
}

func TestCatalogue_FallbackIsNotCached(t *testing.T) {
	src := &fakeLister{err: fmt.Errorf("unavailable")}
	cat := NewCatalogue(src, logger.Nop())

	cat.List(context.Background())
	src.err = nil
	src.models = []speechapi.Model{{Locale: "en-US", DisplayName: "English"}}

	assert.Equal(t, []Info{{Code: "en-US", Name: "English"}}, cat.List(context.Background()))
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestMemoryCache_Expires(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &memoryCache{now: func() time.Time { return now }}
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, []Info{{Code: "en-US"}}, time.Hour))
	_, ok, _ := c.Load(ctx)
	assert.True(t, ok)

	now = now.Add(time.Hour)
	_, ok, _ = c.Load(ctx)
	assert.False(t, ok)
}

func TestRedisCache_SharedAcrossCatalogues(t *testing.T) {
	mini := miniredis.RunT(t)
	client, err := redis.New(redis.Config{Enabled: true, Addr: mini.Addr()}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	src := &fakeLister{models: []speechapi.Model{{Locale: "ja-JP", DisplayName: "Japanese"}}}
	first := NewCatalogue(src, logger.Nop(), WithCache(NewRedisCache(client)))
	second := NewCatalogue(src, logger.Nop(), WithCache(NewRedisCache(client)))

	first.List(context.Background())
	got := second.List(context.Background())

	assert.Equal(t, []Info{{Code: "ja-JP", Name: "Japanese"}}, got)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.True(t, mini.Exists("speechkit:locales:catalogue"))

	mini.FastForward(DefaultTTL)
	second.List(context.Background())
	assert.Equal(t, int32(2), src.calls.Load())
}
