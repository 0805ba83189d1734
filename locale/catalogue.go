package locale

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/speechapi"
)

// DefaultTTL is how long a fetched catalogue is served before refreshing.
const DefaultTTL = time.Hour

// ModelLister lists the platform's models.
type ModelLister interface {
	ListModels(ctx context.Context) ([]speechapi.Model, error)
}

// Catalogue serves supported locales. It is safe for concurrent use;
// concurrent refreshes share one platform call.
type Catalogue struct {
	source ModelLister
	cache  Cache
	ttl    time.Duration
	log    *logger.Logger
	group  singleflight.Group
}

// Option configures a Catalogue.
type Option func(*Catalogue)

// WithCache replaces the in-process cache.
func WithCache(c Cache) Option {
	return func(cat *Catalogue) { cat.cache = c }
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(cat *Catalogue) { cat.ttl = ttl }
}

// NewCatalogue creates a catalogue over source. A nil source always serves
// the fallback list.
func NewCatalogue(source ModelLister, log *logger.Logger, opts ...Option) *Catalogue {
	c := &Catalogue{
		source: source,
		cache:  NewMemoryCache(),
		ttl:    DefaultTTL,
		log:    log.WithComponent("locale"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the supported locales sorted by code. It never fails: the
// fallback list is served when the platform returns an error or nothing.
// The fallback is not cached.
func (c *Catalogue) List(ctx context.Context) []Info {
	if cached, ok, err := c.cache.Load(ctx); err != nil {
		c.log.Warn("locale cache read failed", logger.Fields(logger.FieldError, err.Error()))
	} else if ok {
		c.log.Debug("serving cached locales", logger.Fields("count", len(cached)))
		return cached
	}

	v, _, _ := c.group.Do("refresh", func() (interface{}, error) {
		return c.refresh(ctx), nil
	})
	return append([]Info(nil), v.([]Info)...)
}

// Codes returns just the locale codes of List.
func (c *Catalogue) Codes(ctx context.Context) []string {
	locales := c.List(ctx)
	codes := make([]string, len(locales))
	for i, l := range locales {
		codes[i] = l.Code
	}
	return codes
}

func (c *Catalogue) refresh(ctx context.Context) []Info {
	if c.source == nil {
		return Fallback()
	}
	models, err := c.source.ListModels(ctx)
	if err != nil {
		c.log.Error("failed to fetch locales, using fallback", logger.Fields(logger.FieldError, err.Error()))
		return Fallback()
	}

	locales := fromModels(models)
	if len(locales) == 0 {
		c.log.Warn("no locales returned by platform, using fallback")
		return Fallback()
	}
	if err := c.cache.Save(ctx, locales, c.ttl); err != nil {
		c.log.Warn("locale cache write failed", logger.Fields(logger.FieldError, err.Error()))
	}
	c.log.Info("supported locales retrieved", logger.Fields("count", len(locales)))
	return locales
}

// fromModels keeps the first model of each locale.
func fromModels(models []speechapi.Model) []Info {
	seen := make(map[string]bool, len(models))
	out := []Info{}
	for _, m := range models {
		if m.Locale == "" || seen[m.Locale] {
			continue
		}
		seen[m.Locale] = true
		name := m.DisplayName
		if name == "" {
			name = fallbackName(m.Locale)
		}
		if name == "" {
			name = m.Locale
		}
		out = append(out, Info{Code: m.Locale, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
