// Package memory is an in-process storage backend. Signed URLs carry an
// "se" expiry parameter in the same shape Azure SAS tokens use.
package memory

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/sastoken"
	"github.com/kbukum/speechkit/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderMemory, func(cfg storage.Config, _ *logger.Logger) (storage.Storage, error) {
		return New(cfg.Endpoint, cfg.Container), nil
	})
}

// Storage keeps objects in a map.
type Storage struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string][]byte
	now     func() time.Time
}

// New creates an empty store whose URLs are rooted at baseURL/container.
func New(baseURL, container string) *Storage {
	if baseURL == "" {
		baseURL = "https://memory.local"
	}
	return &Storage{
		baseURL: baseURL + "/" + url.PathEscape(container),
		objects: make(map[string][]byte),
		now:     time.Now,
	}
}

// Upload stores the reader's contents.
func (s *Storage) Upload(_ context.Context, name string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("storage: memory upload: %w", err)
	}
	s.mu.Lock()
	s.objects[name] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the object.
func (s *Storage) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	delete(s.objects, name)
	s.mu.Unlock()
	return nil
}

// Exists reports whether the object is stored.
func (s *Storage) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	_, ok := s.objects[name]
	s.mu.RUnlock()
	return ok, nil
}

// URL returns the object's unsigned URL.
func (s *Storage) URL(_ context.Context, name string) (string, error) {
	return s.baseURL + "/" + url.PathEscape(name), nil
}

// SignedURL returns the object URL with a read permission and expiry.
func (s *Storage) SignedURL(ctx context.Context, name string, ttl time.Duration) (string, error) {
	base, _ := s.URL(ctx, name)
	q := url.Values{}
	q.Set("sp", "r")
	q.Set(sastoken.ExpiryParam, s.now().Add(ttl).UTC().Format(sastoken.Layout))
	return base + "?" + q.Encode(), nil
}

// Names lists stored object names in sorted order.
func (s *Storage) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Object returns a stored object's bytes.
func (s *Storage) Object(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[name]
	return data, ok
}

var (
	_ storage.Storage           = (*Storage)(nil)
	_ storage.SignedURLProvider = (*Storage)(nil)
)
