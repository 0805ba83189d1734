package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// TypedStore keeps JSON-encoded values of one type under a key namespace.
type TypedStore[T any] struct {
	client    *Client
	namespace string
}

// NewTypedStore creates a store whose keys live under namespace inside the
// client's prefix.
func NewTypedStore[T any](client *Client, namespace string) *TypedStore[T] {
	return &TypedStore[T]{client: client, namespace: namespace}
}

func (s *TypedStore[T]) key(k string) string {
	if s.namespace == "" {
		return s.client.Key(k)
	}
	return s.client.Key(s.namespace, k)
}

// Load returns the value at k, or (nil, nil) when it does not exist.
func (s *TypedStore[T]) Load(ctx context.Context, k string) (*T, error) {
	raw, err := s.client.Get(ctx, s.key(k))
	if IsMiss(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("typed store load %q: %w", k, err)
	}

	var val T
	if err := json.Unmarshal([]byte(raw), &val); err != nil {
		return nil, fmt.Errorf("typed store unmarshal %q: %w", k, err)
	}
	return &val, nil
}

// Save stores val at k for ttl. A zero ttl never expires.
func (s *TypedStore[T]) Save(ctx context.Context, k string, val *T, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("typed store marshal %q: %w", k, err)
	}
	if err := s.client.Set(ctx, s.key(k), string(data), ttl); err != nil {
		return fmt.Errorf("typed store save %q: %w", k, err)
	}
	return nil
}

// Delete removes k.
func (s *TypedStore[T]) Delete(ctx context.Context, k string) error {
	if err := s.client.Del(ctx, s.key(k)); err != nil {
		return fmt.Errorf("typed store delete %q: %w", k, err)
	}
	return nil
}
