// Package kv holds the durable key-value backends behind the memory store.
// A backend stores opaque byte values under string keys and reports an
// absent key as (nil, nil).
package kv

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Batcher is implemented by backends that can write several keys atomically.
type Batcher interface {
	SetBatch(ctx context.Context, values map[string][]byte) error
}

// SetAll writes values through SetBatch when repo supports it and falls back
// to one Set per key otherwise. Keys are written in sorted order.
func SetAll(ctx context.Context, repo Repository, values map[string][]byte) error {
	if b, ok := repo.(Batcher); ok {
		return b.SetBatch(ctx, values)
	}
	for _, k := range sortedKeys(values) {
		if err := repo.Set(ctx, k, values[k]); err != nil {
			return err
		}
	}
	return nil
}
