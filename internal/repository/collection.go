package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/storage"
)

// collection is a JSON array stored whole under one key.
type collection[T any] struct {
	store storage.Store
	key   string
}

func (c collection[T]) list(ctx context.Context) ([]T, error) {
	var items []T
	if _, err := c.store.Get(ctx, c.key, &items); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	if err := c.store.Set(ctx, c.key, items); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, c.key, err)
	}
	return nil
}
