package repositories

import (
	"context"
	"fmt"
	"sync"

	"tesBack/internal/storage"
)

// collection loads and saves one named collection as a whole. Every
// read-modify-write holds mu, so a single process never interleaves two
// writers on the same key.
type collection[T any] struct {
	store    storage.Store
	key      string
	notFound error
	idOf     func(T) int
	setID    func(*T, int)

	mu sync.Mutex
}

func newCollection[T any](store storage.Store, key string, notFound error, idOf func(T) int, setID func(*T, int)) *collection[T] {
	return &collection[T]{store: store, key: key, notFound: notFound, idOf: idOf, setID: setID}
}

func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	var items []T
	if _, err := c.store.Get(ctx, c.key, &items); err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	return items, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	if err := c.store.Set(ctx, c.key, items); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// list returns the items matching every predicate, in insertion order.
func (c *collection[T]) list(ctx context.Context, preds ...func(T) bool) ([]T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return filterItems(items, preds...), nil
}

func (c *collection[T]) find(ctx context.Context, id int) (T, error) {
	var zero T
	items, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for _, it := range items {
		if c.idOf(it) == id {
			return it, nil
		}
	}
	return zero, c.notFound
}

// insert assigns ids to the new items and appends them. check sees the
// current collection and may veto the insert.
func (c *collection[T]) insert(ctx context.Context, check func([]T) error, newItems ...T) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if check != nil {
		if err := check(items); err != nil {
			return nil, err
		}
	}
	next, err := c.nextID(ctx, items)
	if err != nil {
		return nil, err
	}
	for i := range newItems {
		c.setID(&newItems[i], next)
		next++
	}
	items = append(items, newItems...)
	if err := c.save(ctx, items); err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, storage.SeqKey(c.key), next-1); err != nil {
		return nil, fmt.Errorf("save %s counter: %w", c.key, err)
	}
	return newItems, nil
}

// nextID never hands out an id that was used before, even after deletions.
func (c *collection[T]) nextID(ctx context.Context, items []T) (int, error) {
	var counter int
	if _, err := c.store.Get(ctx, storage.SeqKey(c.key), &counter); err != nil {
		return 0, fmt.Errorf("load %s counter: %w", c.key, err)
	}
	for _, it := range items {
		if id := c.idOf(it); id > counter {
			counter = id
		}
	}
	return counter + 1, nil
}

// update applies mutate to the item with id and persists the collection.
// An error from mutate aborts the save.
func (c *collection[T]) update(ctx context.Context, id int, mutate func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	items, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for i := range items {
		if c.idOf(items[i]) != id {
			continue
		}
		if err := mutate(&items[i]); err != nil {
			return zero, err
		}
		if err := c.save(ctx, items); err != nil {
			return zero, err
		}
		return items[i], nil
	}
	return zero, c.notFound
}

// remove deletes the item with id after check approves it.
func (c *collection[T]) remove(ctx context.Context, id int, check func(T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	items, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for i := range items {
		if c.idOf(items[i]) != id {
			continue
		}
		removed := items[i]
		if check != nil {
			if err := check(removed); err != nil {
				return zero, err
			}
		}
		items = append(items[:i], items[i+1:]...)
		if err := c.save(ctx, items); err != nil {
			return zero, err
		}
		return removed, nil
	}
	return zero, c.notFound
}

// mutateAll rewrites the whole collection. fn reports whether anything
// changed; nothing is saved otherwise.
func (c *collection[T]) mutateAll(ctx context.Context, fn func([]T) ([]T, bool, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	items, changed, err := fn(items)
	if err != nil {
		return nil, err
	}
	if !changed {
		return items, nil
	}
	return items, c.save(ctx, items)
}
