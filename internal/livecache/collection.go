package livecache

import (
	"slices"
	"sync"
)

// Keyed is anything addressable by a stable int64 id.
type Keyed interface {
	Key() int64
}

// ApplyUpdated replaces the entity with the same key in place. When no such
// entity exists the record is appended, which covers a missed create.
func ApplyUpdated[E Keyed](entities []E, updated E) []E {
	for i := range entities {
		if entities[i].Key() == updated.Key() {
			entities[i] = updated
			return entities
		}
	}
	return append(entities, updated)
}

// ApplyCreated appends the record only when no entity with the same key
// exists. For duplicate creates the first payload wins; repeats are no-ops.
func ApplyCreated[E Keyed](entities []E, created E) []E {
	for i := range entities {
		if entities[i].Key() == created.Key() {
			return entities
		}
	}
	return append(entities, created)
}

// ApplyDeleted removes the entity with the given key if present.
func ApplyDeleted[E Keyed](entities []E, id int64) []E {
	for i := range entities {
		if entities[i].Key() == id {
			return slices.Delete(entities, i, i+1)
		}
	}
	return entities
}

// Collection is an ordered, key-addressed cache of one entity kind. All
// mutation goes through the reconcile primitives above or Replace (the
// refetch path), behind a single lock.
type Collection[E Keyed] struct {
	mu       sync.RWMutex
	entities []E
}

func NewCollection[E Keyed]() *Collection[E] {
	return &Collection[E]{}
}

// Replace swaps in a freshly fetched authoritative list.
func (c *Collection[E]) Replace(entities []E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities = slices.Clone(entities)
}

// Update applies an *_UPDATED envelope payload.
func (c *Collection[E]) Update(entity E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities = ApplyUpdated(c.entities, entity)
}

// Create applies a *_CREATED envelope payload.
func (c *Collection[E]) Create(entity E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities = ApplyCreated(c.entities, entity)
}

// Delete applies a *_DELETED envelope payload.
func (c *Collection[E]) Delete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities = ApplyDeleted(c.entities, id)
}

// Snapshot returns a copy of the current entity list in cache order.
func (c *Collection[E]) Snapshot() []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.entities)
}

// Get returns the entity with the given key, if cached.
func (c *Collection[E]) Get(id int64) (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.entities {
		if c.entities[i].Key() == id {
			return c.entities[i], true
		}
	}
	var zero E
	return zero, false
}

// Len returns the number of cached entities.
func (c *Collection[E]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entities)
}
