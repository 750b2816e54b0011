package store

import (
	"errors"
	"strings"
	"sync"
)

// ErrNotFound is returned when an id does not exist in a collection
var ErrNotFound = errors.New("record not found")

// Record is an entity addressable by a stable integer id
type Record interface {
	RecordID() int
}

// Matcher reports whether a record matches a search term
type Matcher[T any] func(item T, term string) bool

// View is a filtered snapshot of a collection
type View[T any] struct {
	Items []T `json:"items"`
	Shown int `json:"shown"`
	Total int `json:"total"`
}

// Collection is the ordered in-memory list owned by one entity type.
// New records go to the front. Ids come from a monotonic counter and are
// never reused after a removal.
type Collection[T Record] struct {
	mu     sync.RWMutex
	items  []T
	lastID int
	match  Matcher[T]
}

// New creates a collection seeded with items, in the given order
func New[T Record](match Matcher[T], seed ...T) *Collection[T] {
	c := &Collection[T]{match: match}
	c.items = make([]T, 0, len(seed))
	for _, item := range seed {
		c.items = append(c.items, item)
		if id := item.RecordID(); id > c.lastID {
			c.lastID = id
		}
	}
	return c
}

// Len returns the number of records
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// All returns a copy of every record in display order
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Get finds a record by id
func (c *Collection[T]) Get(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Filter returns the records matching term. An empty or blank term matches
// everything. The result is a fresh slice; the collection is not modified.
func (c *Collection[T]) Filter(term string) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter(term)
}

// View filters by term and reports how many records are shown out of the total
func (c *Collection[T]) View(term string) View[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := c.filter(term)
	return View[T]{Items: items, Shown: len(items), Total: len(c.items)}
}

func (c *Collection[T]) filter(term string) []T {
	term = strings.TrimSpace(term)
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if term == "" || c.match == nil || c.match(item, term) {
			out = append(out, item)
		}
	}
	return out
}

// Add assigns the next id, builds the record and puts it first
func (c *Collection[T]) Add(build func(id int) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastID++
	item := build(c.lastID)
	c.items = append([]T{item}, c.items...)
	return item
}

// Update mutates the record with the given id in place. The mutator only
// sees a copy; fields it leaves alone keep their values and the id is kept.
func (c *Collection[T]) Update(id int, mutate func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}

	updated := c.items[i]
	if err := mutate(&updated); err != nil {
		return c.items[i], err
	}
	if updated.RecordID() != id {
		var zero T
		return zero, errors.New("record id cannot change on update")
	}
	c.items[i] = updated
	return updated, nil
}

// Remove deletes the record with the given id
func (c *Collection[T]) Remove(id int) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	removed := c.items[i]
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return removed, nil
}

func (c *Collection[T]) indexOf(id int) int {
	for i, item := range c.items {
		if item.RecordID() == id {
			return i
		}
	}
	return -1
}
