// Package catalog implements the Book: an ordered, insert-once mapping
// from uuid to descriptor.Descriptor. It is the in-memory counterpart of
// descriptor.StoreManifest's Objects list, adapted to support the lookup,
// glob, and merge operations the object store needs while a store is
// open, grounded on the ordered-map-plus-index idiom common to
// in-memory index structures (e.g. the inmemory driver's directory
// maps).
//
// A Book is not safe for concurrent use; callers serialize access the
// same way the object store already serializes access to a driver.
package catalog

import (
	"fmt"
	"path"

	"github.com/batchvault/batchvault/store/descriptor"
)

// Book is an ordered id -> Descriptor catalog.
type Book struct {
	order []string
	items map[string]descriptor.Descriptor
}

// New returns an empty Book.
func New() *Book {
	return &Book{items: make(map[string]descriptor.Descriptor)}
}

// ConflictError is returned by Set when id is already present.
type ConflictError struct {
	ID string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("catalog: %s already registered", e.ID)
}

// NotFoundError is returned by Get when id is not present.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("catalog: %s not found", e.ID)
}

// Set inserts d under id. The catalog is insert-once: a second Set for
// the same id returns ConflictError without modifying the entry.
func (b *Book) Set(id string, d descriptor.Descriptor) error {
	if _, exists := b.items[id]; exists {
		return ConflictError{ID: id}
	}
	b.items[id] = d
	b.order = append(b.order, id)
	return nil
}

// Replace overwrites an existing entry in place, preserving its position
// in iteration order. Used when a descriptor's Info is appended to after
// its initial registration (e.g. a dataset gaining a new job).
func (b *Book) Replace(id string, d descriptor.Descriptor) error {
	if _, exists := b.items[id]; !exists {
		return NotFoundError{ID: id}
	}
	b.items[id] = d
	return nil
}

// Get returns the descriptor registered under id.
func (b *Book) Get(id string) (descriptor.Descriptor, error) {
	d, ok := b.items[id]
	if !ok {
		return descriptor.Descriptor{}, NotFoundError{ID: id}
	}
	return d, nil
}

// Has reports whether id is registered.
func (b *Book) Has(id string) bool {
	_, ok := b.items[id]
	return ok
}

// Len returns the number of entries in the catalog.
func (b *Book) Len() int { return len(b.order) }

// List returns every descriptor in insertion order.
func (b *Book) List() []descriptor.Descriptor {
	out := make([]descriptor.Descriptor, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.items[id])
	}
	return out
}

// Keys returns every registered id, in insertion order.
func (b *Book) Keys() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Glob returns every descriptor whose id matches the given case-sensitive
// shell pattern (as defined by path.Match), in insertion order.
func (b *Book) Glob(pattern string) ([]descriptor.Descriptor, error) {
	var out []descriptor.Descriptor
	for _, id := range b.order {
		ok, err := path.Match(pattern, id)
		if err != nil {
			return nil, fmt.Errorf("catalog: glob %q: %w", pattern, err)
		}
		if ok {
			out = append(out, b.items[id])
		}
	}
	return out, nil
}

// Compatible reports whether a and b carry exactly the same set of keys,
// regardless of order or content.
func Compatible(a, b *Book) bool {
	if len(a.items) != len(b.items) {
		return false
	}
	for k := range a.items {
		if _, ok := b.items[k]; !ok {
			return false
		}
	}
	return true
}

// Merge combines a and b into a new Book. Keys present in only one side
// are copied across unchanged (merge is commutative on disjoint keys).
// Keys present in both are combined with descriptor.Merge, which is
// left-biased on scalar fields and concatenates list-valued Info fields.
// The result's iteration order is a's order followed by any keys unique
// to b, in b's order.
func Merge(a, b *Book) (*Book, error) {
	out := New()

	for _, id := range a.order {
		av := a.items[id]
		if bv, ok := b.items[id]; ok {
			merged, err := descriptor.Merge(av, bv)
			if err != nil {
				return nil, fmt.Errorf("catalog: merge %s: %w", id, err)
			}
			av = merged
		}
		if err := out.Set(id, av); err != nil {
			return nil, err
		}
	}

	for _, id := range b.order {
		if a.Has(id) {
			continue
		}
		if err := out.Set(id, b.items[id]); err != nil {
			return nil, err
		}
	}

	return out, nil
}
