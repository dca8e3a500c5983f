package board

import "sort"

// Collection is a flat, kiid-indexed container for one entity kind. It is
// the "arena + index, not cyclic graphs" model of spec.md §9: entities
// have no parent pointers, only inclusion (pads and models live inside
// their footprint) and kiid-based cross-references.
type Collection[T Entity] struct {
	byKiid map[string]T
}

// NewCollection returns an empty Collection.
func NewCollection[T Entity]() *Collection[T] {
	return &Collection[T]{byKiid: make(map[string]T)}
}

// Lookup returns the entity with the given kiid, or the zero value and
// false if it is not present.
func (c *Collection[T]) Lookup(kiid string) (T, bool) {
	e, ok := c.byKiid[kiid]
	return e, ok
}

// Upsert replaces the entry with the same kiid, or appends if none
// exists.
func (c *Collection[T]) Upsert(e T) {
	c.byKiid[e.Kiid()] = e
}

// Remove deletes the entry with the given kiid, if any.
func (c *Collection[T]) Remove(kiid string) {
	delete(c.byKiid, kiid)
}

// Len returns the number of entities in the collection.
func (c *Collection[T]) Len() int {
	return len(c.byKiid)
}

// All returns every entity, ordered by kiid for deterministic iteration
// (needed by HashBoard and by any test asserting on collection content).
func (c *Collection[T]) All() []T {
	kiids := make([]string, 0, len(c.byKiid))
	for k := range c.byKiid {
		kiids = append(kiids, k)
	}
	sort.Strings(kiids)

	out := make([]T, len(kiids))
	for i, k := range kiids {
		out[i] = c.byKiid[k]
	}
	return out
}

// MaxID returns the largest ID currently assigned in the collection, or 0
// if it is empty. The Differ assigns (MaxID()+1) to each newly scanned
// entity (spec.md §4.5, step 2).
func (c *Collection[T]) MaxID() int {
	max := 0
	for _, e := range c.byKiid {
		if id := e.GetID(); id > max {
			max = id
		}
	}
	return max
}
