package diff

import (
	"sort"

	"github.com/boardbridge/sync/board"
)

// CollectionDiff is one collection's {added, changed, removed} delta
// (spec.md §4.5). T is the entity type: *board.Drawing, *board.Footprint,
// or *board.Via.
type CollectionDiff[T board.Entity] struct {
	Added   []T            `json:"added,omitempty"`
	Changed []ChangedEntry `json:"changed,omitempty"`
	Removed []string       `json:"removed,omitempty"`
}

// IsEmpty reports whether the diff carries no changes at all.
func (c *CollectionDiff[T]) IsEmpty() bool {
	return c == nil || (len(c.Added) == 0 && len(c.Changed) == 0 && len(c.Removed) == 0)
}

// diffCollection implements the per-collection algorithm of spec.md §4.5
// against a live board.Collection, mutating it in place: new entities are
// assigned a sequential ID and appended, changed entities are updated and
// rehashed, and removed entities are dropped.
func diffCollection[T board.Entity](coll *board.Collection[T], fresh []T, tol Tolerances) *CollectionDiff[T] {
	result := &CollectionDiff[T]{}
	freshKiids := make(map[string]bool, len(fresh))

	for _, f := range fresh {
		kiid := f.Kiid()
		freshKiids[kiid] = true

		stored, known := coll.Lookup(kiid)
		if !known {
			f.SetID(coll.MaxID() + 1)
			board.Rehash(f)
			coll.Upsert(f)
			result.Added = append(result.Added, f)
			continue
		}

		if board.ComputeHash(f) == stored.GetHash() {
			continue
		}

		diffs := compareFields(stored.HashableFields(), f.HashableFields(), tol)
		if len(diffs) == 0 {
			continue
		}

		replaceContent(stored, f, diffs)
		board.Rehash(stored)
		result.Changed = append(result.Changed, ChangedEntry{KIID: kiid, Props: diffs})
	}

	for _, stored := range coll.All() {
		if !freshKiids[stored.Kiid()] {
			result.Removed = append(result.Removed, stored.Kiid())
			coll.Remove(stored.Kiid())
		}
	}

	sortCollectionDiff(result)
	return result
}

func sortCollectionDiff[T board.Entity](c *CollectionDiff[T]) {
	sort.Slice(c.Added, func(i, j int) bool { return c.Added[i].Kiid() < c.Added[j].Kiid() })
	sort.Slice(c.Changed, func(i, j int) bool { return c.Changed[i].KIID < c.Changed[j].KIID })
	sort.Strings(c.Removed)
}
