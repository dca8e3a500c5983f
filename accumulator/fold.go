package accumulator

import (
	"github.com/boardbridge/sync/board"
	"github.com/boardbridge/sync/diff"
)

// foldCollection appends incoming's added/removed onto pending and
// merges its changed entries by kiid (spec.md §4.6). A nil incoming
// leaves pending untouched; a nil pending is allocated on first use.
func foldCollection[T board.Entity](pending, incoming *diff.CollectionDiff[T]) *diff.CollectionDiff[T] {
	if incoming == nil {
		return pending
	}
	if pending == nil {
		pending = &diff.CollectionDiff[T]{}
	}

	pending.Added = append(pending.Added, incoming.Added...)
	pending.Removed = append(pending.Removed, incoming.Removed...)
	pending.Changed = foldChanged(pending.Changed, incoming.Changed)
	return pending
}

// foldChanged merges incoming changed entries into pending by kiid: an
// existing pending entry has incoming's properties overlaid onto it
// (incoming wins per-property), and a kiid with no pending entry is
// appended as a new one.
func foldChanged(pending, incoming []diff.ChangedEntry) []diff.ChangedEntry {
	index := make(map[string]int, len(pending))
	for i, e := range pending {
		index[e.KIID] = i
	}

	for _, inc := range incoming {
		i, ok := index[inc.KIID]
		if !ok {
			index[inc.KIID] = len(pending)
			pending = append(pending, diff.ChangedEntry{KIID: inc.KIID, Props: copyProps(inc.Props)})
			continue
		}

		merged := pending[i].Props
		if merged == nil {
			merged = make(map[string]any, len(inc.Props))
		}
		for k, v := range inc.Props {
			merged[k] = v
		}
		pending[i].Props = merged
	}

	return pending
}

func copyProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
