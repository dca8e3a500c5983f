// Package accumulator implements the DiffAccumulator (spec.md §4.6,
// component C6): it folds a sequence of per-cycle Diffs into one pending
// Diff keyed by stable kiid, so that if the same entity changes twice
// before a send, only the latest value per property survives.
package accumulator

import "github.com/boardbridge/sync/diff"

// Accumulator carries the pending Diff across sync cycles until it is
// drained and sent (spec.md §4.3: REQDIF triggers "accumulate-and-send
// current pending Diff, then clear").
type Accumulator struct {
	pending *diff.Diff
}

// New returns an Accumulator with an empty pending Diff.
func New() *Accumulator {
	return &Accumulator{pending: &diff.Diff{}}
}

// Fold merges incoming into the pending Diff in place, per the rules of
// spec.md §4.6: added/removed append, changed merges by kiid with
// incoming values overwriting pending values for the same property.
func (a *Accumulator) Fold(incoming *diff.Diff) {
	if incoming == nil {
		return
	}

	a.pending.Drawings = foldCollection(a.pending.Drawings, incoming.Drawings)
	a.pending.Footprints = foldCollection(a.pending.Footprints, incoming.Footprints)
	a.pending.Vias = foldCollection(a.pending.Vias, incoming.Vias)
	a.pending.SkippedEntities = append(a.pending.SkippedEntities, incoming.SkippedEntities...)
}

// Pending returns the accumulated Diff built so far. The returned value
// is aliased to the accumulator's internal state; callers that need a
// snapshot to outlive the next Fold/Clear should copy it.
func (a *Accumulator) Pending() *diff.Diff {
	return a.pending
}

// Clear discards the pending Diff, starting a fresh accumulation window.
func (a *Accumulator) Clear() {
	a.pending = &diff.Diff{}
}
