// Package diff implements the Differ (spec.md §4.5, component C5): it
// compares a freshly scanned replica against a stored board.Board and
// returns the Diff of added/changed/removed entities per collection,
// mutating the stored Board in place so it tracks the latest scan.
package diff

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/boardbridge/sync/board"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ScanResult is a fresh scan of a native document: one slice per
// collection, in the Scanner adapter's native order (the Differ does not
// require the scan to be pre-sorted). Skipped records entities an
// AdapterFailure forced the Scanner to drop (SPEC_FULL.md §4).
type ScanResult struct {
	Drawings   []*board.Drawing
	Footprints []*board.Footprint
	Vias       []*board.Via
	Skipped    []SkipRecord
}

// Diff is the per-cycle delta produced by DiffBoard: {drawings?,
// footprints?, vias?} (spec.md §4.5).
type Diff struct {
	Drawings        *CollectionDiff[*board.Drawing]   `json:"drawings,omitempty"`
	Footprints      *CollectionDiff[*board.Footprint] `json:"footprints,omitempty"`
	Vias            *CollectionDiff[*board.Via]       `json:"vias,omitempty"`
	SkippedEntities []SkipRecord                       `json:"skipped,omitempty"`
}

// IsEmpty reports whether the Diff carries no changes in any collection.
func (d *Diff) IsEmpty() bool {
	return d == nil || (d.Drawings.IsEmpty() && d.Footprints.IsEmpty() && d.Vias.IsEmpty())
}

// DiffBoard compares scan against b's three collections, mutating b in
// place (new entities appended, changed entities updated and rehashed,
// absent entities removed) and returning the Diff describing what
// changed (spec.md §4.5).
func DiffBoard(b *board.Board, scan ScanResult, tol Tolerances) *Diff {
	d := &Diff{SkippedEntities: scan.Skipped}

	if cd := diffCollection(b.Drawings, scan.Drawings, tol); !cd.IsEmpty() {
		d.Drawings = cd
	}
	if cd := diffCollection(b.Footprints, scan.Footprints, tol); !cd.IsEmpty() {
		d.Footprints = cd
	}
	if cd := diffCollection(b.Vias, scan.Vias, tol); !cd.IsEmpty() {
		d.Vias = cd
	}

	return d
}
