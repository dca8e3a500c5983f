// Package adapter declares the narrow interfaces the core calls into the
// ECAD/MCAD back-ends through (spec.md §6). No implementation lives
// here: the geometry back-ends are out of scope (spec.md §1); this
// package exists so the rest of the core can depend on an interface
// instead of a concrete tool binding, the same narrow-interface-plus-
// private-impl shape as the teacher's api.Driver.
package adapter

import (
	"github.com/boardbridge/sync/board"
	"github.com/boardbridge/sync/diff"
)

// Scanner produces a fresh view of the native document.
type Scanner interface {
	// Scan returns a full Board, used to answer every REQPCB, the first
	// of a session and any later resync (spec.md §4.9, AwaitingPcb ->
	// HasModel).
	Scan() (*board.Board, error)

	// ScanDelta returns the collection-by-collection fresh entity lists
	// the Differ compares against prior (spec.md §4.5's "fresh scan").
	// Any entity the adapter could not resolve (e.g. a missing 3D model
	// file) is omitted and reported as a diff.SkipRecord instead of
	// failing the whole scan (spec.md §7, AdapterFailure).
	ScanDelta(prior *board.Board) (diff.ScanResult, error)
}

// Drawer mutates the native document to match the core's data model.
type Drawer interface {
	// DrawInitial renders every entity of b into the native document
	// (spec.md §4.9, HasModel's entry side effect).
	DrawInitial(b *board.Board) error

	// CreateDrawing, CreateFootprint, and CreateVia draw a newly added
	// entity and return the tool-assigned permanent kiid (spec.md §4.8).
	// The passed-in entity's own kiid may be a provisional
	// "added-in-peer_*" placeholder; the returned kiid is what the
	// Updater's identity repair step keys on.
	CreateDrawing(d *board.Drawing) (string, error)
	CreateFootprint(f *board.Footprint) (string, error)
	CreateVia(v *board.Via) (string, error)

	// DeleteDrawing, DeleteFootprint, and DeleteVia remove the native
	// object for a removed kiid.
	DeleteDrawing(kiid string) error
	DeleteFootprint(kiid string) error
	DeleteVia(kiid string) error

	// UpdateDrawing, UpdateFootprint, and UpdateVia apply a {prop: value}
	// map to the native object for kiid — the property-specific handlers
	// spec.md §4.8 describes (move-position, change-radius, change-layer,
	// re-import-models, ...).
	UpdateDrawing(kiid string, props map[string]any) error
	UpdateFootprint(kiid string, props map[string]any) error
	UpdateVia(kiid string, props map[string]any) error
}
