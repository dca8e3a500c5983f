// Package demoadapter is an in-memory stand-in for a real ECAD/MCAD tool
// binding, used only by cmd/host and cmd/peer. Geometry back-ends are
// out of scope for this repo (spec.md §1); this package exists so the
// demo mains have something that satisfies adapter.Scanner/adapter.Drawer
// without shelling out to an actual CAD application.
package demoadapter

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/boardbridge/sync/board"
	"github.com/boardbridge/sync/diff"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Adapter is a mutex-guarded in-memory "native document": a board.Board
// that a demo main can mutate directly (simulating a user edit) between
// sync cycles, and that satisfies adapter.Scanner/adapter.Drawer for the
// synccontroller.Controller driving the other side of the conversation.
type Adapter struct {
	mu  sync.Mutex
	doc *board.Board
}

// New returns an Adapter seeded with doc, or an empty board if doc is
// nil.
func New(doc *board.Board) *Adapter {
	if doc == nil {
		doc = board.NewBoard()
	}
	return &Adapter{doc: doc}
}

// Edit runs fn with exclusive access to the underlying document, for a
// demo main to simulate a local user edit between sync cycles.
func (a *Adapter) Edit(fn func(doc *board.Board)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.doc)
}

// Scan returns the full current document (spec.md §4.9, AwaitingPcb).
func (a *Adapter) Scan() (*board.Board, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneBoard(a.doc), nil
}

// ScanDelta returns every entity currently in the document; the Differ
// compares this against prior to compute what changed (spec.md §4.5).
func (a *Adapter) ScanDelta(prior *board.Board) (diff.ScanResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return diff.ScanResult{
		Drawings:   a.doc.Drawings.All(),
		Footprints: a.doc.Footprints.All(),
		Vias:       a.doc.Vias.All(),
	}, nil
}

// DrawInitial replaces the document with b (spec.md §4.9, HasModel entry
// side effect on the cold-sync Peer).
func (a *Adapter) DrawInitial(b *board.Board) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doc = cloneBoard(b)
	return nil
}

func mintKiid() string {
	return "kc-" + uuid.NewString()
}

// CreateDrawing draws d into the document under a freshly minted
// permanent kiid and returns it (spec.md §4.8).
func (a *Adapter) CreateDrawing(d *board.Drawing) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	kiid := mintKiid()
	copy := *d
	copy.KIID = kiid
	a.doc.Drawings.Upsert(&copy)
	return kiid, nil
}

// CreateFootprint draws f into the document under a freshly minted kiid.
func (a *Adapter) CreateFootprint(f *board.Footprint) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	kiid := mintKiid()
	copy := *f
	copy.KIID = kiid
	a.doc.Footprints.Upsert(&copy)
	return kiid, nil
}

// CreateVia draws v into the document under a freshly minted kiid.
func (a *Adapter) CreateVia(v *board.Via) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	kiid := mintKiid()
	copy := *v
	copy.KIID = kiid
	a.doc.Vias.Upsert(&copy)
	return kiid, nil
}

// DeleteDrawing removes kiid from the document.
func (a *Adapter) DeleteDrawing(kiid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doc.Drawings.Remove(kiid)
	return nil
}

// DeleteFootprint removes kiid from the document.
func (a *Adapter) DeleteFootprint(kiid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doc.Footprints.Remove(kiid)
	return nil
}

// DeleteVia removes kiid from the document.
func (a *Adapter) DeleteVia(kiid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doc.Vias.Remove(kiid)
	return nil
}

// UpdateDrawing applies props to the document's copy of kiid, the same
// per-shape property handling update.Updater uses on its own BoardModel
// copy (spec.md §4.8), kept independently here because a native document
// mutation is this package's whole purpose.
func (a *Adapter) UpdateDrawing(kiid string, props map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.doc.Drawings.Lookup(kiid)
	if !ok {
		return nil
	}
	if err := applyDrawingProps(d, props); err != nil {
		return err
	}
	a.doc.Drawings.Upsert(d)
	return nil
}

// UpdateFootprint applies props to the document's copy of kiid.
func (a *Adapter) UpdateFootprint(kiid string, props map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, ok := a.doc.Footprints.Lookup(kiid)
	if !ok {
		return nil
	}
	if err := applyFootprintProps(f, props); err != nil {
		return err
	}
	a.doc.Footprints.Upsert(f)
	return nil
}

// UpdateVia applies props to the document's copy of kiid.
func (a *Adapter) UpdateVia(kiid string, props map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.doc.Vias.Lookup(kiid)
	if !ok {
		return nil
	}
	if err := applyViaProps(v, props); err != nil {
		return err
	}
	a.doc.Vias.Upsert(v)
	return nil
}

func cloneBoard(b *board.Board) *board.Board {
	data, err := jsonAPI.Marshal(b)
	if err != nil {
		panic(fmt.Sprintf("demoadapter: clone: marshal: %v", err))
	}
	clone := board.NewBoard()
	if err := jsonAPI.Unmarshal(data, clone); err != nil {
		panic(fmt.Sprintf("demoadapter: clone: unmarshal: %v", err))
	}
	return clone
}
