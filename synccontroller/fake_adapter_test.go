package synccontroller_test

import (
	"fmt"
	"sync"

	"github.com/boardbridge/sync/board"
	"github.com/boardbridge/sync/diff"
)

// fakeAdapter is a scripted adapter.Scanner/adapter.Drawer double: tests
// set scanBoard/scanDeltaFunc directly before driving a cycle. It satisfies
// both interfaces without gomock's call-order bookkeeping, which is
// awkward for a multi-round protocol exchange.
type fakeAdapter struct {
	mu sync.Mutex

	scanBoard *board.Board

	// scanDeltaFunc computes the next ScanDelta result from the live
	// prior model at call time. Left nil, ScanDelta mirrors prior
	// exactly (no local change) -- the safe default, since a stale
	// static snapshot would make diffCollection treat every entity
	// absent from it as removed.
	scanDeltaFunc func(prior *board.Board) diff.ScanResult

	nextPermanentKiid int
	created           []string
	updated           []string
	deleted           []string

	failNextCreate bool
}

func (a *fakeAdapter) Scan() (*board.Board, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scanBoard, nil
}

func (a *fakeAdapter) ScanDelta(prior *board.Board) (diff.ScanResult, error) {
	a.mu.Lock()
	fn := a.scanDeltaFunc
	a.mu.Unlock()
	if fn == nil {
		return emptyScanFrom(prior), nil
	}
	return fn(prior), nil
}

func (a *fakeAdapter) DrawInitial(b *board.Board) error {
	return nil
}

func (a *fakeAdapter) mintKiid() string {
	a.nextPermanentKiid++
	return fmt.Sprintf("kc-permanent-%d", a.nextPermanentKiid)
}

func (a *fakeAdapter) CreateDrawing(d *board.Drawing) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failNextCreate {
		a.failNextCreate = false
		return "", fmt.Errorf("fakeAdapter: create drawing failed")
	}
	kiid := a.mintKiid()
	a.created = append(a.created, kiid)
	return kiid, nil
}

func (a *fakeAdapter) CreateFootprint(f *board.Footprint) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	kiid := a.mintKiid()
	a.created = append(a.created, kiid)
	return kiid, nil
}

func (a *fakeAdapter) CreateVia(v *board.Via) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	kiid := a.mintKiid()
	a.created = append(a.created, kiid)
	return kiid, nil
}

func (a *fakeAdapter) DeleteDrawing(kiid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleted = append(a.deleted, kiid)
	return nil
}
func (a *fakeAdapter) DeleteFootprint(kiid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleted = append(a.deleted, kiid)
	return nil
}
func (a *fakeAdapter) DeleteVia(kiid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleted = append(a.deleted, kiid)
	return nil
}

func (a *fakeAdapter) UpdateDrawing(kiid string, props map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.updated = append(a.updated, kiid)
	return nil
}
func (a *fakeAdapter) UpdateFootprint(kiid string, props map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.updated = append(a.updated, kiid)
	return nil
}
func (a *fakeAdapter) UpdateVia(kiid string, props map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.updated = append(a.updated, kiid)
	return nil
}

func emptyScanFrom(b *board.Board) diff.ScanResult {
	return diff.ScanResult{
		Drawings:   b.Drawings.All(),
		Footprints: b.Footprints.All(),
		Vias:       b.Vias.All(),
	}
}
