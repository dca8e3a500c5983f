// Package update implements the Updater (spec.md §4.8, component C8):
// it applies a merged Diff to a board.Board, calling the adapter.Drawer
// for every native-document mutation, and re-hashes every entity it
// touches. It also performs the Host-side identity repair that replaces
// a Peer-minted provisional kiid with the tool-assigned permanent one.
package update

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/boardbridge/sync/adapter"
	"github.com/boardbridge/sync/board"
	"github.com/boardbridge/sync/diff"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Updater applies merged Diffs to a board.Board through a Drawer.
type Updater struct {
	drawer adapter.Drawer
	log    *zap.Logger
}

// New returns an Updater that mutates the native document through
// drawer.
func New(drawer adapter.Drawer, log *zap.Logger) *Updater {
	return &Updater{drawer: drawer, log: log}
}

// Apply applies d to b's three collections. It returns an identity-
// repair follow-up Diff (spec.md §4.8) covering any Added entity whose
// kiid was still a Peer-side provisional placeholder when d arrived —
// non-empty only when the caller is the Host applying a Peer-authored
// Diff — and the list of entities an AdapterFailure forced it to skip
// (spec.md §7; skipping one entity never aborts the rest of the cycle).
func (u *Updater) Apply(d *diff.Diff, b *board.Board) (repair *diff.Diff, skipped []diff.SkipRecord) {
	drawingRepair, s := u.applyDrawings(d.Drawings, b.Drawings)
	skipped = append(skipped, s...)

	footprintRepair, s := u.applyFootprints(d.Footprints, b.Footprints)
	skipped = append(skipped, s...)

	viaRepair, s := u.applyVias(d.Vias, b.Vias)
	skipped = append(skipped, s...)

	repair = &diff.Diff{}
	if !drawingRepair.IsEmpty() {
		repair.Drawings = drawingRepair
	}
	if !footprintRepair.IsEmpty() {
		repair.Footprints = footprintRepair
	}
	if !viaRepair.IsEmpty() {
		repair.Vias = viaRepair
	}
	if repair.IsEmpty() {
		repair = nil
	}
	return repair, skipped
}

func (u *Updater) logSkip(skipped *[]diff.SkipRecord, collection, kiid string, err error) {
	u.log.Warn("update: adapter failure, skipping entity",
		zap.String("collection", collection), zap.String("kiid", kiid), zap.Error(err))
	*skipped = append(*skipped, diff.SkipRecord{Collection: collection, KIID: kiid, Reason: err.Error()})
}

func (u *Updater) applyDrawings(cd *diff.CollectionDiff[*board.Drawing], coll *board.Collection[*board.Drawing]) (*diff.CollectionDiff[*board.Drawing], []diff.SkipRecord) {
	repair := &diff.CollectionDiff[*board.Drawing]{}
	var skipped []diff.SkipRecord
	if cd == nil {
		return repair, skipped
	}

	for _, kiid := range cd.Removed {
		if err := u.drawer.DeleteDrawing(kiid); err != nil {
			u.logSkip(&skipped, "drawings", kiid, err)
			continue
		}
		coll.Remove(kiid)
	}

	for _, d := range cd.Added {
		original := d.Kiid()
		provisional := board.IsProvisional(original)

		permanent, err := u.drawer.CreateDrawing(d)
		if err != nil {
			u.logSkip(&skipped, "drawings", original, err)
			continue
		}
		if provisional {
			d.SetKiid(permanent)
		}
		board.Rehash(d)
		coll.Upsert(d)

		if provisional {
			repair.Removed = append(repair.Removed, original)
			repair.Added = append(repair.Added, d)
		}
	}

	for _, ch := range cd.Changed {
		entity, ok := coll.Lookup(ch.KIID)
		if !ok {
			u.logSkip(&skipped, "drawings", ch.KIID, fmt.Errorf("update: no such drawing"))
			continue
		}
		if err := applyDrawingProps(entity, ch.Props); err != nil {
			u.logSkip(&skipped, "drawings", ch.KIID, err)
			continue
		}
		if err := u.drawer.UpdateDrawing(ch.KIID, ch.Props); err != nil {
			u.logSkip(&skipped, "drawings", ch.KIID, err)
			continue
		}
		board.Rehash(entity)
		coll.Upsert(entity)
	}

	return repair, skipped
}

func (u *Updater) applyFootprints(cd *diff.CollectionDiff[*board.Footprint], coll *board.Collection[*board.Footprint]) (*diff.CollectionDiff[*board.Footprint], []diff.SkipRecord) {
	repair := &diff.CollectionDiff[*board.Footprint]{}
	var skipped []diff.SkipRecord
	if cd == nil {
		return repair, skipped
	}

	for _, kiid := range cd.Removed {
		if err := u.drawer.DeleteFootprint(kiid); err != nil {
			u.logSkip(&skipped, "footprints", kiid, err)
			continue
		}
		coll.Remove(kiid)
	}

	// Peer-added footprints are treated identically to drawings for
	// conflict/repair purposes (Open Question 4, SPEC_FULL.md §6).
	for _, f := range cd.Added {
		original := f.Kiid()
		provisional := board.IsProvisional(original)

		permanent, err := u.drawer.CreateFootprint(f)
		if err != nil {
			u.logSkip(&skipped, "footprints", original, err)
			continue
		}
		if provisional {
			f.SetKiid(permanent)
		}
		board.Rehash(f)
		coll.Upsert(f)

		if provisional {
			repair.Removed = append(repair.Removed, original)
			repair.Added = append(repair.Added, f)
		}
	}

	for _, ch := range cd.Changed {
		entity, ok := coll.Lookup(ch.KIID)
		if !ok {
			u.logSkip(&skipped, "footprints", ch.KIID, fmt.Errorf("update: no such footprint"))
			continue
		}
		if err := applyFootprintProps(entity, ch.Props); err != nil {
			u.logSkip(&skipped, "footprints", ch.KIID, err)
			continue
		}
		if err := u.drawer.UpdateFootprint(ch.KIID, ch.Props); err != nil {
			u.logSkip(&skipped, "footprints", ch.KIID, err)
			continue
		}
		board.Rehash(entity)
		coll.Upsert(entity)
	}

	return repair, skipped
}

func (u *Updater) applyVias(cd *diff.CollectionDiff[*board.Via], coll *board.Collection[*board.Via]) (*diff.CollectionDiff[*board.Via], []diff.SkipRecord) {
	repair := &diff.CollectionDiff[*board.Via]{}
	var skipped []diff.SkipRecord
	if cd == nil {
		return repair, skipped
	}

	for _, kiid := range cd.Removed {
		if err := u.drawer.DeleteVia(kiid); err != nil {
			u.logSkip(&skipped, "vias", kiid, err)
			continue
		}
		coll.Remove(kiid)
	}

	for _, v := range cd.Added {
		original := v.Kiid()
		provisional := board.IsProvisional(original)

		permanent, err := u.drawer.CreateVia(v)
		if err != nil {
			u.logSkip(&skipped, "vias", original, err)
			continue
		}
		if provisional {
			v.SetKiid(permanent)
		}
		board.Rehash(v)
		coll.Upsert(v)

		if provisional {
			repair.Removed = append(repair.Removed, original)
			repair.Added = append(repair.Added, v)
		}
	}

	for _, ch := range cd.Changed {
		entity, ok := coll.Lookup(ch.KIID)
		if !ok {
			u.logSkip(&skipped, "vias", ch.KIID, fmt.Errorf("update: no such via"))
			continue
		}
		if err := applyViaProps(entity, ch.Props); err != nil {
			u.logSkip(&skipped, "vias", ch.KIID, err)
			continue
		}
		if err := u.drawer.UpdateVia(ch.KIID, ch.Props); err != nil {
			u.logSkip(&skipped, "vias", ch.KIID, err)
			continue
		}
		board.Rehash(entity)
		coll.Upsert(entity)
	}

	return repair, skipped
}
