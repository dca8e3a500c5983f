package accumulator_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/boardbridge/sync/accumulator"
	"github.com/boardbridge/sync/board"
	"github.com/boardbridge/sync/diff"
)

var _ = Describe("Accumulator", func() {
	It("appends added items across folds", func() {
		a := accumulator.New()
		v1 := &board.Via{Radius: 1}
		v1.KIID = "v1"
		v2 := &board.Via{Radius: 2}
		v2.KIID = "v2"

		a.Fold(&diff.Diff{Vias: &diff.CollectionDiff[*board.Via]{Added: []*board.Via{v1}}})
		a.Fold(&diff.Diff{Vias: &diff.CollectionDiff[*board.Via]{Added: []*board.Via{v2}}})

		Expect(a.Pending().Vias.Added).To(ConsistOf(v1, v2))
	})

	It("appends removed kiids across folds", func() {
		a := accumulator.New()
		a.Fold(&diff.Diff{Drawings: &diff.CollectionDiff[*board.Drawing]{Removed: []string{"d1"}}})
		a.Fold(&diff.Diff{Drawings: &diff.CollectionDiff[*board.Drawing]{Removed: []string{"d2"}}})

		Expect(a.Pending().Drawings.Removed).To(ConsistOf("d1", "d2"))
	})

	It("merges changed entries by kiid, latest property value wins (property P4)", func() {
		a := accumulator.New()
		a.Fold(&diff.Diff{Footprints: &diff.CollectionDiff[*board.Footprint]{
			Changed: []diff.ChangedEntry{{KIID: "f1", Props: map[string]any{"rot": 10.0}}},
		}})
		a.Fold(&diff.Diff{Footprints: &diff.CollectionDiff[*board.Footprint]{
			Changed: []diff.ChangedEntry{{KIID: "f1", Props: map[string]any{"rot": 20.0}}},
		}})
		a.Fold(&diff.Diff{Footprints: &diff.CollectionDiff[*board.Footprint]{
			Changed: []diff.ChangedEntry{{KIID: "f1", Props: map[string]any{"rot": 90.0}}},
		}})

		Expect(a.Pending().Footprints.Changed).To(HaveLen(1))
		Expect(a.Pending().Footprints.Changed[0].Props).To(HaveKeyWithValue("rot", 90.0))
	})

	It("grows the property set instead of duplicating entries for distinct keys", func() {
		a := accumulator.New()
		a.Fold(&diff.Diff{Footprints: &diff.CollectionDiff[*board.Footprint]{
			Changed: []diff.ChangedEntry{{KIID: "f1", Props: map[string]any{"rot": 90.0}}},
		}})
		a.Fold(&diff.Diff{Footprints: &diff.CollectionDiff[*board.Footprint]{
			Changed: []diff.ChangedEntry{{KIID: "f1", Props: map[string]any{"pos": board.Point{X: 1, Y: 2}}}},
		}})

		Expect(a.Pending().Footprints.Changed).To(HaveLen(1))
		Expect(a.Pending().Footprints.Changed[0].Props).To(HaveKeyWithValue("rot", 90.0))
		Expect(a.Pending().Footprints.Changed[0].Props).To(HaveKeyWithValue("pos", board.Point{X: 1, Y: 2}))
	})

	It("clears to an empty pending diff", func() {
		a := accumulator.New()
		a.Fold(&diff.Diff{Vias: &diff.CollectionDiff[*board.Via]{Removed: []string{"v1"}}})
		a.Clear()
		Expect(a.Pending().IsEmpty()).To(BeTrue())
	})

	It("tolerates folding a nil diff", func() {
		a := accumulator.New()
		Expect(func() { a.Fold(nil) }).NotTo(Panic())
		Expect(a.Pending().IsEmpty()).To(BeTrue())
	})
})
