package diff_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/boardbridge/sync/board"
	"github.com/boardbridge/sync/diff"
	"github.com/boardbridge/sync/internal/testutil"
)

func viaAt(kiid string, center board.Point) *board.Via {
	v := &board.Via{Center: center, Radius: 250}
	v.KIID = kiid
	board.Rehash(v)
	return v
}

var _ = Describe("scan-then-apply convergence (property P3)", func() {
	It("leaves the applied board's hash equal to the scanned target's hash", func() {
		kiid := testutil.KiidGen("via")
		coord := testutil.CoordGen(1000, 1000, 2000, 1500)

		target := board.NewBoard()
		for i := 0; i < 10; i++ {
			target.Vias.Upsert(viaAt(kiid(), coord()))
		}

		applied := board.NewBoard()
		diff.DiffBoard(applied, diff.ScanResult{Vias: target.Vias.All()}, defaultTol)

		Expect(applied.HashBoard()).To(Equal(target.HashBoard()))
	})

	It("reaches the same fixpoint whether the scan arrives in one shot or across several incremental scans", func() {
		kiid := testutil.KiidGen("via")
		coord := testutil.CoordGen(0, 0, 500, 500)

		all := make([]*board.Via, 6)
		for i := range all {
			all[i] = viaAt(kiid(), coord())
		}

		oneShot := board.NewBoard()
		diff.DiffBoard(oneShot, diff.ScanResult{Vias: all}, defaultTol)

		incremental := board.NewBoard()
		diff.DiffBoard(incremental, diff.ScanResult{Vias: all[:3]}, defaultTol)
		diff.DiffBoard(incremental, diff.ScanResult{Vias: all}, defaultTol)

		Expect(incremental.HashBoard()).To(Equal(oneShot.HashBoard()))
	})
})

var _ = Describe("kiid uniqueness across repeated scans (property P5)", func() {
	It("never lets two distinct scans collide on the same kiid", func() {
		kiid := testutil.KiidGen("via")
		coord := testutil.CoordGen(0, 0, 100, 100)

		b := board.NewBoard()
		var allKiids []string
		for round := 0; round < 20; round++ {
			v := viaAt(kiid(), coord())
			allKiids = append(allKiids, v.Kiid())
			diff.DiffBoard(b, diff.ScanResult{Vias: append(b.Vias.All(), v)}, defaultTol)
		}

		Expect(b.Vias.Len()).To(Equal(len(allKiids)))
		seen := make(map[string]bool, len(allKiids))
		for _, k := range allKiids {
			Expect(seen[k]).To(BeFalse(), "kiid %s collided", k)
			seen[k] = true
		}
	})
})
