package board_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/boardbridge/sync/board"
)

var _ = Describe("ComputeHash", func() {
	It("is stable across repeated calls on the same content (property P1)", func() {
		via := &board.Via{Center: board.Point{X: 1000, Y: 2000}, Radius: 500}
		h1 := board.ComputeHash(via)
		h2 := board.ComputeHash(via)
		Expect(h1).To(Equal(h2))
		Expect(h1).To(HaveLen(32)) // md5-width hex
	})

	It("changes when hashable content changes", func() {
		via := &board.Via{Center: board.Point{X: 1000, Y: 2000}, Radius: 500}
		before := board.ComputeHash(via)
		via.Radius = 600
		after := board.ComputeHash(via)
		Expect(before).NotTo(Equal(after))
	})

	It("ignores kiid, ID, and hash fields", func() {
		a := &board.Via{EntityMeta: board.EntityMeta{KIID: "k1", ID: 1}, Center: board.Point{X: 1, Y: 2}, Radius: 3}
		b := &board.Via{EntityMeta: board.EntityMeta{KIID: "k2", ID: 99}, Center: board.Point{X: 1, Y: 2}, Radius: 3}
		Expect(board.ComputeHash(a)).To(Equal(board.ComputeHash(b)))
	})

	It("satisfies the hash-fixpoint invariant after Rehash (P1)", func() {
		via := &board.Via{Center: board.Point{X: 7, Y: 8}, Radius: 9}
		h := board.Rehash(via)
		Expect(via.Hash).To(Equal(h))
		Expect(board.ComputeHash(via)).To(Equal(via.Hash))
	})
})

var _ = Describe("IsProvisional", func() {
	It("recognizes the peer-side placeholder prefix", func() {
		Expect(board.IsProvisional("added-in-peer_abc123")).To(BeTrue())
	})

	It("rejects permanent kiids", func() {
		Expect(board.IsProvisional("kc-uuid-42")).To(BeFalse())
	})
})
