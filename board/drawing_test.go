package board_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/boardbridge/sync/board"
)

var _ = Describe("Drawing", func() {
	Describe("CanonicalPointOrder", func() {
		It("swaps the first two points exactly once", func() {
			pts := []board.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
			out := board.CanonicalPointOrder(pts)
			Expect(out).To(Equal([]board.Point{{X: 10, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 10}}))
		})

		It("is stable across repeated scans of the same rectangle (property P7)", func() {
			pts := []board.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
			first := board.NewRectShape(pts)
			second := board.NewRectShape(pts)
			Expect(first.Points).To(Equal(second.Points))
		})
	})

	Describe("JSON round-trip", func() {
		It("round-trips a Line", func() {
			d := &board.Drawing{
				EntityMeta: board.EntityMeta{KIID: "k1", ID: 1, Hash: "deadbeef"},
				Shape:      board.LineShape{Start: board.Point{X: 1, Y: 2}, End: board.Point{X: 3, Y: 4}},
			}
			data, err := d.MarshalJSON()
			Expect(err).NotTo(HaveOccurred())

			var out board.Drawing
			Expect(out.UnmarshalJSON(data)).To(Succeed())
			Expect(out.KIID).To(Equal("k1"))
			Expect(out.Shape).To(Equal(d.Shape))
		})

		It("round-trips a Circle", func() {
			d := &board.Drawing{
				EntityMeta: board.EntityMeta{KIID: "k2"},
				Shape:      board.CircleShape{Center: board.Point{X: 10000, Y: 20000}, Radius: 500},
			}
			data, err := d.MarshalJSON()
			Expect(err).NotTo(HaveOccurred())

			var out board.Drawing
			Expect(out.UnmarshalJSON(data)).To(Succeed())
			Expect(out.Shape).To(Equal(d.Shape))
		})

		It("round-trips an Arc's three points", func() {
			d := &board.Drawing{
				EntityMeta: board.EntityMeta{KIID: "k3"},
				Shape: board.ArcShape{
					Start: board.Point{X: 0, Y: 0},
					Mid:   board.Point{X: 5, Y: 5},
					End:   board.Point{X: 10, Y: 0},
				},
			}
			data, err := d.MarshalJSON()
			Expect(err).NotTo(HaveOccurred())

			var out board.Drawing
			Expect(out.UnmarshalJSON(data)).To(Succeed())
			Expect(out.Shape).To(Equal(d.Shape))
		})

		It("rejects an unknown shape tag", func() {
			var out board.Drawing
			err := out.UnmarshalJSON([]byte(`{"kiid":"k","shape":"Triangle"}`))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("HashableFields", func() {
		It("includes the shape discriminator", func() {
			d := &board.Drawing{Shape: board.CircleShape{Center: board.Point{X: 1, Y: 1}, Radius: 1}}
			Expect(d.HashableFields()).To(HaveKeyWithValue("shape", "Circle"))
		})
	})
})
