// Package testutil provides small, deterministic value generators for
// the property-based tests of spec.md §8 (P1-P8). Grounded on the
// teacher's util/valgen.go closures rather than a quickcheck-style
// fuzzer (the retrieval pack carries no gopter/rapid dependency).
package testutil

import (
	"strconv"

	"github.com/boardbridge/sync/board"
)

// KiidGen returns a closure producing an unbounded sequence of distinct
// kiids "<prefix>-1", "<prefix>-2", ... (property P5: kiid uniqueness
// tests drive a sequence of scans off this generator and assert no
// collisions ever occur).
func KiidGen(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

// CoordGen returns a closure producing board.Points that walk away from
// (startX, startY) by (stepX, stepY) on every call, far enough apart
// that two successive points never collide under any tolerance a test
// configures.
func CoordGen(startX, startY, stepX, stepY int) func() board.Point {
	x, y := startX, startY
	first := true
	return func() board.Point {
		if first {
			first = false
			return board.Point{X: x, Y: y}
		}
		x += stepX
		y += stepY
		return board.Point{X: x, Y: y}
	}
}

// ConstGen returns a closure that always returns v, the same shape as
// the teacher's MakeConstGen.
func ConstGen[T any](v T) func() T {
	return func() T {
		return v
	}
}
