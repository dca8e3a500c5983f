package diff

import (
	"bytes"
	"math"
	"reflect"

	"github.com/boardbridge/sync/board"
)

// Tolerances carries the two fuzzy-equality thresholds the Differ applies
// while walking shared keys (spec.md §4.5, §9): rad/deg round-tripping
// noise on rotation, and integer placement jitter on position.
type Tolerances struct {
	// PosTolerance bounds the per-axis difference (canonical units) that
	// still counts as "unchanged" for a "pos" field.
	PosTolerance int
	// RotTolerance bounds the degree difference that still counts as
	// "unchanged" for a "rot" field.
	RotTolerance float64
}

// compareFields returns, for every key present in stored or fresh, the
// fresh value for any key whose value differs by more than the
// configured tolerance — i.e. the {key: new_value} map spec.md §4.5
// step 2 describes.
func compareFields(stored, fresh map[string]any, tol Tolerances) map[string]any {
	keys := make(map[string]bool, len(stored)+len(fresh))
	for k := range stored {
		keys[k] = true
	}
	for k := range fresh {
		keys[k] = true
	}

	diffs := make(map[string]any)
	for k := range keys {
		sv, sok := stored[k]
		fv, fok := fresh[k]
		if sok && fok && fieldsEqual(k, sv, fv, tol) {
			continue
		}
		if !sok && !fok {
			continue
		}
		diffs[k] = fv
	}
	return diffs
}

func fieldsEqual(key string, storedVal, freshVal any, tol Tolerances) bool {
	switch key {
	case "rot":
		sv, sok := asFloat(storedVal)
		fv, fok := asFloat(freshVal)
		if sok && fok {
			sv, fv = board.NormalizeRotation(sv), board.NormalizeRotation(fv)
			d := math.Mod(sv-fv+540, 360) - 180
			return math.Abs(d) <= tol.RotTolerance
		}
	case "pos":
		sp, sok := storedVal.(board.Point)
		fp, fok := freshVal.(board.Point)
		if sok && fok {
			return absInt(sp.X-fp.X) <= tol.PosTolerance && absInt(sp.Y-fp.Y) <= tol.PosTolerance
		}
	}
	return deepJSONEqual(storedVal, freshVal)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// deepJSONEqual compares two arbitrary field values by their canonical
// JSON encoding, falling back to reflect.DeepEqual for values jsoniter
// cannot marshal (which none of the hashable field types are, in
// practice — this is belt-and-suspenders for a generic comparator).
func deepJSONEqual(a, b any) bool {
	ab, errA := jsonAPI.Marshal(a)
	bb, errB := jsonAPI.Marshal(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(ab, bb)
}
