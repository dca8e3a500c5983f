package board

import (
	"fmt"
)

// ShapeKind discriminates the Drawing sum type on the wire. Code that
// branches on the shape of a Drawing switches on the DrawingShape's
// concrete Go type, never on this string (spec.md §9): ShapeKind exists
// only as the wire-format tag.
type ShapeKind string

const (
	ShapeLine    ShapeKind = "Line"
	ShapeRect    ShapeKind = "Rect"
	ShapePolygon ShapeKind = "Polygon"
	ShapeArc     ShapeKind = "Arc"
	ShapeCircle  ShapeKind = "Circle"
)

// DrawingShape is the sealed sum type for the five drawing shapes of
// spec.md §3. Only the types defined in this file implement it.
type DrawingShape interface {
	Kind() ShapeKind
	fields() map[string]any
	sealedDrawingShape()
}

// LineShape is a two-point line segment.
type LineShape struct {
	Start, End Point
}

func (LineShape) Kind() ShapeKind          { return ShapeLine }
func (LineShape) sealedDrawingShape()      {}
func (s LineShape) fields() map[string]any { return map[string]any{"start": s.Start, "end": s.End} }

// RectOrPolygonShape backs both Rect and Polygon: an ordered point list
// whose first two points are swapped on scan (invariant I5) so both tools
// agree on a canonical corner order.
type RectOrPolygonShape struct {
	kind   ShapeKind
	Points []Point
}

// NewRectShape builds a Rect shape, canonicalizing point order.
func NewRectShape(points []Point) RectOrPolygonShape {
	return RectOrPolygonShape{kind: ShapeRect, Points: CanonicalPointOrder(points)}
}

// NewPolygonShape builds a Polygon shape, canonicalizing point order.
func NewPolygonShape(points []Point) RectOrPolygonShape {
	return RectOrPolygonShape{kind: ShapePolygon, Points: CanonicalPointOrder(points)}
}

func (s RectOrPolygonShape) Kind() ShapeKind { return s.kind }
func (RectOrPolygonShape) sealedDrawingShape() {}
func (s RectOrPolygonShape) fields() map[string]any {
	return map[string]any{"points": s.Points}
}

// CanonicalPointOrder swaps the first two points of a Rect/Polygon point
// list exactly once, matching invariant I5. Scanning the same geometry
// twice must produce the same list (property P7), so it is applied once
// per scan. It is not idempotent: a second call on its own output
// restores the original order. That is why Drawing.UnmarshalJSON and the
// Differ keep stored points as they are and never canonicalize them
// again.
func CanonicalPointOrder(points []Point) []Point {
	out := make([]Point, len(points))
	copy(out, points)
	if len(out) >= 2 {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// ArcShape is a three-point arc: start, midpoint, end.
type ArcShape struct {
	Start, Mid, End Point
}

func (ArcShape) Kind() ShapeKind { return ShapeArc }
func (ArcShape) sealedDrawingShape() {}
func (s ArcShape) fields() map[string]any {
	return map[string]any{"points": []Point{s.Start, s.Mid, s.End}}
}

// CircleShape is a center point plus an integer radius.
type CircleShape struct {
	Center Point
	Radius int
}

func (CircleShape) Kind() ShapeKind { return ShapeCircle }
func (CircleShape) sealedDrawingShape() {}
func (s CircleShape) fields() map[string]any {
	return map[string]any{"center": s.Center, "radius": s.Radius}
}

// Drawing is a board-outline or silkscreen-free graphical primitive: one
// of Line, Rect, Polygon, Arc, or Circle (spec.md §3).
type Drawing struct {
	EntityMeta
	Shape DrawingShape
}

func (d *Drawing) Kiid() string        { return d.KIID }
func (d *Drawing) SetKiid(k string)    { d.KIID = k }
func (d *Drawing) GetID() int          { return d.ID }
func (d *Drawing) SetID(id int)        { d.ID = id }
func (d *Drawing) GetHash() string     { return d.Hash }
func (d *Drawing) SetHash(h string)    { d.Hash = h }

// HashableFields returns the shape discriminator plus the shape's own
// fields; kiid/ID/hash are excluded per invariant I2.
func (d *Drawing) HashableFields() map[string]any {
	fields := d.Shape.fields()
	fields["shape"] = string(d.Shape.Kind())
	return fields
}

// MarshalJSON flattens the drawing into {kiid, ID, hash, shape, <shape
// fields>}, matching the wire format of spec.md §3.
func (d *Drawing) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"kiid":  d.KIID,
		"ID":    d.ID,
		"hash":  d.Hash,
		"shape": string(d.Shape.Kind()),
	}
	for k, v := range d.Shape.fields() {
		out[k] = v
	}
	return jsonAPI.Marshal(out)
}

// UnmarshalJSON reconstructs the tagged DrawingShape from the flat wire
// object, dispatching on "shape" exactly once at the JSON boundary —
// everywhere else in this codebase dispatches on the Go type instead.
func (d *Drawing) UnmarshalJSON(data []byte) error {
	var raw struct {
		KIID   string    `json:"kiid"`
		ID     int       `json:"ID"`
		Hash   string    `json:"hash"`
		Shape  ShapeKind `json:"shape"`
		Start  *Point    `json:"start"`
		End    *Point    `json:"end"`
		Points []Point   `json:"points"`
		Center *Point    `json:"center"`
		Radius *int      `json:"radius"`
	}
	if err := jsonAPI.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("drawing: %w", err)
	}

	d.KIID, d.ID, d.Hash = raw.KIID, raw.ID, raw.Hash

	switch raw.Shape {
	case ShapeLine:
		if raw.Start == nil || raw.End == nil {
			return fmt.Errorf("drawing: Line missing start/end")
		}
		d.Shape = LineShape{Start: *raw.Start, End: *raw.End}
	case ShapeRect:
		d.Shape = RectOrPolygonShape{kind: ShapeRect, Points: raw.Points}
	case ShapePolygon:
		d.Shape = RectOrPolygonShape{kind: ShapePolygon, Points: raw.Points}
	case ShapeArc:
		if len(raw.Points) != 3 {
			return fmt.Errorf("drawing: Arc requires exactly 3 points, got %d", len(raw.Points))
		}
		d.Shape = ArcShape{Start: raw.Points[0], Mid: raw.Points[1], End: raw.Points[2]}
	case ShapeCircle:
		if raw.Center == nil || raw.Radius == nil {
			return fmt.Errorf("drawing: Circle missing center/radius")
		}
		d.Shape = CircleShape{Center: *raw.Center, Radius: *raw.Radius}
	default:
		return fmt.Errorf("drawing: unknown shape %q", raw.Shape)
	}

	return nil
}
