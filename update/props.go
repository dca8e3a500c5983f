package update

import (
	"fmt"

	"github.com/boardbridge/sync/board"
)

// coerceInto decodes a changed-property value (which may already be a
// native Go value from an in-process Merger, or a generic JSON-decoded
// any from the wire) into out, by round-tripping it through the same
// canonical JSON codec used everywhere else (board.Point/board.Point3
// already define the wire array shape on their (Un)MarshalJSON methods,
// so this one helper covers every property type without a parallel
// type-by-type coercion table).
func coerceInto(v any, out any) error {
	data, err := jsonAPI.Marshal(v)
	if err != nil {
		return fmt.Errorf("update: marshal %T: %w", v, err)
	}
	if err := jsonAPI.Unmarshal(data, out); err != nil {
		return fmt.Errorf("update: unmarshal into %T: %w", out, err)
	}
	return nil
}

// applyDrawingProps mutates d's shape in place from a changed-props map
// (spec.md §4.8). Only the keys present in props are touched.
func applyDrawingProps(d *board.Drawing, props map[string]any) error {
	switch shape := d.Shape.(type) {
	case board.LineShape:
		if v, ok := props["start"]; ok {
			if err := coerceInto(v, &shape.Start); err != nil {
				return err
			}
		}
		if v, ok := props["end"]; ok {
			if err := coerceInto(v, &shape.End); err != nil {
				return err
			}
		}
		d.Shape = shape
	case board.RectOrPolygonShape:
		if v, ok := props["points"]; ok {
			var pts []board.Point
			if err := coerceInto(v, &pts); err != nil {
				return err
			}
			shape.Points = pts
		}
		d.Shape = shape
	case board.ArcShape:
		if v, ok := props["points"]; ok {
			var pts [3]board.Point
			if err := coerceInto(v, &pts); err != nil {
				return err
			}
			shape.Start, shape.Mid, shape.End = pts[0], pts[1], pts[2]
		}
		d.Shape = shape
	case board.CircleShape:
		if v, ok := props["center"]; ok {
			if err := coerceInto(v, &shape.Center); err != nil {
				return err
			}
		}
		if v, ok := props["radius"]; ok {
			if err := coerceInto(v, &shape.Radius); err != nil {
				return err
			}
		}
		d.Shape = shape
	default:
		return fmt.Errorf("update: drawing %s: unrecognized shape type %T", d.KIID, d.Shape)
	}
	return nil
}

// applyFootprintProps mutates f in place from a changed-props map.
func applyFootprintProps(f *board.Footprint, props map[string]any) error {
	for k, v := range props {
		switch k {
		case "ref":
			if err := coerceInto(v, &f.Ref); err != nil {
				return err
			}
		case "pos":
			if err := coerceInto(v, &f.Pos); err != nil {
				return err
			}
		case "rot":
			if err := coerceInto(v, &f.Rot); err != nil {
				return err
			}
		case "layer":
			var layer string
			if err := coerceInto(v, &layer); err != nil {
				return err
			}
			f.Layer = board.Layer(layer)
		case "pads_pth":
			if err := coerceInto(v, &f.PadsPTH); err != nil {
				return err
			}
		case "3d_models":
			if err := coerceInto(v, &f.Models3D); err != nil {
				return err
			}
		default:
			return fmt.Errorf("update: footprint %s: unrecognized property %q", f.KIID, k)
		}
	}
	return nil
}

// applyViaProps mutates v in place from a changed-props map.
func applyViaProps(v *board.Via, props map[string]any) error {
	for k, val := range props {
		switch k {
		case "center":
			if err := coerceInto(val, &v.Center); err != nil {
				return err
			}
		case "radius":
			if err := coerceInto(val, &v.Radius); err != nil {
				return err
			}
		default:
			return fmt.Errorf("update: via %s: unrecognized property %q", v.KIID, k)
		}
	}
	return nil
}
