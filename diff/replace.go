package diff

import "github.com/boardbridge/sync/board"

// replaceContent applies only the keys present in diffs to stored, the
// same per-key mutation update/props.go's applyFootprintProps/
// applyDrawingProps/applyViaProps use on the Updater side (spec.md §4.5
// step 2: "update the stored entity in place with each difference").
// A field compareFields found within tolerance is absent from diffs and
// therefore left untouched on stored, even if fresh's raw value is
// slightly different — overwriting it anyway would silently diverge
// stored's hash from what was actually sent to the peer.
func replaceContent(stored, fresh board.Entity, diffs map[string]any) {
	switch s := stored.(type) {
	case *board.Drawing:
		f := fresh.(*board.Drawing)
		if _, ok := diffs["shape"]; ok {
			// A shape-kind change replaces the whole shape; there is no
			// shared per-key shape to patch against.
			s.Shape = f.Shape
			return
		}
		switch shape := s.Shape.(type) {
		case board.LineShape:
			fs := f.Shape.(board.LineShape)
			if _, ok := diffs["start"]; ok {
				shape.Start = fs.Start
			}
			if _, ok := diffs["end"]; ok {
				shape.End = fs.End
			}
			s.Shape = shape
		case board.RectOrPolygonShape:
			fs := f.Shape.(board.RectOrPolygonShape)
			if _, ok := diffs["points"]; ok {
				shape.Points = fs.Points
			}
			s.Shape = shape
		case board.ArcShape:
			fs := f.Shape.(board.ArcShape)
			if _, ok := diffs["points"]; ok {
				shape.Start, shape.Mid, shape.End = fs.Start, fs.Mid, fs.End
			}
			s.Shape = shape
		case board.CircleShape:
			fs := f.Shape.(board.CircleShape)
			if _, ok := diffs["center"]; ok {
				shape.Center = fs.Center
			}
			if _, ok := diffs["radius"]; ok {
				shape.Radius = fs.Radius
			}
			s.Shape = shape
		}
	case *board.Footprint:
		f := fresh.(*board.Footprint)
		if _, ok := diffs["ref"]; ok {
			s.Ref = f.Ref
		}
		if _, ok := diffs["pos"]; ok {
			s.Pos = f.Pos
		}
		if _, ok := diffs["rot"]; ok {
			s.Rot = f.Rot
		}
		if _, ok := diffs["layer"]; ok {
			s.Layer = f.Layer
		}
		if _, ok := diffs["pads_pth"]; ok {
			s.PadsPTH = f.PadsPTH
		}
		if _, ok := diffs["3d_models"]; ok {
			s.Models3D = f.Models3D
		}
	case *board.Via:
		f := fresh.(*board.Via)
		if _, ok := diffs["center"]; ok {
			s.Center = f.Center
		}
		if _, ok := diffs["radius"]; ok {
			s.Radius = f.Radius
		}
	}
}
