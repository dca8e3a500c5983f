// Package board implements the canonical in-memory board data model: the
// collections of drawings, footprints, and vias that make up a PCB design,
// their stable identifiers, and the content hashing used to detect change.
package board

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Point is a coordinate pair in the canonical unit (nanometers). It is
// carried on the wire as a two-element JSON array, never as an object,
// so that both sides agree on field order without relying on map-key
// sorting for this one hot type.
type Point struct {
	X, Y int
}

// MarshalJSON encodes a Point as [x, y].
func (p Point) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON decodes a Point from [x, y].
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := jsonAPI.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	p.X, p.Y = pair[0], pair[1]
	return nil
}

// Point3 is a three-axis value, used for 3D model offset/scale/rotation.
type Point3 struct {
	X, Y, Z float64
}

// MarshalJSON encodes a Point3 as [x, y, z].
func (p Point3) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal([3]float64{p.X, p.Y, p.Z})
}

// UnmarshalJSON decodes a Point3 from [x, y, z].
func (p *Point3) UnmarshalJSON(data []byte) error {
	var triple [3]float64
	if err := jsonAPI.Unmarshal(data, &triple); err != nil {
		return fmt.Errorf("point3: %w", err)
	}
	p.X, p.Y, p.Z = triple[0], triple[1], triple[2]
	return nil
}

// NormalizeRotation folds a rotation in degrees into (-180, 180], the
// canonical range required by invariant I4.
func NormalizeRotation(deg float64) float64 {
	for deg <= -180 {
		deg += 360
	}
	for deg > 180 {
		deg -= 360
	}
	return deg
}
