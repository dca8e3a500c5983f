package config

import "github.com/boardbridge/sync/diff"

// Network is the immutable runtime configuration for the transport and
// protocol layers (spec.md §6: network.host, network.port,
// network.header, network.format, network.max_port_search_range).
type Network struct {
	Host               string
	Port               int
	Header             int
	Format             string
	MaxPortSearchRange int
}

// FreeCAD is the immutable runtime configuration for the FreeCAD-side
// adapter (spec.md §6: freecad.models_path and the three geometry
// tolerances).
type FreeCAD struct {
	ModelsPath         map[string]string
	DegToRadTolerance  float64
	PlacementTolerance int
	ArcEpsilon         int
}

// Tolerances projects the two fields the Differ consumes directly
// (spec.md §4.5, §9) into a diff.Tolerances. ArcEpsilon is not part of
// this projection: the Differ applies no arc-midpoint tolerance and no
// code in this repository reads ArcEpsilon. It passes through FreeCAD
// for the scanner adapter, which is out of scope here (spec.md §1).
func (f FreeCAD) Tolerances() diff.Tolerances {
	return diff.Tolerances{
		PosTolerance: f.PlacementTolerance,
		RotTolerance: f.DegToRadTolerance,
	}
}

// Builder accumulates configuration values with a fluent With* API,
// the same value-receiver shape as the teacher's DeviceBuilder: each
// With* returns a modified copy, so a Builder can be safely reused or
// forked before calling BuildNetwork or BuildFreeCAD.
type Builder struct {
	host               string
	port               int
	header             int
	format             string
	maxPortSearchRange int

	modelsPath         map[string]string
	degToRadTolerance  float64
	placementTolerance int
	arcEpsilon         int
}

// WithHost sets network.host.
func (b Builder) WithHost(host string) Builder {
	b.host = host
	return b
}

// WithPort sets network.port.
func (b Builder) WithPort(port int) Builder {
	if port < 0 || port > 65535 {
		panic("config: invalid port")
	}
	b.port = port
	return b
}

// WithHeader sets network.header, the codec's fixed header length.
func (b Builder) WithHeader(header int) Builder {
	if header < 0 {
		panic("config: invalid header length")
	}
	b.header = header
	return b
}

// WithFormat sets network.format. Only "json" is supported.
func (b Builder) WithFormat(format string) Builder {
	if format != "" && format != "json" {
		panic("config: unsupported network.format: " + format)
	}
	b.format = format
	return b
}

// WithMaxPortSearchRange sets network.max_port_search_range, the Peer's
// connect-retry budget above the base port.
func (b Builder) WithMaxPortSearchRange(n int) Builder {
	if n < 0 {
		panic("config: invalid max_port_search_range")
	}
	b.maxPortSearchRange = n
	return b
}

// WithModelsPath sets freecad.models_path, a mapping of named root to
// filesystem path.
func (b Builder) WithModelsPath(paths map[string]string) Builder {
	b.modelsPath = paths
	return b
}

// WithDegToRadTolerance sets freecad.deg_to_rad_tolerance.
func (b Builder) WithDegToRadTolerance(tol float64) Builder {
	if tol < 0 {
		panic("config: invalid deg_to_rad_tolerance")
	}
	b.degToRadTolerance = tol
	return b
}

// WithPlacementTolerance sets freecad.placement_tolerance, in canonical
// integer units.
func (b Builder) WithPlacementTolerance(tol int) Builder {
	if tol < 0 {
		panic("config: invalid placement_tolerance")
	}
	b.placementTolerance = tol
	return b
}

// WithArcEpsilon sets freecad.arc_epsilon, in canonical integer units.
func (b Builder) WithArcEpsilon(eps int) Builder {
	if eps < 0 {
		panic("config: invalid arc_epsilon")
	}
	b.arcEpsilon = eps
	return b
}

// BuildNetwork produces the immutable Network value.
func (b Builder) BuildNetwork() Network {
	format := b.format
	if format == "" {
		format = "json"
	}
	return Network{
		Host:               b.host,
		Port:               b.port,
		Header:             b.header,
		Format:             format,
		MaxPortSearchRange: b.maxPortSearchRange,
	}
}

// BuildFreeCAD produces the immutable FreeCAD value.
func (b Builder) BuildFreeCAD() FreeCAD {
	paths := make(map[string]string, len(b.modelsPath))
	for k, v := range b.modelsPath {
		paths[k] = v
	}
	return FreeCAD{
		ModelsPath:         paths,
		DegToRadTolerance:  b.degToRadTolerance,
		PlacementTolerance: b.placementTolerance,
		ArcEpsilon:         b.arcEpsilon,
	}
}
