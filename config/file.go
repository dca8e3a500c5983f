// Package config loads the key-value configuration file read once at
// process start (spec.md §6) and turns it into the immutable Network and
// FreeCAD value structs the rest of the core is built against.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// File is the raw shape of the TOML configuration file. Its dotted
// section/key layout mirrors spec.md §6's enumerated keys exactly:
// network.host becomes [network] host = "...", and so on.
type File struct {
	Network networkSection `toml:"network"`
	FreeCAD freecadSection `toml:"freecad"`
}

type networkSection struct {
	Host               string `toml:"host"`
	Port               int    `toml:"port"`
	Header             int    `toml:"header"`
	Format             string `toml:"format"`
	MaxPortSearchRange int    `toml:"max_port_search_range"`
}

type freecadSection struct {
	ModelsPath         map[string]string `toml:"models_path"`
	DegToRadTolerance  float64           `toml:"deg_to_rad_tolerance"`
	PlacementTolerance int               `toml:"placement_tolerance"`
	ArcEpsilon         int               `toml:"arc_epsilon"`
}

// Load reads and parses path into a File.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return &f, nil
}

// Builder builds a Builder pre-populated from f's values, so a caller
// can load-then-override (e.g. a CLI flag overriding network.port)
// before calling BuildNetwork or BuildFreeCAD.
func (f *File) Builder() Builder {
	return Builder{}.
		WithHost(f.Network.Host).
		WithPort(f.Network.Port).
		WithHeader(f.Network.Header).
		WithFormat(f.Network.Format).
		WithMaxPortSearchRange(f.Network.MaxPortSearchRange).
		WithModelsPath(f.FreeCAD.ModelsPath).
		WithDegToRadTolerance(f.FreeCAD.DegToRadTolerance).
		WithPlacementTolerance(f.FreeCAD.PlacementTolerance).
		WithArcEpsilon(f.FreeCAD.ArcEpsilon)
}
