package board

import (
	"path/filepath"
	"sort"
)

// ResolveModelPath resolves a 3D model's filename to one full path under
// freecad.models_path (SPEC_FULL.md §4: models_path is a named-root
// mapping, not a single path, so a model can live under a shared library
// root or a per-project root). When filename is absolute it resolves to
// itself. Otherwise it picks the first named root in sorted-name order
// that has a non-empty path configured, a deterministic tie-break since
// Go map iteration order is not. Reports false when there is no root to
// resolve against.
//
// This is a pure function: checking which candidate actually exists on
// disk is the MCAD-side adapter's job, which is out of scope here
// (spec.md §1).
func ResolveModelPath(modelsPath map[string]string, filename string) (string, bool) {
	if filepath.IsAbs(filename) {
		return filename, true
	}

	names := make([]string, 0, len(modelsPath))
	for name := range modelsPath {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		root := modelsPath[name]
		if root == "" {
			continue
		}
		return filepath.Join(root, filename), true
	}
	return "", false
}
