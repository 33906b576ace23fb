package engine

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the file extension of compilation units.
const SourceExt = ".lsx"

// DiscoverUnits walks the source directory and returns every
// compilation unit, sorted for deterministic build order. Hidden
// directories are skipped.
func (e *Engine) DiscoverUnits() ([]string, error) {
	var units []string
	err := filepath.WalkDir(e.cfg.SrcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); strings.HasPrefix(name, ".") && path != e.cfg.SrcDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			units = append(units, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering units in %s: %w", e.cfg.SrcDir, err)
	}
	sort.Strings(units)
	return units, nil
}
