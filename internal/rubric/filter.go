package rubric

import (
	"fmt"
	"path/filepath"
)

// FilterChecks returns defs reduced to the checks whose ID or Description
// matches at least one glob pattern. Categories left without checks are
// dropped. An empty patterns slice returns defs unchanged.
func FilterChecks(defs []CategoryDef, patterns []string) ([]CategoryDef, error) {
	if len(patterns) == 0 {
		return defs, nil
	}

	var out []CategoryDef
	for _, d := range defs {
		var kept []Check
		for _, c := range d.Checks {
			ok, err := matchesAny(c, patterns)
			if err != nil {
				return nil, err
			}
			if ok {
				kept = append(kept, c)
			}
		}
		if len(kept) > 0 {
			d.Checks = kept
			out = append(out, d)
		}
	}
	return out, nil
}

// matchesAny reports whether a check's ID or Description matches any pattern.
func matchesAny(c Check, patterns []string) (bool, error) {
	for _, p := range patterns {
		idMatch, err := filepath.Match(p, c.ID)
		if err != nil {
			return false, fmt.Errorf("invalid check filter pattern %q: %w", p, err)
		}
		if idMatch {
			return true, nil
		}
		descMatch, err := filepath.Match(p, c.Description)
		if err != nil {
			return false, fmt.Errorf("invalid check filter pattern %q: %w", p, err)
		}
		if descMatch {
			return true, nil
		}
	}
	return false, nil
}
