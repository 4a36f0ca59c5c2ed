package catalog

import (
	"fmt"
	"math"
	"strings"
)

// ValidateRaw checks semantic constraints of a catalog.yaml payload.
// Unlike request-supplied overrides (which are clamped at the boundary),
// a bad file is an operator mistake and is reported, not papered over.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	seen := make(map[string]int, len(cfg.Items))
	for i, it := range cfg.Items {
		if it.Name == "" {
			errs = append(errs, fmt.Sprintf("items[%d].name must not be empty", i))
			continue
		}
		if prev, dup := seen[it.Name]; dup {
			errs = append(errs, fmt.Sprintf("items[%d] duplicates items[%d] (%q)", i, prev, it.Name))
		}
		seen[it.Name] = i
		if it.Chance == nil {
			errs = append(errs, fmt.Sprintf("items[%d].chance is required (%q)", i, it.Name))
		} else if !(*it.Chance > 0) || math.IsInf(*it.Chance, 1) {
			// !(>0) rejects a YAML .nan as well as zero and negatives.
			errs = append(errs, fmt.Sprintf("items[%d].chance must be a finite number > 0 (%q)", i, it.Name))
		}
	}

	for i, n := range cfg.Raw {
		if n == "" {
			errs = append(errs, fmt.Sprintf("raw[%d] must not be empty", i))
		}
	}
	for i, n := range cfg.Limited {
		if n == "" {
			errs = append(errs, fmt.Sprintf("limited[%d] must not be empty", i))
		}
	}
	for i, n := range cfg.Blacklist {
		if n == "" {
			errs = append(errs, fmt.Sprintf("blacklist[%d] must not be empty", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
