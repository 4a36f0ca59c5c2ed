// resolve.go
package catalog

import (
	"math"
	"sort"
)

// ResolveInput carries everything one computation's working set is built from.
// All slices are treated as already-normalized: the HTTP boundary is
// responsible for coercing malformed payload fields before they get here.
type ResolveInput struct {
	Base           []Entry
	Overrides      map[string]float64 // wins on name collision with Base
	RawNames       []string
	LimitedNames   []string
	IncludeLimited []string
	Blacklist      []string
}

// Resolve builds the immutable working set for one computation:
//   - Overrides merge into Base, override value winning on collision.
//   - Limited names drop out unless they also appear in IncludeLimited.
//   - Surviving items are tagged raw or normal, and blacklist membership is
//     kept as display metadata (blacklisted items still count in the math).
//
// Chances that are not strictly positive and finite clamp to 1 so a zero
// denominator or NaN can never reach the probability engine. Output order is
// deterministic: base table order first, then override-only names sorted
// lexicographically.
func Resolve(in ResolveInput) []Item {
	rawSet := toSet(in.RawNames)
	limitedSet := toSet(in.LimitedNames)
	includeSet := toSet(in.IncludeLimited)
	blackSet := toSet(in.Blacklist)

	merged := make([]Entry, 0, len(in.Base)+len(in.Overrides))
	seen := make(map[string]bool, len(in.Base))
	for _, e := range in.Base {
		if c, ok := in.Overrides[e.Name]; ok {
			e.Chance = c
		}
		merged = append(merged, e)
		seen[e.Name] = true
	}
	extra := make([]string, 0, len(in.Overrides))
	for name := range in.Overrides {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		merged = append(merged, Entry{Name: name, Chance: in.Overrides[name]})
	}

	items := make([]Item, 0, len(merged))
	for _, e := range merged {
		if limitedSet[e.Name] && !includeSet[e.Name] {
			continue
		}
		chance := e.Chance
		// !(>0) also catches NaN, which compares false everywhere.
		if !(chance > 0) || math.IsInf(chance, 1) {
			chance = 1
		}
		class := ClassNormal
		if rawSet[e.Name] {
			class = ClassRaw
		}
		items = append(items, Item{
			Name:        e.Name,
			Chance:      chance,
			Class:       class,
			Blacklisted: blackSet[e.Name],
		})
	}
	return items
}

func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}
