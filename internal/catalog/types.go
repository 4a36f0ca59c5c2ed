// types.go
package catalog

// Classification marks how the server luck multiplier applies to an item.
type Classification string

const (
	// ClassRaw items keep their nominal denominator no matter the luck value.
	ClassRaw Classification = "raw"
	// ClassNormal items have their denominator divided by luck, floored at 1.
	ClassNormal Classification = "normal"
)

// Entry is one row of a drop table: a "1 in Chance" denominator keyed by name.
type Entry struct {
	Name   string
	Chance float64
}

// Item is one resolved member of a working set. The set is built fresh per
// computation and never mutated afterwards.
type Item struct {
	Name        string
	Chance      float64 // nominal denominator, always > 0 after Resolve
	Class       Classification
	Blacklisted bool // hidden from ranking views only; still counted in the math
}

// RawConfig mirrors the optional catalog.yaml schema layered over the
// built-in defaults.
type RawConfig struct {
	Version   string    `yaml:"version"`
	Items     []ItemCfg `yaml:"items,omitempty"`
	Raw       []string  `yaml:"raw,omitempty"`
	Limited   []string  `yaml:"limited,omitempty"`
	Blacklist []string  `yaml:"blacklist,omitempty"`
	Notes     string    `yaml:"notes,omitempty"`
}

// ItemCfg is one item row in catalog.yaml. Chance is a pointer so a missing
// value can be told apart from an explicit zero during validation.
type ItemCfg struct {
	Name   string   `yaml:"name"`
	Chance *float64 `yaml:"chance"`
	Raw    *bool    `yaml:"raw,omitempty"`
}

// Snapshot is the merged static catalog (defaults + optional file) that one
// computation starts from, before per-request overrides.
type Snapshot struct {
	Entries   []Entry
	RawNames  []string
	Limited   []string
	Blacklist []string
}

// Names returns the snapshot's item names in catalog order.
func (s Snapshot) Names() []string {
	out := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = e.Name
	}
	return out
}
