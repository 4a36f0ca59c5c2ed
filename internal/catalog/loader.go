package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader reads the optional catalog.yaml and layers it over the built-in
// defaults. The merged snapshot is cached; Invalidate drops the cache after
// the file watcher reports a change.
type Loader struct {
	baseDir string

	mu     sync.RWMutex
	cached *Snapshot
}

// NewLoader creates a catalog loader rooted at baseDir. An empty baseDir
// means no file layer: Snapshot returns the built-in defaults only.
func NewLoader(baseDir string) *Loader {
	return &Loader{baseDir: baseDir}
}

// Path returns the catalog file location, or "" when no baseDir was given.
func (l *Loader) Path() string {
	if l.baseDir == "" {
		return ""
	}
	return filepath.Join(l.baseDir, "catalog.yaml")
}

// Snapshot returns the merged static catalog: built-in defaults with the
// catalog file's items (override wins on collision) and its raw/limited/
// blacklist lists appended. A missing file is not an error.
func (l *Loader) Snapshot() (Snapshot, error) {
	l.mu.RLock()
	if l.cached != nil {
		snap := l.cached.clone()
		l.mu.RUnlock()
		return snap, nil
	}
	l.mu.RUnlock()

	cfg, err := l.readFile()
	if err != nil {
		return Snapshot{}, err
	}
	snap := mergeDefaults(cfg)

	l.mu.Lock()
	l.cached = &snap
	l.mu.Unlock()
	return snap.clone(), nil
}

// clone copies the snapshot's slices so callers can append to them without
// touching the cached backing arrays.
func (s *Snapshot) clone() Snapshot {
	return Snapshot{
		Entries:   append([]Entry(nil), s.Entries...),
		RawNames:  append([]string(nil), s.RawNames...),
		Limited:   append([]string(nil), s.Limited...),
		Blacklist: append([]string(nil), s.Blacklist...),
	}
}

// Invalidate clears the cached snapshot. Call after hot-reload detects a
// change to the catalog file.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

// readFile loads and validates the catalog file. Missing files (or no
// baseDir at all) yield a zero config, no error.
func (l *Loader) readFile() (RawConfig, error) {
	path := l.Path()
	if path == "" {
		return RawConfig{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, fmt.Errorf("read catalog: %w", err)
	}
	var cfg RawConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := ValidateRaw(cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeDefaults layers the file config over the built-in tables:
// file items override default chances by name (new names append in file
// order), file raw entries force the raw classification on or off, and the
// limited/blacklist lists are unioned with the defaults.
func mergeDefaults(cfg RawConfig) Snapshot {
	entries := DefaultEntries()
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Name] = i
	}

	rawSet := make(map[string]bool, len(defaultRaw))
	for _, n := range defaultRaw {
		rawSet[n] = true
	}

	for _, it := range cfg.Items {
		chance := float64(0)
		if it.Chance != nil {
			chance = *it.Chance
		}
		if i, ok := index[it.Name]; ok {
			entries[i].Chance = chance
		} else {
			index[it.Name] = len(entries)
			entries = append(entries, Entry{Name: it.Name, Chance: chance})
		}
		if it.Raw != nil {
			rawSet[it.Name] = *it.Raw
		}
	}
	for _, n := range cfg.Raw {
		rawSet[n] = true
	}

	rawNames := make([]string, 0, len(rawSet))
	for _, e := range entries {
		if rawSet[e.Name] {
			rawNames = append(rawNames, e.Name)
		}
	}

	return Snapshot{
		Entries:   entries,
		RawNames:  rawNames,
		Limited:   unionKeepOrder(DefaultLimitedNames(), cfg.Limited),
		Blacklist: unionKeepOrder(nil, cfg.Blacklist),
	}
}

// unionKeepOrder appends b's names to a, skipping duplicates.
func unionKeepOrder(a, b []string) []string {
	out := append([]string(nil), a...)
	seen := make(map[string]bool, len(out))
	for _, n := range out {
		seen[n] = true
	}
	for _, n := range b {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
