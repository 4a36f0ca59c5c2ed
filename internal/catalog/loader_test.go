package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSnapshotDefaultsOnly(t *testing.T) {
	l := NewLoader("")
	snap, err := l.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, DefaultEntries(), snap.Entries)
	assert.ElementsMatch(t, DefaultRawNames(), snap.RawNames)
	assert.Equal(t, DefaultLimitedNames(), snap.Limited)
	assert.Empty(t, snap.Blacklist)
}

func TestSnapshotMergesFile(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, `
version: "1"
items:
  - name: Little
    chance: 4
  - name: Custom Drop
    chance: 1234
    raw: true
limited:
  - Custom Drop
blacklist:
  - Little
`)
	l := NewLoader(dir)
	snap, err := l.Snapshot()
	require.NoError(t, err)

	require.Len(t, snap.Entries, len(defaultEntries)+1)
	assert.Equal(t, Entry{Name: "Little", Chance: 4}, snap.Entries[0])
	assert.Equal(t, Entry{Name: "Custom Drop", Chance: 1234}, snap.Entries[len(snap.Entries)-1])
	assert.Contains(t, snap.RawNames, "Custom Drop")
	assert.Contains(t, snap.Limited, "Custom Drop")
	assert.Contains(t, snap.Limited, "roland") // defaults still present
	assert.Equal(t, []string{"Little"}, snap.Blacklist)
}

func TestSnapshotMissingFileIsFine(t *testing.T) {
	l := NewLoader(t.TempDir())
	snap, err := l.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, DefaultEntries(), snap.Entries)
}

func TestSnapshotRejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, `
items:
  - name: ""
    chance: 10
  - name: dup
    chance: -1
  - name: dup
    chance: 2
`)
	l := NewLoader(dir)
	_, err := l.Snapshot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog validation failed")
}

func TestSnapshotRejectsNonFiniteChance(t *testing.T) {
	// yaml resolves .nan and .inf to float values
	dir := t.TempDir()
	writeCatalog(t, dir, `
items:
  - name: ghost
    chance: .nan
  - name: forever
    chance: .inf
`)
	l := NewLoader(dir)
	_, err := l.Snapshot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finite number")
	assert.Contains(t, err.Error(), "ghost")
	assert.Contains(t, err.Error(), "forever")
}

func TestInvalidateDropsCache(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "items:\n  - name: Little\n    chance: 4\n")
	l := NewLoader(dir)

	snap, err := l.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 4.0, snap.Entries[0].Chance)

	writeCatalog(t, dir, "items:\n  - name: Little\n    chance: 9\n")
	// cached until invalidated
	snap, err = l.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 4.0, snap.Entries[0].Chance)

	l.Invalidate()
	snap, err = l.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 9.0, snap.Entries[0].Chance)
}

func TestWatcherInvalidatesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, "items:\n  - name: Little\n    chance: 4\n")
	l := NewLoader(dir)
	_, err := l.Snapshot()
	require.NoError(t, err)

	reloaded := make(chan string, 1)
	w := NewWatcher(l, 10*time.Millisecond, func(p string) {
		select {
		case reloaded <- p:
		default:
		}
	})
	w.Start()
	defer w.Stop()

	time.Sleep(30 * time.Millisecond) // let the watcher prime
	writeCatalog(t, dir, "items:\n  - name: Little\n    chance: 9\n")
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	select {
	case p := <-reloaded:
		assert.Equal(t, path, p)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the change")
	}

	snap, err := l.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 9.0, snap.Entries[0].Chance)
}
