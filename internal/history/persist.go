package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sysdoctor/internal/snapshot"
)

// Persister saves and loads snapshot history as a JSON list at a well-known
// path. Saves are atomic (temp file + rename) so a concurrent reader sees
// either the previous complete file or the new one, never a partial write.
type Persister struct {
	path string
}

// NewPersister creates a persister writing to the given file path
func NewPersister(path string) *Persister {
	return &Persister{path: path}
}

// Path returns the durable location of the history file
func (p *Persister) Path() string {
	return p.path
}

// Save writes the store contents to disk, replacing any previous file
func (p *Persister) Save(store *Store) error {
	return p.SaveSnapshots(store.All())
}

// SaveSnapshots writes the given snapshot list to disk atomically
func (p *Persister) SaveSnapshots(snaps []snapshot.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// Serialize an empty history as [] rather than null
	if snaps == nil {
		snaps = []snapshot.Snapshot{}
	}
	data, err := json.Marshal(snaps)
	if err != nil {
		return fmt.Errorf("marshal snapshots: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".tmp-snapshots-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, p.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads the persisted history, truncated to the most recent capacity
// entries. An absent, unreadable or corrupt file yields an empty history;
// Load never fails.
func (p *Persister) Load(capacity int) []snapshot.Snapshot {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return []snapshot.Snapshot{}
	}

	var snaps []snapshot.Snapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return []snapshot.Snapshot{}
	}

	if capacity > 0 && len(snaps) > capacity {
		snaps = snaps[len(snaps)-capacity:]
	}
	return snaps
}

// LoadInto loads persisted history directly into the store
func (p *Persister) LoadInto(store *Store) int {
	snaps := p.Load(store.Capacity())
	store.ReplaceAll(snaps)
	return len(snaps)
}
