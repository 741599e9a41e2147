package history

import (
	"os"
	"path/filepath"
	"testing"

	"sysdoctor/internal/snapshot"
)

func TestPersisterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	persister := NewPersister(path)

	store := NewStore(10)
	store.Append(snapshot.Snapshot{Timestamp: 1, Hostname: "h", CPUPercent: 12.5})
	store.Append(snapshot.Snapshot{Timestamp: 2, Hostname: "h", CPUPercent: 50.0})

	if err := persister.Save(store); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded := persister.Load(10)
	if len(loaded) != 2 {
		t.Fatalf("Load() returned %d snapshots, want 2", len(loaded))
	}
	if loaded[0].Timestamp != 1 || loaded[1].CPUPercent != 50.0 {
		t.Errorf("Load() returned wrong content: %+v", loaded)
	}
}

func TestPersisterLoadAbsentFile(t *testing.T) {
	persister := NewPersister(filepath.Join(t.TempDir(), "missing.json"))

	loaded := persister.Load(10)
	if loaded == nil {
		t.Fatal("Load() returned nil, want empty slice")
	}
	if len(loaded) != 0 {
		t.Errorf("Load() returned %d snapshots, want 0", len(loaded))
	}
}

func TestPersisterLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	loaded := NewPersister(path).Load(10)
	if len(loaded) != 0 {
		t.Errorf("Load() of corrupt file returned %d snapshots, want 0", len(loaded))
	}
}

func TestPersisterLoadTruncatesToCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	persister := NewPersister(path)

	snaps := make([]snapshot.Snapshot, 8)
	for i := range snaps {
		snaps[i] = snapshot.Snapshot{Timestamp: float64(i)}
	}
	if err := persister.SaveSnapshots(snaps); err != nil {
		t.Fatalf("SaveSnapshots() error: %v", err)
	}

	loaded := persister.Load(3)
	if len(loaded) != 3 {
		t.Fatalf("Load(3) returned %d snapshots, want 3", len(loaded))
	}
	for i, want := range []float64{5, 6, 7} {
		if loaded[i].Timestamp != want {
			t.Errorf("Load(3)[%d].Timestamp = %v, want %v", i, loaded[i].Timestamp, want)
		}
	}
}

func TestPersisterSaveEmptyStoreWritesEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	persister := NewPersister(path)

	if err := persister.Save(NewStore(5)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("empty history serialized as %q, want %q", data, "[]")
	}
}

func TestPersisterLoadInto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	persister := NewPersister(path)

	snaps := []snapshot.Snapshot{{Timestamp: 1}, {Timestamp: 2}, {Timestamp: 3}}
	if err := persister.SaveSnapshots(snaps); err != nil {
		t.Fatal(err)
	}

	store := NewStore(2)
	n := persister.LoadInto(store)
	if n != 2 {
		t.Errorf("LoadInto() = %d, want 2", n)
	}

	all := store.All()
	if len(all) != 2 || all[0].Timestamp != 2 || all[1].Timestamp != 3 {
		t.Errorf("store content after LoadInto = %+v", all)
	}
}
