package encoding

import (
	"os"
	"path/filepath"
	"testing"

	"sysdoctor/internal/snapshot"
)

func TestArchiveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.cbor")

	snaps := []snapshot.Snapshot{
		{Timestamp: 1, Hostname: "h", CPUPercent: 12.5},
		{Timestamp: 2, Hostname: "h", Error: "probe failed"},
	}
	if err := WriteArchive(path, snaps); err != nil {
		t.Fatalf("WriteArchive() error: %v", err)
	}

	got, err := ReadArchive(path)
	if err != nil {
		t.Fatalf("ReadArchive() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadArchive() returned %d snapshots, want 2", len(got))
	}
	if got[0].CPUPercent != 12.5 || got[0].Hostname != "h" {
		t.Errorf("first snapshot = %+v", got[0])
	}
	if !got[1].Degraded() {
		t.Error("degraded snapshot lost its error through the archive")
	}
}

func TestReadArchiveMissingFile(t *testing.T) {
	if _, err := ReadArchive(filepath.Join(t.TempDir(), "missing.cbor")); err == nil {
		t.Error("ReadArchive() of a missing file returned no error")
	}
}

func TestReadArchiveCorruptData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.cbor")
	if err := os.WriteFile(path, []byte("not cbor at all"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadArchive(path); err == nil {
		t.Error("ReadArchive() of corrupt data returned no error")
	}
}
