// Package encoding provides compact binary encoding of snapshot history
// for export and archival.
package encoding

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"sysdoctor/internal/snapshot"
)

// MarshalSnapshots encodes a snapshot list to CBOR
func MarshalSnapshots(snaps []snapshot.Snapshot) ([]byte, error) {
	return cbor.Marshal(snaps)
}

// UnmarshalSnapshots decodes a CBOR-encoded snapshot list
func UnmarshalSnapshots(data []byte) ([]snapshot.Snapshot, error) {
	var snaps []snapshot.Snapshot
	if err := cbor.Unmarshal(data, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

// WriteArchive encodes the given snapshots and writes them to path
func WriteArchive(path string, snaps []snapshot.Snapshot) error {
	data, err := MarshalSnapshots(snaps)
	if err != nil {
		return fmt.Errorf("encode snapshots: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// ReadArchive reads and decodes a snapshot archive from path
func ReadArchive(path string) ([]snapshot.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	return UnmarshalSnapshots(data)
}
