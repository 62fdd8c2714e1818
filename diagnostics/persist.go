package diagnostics

import (
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/Giulio2002/buddy"
)

// snapshotsBucket is the single bbolt bucket snapshots live in, keyed by
// caller-chosen label. Persistence is a side door for offline
// post-mortem inspection (the teacher's mdbx_dump/mdbx_load story) —
// nothing in Pool's own operations touches a database file.
var snapshotsBucket = []byte("snapshots")

// SaveSnapshot persists snap under label in the bbolt database at path,
// creating the database and bucket if needed. A later SaveSnapshot under
// the same label overwrites the earlier one.
func SaveSnapshot(path string, label string, snap PoolSnapshot) error {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return fmt.Errorf("diagnostics: open %s: %w", path, err)
	}
	defer db.Close()

	return db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(snapshotsBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(label), encodeSnapshot(snap))
	})
}

// LoadSnapshot reads back the snapshot previously saved under label in
// the bbolt database at path.
func LoadSnapshot(path string, label string) (PoolSnapshot, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return PoolSnapshot{}, fmt.Errorf("diagnostics: open %s: %w", path, err)
	}
	defer db.Close()

	var snap PoolSnapshot
	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(snapshotsBucket)
		if b == nil {
			return fmt.Errorf("diagnostics: no snapshots saved in %s", path)
		}
		raw := b.Get([]byte(label))
		if raw == nil {
			return fmt.Errorf("diagnostics: no snapshot labeled %q in %s", label, path)
		}
		var decodeErr error
		snap, decodeErr = decodeSnapshot(raw)
		return decodeErr
	})
	if err != nil {
		return PoolSnapshot{}, err
	}
	return snap, nil
}

// encodeSnapshot lays out a PoolSnapshot as fixed-width little-endian
// fields, the same field-at-a-time binary.LittleEndian encoding the
// teacher uses for its own on-disk page headers (see page.go).
func encodeSnapshot(snap PoolSnapshot) []byte {
	buf := make([]byte, 16+(buddy.RMax+1)*8)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(snap.TotalPages))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(snap.AllocatedPages))
	for r := 0; r <= buddy.RMax; r++ {
		off := 16 + r*8
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(snap.FreeCounts[r]))
	}
	return buf
}

func decodeSnapshot(raw []byte) (PoolSnapshot, error) {
	wantLen := 16 + (buddy.RMax+1)*8
	if len(raw) != wantLen {
		return PoolSnapshot{}, fmt.Errorf("diagnostics: corrupt snapshot record: got %d bytes, want %d", len(raw), wantLen)
	}
	var snap PoolSnapshot
	snap.TotalPages = int(binary.LittleEndian.Uint64(raw[0:8]))
	snap.AllocatedPages = int(binary.LittleEndian.Uint64(raw[8:16]))
	for r := 0; r <= buddy.RMax; r++ {
		off := 16 + r*8
		snap.FreeCounts[r] = int(binary.LittleEndian.Uint64(raw[off : off+8]))
	}
	return snap, nil
}
