package diagnostics

import "testing"

func TestSnapshotFreshPool(t *testing.T) {
	p := newTestPool(t, 8)

	snap, err := Snapshot(p)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.TotalPages != 8 {
		t.Fatalf("TotalPages = %d, want 8", snap.TotalPages)
	}
	if snap.AllocatedPages != 0 {
		t.Fatalf("AllocatedPages = %d, want 0", snap.AllocatedPages)
	}
	if snap.FreeCounts[4] != 1 {
		t.Fatalf("FreeCounts[4] = %d, want 1", snap.FreeCounts[4])
	}
}

func TestSnapshotAfterAlloc(t *testing.T) {
	p := newTestPool(t, 8)

	if _, err := p.Alloc(1); err != nil {
		t.Fatalf("Alloc: %v", err)
	}

	snap, err := Snapshot(p)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.AllocatedPages != 1 {
		t.Fatalf("AllocatedPages = %d, want 1", snap.AllocatedPages)
	}
	wantCounts := map[int]int{1: 1, 2: 1, 3: 1, 4: 0}
	for rank, want := range wantCounts {
		if snap.FreeCounts[rank] != want {
			t.Fatalf("FreeCounts[%d] = %d, want %d", rank, snap.FreeCounts[rank], want)
		}
	}
}
