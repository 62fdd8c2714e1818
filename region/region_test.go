//go:build unix

package region

import (
	"testing"

	"github.com/Giulio2002/buddy"
)

func TestNewSizes(t *testing.T) {
	r, err := New(4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	if r.PageCount() != 4 {
		t.Fatalf("PageCount() = %d, want 4", r.PageCount())
	}
	if len(r.Bytes()) != 4*buddy.PageSize {
		t.Fatalf("len(Bytes()) = %d, want %d", len(r.Bytes()), 4*buddy.PageSize)
	}
}

func TestNewSizedRoundsUp(t *testing.T) {
	r, err := NewSized(buddy.PageSize + 1)
	if err != nil {
		t.Fatalf("NewSized: %v", err)
	}
	defer r.Close()

	if r.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", r.PageCount())
	}
}

func TestRegionIsWritable(t *testing.T) {
	r, err := New(1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	b := r.Bytes()
	b[0] = 0xAB
	if r.Bytes()[0] != 0xAB {
		t.Fatal("write to region did not persist")
	}
}

func TestBuildsAPool(t *testing.T) {
	r, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	reclaimed := 0
	pool, err := buddy.NewPool(r.Bytes(), r.PageCount())
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	pool.WithReclaim(func(addr uintptr, byteLen int) {
		reclaimed++
	})

	addr, err := pool.Alloc(1)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if err := pool.Release(addr); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if reclaimed != 1 {
		t.Fatalf("reclaim hook called %d times, want 1", reclaimed)
	}
}

func TestLockUnlock(t *testing.T) {
	r, err := New(1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	// Locking memory can fail under constrained test sandboxes (e.g. a
	// tight RLIMIT_MEMLOCK); treat that as environment-dependent rather
	// than a correctness failure.
	if err := r.Lock(); err != nil {
		t.Skipf("mlock unavailable in this environment: %v", err)
	}
	if err := r.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
}
