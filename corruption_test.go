package buddy_test

import (
	"testing"

	"github.com/Giulio2002/buddy"
	"github.com/Giulio2002/buddy/diagnostics"
)

// TestValidateDetectsDuplicateCoverage injects a page covered by two
// blocks directly against the metadata table — the kind of corruption a
// bug in push_front/unlink bookkeeping could produce — and checks that
// diagnostics.Validate catches it.
//
// This lives in package buddy_test (an external test package) rather
// than package buddy: diagnostics imports buddy, so an internal buddy
// test file importing diagnostics would put the package-under-test's own
// test binary in an import cycle with itself. The corruption injection
// goes through the exported test-only hooks in export_test.go instead of
// reaching into unexported fields.
func TestValidateDetectsDuplicateCoverage(t *testing.T) {
	p, err := buddy.NewTestPool(8)
	if err != nil {
		t.Fatalf("NewTestPool: %v", err)
	}

	// Pages 0-7 are one free rank-4 block from init's decomposition.
	// Record page 4 as an independent, free-standing rank-1 block too,
	// without unlinking it from the rank-4 span it already belongs to.
	p.SetPageMetaForTest(4, 1, true)
	p.PushFreeForTest(1, 4)

	if err := diagnostics.Validate(p); err == nil {
		t.Fatal("Validate did not detect a page covered by two blocks")
	}
}

// TestValidateDetectsUnmergedBuddies injects two free blocks of matching
// rank that are buddies of each other without merging them, violating
// invariant 6 (maximality), and checks Validate catches it.
func TestValidateDetectsUnmergedBuddies(t *testing.T) {
	p, err := buddy.NewTestPool(8)
	if err != nil {
		t.Fatalf("NewTestPool: %v", err)
	}

	addr1, err := p.Alloc(1)
	if err != nil {
		t.Fatalf("Alloc #1: %v", err)
	}
	addr2, err := p.Alloc(1)
	if err != nil {
		t.Fatalf("Alloc #2: %v", err)
	}

	// Release only the first page through the normal path, then manually
	// re-insert the second page's block as free without going through
	// Release's merge loop, leaving two free rank-1 buddies standing.
	if err := p.Release(addr1); err != nil {
		t.Fatalf("Release #1: %v", err)
	}
	pgno2, ok := p.PageIndexForTest(addr2)
	if !ok {
		t.Fatalf("PageIndexForTest(addr2) failed")
	}
	p.SetPageMetaForTest(pgno2, 1, true)
	p.PushFreeForTest(1, pgno2)

	if err := diagnostics.Validate(p); err == nil {
		t.Fatal("Validate did not detect unmerged free buddies")
	}
}
