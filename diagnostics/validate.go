// Package diagnostics validates a buddy.Pool's free-list invariants and
// persists point-in-time snapshots of its occupancy, playing the same
// role in this repository that mdbx_chk and mdbx_dump/mdbx_load play for
// the teacher's database: an offline, read-only tool that never sits on
// the hot path.
package diagnostics

import (
	"fmt"

	"github.com/Giulio2002/buddy"
	"github.com/Giulio2002/buddy/internal/pagebitmap"
)

// Validate walks p's free lists and metadata table and reports the first
// invariant violation found, or nil if none is found. It checks:
//
//   - invariant 1 (page coverage): every page index in [0, PageCount())
//     is covered by exactly one free or allocated block, and no page is
//     covered twice — the latter also catches a page that is the head of
//     more than one free-list entry (invariant 4/uniqueness), since a
//     repeated head claims its own page span a second time;
//   - invariant 2 (block bounds): no free block overruns the pool;
//   - invariant 6 (maximality): no two free blocks of the same rank are
//     buddies of each other — a found pair means release's merge loop was
//     skipped or lost a merge somewhere upstream of this snapshot.
//
// Any page whose metadata says "not free, rank > 0" is taken to be an
// allocated block head. Metadata on a page marked free is consulted only
// through the free lists: a page marked free that sits on no free list is
// not itself reported. It is a check over free-list heads and metadata,
// not a full memory-safety audit.
func Validate(p *buddy.Pool) error {
	total := p.PageCount()
	seen := pagebitmap.NewBitmap(uint32(total))

	for rank := 1; rank <= buddy.RMax; rank++ {
		blockPages := 1 << uint(rank-1)

		pgs, err := p.FreeBlockHeads(rank)
		if err != nil {
			return fmt.Errorf("diagnostics: FreeBlockHeads(%d): %w", rank, err)
		}

		for _, head := range pgs {
			if head < 0 || head+blockPages > total {
				return fmt.Errorf("diagnostics: free block at page %d rank %d overruns pool of %d pages", head, rank, total)
			}

			for pg := head; pg < head+blockPages; pg++ {
				if seen.TestAndSet(uint32(pg)) {
					return fmt.Errorf("diagnostics: page %d covered by more than one block", pg)
				}
			}

			if rank < buddy.RMax {
				buddyIdx := head ^ blockPages
				bRank, bFree, err := p.PageState(buddyIdx)
				if err == nil && bFree && bRank == rank && buddyIdx != head {
					return fmt.Errorf("diagnostics: free blocks at pages %d and %d (rank %d) are unmerged buddies", head, buddyIdx, rank)
				}
			}
		}
	}

	for pg := 0; pg < total; pg++ {
		rank, isFree, err := p.PageState(pg)
		if err != nil {
			return fmt.Errorf("diagnostics: PageState(%d): %w", pg, err)
		}
		if !isFree && rank > 0 {
			// Allocated block head: claim its span in the coverage bitmap
			// the same way a free head did above.
			blockPages := 1 << uint(rank-1)
			if pg+blockPages > total {
				return fmt.Errorf("diagnostics: allocated block at page %d rank %d overruns pool of %d pages", pg, rank, total)
			}
			for p2 := pg; p2 < pg+blockPages; p2++ {
				if seen.TestAndSet(uint32(p2)) {
					return fmt.Errorf("diagnostics: page %d covered by more than one block", p2)
				}
			}
		}
	}

	if seen.Count() != uint32(total) {
		return fmt.Errorf("diagnostics: %d of %d pages not covered by any block", uint32(total)-seen.Count(), total)
	}
	return nil
}
