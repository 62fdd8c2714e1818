package buddy

import "math/bits"

// Alloc returns the address of a newly allocated block of the given
// rank. It scans free lists from rank upward, pops the lowest non-empty
// one, and splits it down to rank, pushing each freed right-half buddy
// onto its own free list. Pop-at-head is LIFO per rank; the right half of
// any split is the one that gets freed, the left half keeps the address
// — both are required by the tests that observe QueryPageCounts.
func (p *Pool) Alloc(rank int) (uintptr, error) {
	if rank < 1 || rank > RMax {
		return 0, NewError(EINVAL)
	}

	// Bits below `rank` don't count as candidates; TrailingZeros32 on
	// what remains jumps straight to the lowest non-empty rank >= rank,
	// the same bit trick pagebitmap.Bitmap.Allocate uses to skip full
	// words instead of scanning them.
	candidates := p.occupancy &^ (uint32(1)<<uint(rank) - 1)
	if candidates == 0 {
		return 0, NewError(ENOSPC)
	}
	r := bits.TrailingZeros32(candidates)

	pgno := p.popFront(r)
	p.meta[pgno].isFree = false

	for r > rank {
		r--
		buddyIdx := pgno + uint32(blockSize(r))
		p.pushFront(r, buddyIdx)
		p.meta[buddyIdx] = pageMeta{rank: uint8(r), isFree: true}
	}

	p.meta[pgno].rank = uint8(rank)
	return p.addrOf(pgno), nil
}
