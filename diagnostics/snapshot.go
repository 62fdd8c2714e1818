package diagnostics

import "github.com/Giulio2002/buddy"

// PoolSnapshot is a point-in-time summary of a Pool's occupancy: the
// free-block count at every rank, the pool's total page count, and the
// number of pages currently allocated (the complement of the free
// pages implied by FreeCounts).
type PoolSnapshot struct {
	TotalPages     int
	AllocatedPages int
	FreeCounts     [buddy.RMax + 1]int // index 0 unused, matches Pool's own rank convention
}

// Snapshot summarizes p's current occupancy by calling QueryPageCounts at
// every rank. It takes no lock — like the rest of this repository, the
// caller is responsible for not calling into p concurrently with a
// mutating operation.
func Snapshot(p *buddy.Pool) (PoolSnapshot, error) {
	snap := PoolSnapshot{TotalPages: p.PageCount()}

	freePages := 0
	for rank := 1; rank <= buddy.RMax; rank++ {
		count, err := p.QueryPageCounts(rank)
		if err != nil {
			return PoolSnapshot{}, err
		}
		snap.FreeCounts[rank] = count
		freePages += count * (1 << uint(rank-1))
	}

	snap.AllocatedPages = snap.TotalPages - freePages
	return snap, nil
}
