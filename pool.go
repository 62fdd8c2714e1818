package buddy

import "unsafe"

// pageMeta is the per-page bookkeeping entry. rank == 0 denotes a filler
// page (the interior of a block, never consulted per invariant 2).
type pageMeta struct {
	rank   uint8
	isFree bool
}

// freeLink is the doubly-linked free-list node embedded in the first
// bytes of a free block's head page. Sound because a free block's
// payload pages are not otherwise in use (invariant 7).
type freeLink struct {
	next uint32
	prev uint32
}

// Pool is a buddy page allocator over a caller-supplied, page-aligned
// byte region. Pool is not safe for concurrent use; callers serialize
// their own access, per the single-threaded scheduling model.
type Pool struct {
	base      []byte
	baseAddr  uintptr
	pageCount int
	meta      []pageMeta
	freeHeads [RMax + 1]uint32 // index 0 unused; pgno or invalidPgno
	occupancy uint32           // bit r set iff freeHeads[r] != invalidPgno

	reclaim func(addr uintptr, byteLen int)
}

// NewPool partitions base into free blocks using the greedy
// largest-aligned-block decomposition and returns a ready-to-use Pool.
//
// base must hold at least pageCount*PageSize bytes and must itself start
// at a page-aligned address; pageCount must be within [0, MaxPages].
func NewPool(base []byte, pageCount int) (*Pool, error) {
	if pageCount < 0 || pageCount > MaxPages {
		return nil, NewError(EINVAL)
	}
	if len(base) < pageCount*PageSize {
		return nil, NewError(EINVAL)
	}

	baseAddr := uintptr(unsafe.Pointer(unsafe.SliceData(base)))
	if pageCount > 0 && baseAddr%PageSize != 0 {
		return nil, NewError(EINVAL)
	}

	p := &Pool{
		base:      base,
		baseAddr:  baseAddr,
		pageCount: pageCount,
		meta:      make([]pageMeta, pageCount),
	}
	p.init()
	return p, nil
}

// WithReclaim installs a hook invoked with the address and byte length of
// every block that becomes fully free after a Release (after all
// buddy-merging completes). A region-backed Pool typically wires this to
// madvise(MADV_DONTNEED)/VirtualFree-hint semantics so physical frames
// can be returned to the OS immediately. The hook runs after Release's
// invariants are already re-established and cannot fail the operation.
func (p *Pool) WithReclaim(fn func(addr uintptr, byteLen int)) *Pool {
	p.reclaim = fn
	return p
}

// init clears the free lists and decomposes [0, pageCount) into free
// blocks via the greedy largest-aligned-block walk (spec.md §4.3).
func (p *Pool) init() {
	for r := range p.freeHeads {
		p.freeHeads[r] = invalidPgno
	}
	p.occupancy = 0
	for i := range p.meta {
		p.meta[i] = pageMeta{}
	}

	total := uint32(p.pageCount)
	cur := uint32(0)
	for cur < total {
		rank := RMax
		for rank > 0 && (!aligned(cur, rank) || cur+uint32(blockSize(rank)) > total) {
			rank--
		}
		if rank == 0 {
			break
		}
		p.pushFront(rank, cur)
		p.meta[cur] = pageMeta{rank: uint8(rank), isFree: true}
		cur += uint32(blockSize(rank))
	}
}

// PageCount returns the total number of pages managed by the pool.
func (p *Pool) PageCount() int {
	return p.pageCount
}
