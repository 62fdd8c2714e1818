package buddy

// QueryRank reports the rank of the block addr belongs to.
//
// If addr names an allocated block's head or a free block's head, its
// real rank is returned. Otherwise (a filler page — the interior of a
// free or allocated block) this returns rank 1, the reference's documented
// default for pages it cannot attribute to a block (spec.md §4.6, §9).
// An address outside the pool, including every address of a pool
// initialized with pageCount 0, is rejected with InvalidArgument.
func (p *Pool) QueryRank(addr uintptr) (int, error) {
	pgno, ok := p.pageOf(addr)
	if !ok {
		return 0, NewError(EINVAL)
	}

	m := p.meta[pgno]
	if !m.isFree && m.rank > 0 {
		return int(m.rank), nil
	}
	if m.isFree {
		return int(m.rank), nil
	}
	return 1, nil
}

// QueryPageCounts returns the number of free blocks currently on
// free-list rank, counted by traversal (O(n) in the list length).
func (p *Pool) QueryPageCounts(rank int) (int, error) {
	if rank < 1 || rank > RMax {
		return 0, NewError(EINVAL)
	}

	count := 0
	for cur := p.freeHeads[rank]; cur != invalidPgno; cur = p.linkAt(cur).next {
		count++
	}
	return count, nil
}

// PageState reports the raw metadata for page idx: the rank last
// recorded for it and whether it currently sits on a free list. rank is
// 0 for a page that is not currently a block head (a filler page),
// including a former head absorbed by a merge (see Release's doc
// comment). PageState is the introspection primitive
// diagnostics.Validate walks the pool with; ordinary callers want
// QueryRank instead.
func (p *Pool) PageState(idx int) (rank int, isFree bool, err error) {
	if idx < 0 || idx >= p.pageCount {
		return 0, false, NewError(EINVAL)
	}
	m := p.meta[idx]
	return int(m.rank), m.isFree, nil
}

// FreeBlockHeads returns the page index of every block currently on
// free-list rank, head first, by traversal. Like QueryPageCounts this is
// O(n) in the list length; it exists for diagnostics.Validate, which
// needs the actual indices rather than just a count.
func (p *Pool) FreeBlockHeads(rank int) ([]int, error) {
	if rank < 1 || rank > RMax {
		return nil, NewError(EINVAL)
	}

	var heads []int
	for cur := p.freeHeads[rank]; cur != invalidPgno; cur = p.linkAt(cur).next {
		heads = append(heads, int(cur))
	}
	return heads, nil
}
