// Package buddy is a fixed-region, power-of-two block memory allocator.
//
// A Pool partitions a contiguous, page-aligned byte region supplied by the
// caller into free blocks whose sizes are powers of two (counted in
// pages). Allocation splits a larger free block down to the requested
// size; release coalesces a freed block with its buddy whenever that
// buddy is also free, greedily, up to RMax.
//
// Key properties:
//   - O(1) allocation pop/split, O(RMax) release/merge
//   - single-threaded: callers must serialize access to a Pool themselves
//   - embedded free-list links: no metadata overhead beyond the
//     page-metadata table
//
// Basic usage:
//
//	region, err := region.New(8) // 8 pages
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer region.Close()
//
//	pool, err := buddy.NewPool(region.Bytes(), 8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	addr, err := pool.Alloc(1) // one page
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := pool.Release(addr); err != nil {
//	    log.Fatal(err)
//	}
package buddy
