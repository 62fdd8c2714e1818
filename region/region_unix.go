//go:build unix

package region

import (
	"golang.org/x/sys/unix"

	"github.com/Giulio2002/buddy"
)

// New maps pageCount pages of anonymous, zero-filled memory.
func New(pageCount int) (*Region, error) {
	if pageCount <= 0 {
		return nil, ErrInvalidSize
	}

	length := pageCount * buddy.PageSize
	data, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, &Error{Op: "mmap", Err: err}
	}

	return &Region{data: data, pageCount: pageCount}, nil
}

// Close unmaps the region. The Region must not be used afterward.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	if err != nil {
		return &Error{Op: "munmap", Err: err}
	}
	return nil
}

// Lock pins the region in physical memory, preventing it from being
// swapped out — useful once a Pool built on it is carrying live
// allocations a caller cannot afford to page out.
func (r *Region) Lock() error {
	if err := unix.Mlock(r.data); err != nil {
		return &Error{Op: "mlock", Err: err}
	}
	return nil
}

// Unlock reverses Lock.
func (r *Region) Unlock() error {
	if err := unix.Munlock(r.data); err != nil {
		return &Error{Op: "munlock", Err: err}
	}
	return nil
}

// DontNeed advises the kernel that the byte range [offset, offset+length)
// is no longer needed, letting it drop the backing physical frames while
// leaving the virtual mapping (and any embedded free-list link within
// it) intact. Intended to be wired as a buddy.Pool's release hook via
// Pool.WithReclaim — see that method's doc comment for the pairing.
func (r *Region) DontNeed(offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(r.data) {
		return &Error{Op: "dontneed", Err: unix.EINVAL}
	}
	if length == 0 {
		return nil
	}
	if err := unix.Madvise(r.data[offset:offset+length], unix.MADV_DONTNEED); err != nil {
		return &Error{Op: "madvise", Err: err}
	}
	return nil
}
