//go:build windows

package region

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Giulio2002/buddy"
)

// New reserves and commits pageCount pages of anonymous, zero-filled
// memory via VirtualAlloc, the Windows analogue of an anonymous mmap.
func New(pageCount int) (*Region, error) {
	if pageCount <= 0 {
		return nil, ErrInvalidSize
	}

	length := pageCount * buddy.PageSize
	addr, err := windows.VirtualAlloc(0, uintptr(length), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, &Error{Op: "VirtualAlloc", Err: err}
	}

	var data []byte
	sh := (*struct {
		Data uintptr
		Len  int
		Cap  int
	})(unsafe.Pointer(&data))
	sh.Data = addr
	sh.Len = length
	sh.Cap = length

	return &Region{data: data, pageCount: pageCount}, nil
}

// Close releases the region. The Region must not be used afterward.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&r.data[0]))
	err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
	r.data = nil
	if err != nil {
		return &Error{Op: "VirtualFree", Err: err}
	}
	return nil
}

// Lock pins the region in physical memory via VirtualLock.
func (r *Region) Lock() error {
	if err := windows.VirtualLock(uintptr(unsafe.Pointer(&r.data[0])), uintptr(len(r.data))); err != nil {
		return &Error{Op: "VirtualLock", Err: err}
	}
	return nil
}

// Unlock reverses Lock.
func (r *Region) Unlock() error {
	if err := windows.VirtualUnlock(uintptr(unsafe.Pointer(&r.data[0])), uintptr(len(r.data))); err != nil {
		return &Error{Op: "VirtualUnlock", Err: err}
	}
	return nil
}

// DontNeed is a no-op on Windows: there is no direct equivalent of
// MADV_DONTNEED for a committed VirtualAlloc region short of decommitting
// it, which would require re-committing before reuse. Returning nil
// keeps Pool.WithReclaim hooks portable without pretending to reclaim.
func (r *Region) DontNeed(offset, length int) error {
	return nil
}
