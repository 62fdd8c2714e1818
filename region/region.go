// Package region obtains page-aligned, anonymous memory regions from the
// OS for use as the backing storage of a buddy.Pool. It plays the same
// role for an in-process pool that the teacher's mmap package plays for
// a file-backed database: acquiring and releasing a raw mapping, with
// the OS-advisory operations (Lock/DontNeed) a long-lived mapping wants.
package region

import "github.com/Giulio2002/buddy"

// Region is a page-aligned block of anonymous memory obtained from the
// OS, sized in whole pages of buddy.PageSize bytes.
type Region struct {
	data      []byte
	pageCount int
}

// Error represents a region acquisition or release failure.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "region: " + e.Op + ": " + e.Err.Error()
	}
	return "region: " + e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrInvalidSize is returned when a requested page count or byte size is
// not positive.
var ErrInvalidSize = &Error{Op: "invalid size"}

// NewSized rounds byteSize up to a whole number of pages and maps it.
func NewSized(byteSize int) (*Region, error) {
	if byteSize <= 0 {
		return nil, ErrInvalidSize
	}
	pageCount := (byteSize + buddy.PageSize - 1) / buddy.PageSize
	return New(pageCount)
}

// Bytes returns the mapped, page-aligned region.
func (r *Region) Bytes() []byte {
	return r.data
}

// PageCount returns the number of pages the region spans.
func (r *Region) PageCount() int {
	return r.pageCount
}
