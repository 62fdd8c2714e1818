package buddy

import (
	"errors"
	"fmt"
)

// Error represents a buddy allocator error with a POSIX-style error code.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("buddy: %s", e.Message)
}

// ErrorCode represents a POSIX errno-compatible result code, matching the
// reference allocator's tagged-pointer encoding of -EINVAL / -ENOSPC.
type ErrorCode int

// Error codes - reference values from the source allocator.
const (
	// OK indicates the operation completed successfully.
	OK ErrorCode = 0

	// EINVAL indicates an invalid argument: an out-of-range rank, a null
	// or misaligned address, an address outside the pool, or an address
	// that is not the head of a currently allocated block.
	EINVAL ErrorCode = -22

	// ENOSPC indicates allocation failure: no free block of the
	// requested rank or larger is available.
	ENOSPC ErrorCode = -28
)

var errorMessages = map[ErrorCode]string{
	OK:     "success",
	EINVAL: "invalid argument",
	ENOSPC: "no space left: pool exhausted at requested rank",
}

// NewError creates a new Error with the given code.
func NewError(code ErrorCode) *Error {
	msg, ok := errorMessages[code]
	if !ok {
		msg = fmt.Sprintf("unknown error code %d", code)
	}
	return &Error{Code: code, Message: msg}
}

// Common error sentinels, for callers that only need errors.Is semantics.
var (
	ErrInvalid = NewError(EINVAL)
	ErrNoSpace = NewError(ENOSPC)
)

// Is implements errors.Is by comparing codes, so a freshly constructed
// *Error compares equal to the shared ErrInvalid/ErrNoSpace sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Code returns the error code carried by err, or OK if err is nil.
func Code(err error) ErrorCode {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINVAL
}

// IsInvalid reports whether err is an InvalidArgument error.
func IsInvalid(err error) bool {
	return Code(err) == EINVAL
}

// IsNoSpace reports whether err is an OutOfSpace error.
func IsNoSpace(err error) bool {
	return Code(err) == ENOSPC
}
