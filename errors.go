package geoarrow

import (
	"errors"
	"fmt"
)

var (
	// ErrIncorrectType is returned when an operation is invoked on a geometry
	// or array kind it does not support.
	ErrIncorrectType = errors.New("incorrect geometry type")

	// ErrUnsupportedShape is returned for shapes that are valid but not yet
	// handled by an operation, such as empty polygons under coordinate mapping.
	ErrUnsupportedShape = errors.New("unsupported shape")

	// ErrMalformed is the sentinel matched by every *ErrMalformedEncoding.
	ErrMalformed = errors.New("malformed encoding")

	// ErrOffsetOverflow is returned when an offsets buffer would exceed the
	// range of its index type.
	ErrOffsetOverflow = errors.New("offset overflow")
)

// ErrDimensionMismatch indicates that a pushed value's dimension differs
// from the dimension of the array being built.
type ErrDimensionMismatch struct {
	Expected Dimension
	Actual   Dimension
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// ErrInvalidIndex indicates an accessor index outside [0, Len).
type ErrInvalidIndex struct {
	Index int
	Len   int
}

func (e *ErrInvalidIndex) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

// ErrMalformedEncoding indicates truncated or invalid encoded input.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrMalformedEncoding struct {
	// Offset is the byte position at which decoding failed.
	Offset int
	Reason string
	cause  error
}

// NewMalformed returns an *ErrMalformedEncoding for the given position.
func NewMalformed(offset int, format string, args ...any) *ErrMalformedEncoding {
	return &ErrMalformedEncoding{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func (e *ErrMalformedEncoding) Error() string {
	return fmt.Sprintf("malformed encoding at byte %d: %s", e.Offset, e.Reason)
}

// Is reports whether target is ErrMalformed.
func (e *ErrMalformedEncoding) Is(target error) bool { return target == ErrMalformed }

func (e *ErrMalformedEncoding) Unwrap() error { return e.cause }

// WithCause attaches an underlying error.
func (e *ErrMalformedEncoding) WithCause(err error) *ErrMalformedEncoding {
	e.cause = err
	return e
}

// CheckDimension returns an *ErrDimensionMismatch if actual differs from expected.
func CheckDimension(expected, actual Dimension) error {
	if expected != actual {
		return &ErrDimensionMismatch{Expected: expected, Actual: actual}
	}
	return nil
}

// CheckIndex panics with an *ErrInvalidIndex if i is outside [0, n).
func CheckIndex(i, n int) {
	if i < 0 || i >= n {
		panic(&ErrInvalidIndex{Index: i, Len: n})
	}
}

// IncorrectType wraps ErrIncorrectType with a description of the offending operation.
func IncorrectType(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIncorrectType, fmt.Sprintf(format, args...))
}

// UnsupportedShape wraps ErrUnsupportedShape with a description.
func UnsupportedShape(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedShape, fmt.Sprintf(format, args...))
}

// Must panics if err is non-nil. It backs the panicking convenience API.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
