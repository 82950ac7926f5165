package graph

import (
	"unsafe"

	"github.com/matzehuels/csrgraph/pkg/errors"
)

// SizeOf returns the width of T in bytes.
func SizeOf[T Integer]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// IsSigned reports whether T is a signed integer type.
func IsSigned[T Integer]() bool {
	var z T
	z--
	return z < 0
}

// MaxOf returns the largest value representable by T.
func MaxOf[T Integer]() uint64 {
	bits := uint(SizeOf[T]() * 8)
	if IsSigned[T]() {
		return 1<<(bits-1) - 1
	}
	if bits == 64 {
		return ^uint64(0)
	}
	return 1<<bits - 1
}

// TypeName returns the Go name of the underlying integer kind, e.g. "int32".
func TypeName[T Integer]() string {
	prefix := "uint"
	if IsSigned[T]() {
		prefix = "int"
	}
	switch SizeOf[T]() {
	case 4:
		return prefix + "32"
	default:
		return prefix + "64"
	}
}

// checkOverflow fails with OVERFLOW when n does not fit in T.
func checkOverflow[T Integer](what string, n, vertices, edges uint64) error {
	if limit := MaxOf[T](); n > limit {
		return errors.Wrap(errors.ErrCodeOverflow,
			&errors.SizeError{Vertices: vertices, Edges: edges, Limit: limit},
			"%s %d does not fit in %s", what, n, TypeName[T]())
	}
	return nil
}

func outOfMemory(vertices, edges, limit uint64) error {
	return errors.Wrap(errors.ErrCodeOutOfMemory,
		&errors.SizeError{Vertices: vertices, Edges: edges, Limit: limit},
		"graph too large")
}
