package dockerfile

import "errors"

var (
	// ErrFinalized is returned when a fragment is mutated after rendering
	// has begun.
	ErrFinalized = errors.New("fragment is finalized")

	// ErrEmptyFragment is returned when rendering a fragment with no
	// instructions.
	ErrEmptyFragment = errors.New("fragment has no instructions")

	// ErrNoBaseImage is returned when rendering a fragment with no FROM
	// instruction.
	ErrNoBaseImage = errors.New("fragment has no base image instruction")

	// ErrMergeKind is returned when the right-hand side of a merge is a
	// complete image fragment, which owns its own identity and cannot be
	// absorbed.
	ErrMergeKind = errors.New("cannot merge a complete image fragment into another fragment")

	ErrUnsupportedPackageManager = errors.New("unsupported package manager")
)
