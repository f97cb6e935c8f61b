package mm

import "errors"

var (
	// ErrOutOfMemory indicates every region declined the request even
	// after pressure relief ran to completion.
	ErrOutOfMemory = errors.New("mm: out of memory")

	// ErrInvalidPointer indicates a pointer passed to Resize or Release
	// did not originate from this heap. Reaching this from user code
	// without memory corruption should not be possible; it exists as a
	// safety net around the fatal path in tests that stub out Hooks.Fatal.
	ErrInvalidPointer = errors.New("mm: invalid pointer")

	// ErrZeroRegion indicates RegisterRegion was given a slice shorter
	// than four cells, or one left with fewer than two whole cells after
	// alignment padding.
	// RegisterRegion itself reports this as a bool rather than an error
	// (spec.md never has this surface an error to the allocator's
	// caller), but it is logged through this sentinel so the two
	// rejection paths in region.go read identically.
	ErrZeroRegion = errors.New("mm: region too small to register")
)
