package rawmem

import "errors"

// ErrTooSmall is returned when a caller asks for a region of zero or
// negative length.
var ErrTooSmall = errors.New("rawmem: region length must be positive")

// Region is an OS-backed memory mapping suitable for mm.Heap.RegisterRegion.
// Callers must call Release when the region is no longer needed; forgetting
// to do so leaks the mapping until process exit.
type Region struct {
	bytes []byte
}

// Bytes returns the region's backing slice.
func (r *Region) Bytes() []byte {
	return r.bytes
}

// Acquire maps length bytes of anonymous, read-write memory, rounded up
// to the host's page size by the OS. The returned Region's Bytes() is
// exactly length bytes long regardless of that rounding.
func Acquire(length int) (*Region, error) {
	if length <= 0 {
		return nil, ErrTooSmall
	}
	b, err := acquire(length)
	if err != nil {
		return nil, err
	}
	return &Region{bytes: b}, nil
}

// Release unmaps the region. The Region and its Bytes() must not be used
// afterward.
func Release(r *Region) error {
	return release(r.bytes)
}
