package mm

import "unsafe"

// Region is a contiguous range of memory registered with a Heap. It owns
// its own free ring; the ring's head is nil when the region currently
// has no free space (see SPEC_FULL.md §7, "Exhausted-region sentinel").
//
// Unlike the C ancestor this allocator is modeled on, the Region record
// itself is an ordinary Go heap object rather than data written into the
// front of the caller-supplied memory: Go already gives every object
// its own metadata, so there is nothing to gain by hand-placing a
// second copy of it in-band, and doing so would require unsafe
// overlaying of a pointer-containing struct onto caller memory this
// package otherwise never does. The cell ring itself remains in-band,
// which is the part spec.md's invariants actually depend on.
type Region struct {
	mem      []byte
	base     uintptr
	capacity int // usable capacity in cells
	first    *uint32
	policies [NumPolicies]Strategy
	next     *Region
}

// minRegionCells is the smallest region size, in cells, worth
// registering: one header plus room for the alignment padding a single
// worst-case allocation could waste plus at least one payload cell.
const minRegionCells = 4

// RegisterRegion registers mem as free space governed by policies. If
// mem is smaller than four cells it is silently ignored, matching
// spec.md §4.3 step 1 — too small to ever host a header and any
// payload. It reports whether the region was registered.
func (h *Heap) RegisterRegion(mem []byte, policies [NumPolicies]Strategy) bool {
	cs := cellSize()
	if len(mem) < minRegionCells*cs {
		h.logger().Debug(ErrZeroRegion.Error(), "bytes", len(mem), "min", minRegionCells*cs)
		return false
	}

	base := uintptr(unsafe.Pointer(&mem[0]))
	aligned := alignUp(base, uintptr(cs))
	pad := int(aligned - base)
	usable := mem[pad:]

	capacityCells := len(usable) / cs
	if capacityCells < 2 {
		h.logger().Debug(ErrZeroRegion.Error(), "bytes", len(mem), "after_padding", true)
		return false
	}

	writeHeader(usable, 0, header{prev: 0, next: 0, size: uint64(capacityCells), magic: freeMagic})

	r := &Region{
		mem:      usable,
		base:     aligned,
		capacity: capacityCells,
		policies: policies,
	}
	head := uint32(0)
	r.first = &head

	h.insertRegion(r)
	h.logger().Debug("region registered", "base", r.base, "cells", capacityCells)
	return true
}

// insertRegion inserts r into the heap's region list at the first
// position whose existing region has a strictly larger capacity,
// keeping the list sorted ascending by capacity. Ties keep the existing
// regions before the new one (spec.md §4.3 step 5): small regions are
// exhausted before large ones, which keeps fragmentation out of the
// large regions.
func (h *Heap) insertRegion(r *Region) {
	if h.regions == nil || h.regions.capacity > r.capacity {
		r.next = h.regions
		h.regions = r
		return
	}
	prev := h.regions
	for prev.next != nil && prev.next.capacity <= r.capacity {
		prev = prev.next
	}
	r.next = prev.next
	prev.next = r
}

// regionCapacityBytes reports the usable capacity of r in bytes. Nothing
// in this package calls it.
func regionCapacityBytes(r *Region) int {
	return r.capacity * cellSize()
}
