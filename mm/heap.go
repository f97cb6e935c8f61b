package mm

import (
	"log/slog"
	"unsafe"
)

// Heap is a handle to a set of registered regions and the collaborators
// they share. Unlike the C ancestor this package is modeled on, region
// state lives on a Heap value rather than behind a package-level global,
// per spec.md's own recommendation (see SPEC_FULL.md §7, "Global state
// vs. heap handle") —
// every test gets an independent heap instead of sharing hidden state.
type Heap struct {
	hooks      Hooks
	regions    *Region
	log        *slog.Logger
	debugDumps bool
}

// HeapOption configures a Heap at construction time.
type HeapOption func(*Heap)

// WithLogger overrides the slog.Logger used for allocator diagnostics.
// The default is slog.Default().
func WithLogger(l *slog.Logger) HeapOption {
	return func(h *Heap) { h.log = l }
}

// WithDebugDumps enables Heap.Dump and Heap.DumpFree. They are no-ops
// unless this option is set, matching spec.md §9's "guarded by a
// build-time or runtime switch."
func WithDebugDumps(enabled bool) HeapOption {
	return func(h *Heap) { h.debugDumps = enabled }
}

// NewHeap creates an empty Heap. hooks.Fatal must be set; the other
// Hooks fields may be left zero.
func NewHeap(hooks Hooks, opts ...HeapOption) *Heap {
	h := &Heap{hooks: hooks}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Heap) logger() *slog.Logger {
	if h.log == nil {
		return slog.Default()
	}
	return h.log
}

// Allocate returns size bytes aligned to the natural cell boundary.
func (h *Heap) Allocate(size int) unsafe.Pointer {
	return h.AllocateAligned(0, size)
}

// AllocateAligned returns size bytes aligned to alignBytes (a power of
// two; zero means cell alignment) under the default policy.
func (h *Heap) AllocateAligned(alignBytes, size int) unsafe.Pointer {
	return h.AllocateAlignedPolicy(alignBytes, size, PolicyDefault)
}

// AllocateZeroed is Allocate followed by clearing the payload to zero.
func (h *Heap) AllocateZeroed(size int) unsafe.Pointer {
	p := h.Allocate(size)
	if p == nil {
		return nil
	}
	clear(unsafe.Slice((*byte)(p), size))
	return p
}

// AllocateAlignedPolicy is AllocateAligned with a caller-selected policy
// index, implementing the region-list allocator and pressure-relief
// protocol of spec §4.6.
func (h *Heap) AllocateAlignedPolicy(alignBytes, size int, policy PolicyID) unsafe.Pointer {
	alignCells := alignToCells(alignBytes)
	needCells := cellsFor(size) + 1

	for attempt := 0; ; attempt++ {
		for r := h.regions; r != nil; r = r.next {
			strategy := r.policies[policy]
			if strategy == StrategySkip || r.first == nil {
				continue
			}
			if off, ok := allocateFromRegion(r, alignCells, needCells, strategy); ok {
				return h.pointerFor(r, off)
			}
		}

		switch attempt {
		case 0:
			h.hooks.invalidateDiskCaches()
		case 1:
			h.hooks.unloadUnneededModules()
		default:
			h.hooks.reportError(OutOfMemory, ErrOutOfMemory.Error())
			return nil
		}
	}
}

// Resize implements spec §4.8. A nil ptr behaves like Allocate; a zero
// size behaves like Release and returns nil.
func (h *Heap) Resize(ptr unsafe.Pointer, size int) unsafe.Pointer {
	if ptr == nil {
		return h.Allocate(size)
	}
	if size == 0 {
		h.Release(ptr)
		return nil
	}

	r, off := h.headerFromPointer(ptr, "resize")
	needCells := cellsFor(size) + 1
	hdr := readHeader(r.mem, off)

	if int(hdr.size) >= needCells {
		// No split on shrink: an intentional simplification carried
		// unchanged from spec.md §4.8 and §9. The trailing cells stay
		// wasted until release.
		return ptr
	}

	if grown := h.tryGrowInPlace(r, off, &hdr, needCells); grown {
		return ptr
	}

	newPtr := h.AllocateAlignedPolicy(0, size, PolicyDefault)
	if newPtr == nil {
		return nil
	}

	originalPayload := (int(hdr.size) - 1) * cellSize()
	n := size
	if originalPayload < n {
		n = originalPayload
	}
	copy(unsafe.Slice((*byte)(newPtr), n), unsafe.Slice((*byte)(ptr), n))

	h.Release(ptr)
	return newPtr
}

// tryGrowInPlace attempts the in-place extension of spec §4.8: if the
// block immediately following off is free and, combined with off's
// current size, is large enough, the needed portion is carved off the
// front of that neighbor and absorbed into off.
func (h *Heap) tryGrowInPlace(r *Region, off int, hdr *header, needCells int) bool {
	nextOff := off + int(hdr.size)*cellSize()
	if nextOff >= len(r.mem) {
		return false
	}
	if readMagic(r.mem, nextOff) != freeMagic {
		return false
	}

	nextHdr := readHeader(r.mem, nextOff)
	if hdr.size+nextHdr.size < uint64(needCells) {
		return false
	}

	extra := needCells - int(hdr.size)
	splitBlock(r.mem, nextOff, extra)
	unlinkFree(r, nextOff)

	hdr.size = uint64(needCells)
	writeHeader(r.mem, off, *hdr)
	return true
}

// Release implements spec §4.9. A nil ptr is a no-op.
func (h *Heap) Release(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	r, off := h.headerFromPointer(ptr, "release")
	releaseInto(r, off)
}

// pointerFor computes the public payload pointer for the block whose
// header starts at byte offset off within r. Pointer arithmetic (rather
// than slice indexing) is used deliberately so a zero-payload
// allocation whose header sits at the very end of a region's memory
// still yields a valid, distinct, non-dereferenced pointer.
func (h *Heap) pointerFor(r *Region, off int) unsafe.Pointer {
	base := unsafe.Pointer(&r.mem[0])
	return unsafe.Add(base, off+cellSize())
}

// headerFromPointer implements spec §4.10: locate the header and owning
// region for a user pointer, aborting through Hooks.Fatal on any
// corruption or misuse.
func (h *Heap) headerFromPointer(ptr unsafe.Pointer, context string) (*Region, int) {
	addr := uintptr(ptr)
	cs := uintptr(cellSize())
	if addr%cs != 0 {
		h.hooks.fatal("mm: %s: %v: unaligned pointer %#x", context, ErrInvalidPointer, addr)
	}

	for r := h.regions; r != nil; r = r.next {
		base := r.base
		end := base + uintptr(len(r.mem))
		if addr > base && addr <= end {
			off := int(addr-base) - cellSize()
			checkMagic(h.hooks, r.mem, off, allocMagic, context)
			return r, off
		}
	}

	h.hooks.fatal("mm: %s: %v: out-of-range pointer %#x", context, ErrInvalidPointer, addr)
	return nil, 0
}
