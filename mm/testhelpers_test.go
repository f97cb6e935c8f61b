package mm

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// unsafeBytesAt views n bytes of payload starting at ptr, for tests that
// need to read or write through a pointer Heap handed back.
func unsafeBytesAt(ptr unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(ptr), n)
}

// newHeap returns a Heap whose Fatal hook panics with the formatted
// message, so tests asserting corruption use require.Panics rather than
// installing a hook that quietly returns.
func newHeap(t *testing.T) *Heap {
	t.Helper()
	return NewHeap(Hooks{
		Fatal: func(format string, args ...any) {
			panic(fmt.Sprintf(format, args...))
		},
	})
}

// defaultPolicies maps PolicyDefault to SECOND-fit (the specified
// default) and PolicyLowMemory to SKIP, matching a general-purpose
// region that declines low-memory-specific requests.
func defaultPolicies() [NumPolicies]Strategy {
	var p [NumPolicies]Strategy
	p[PolicyDefault] = StrategySecond
	p[PolicyLowMemory] = StrategySkip
	return p
}

// regionBytes returns a freshly allocated slice of exactly nCells cells,
// pre-aligned so RegisterRegion's own alignment step consumes zero
// padding. Go's allocator gives no alignment guarantee beyond the
// platform word size for a []byte, which can be narrower than
// cellSize(); without this, tests that assume a specific cell count
// would be flaky depending on where the runtime happened to place the
// backing array.
func regionBytes(nCells int) []byte {
	cs := cellSize()
	raw := make([]byte, nCells*cs+cs)
	base := uintptr(unsafe.Pointer(&raw[0]))
	pad := int(alignUp(base, uintptr(cs)) - base)
	return raw[pad : pad+nCells*cs]
}

// blockRecord is a snapshot of one header, used by assertInvariants and
// by tests that need to compare heap geometry before and after an
// operation.
type blockRecord struct {
	offset int
	size   uint64
	free   bool
}

// scanRegion walks r front to back in address order, returning every
// block it finds. It never trusts the free ring; it only trusts sizes.
func scanRegion(t *testing.T, r *Region) []blockRecord {
	t.Helper()
	var out []blockRecord
	cs := cellSize()
	off := 0
	for off < len(r.mem) {
		h := readHeader(r.mem, off)
		require.Contains(t, []uint64{freeMagic, allocMagic}, h.magic, "corrupt magic at offset %d", off)
		out = append(out, blockRecord{offset: off, size: h.size, free: h.magic == freeMagic})
		off += int(h.size) * cs
	}
	require.Equal(t, len(r.mem), off, "blocks did not exactly tile the region")
	return out
}

// freeRingOffsets walks r's free ring starting at first, returning
// visited offsets in ring order. It fails the test if the walk does not
// return to first within the number of blocks the region could possibly
// contain.
func freeRingOffsets(t *testing.T, r *Region) []int {
	t.Helper()
	if r.first == nil {
		return nil
	}
	first := int(*r.first)
	var out []int
	b := first
	for i := 0; i < r.capacity+1; i++ {
		out = append(out, b)
		next := int(readHeader(r.mem, b).next)
		if next == first {
			return out
		}
		b = next
	}
	t.Fatalf("free ring did not return to first within region capacity")
	return nil
}

// assertInvariants checks the quantified invariants against every
// region registered with h: valid magics, full tiling, address-ordered
// non-adjacent free ring, and free-ring membership consistent with the
// front-to-back scan.
func assertInvariants(t *testing.T, h *Heap) {
	t.Helper()
	for r := h.regions; r != nil; r = r.next {
		blocks := scanRegion(t, r)

		var totalCells uint64
		freeByOffset := make(map[int]bool)
		for _, b := range blocks {
			totalCells += b.size
			if b.free {
				freeByOffset[b.offset] = true
			}
		}
		require.EqualValues(t, r.capacity, totalCells, "blocks do not sum to region capacity")

		ring := freeRingOffsets(t, r)
		require.Equal(t, len(freeByOffset), len(ring), "free ring size does not match free block count")

		prevAddr := -1
		for _, off := range ring {
			require.True(t, freeByOffset[off], "ring references offset %d which scan says is allocated", off)
			require.Greater(t, off, prevAddr, "free ring addresses not strictly increasing")
			prevAddr = off
		}

		for i := 0; i+1 < len(blocks); i++ {
			if blocks[i].free && blocks[i+1].free {
				t.Fatalf("adjacent free blocks at offsets %d and %d", blocks[i].offset, blocks[i+1].offset)
			}
		}
	}
}
