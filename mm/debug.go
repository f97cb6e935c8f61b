package mm

// Dump and DumpFree are the Go equivalent of the original allocator's
// MM_DEBUG dump routines: they walk a heap's structures and log them at
// debug level, one region or block per line. Both are no-ops unless the
// heap was constructed with WithDebugDumps(true), so the ring walk never
// runs in production builds.

// DumpFree logs every free block in every region, in ring order.
func (h *Heap) DumpFree() {
	if !h.debugDumps {
		return
	}
	log := h.logger()
	for r := h.regions; r != nil; r = r.next {
		if r.first == nil {
			log.Debug("region exhausted", "base", r.base)
			continue
		}
		first := int(*r.first)
		b := first
		for {
			hd := checkMagic(h.hooks, r.mem, b, freeMagic, "dump_free")
			log.Debug("free block",
				"region", r.base,
				"offset", b,
				"cells", hd.size,
				"prev", hd.prev,
				"next", hd.next,
			)
			b = int(hd.next)
			if b == first {
				break
			}
		}
	}
}

// Dump logs every block, free or allocated, across every region in
// address order. Unlike the free ring, address order within a region has
// to be reconstructed by scanning the region's memory front to back
// rather than following any single pointer chain, mirroring the
// original's grub_mm_dump.
func (h *Heap) Dump() {
	if !h.debugDumps {
		return
	}
	log := h.logger()
	cs := cellSize()
	for r := h.regions; r != nil; r = r.next {
		off := 0
		for off < len(r.mem) {
			hd := checkMagic(h.hooks, r.mem, off, 0, "dump")
			state := "alloc"
			if hd.magic == freeMagic {
				state = "free"
			}
			log.Debug("block", "region", r.base, "offset", off, "state", state, "cells", hd.size)
			off += int(hd.size) * cs
		}
	}
}
