package mm

// This file implements the free-ring surgery of spec §4.4 and the
// release-time reinsertion and coalescing of spec §4.9. All addresses
// here are byte offsets into a single Region's backing slice; the ring
// invariant (strictly increasing offsets from the head until wrap) is
// exactly the address-ordering invariant spec §3 describes, since a
// region's backing slice is itself one contiguous range.

// splitBlock carves sizeCells off the front of the free block at off,
// leaving a shrunk free block of sizeCells still linked at off and a new
// free block for the remainder linked immediately after it in the ring.
// If the block isn't larger than sizeCells, it does nothing. It returns
// the offset of the new remainder block, or -1 if no split occurred.
func splitBlock(mem []byte, off, sizeCells int) int {
	h := readHeader(mem, off)
	if int(h.size) <= sizeCells {
		return -1
	}

	qOff := off + sizeCells*cellSize()
	oldNext := int(h.next)
	q := header{
		prev:  uint32(off),
		next:  uint32(oldNext),
		size:  h.size - uint64(sizeCells),
		magic: freeMagic,
	}
	writeHeader(mem, qOff, q)

	if oldNext == off {
		// off was the ring's sole member; q takes its place as off's
		// only neighbor in both directions.
		h.prev = uint32(qOff)
	} else {
		nh := readHeader(mem, oldNext)
		nh.prev = uint32(qOff)
		writeHeader(mem, oldNext, nh)
	}

	h.next = uint32(qOff)
	h.size = uint64(sizeCells)
	writeHeader(mem, off, h)

	return qOff
}

// unlinkFree removes the free block at off from r's ring. If off was the
// ring's only member, the region becomes exhausted (r.first set to nil).
// If off was the ring head, the head advances to its successor.
func unlinkFree(r *Region, off int) {
	h := readHeader(r.mem, off)

	if h.next == uint32(off) {
		r.first = nil
		return
	}

	prevOff, nextOff := int(h.prev), int(h.next)
	if prevOff == nextOff {
		// Exactly two members remain; the sole survivor becomes a
		// singleton pointing at itself.
		nb := readHeader(r.mem, prevOff)
		nb.prev, nb.next = uint32(prevOff), uint32(prevOff)
		writeHeader(r.mem, prevOff, nb)
	} else {
		pH := readHeader(r.mem, prevOff)
		pH.next = h.next
		writeHeader(r.mem, prevOff, pH)

		nH := readHeader(r.mem, nextOff)
		nH.prev = h.prev
		writeHeader(r.mem, nextOff, nH)
	}

	if r.first != nil && *r.first == uint32(off) {
		next := h.next
		r.first = &next
	}
}

// blockEnd returns the byte offset one past the block at off, computed
// from its own header.
func blockEnd(mem []byte, off int) int {
	h := readHeader(mem, off)
	return off + int(h.size)*cellSize()
}

// releaseInto reinserts the just-freed block at off into r's ring,
// stamps it free, and coalesces with address-adjacent neighbors, per
// spec §4.9. If the region was exhausted, the ring is reinitialized with
// off as its sole member.
func releaseInto(r *Region, off int) {
	if r.first == nil {
		h := header{prev: uint32(off), next: uint32(off), size: readHeader(r.mem, off).size, magic: freeMagic}
		writeHeader(r.mem, off, h)
		first := uint32(off)
		r.first = &first
		return
	}

	first := int(*r.first)
	qOff := findInsertionPredecessor(r, first, off)
	q := readHeader(r.mem, qOff)

	// A singleton q is its own next; qNext and q then name the same
	// header slot; writing them as two independent read-modify-write
	// steps would have the second clobber the first's update. Handled as
	// a direct two-node ring instead.
	qWasSingleton := int(q.next) == qOff

	h := readHeader(r.mem, off)
	h.magic = freeMagic
	h.prev = uint32(qOff)
	if qWasSingleton {
		h.next = uint32(qOff)
	} else {
		h.next = q.next
	}
	writeHeader(r.mem, off, h)

	if qWasSingleton {
		q.prev = uint32(off)
	} else {
		qNext := readHeader(r.mem, int(q.next))
		qNext.prev = uint32(off)
		writeHeader(r.mem, int(q.next), qNext)
	}
	q.next = uint32(off)
	writeHeader(r.mem, qOff, q)

	if off < first {
		newFirst := uint32(off)
		r.first = &newFirst
	}

	coalesceForward(r, off)
	coalesceBackward(r, qOff)
}

// findInsertionPredecessor finds the free block whose address is the
// greatest one less than off, wrapping at most once around the ring, per
// spec §4.4's "insert on release" rule. first is always the ring's
// lowest address, so off can be below every free block's address only
// by being below first itself; in that case the insertion point is the
// wrap point between the ring's highest-address block and first, i.e.
// first's predecessor. Otherwise off falls somewhere within
// [first, last], so a forward walk from first, stopping at the last
// block whose successor's address exceeds off (or at wrap, the highest
// address block, if off exceeds every free address), finds it directly.
func findInsertionPredecessor(r *Region, first, off int) int {
	if off < first {
		return int(readHeader(r.mem, first).prev)
	}

	q := first
	for {
		next := int(readHeader(r.mem, q).next)
		if next == first {
			// q is the last element before wrap; nothing further to
			// consider.
			return q
		}
		if next > off {
			return q
		}
		q = next
	}
}

// coalesceForward merges the block at off with its immediate successor
// in address order, if they are physically adjacent, per spec §4.4. The
// absorbed neighbor's magic is zeroed before the merge so a dangling
// reference to it is observable rather than silently valid.
func coalesceForward(r *Region, off int) {
	h := readHeader(r.mem, off)
	nextOff := int(h.next)
	if nextOff == off {
		return
	}
	if blockEnd(r.mem, off) != nextOff {
		return
	}

	nh := readHeader(r.mem, nextOff)
	writeMagic(r.mem, nextOff, 0)

	h.size += nh.size
	h.next = nh.next
	writeHeader(r.mem, off, h)

	// If nh.next == off, the ring had exactly two members and just
	// collapsed to a singleton: this re-reads the record just written
	// above (successor and off are the same slot) and corrects only its
	// prev field, which is exactly the fix a self-loop needs.
	successor := readHeader(r.mem, int(nh.next))
	successor.prev = uint32(off)
	writeHeader(r.mem, int(nh.next), successor)

	if r.first != nil && *r.first == uint32(nextOff) {
		first := uint32(off)
		r.first = &first
	}
}

// coalesceBackward merges the block at off into its immediate
// predecessor q in address order, if they are physically adjacent, per
// spec §4.4. It mirrors coalesceForward with the roles of survivor and
// absorbed block reversed.
func coalesceBackward(r *Region, qOff int) {
	if r.first == nil {
		return
	}
	coalesceForward(r, qOff)
}
