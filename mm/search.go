package mm

// allocateFromRegion scans r's free ring under strategy looking for a
// block that can hold needCells cells (already including the header
// cell) aligned to alignCells cells, per spec §4.5. It returns the byte
// offset of the resulting allocated block's header and true on success,
// or false if no block in the region was large enough or the region has
// no free space at all.
func allocateFromRegion(r *Region, alignCells, needCells int, strategy Strategy) (int, bool) {
	if r.first == nil || strategy == StrategySkip {
		return 0, false
	}

	cs := cellSize()
	first := int(*r.first)

	var start, last int
	backward := strategy == StrategyLast
	switch strategy {
	case StrategyFirst:
		start = first
		last = int(readHeader(r.mem, first).prev)
	case StrategySecond:
		start = int(readHeader(r.mem, first).next)
		last = first
	case StrategyLast:
		start = int(readHeader(r.mem, first).prev)
		last = first
	default:
		return 0, false
	}

	b := start
	for {
		h := readHeader(r.mem, b)

		payloadAddr := uint64(r.base) + uint64(b) + uint64(cs)
		wasted := int((payloadAddr / uint64(cs)) % uint64(alignCells))
		want := needCells + wasted

		if int(h.size) >= want {
			if backward {
				want += ((int(h.size) - want) / alignCells) * alignCells
			}

			splitBlock(r.mem, b, want)

			if want == needCells {
				unlinkFree(r, b)
				writeMagic(r.mem, b, allocMagic)
				return b, true
			}

			leading := want - needCells
			shrunk := readHeader(r.mem, b)
			shrunk.size = uint64(leading)
			writeHeader(r.mem, b, shrunk)

			allocOff := b + leading*cs
			writeHeader(r.mem, allocOff, header{size: uint64(needCells), magic: allocMagic})
			return allocOff, true
		}

		if b == last {
			return 0, false
		}
		if backward {
			b = int(readHeader(r.mem, b).prev)
		} else {
			b = int(readHeader(r.mem, b).next)
		}
	}
}
