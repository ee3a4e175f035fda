package textsplit

// memoizedSizer wraps a Sizer with a cache keyed by byte range, so that
// repeated measurements of the same candidate chunk during binary search
// don't re-run the underlying Sizer. The cache is cleared every time the
// assembler's cursor advances, since offsets are only ever reused within
// a single chunk-selection round.
type memoizedSizer struct {
	sizer    Sizer
	capacity Capacity

	forward map[Range]ChunkSize
	overlap map[Range]ChunkSize
}

func newMemoizedSizer(sizer Sizer, capacity Capacity) *memoizedSizer {
	return &memoizedSizer{
		sizer:    sizer,
		capacity: capacity,
		forward:  make(map[Range]ChunkSize),
		overlap:  make(map[Range]ChunkSize),
	}
}

// sizeOf measures chunk (which starts at offset in the original input)
// against the primary capacity, using the forward cache.
func (m *memoizedSizer) sizeOf(offset int, chunk string) ChunkSize {
	key := Range{Start: offset, End: offset + len(chunk)}
	if cs, ok := m.forward[key]; ok {
		return cs
	}
	cs := FromAtoms(m.sizer.Atoms(chunk), m.capacity)
	if cs.MaxFitOffset != nil {
		rebased := *cs.MaxFitOffset + offset
		cs.MaxFitOffset = &rebased
	}
	m.forward[key] = cs
	return cs
}

// checkCapacity measures chunk (starting at offset) either against the
// primary capacity (overlapMode false) or the overlap capacity
// (overlapMode true). This implementation shares the primary capacity
// for both modes (see DESIGN.md, Open Question (b)).
func (m *memoizedSizer) checkCapacity(offset int, chunk string, overlapMode bool) ChunkSize {
	if !overlapMode {
		return m.sizeOf(offset, chunk)
	}
	key := Range{Start: offset, End: offset + len(chunk)}
	if cs, ok := m.overlap[key]; ok {
		return cs
	}
	cs := FromAtoms(m.sizer.Atoms(chunk), m.capacity)
	if cs.MaxFitOffset != nil {
		rebased := *cs.MaxFitOffset + offset
		cs.MaxFitOffset = &rebased
	}
	m.overlap[key] = cs
	return cs
}

// clear drops all cached measurements. Called once per cursor advance.
func (m *memoizedSizer) clear() {
	clear(m.forward)
	clear(m.overlap)
}
