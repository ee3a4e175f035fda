package textsplit

import "sort"

// levelFirst pairs a candidate level with the text of its first section,
// used to pick the level the assembler should split at next.
type levelFirst[T any] struct {
	Level T
	Text  string
}

// findCorrectLevel scans candidates from strongest to weakest rank and
// returns the first (i.e. highest-ranked) whose first section still fits
// the capacity. Returns nil if every candidate's first section is already
// too big (Greater).
func findCorrectLevel[T any](offset int, candidates []levelFirst[T], rank func(T) int, memo *memoizedSizer) *T {
	sorted := make([]levelFirst[T], len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return rank(sorted[i].Level) > rank(sorted[j].Level) })

	for _, c := range sorted {
		cs := memo.checkCapacity(offset, c.Text, false)
		if cs.Fits != Greater {
			level := c.Level
			return &level
		}
	}
	return nil
}

// Assembler is the generic chunk-assembly engine shared by every format
// splitter. It walks input once, left to right, selecting at each step
// the largest semantic unit (of type L, or one of the universal fallback
// levels if none fits) that can be merged into a single chunk without
// exceeding the configured capacity.
type Assembler[L Level] struct {
	input      string
	capacity   Capacity
	memo       *memoizedSizer
	trim       TrimPolicy
	overlap    int
	ranges     *SemanticRanges[L]
	sectioning sectioner[L]

	cursor         int
	prevEmittedEnd int
	nextSections   []offsetText
}

// NewAssembler builds an assembler over input using the semantic ranges
// an extractor already found. sectioning controls how a level's ranges
// turn into candidate sections (see sectioner).
func NewAssembler[L Level](input string, ranges []leveledRange[L], capacity Capacity, sizer Sizer, trim TrimPolicy, overlap int, sectioning sectioner[L]) *Assembler[L] {
	if sizer == nil {
		sizer = Characters{}
	}
	if sectioning == nil {
		sectioning = defaultSectioner[L]
	}
	return &Assembler[L]{
		input:      input,
		capacity:   capacity,
		memo:       newMemoizedSizer(sizer, capacity),
		trim:       trim,
		overlap:    overlap,
		ranges:     newSemanticRanges(ranges),
		sectioning: sectioning,
	}
}

// Next returns the next chunk's (offset, text), or ok=false once the
// input is exhausted.
func (a *Assembler[L]) Next() (offset int, text string, ok bool) {
	for {
		if a.cursor >= len(a.input) {
			return 0, "", false
		}

		o, t, found := a.nextChunk()
		if !found {
			return 0, "", false
		}
		if t == "" {
			continue
		}
		end := o + len(t)
		if end <= a.prevEmittedEnd {
			continue
		}
		a.prevEmittedEnd = end
		return o, t, true
	}
}

func (a *Assembler[L]) nextChunk() (int, string, bool) {
	a.memo.clear()
	a.ranges.Prune(a.cursor)
	a.updateNextSections()

	start, end, ok := a.binarySearchNextChunk()
	if !ok {
		return 0, "", false
	}

	a.updateCursor(end)

	chunk := a.input[start:end]
	o, t := a.trim.Trim(start, chunk)
	return o, t, true
}

// updateNextSections rebuilds the candidate section list starting at the
// cursor: pick the strongest level whose first section fits, then gather
// every non-empty section of that level through the end of the input
// (the list is not cut off where capacity would be exceeded); or fall
// back to the universal Char/Grapheme/Word/Sentence ladder if no
// semantic level's first section fits.
func (a *Assembler[L]) updateNextSections() {
	a.nextSections = a.nextSections[:0]
	remaining := a.input[a.cursor:]
	if remaining == "" {
		return
	}

	levels := a.ranges.LevelsRemaining(a.cursor)
	firsts := make([]levelFirst[L], 0, len(levels))
	for _, lvl := range levels {
		secs := a.ranges.Sections(a.cursor, remaining, lvl, a.sectioning)
		if len(secs) > 0 {
			firsts = append(firsts, levelFirst[L]{Level: lvl, Text: secs[0].Text})
		}
	}
	chosen := findCorrectLevel(a.cursor, firsts, Level.Rank, a.memo)

	if chosen != nil {
		sections := a.ranges.Sections(a.cursor, remaining, *chosen, a.sectioning)
		a.appendSections(sections)
		return
	}

	fallbackLevels := []FallbackLevel{Sentence, Word, GraphemeCluster, Char}
	fbFirsts := make([]levelFirst[FallbackLevel], 0, len(fallbackLevels))
	for _, fl := range fallbackLevels {
		secs := fallbackSections(fl, remaining)
		if len(secs) > 0 {
			fbFirsts = append(fbFirsts, levelFirst[FallbackLevel]{Level: fl, Text: secs[0].Text})
		}
	}
	fbChosen := findCorrectLevel(a.cursor, fbFirsts, FallbackLevel.Rank, a.memo)

	level := Char
	if fbChosen != nil {
		level = *fbChosen
	}
	sections := fallbackSections(level, remaining)
	abs := make([]offsetText, len(sections))
	for i, s := range sections {
		abs[i] = offsetText{Offset: a.cursor + s.Offset, Text: s.Text}
	}
	a.appendSections(abs)
}

func (a *Assembler[L]) appendSections(sections []offsetText) {
	for _, s := range sections {
		if s.Text == "" {
			continue
		}
		a.nextSections = append(a.nextSections, s)
	}
}

// binarySearchNextChunk finds the largest end such that input[cursor:end]
// still fits the capacity, by binary-searching over the cumulative
// candidate sections and then scanning forward while the measured size
// doesn't grow (for sizers whose size isn't strictly additive).
func (a *Assembler[L]) binarySearchNextChunk() (start, end int, ok bool) {
	start = a.cursor
	end = a.cursor

	if len(a.nextSections) == 0 {
		return start, end, true
	}

	equalsFound := false
	successfulIndex := -1
	var successfulSize *ChunkSize

	low, high := 0, len(a.nextSections)-1
	for low <= high {
		mid := low + (high-low)/2
		sec := a.nextSections[mid]
		textEnd := sec.Offset + len(sec.Text)
		chunk := a.input[start:textEnd]
		cs := a.memo.checkCapacity(start, chunk, false)

		switch cs.Fits {
		case Less:
			if textEnd > end {
				end = textEnd
				successfulIndex = mid
				csCopy := cs
				successfulSize = &csCopy
			}
		case Equal:
			if textEnd < end || !equalsFound {
				end = textEnd
				successfulIndex = mid
				csCopy := cs
				successfulSize = &csCopy
			}
			equalsFound = true
		case Greater:
			if mid == 0 && start == end {
				end = textEnd
				successfulIndex = mid
				csCopy := cs
				successfulSize = &csCopy
			}
		}

		if cs.Fits == Less {
			low = mid + 1
		} else if mid > 0 {
			high = mid - 1
		} else {
			break
		}
	}

	if successfulIndex >= 0 {
		for idx := successfulIndex + 1; idx < len(a.nextSections); idx++ {
			sec := a.nextSections[idx]
			textEnd := sec.Offset + len(sec.Text)
			chunk := a.input[start:textEnd]
			sz := a.memo.checkCapacity(start, chunk, false)
			if sz.Size <= successfulSize.Size {
				if textEnd > end {
					end = textEnd
				}
			} else {
				break
			}
		}
	}

	return start, end, true
}

// updateCursor advances the cursor past the emitted chunk, backing it up
// into the chunk (via binary search) by as much as the configured
// overlap allows. Candidate start offsets are the same section
// boundaries used to assemble the chunk; as the candidate offset
// increases toward end, the overlap chunk shrinks, so "fits the overlap
// capacity" is monotonic and a binary search finds the earliest offset
// (hence the largest overlap) that still fits. The overlap chunk is
// measured against Size(overlap) directly, not through the memoizer.
func (a *Assembler[L]) updateCursor(end int) {
	if a.overlap <= 0 {
		a.cursor = end
		return
	}

	var candidates []offsetText
	for _, sec := range a.nextSections {
		if sec.Offset >= end {
			break
		}
		candidates = append(candidates, sec)
	}
	if len(candidates) == 0 {
		a.cursor = end
		return
	}

	overlapCapacity := Size(a.overlap)
	idx := sort.Search(len(candidates), func(i int) bool {
		offset := candidates[i].Offset
		chunk := a.input[offset:end]
		cs := FromAtoms(a.memo.sizer.Atoms(chunk), overlapCapacity)
		return cs.Fits != Greater
	})

	start := end
	if idx < len(candidates) {
		start = candidates[idx].Offset
	}
	if start <= a.cursor {
		start = end
	}
	a.cursor = start
}
