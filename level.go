package textsplit

import "sort"

// Level is a semantic boundary strength. Implementations order boundaries
// from weakest to strongest via Rank; the assembler always prefers the
// highest-ranked level whose candidate sections still fit the capacity.
type Level interface {
	comparable
	Rank() int
}

// offsetText is a (byte offset, text) pair. Offsets are relative to
// whatever coordinate space produced them; callers rebase as needed.
type offsetText struct {
	Offset int
	Text   string
}

// leveledRange pairs a semantic level with the byte range it marks.
type leveledRange[L Level] struct {
	Level L
	Range Range
}

// sectioner turns a text and the semantic ranges found at one level
// within it into the ordered (offset, text) sections that level would
// split the text into. Ranges are relative to the start of text.
// Different formats emit different styles (Markdown's Own/Next emission
// vs. the default "separator is its own section" style used by Text and
// Code), so each splitter supplies its own.
type sectioner[L Level] func(text string, ranges []leveledRange[L]) []offsetText

// defaultSectioner implements the style used when a level has no special
// emission rules: each non-empty gap between ranges is a section, and
// each range itself is a section.
func defaultSectioner[L Level](text string, ranges []leveledRange[L]) []offsetText {
	var out []offsetText
	cursor := 0
	emit := func(offset int, s string) {
		if s != "" {
			out = append(out, offsetText{Offset: offset, Text: s})
		}
	}
	for _, lr := range ranges {
		if lr.Range.Start < cursor {
			continue
		}
		emit(cursor, text[cursor:lr.Range.Start])
		emit(lr.Range.Start, text[lr.Range.Start:lr.Range.End])
		cursor = lr.Range.End
	}
	emit(cursor, text[cursor:])
	return out
}

// SemanticRanges stores the (level, byte-range) pairs an extractor found
// for one format, sorted ascending by start and, within equal starts,
// descending by end (so an enclosing range always precedes the ranges it
// encloses).
type SemanticRanges[L Level] struct {
	ranges []leveledRange[L]
}

func newSemanticRanges[L Level](ranges []leveledRange[L]) *SemanticRanges[L] {
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].Range.Start != ranges[j].Range.Start {
			return ranges[i].Range.Start < ranges[j].Range.Start
		}
		return ranges[i].Range.End > ranges[j].Range.End
	})
	return &SemanticRanges[L]{ranges: ranges}
}

// Prune discards ranges that start before cursor; called once per
// assembler iteration so later lookups don't rescan consumed input.
func (s *SemanticRanges[L]) Prune(cursor int) {
	out := s.ranges[:0]
	for _, r := range s.ranges {
		if r.Range.Start >= cursor {
			out = append(out, r)
		}
	}
	s.ranges = out
}

// After returns the stored ranges starting at or after offset, in
// stored order.
func (s *SemanticRanges[L]) After(offset int) []leveledRange[L] {
	var out []leveledRange[L]
	for _, r := range s.ranges {
		if r.Range.Start >= offset {
			out = append(out, r)
		}
	}
	return out
}

// LevelsRemaining returns the distinct levels present at or after
// offset, ascending by Rank.
func (s *SemanticRanges[L]) LevelsRemaining(offset int) []L {
	seen := make(map[L]bool)
	var out []L
	for _, r := range s.After(offset) {
		if !seen[r.Level] {
			seen[r.Level] = true
			out = append(out, r.Level)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank() < out[j].Rank() })
	return out
}

func rangeContains(r Range, pos int) bool {
	return r.Start <= pos && pos < r.End
}

// AtLevelAfter returns the ranges at or above level, starting at or after
// offset, with any ranges from a stronger level that merely enclose the
// first matching range (or duplicate same-level/same-start ranges that
// are larger than it) skipped. This keeps a higher-level boundary that
// wraps the chosen level's first section from being re-emitted as its
// own (redundant, wider) section.
func (s *SemanticRanges[L]) AtLevelAfter(offset int, level L) []leveledRange[L] {
	after := s.After(offset)

	var firstItem *leveledRange[L]
	for _, r := range after {
		if r.Level == level {
			item := r
			firstItem = &item
			break
		}
	}

	var out []leveledRange[L]
	skipping := firstItem != nil
	for _, r := range after {
		if r.Level.Rank() < level.Rank() {
			continue
		}
		if skipping {
			encloses := r.Level.Rank() > level.Rank() && rangeContains(r.Range, firstItem.Range.Start)
			largerDuplicate := r.Level.Rank() == level.Rank() && r.Range.Start == firstItem.Range.Start && r.Range.End > firstItem.Range.End
			if encloses || largerDuplicate {
				continue
			}
			skipping = false
		}
		out = append(out, r)
	}
	return out
}

// Sections returns the sections that level splits text into, starting at
// offset. text must be the remaining input starting exactly at offset
// (i.e. input[offset:]); returned offsets are absolute (relative to the
// original input, not to text).
func (s *SemanticRanges[L]) Sections(offset int, text string, level L, emit sectioner[L]) []offsetText {
	abs := s.AtLevelAfter(offset, level)
	rel := make([]leveledRange[L], len(abs))
	for i, r := range abs {
		rel[i] = leveledRange[L]{Level: r.Level, Range: Range{Start: r.Range.Start - offset, End: r.Range.End - offset}}
	}
	sections := emit(text, rel)
	out := make([]offsetText, len(sections))
	for i, sec := range sections {
		out[i] = offsetText{Offset: offset + sec.Offset, Text: sec.Text}
	}
	return out
}
