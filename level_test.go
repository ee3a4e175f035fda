package textsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemanticRangesSortOrder(t *testing.T) {
	ranges := []leveledRange[FallbackLevel]{
		{Level: Sentence, Range: Range{0, 10}},
		{Level: Word, Range: Range{0, 7}},
		{Level: Word, Range: Range{0, 5}},
	}
	sr := newSemanticRanges(ranges)
	stored := sr.After(0)
	require.Len(t, stored, 3)
	assert.Equal(t, Range{0, 10}, stored[0].Range, "larger range at the same start sorts first")
	assert.Equal(t, Range{0, 7}, stored[1].Range)
	assert.Equal(t, Range{0, 5}, stored[2].Range)
}

func TestSemanticRangesAfter(t *testing.T) {
	sr := newSemanticRanges([]leveledRange[FallbackLevel]{
		{Level: Word, Range: Range{0, 5}},
		{Level: Char, Range: Range{1, 2}},
		{Level: Sentence, Range: Range{5, 10}},
	})
	assert.Len(t, sr.After(0), 3)
	after2 := sr.After(2)
	require.Len(t, after2, 1)
	assert.Equal(t, Range{5, 10}, after2[0].Range)
}

func TestSemanticRangesLevelsRemaining(t *testing.T) {
	sr := newSemanticRanges([]leveledRange[FallbackLevel]{
		{Level: Word, Range: Range{0, 5}},
		{Level: Char, Range: Range{1, 2}},
		{Level: Sentence, Range: Range{5, 10}},
	})
	levels := sr.LevelsRemaining(0)
	assert.Equal(t, []FallbackLevel{Char, Word, Sentence}, levels, "levels sorted ascending by rank")
}

func TestSemanticRangesAtLevelAfterSkipsEnclosingDuplicate(t *testing.T) {
	sr := newSemanticRanges([]leveledRange[FallbackLevel]{
		{Level: Sentence, Range: Range{0, 10}},
		{Level: Word, Range: Range{0, 7}},
		{Level: Word, Range: Range{0, 5}},
	})
	got := sr.AtLevelAfter(0, Word)
	require.Len(t, got, 2)
	assert.Equal(t, Word, got[0].Level)
	assert.Equal(t, Range{0, 7}, got[0].Range, "the enclosing Sentence range is skipped")
	assert.Equal(t, Range{0, 5}, got[1].Range)
}

func TestSemanticRangesAtLevelAfterExcludesWeakerLevels(t *testing.T) {
	sr := newSemanticRanges([]leveledRange[FallbackLevel]{
		{Level: Word, Range: Range{0, 5}},
		{Level: Char, Range: Range{1, 2}},
		{Level: Sentence, Range: Range{5, 10}},
	})
	got := sr.AtLevelAfter(0, Word)
	require.Len(t, got, 2)
	assert.Equal(t, Word, got[0].Level)
	assert.Equal(t, Sentence, got[1].Level)
}

func TestSemanticRangesSections(t *testing.T) {
	text := "abcdefghij"
	sr := newSemanticRanges([]leveledRange[FallbackLevel]{
		{Level: Word, Range: Range{0, 5}},
		{Level: Sentence, Range: Range{5, 10}},
	})
	sections := sr.Sections(0, text, Word, defaultSectioner[FallbackLevel])
	require.Len(t, sections, 2)
	assert.Equal(t, offsetText{Offset: 0, Text: "abcde"}, sections[0])
	assert.Equal(t, offsetText{Offset: 5, Text: "fghij"}, sections[1])
}

func TestSemanticRangesPrune(t *testing.T) {
	sr := newSemanticRanges([]leveledRange[FallbackLevel]{
		{Level: Word, Range: Range{0, 5}},
		{Level: Sentence, Range: Range{5, 10}},
	})
	sr.Prune(5)
	remaining := sr.After(0)
	require.Len(t, remaining, 1)
	assert.Equal(t, Range{5, 10}, remaining[0].Range)
}

func TestDefaultSectionerGapsAndRanges(t *testing.T) {
	text := "  hi  there  "
	ranges := []leveledRange[FallbackLevel]{
		{Level: Word, Range: Range{2, 4}},  // "hi"
		{Level: Word, Range: Range{6, 11}}, // "there"
	}
	sections := defaultSectioner(text, ranges)
	var joined string
	for _, s := range sections {
		joined += s.Text
	}
	assert.Equal(t, text, joined, "sectioner partitions the whole text with no gaps or overlaps")
}
