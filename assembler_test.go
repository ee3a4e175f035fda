package textsplit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain pulls every (offset, chunk) pair out of an assembler.
func drain[L Level](asm *Assembler[L]) []offsetText {
	var out []offsetText
	for {
		offset, text, ok := asm.Next()
		if !ok {
			return out
		}
		out = append(out, offsetText{Offset: offset, Text: text})
	}
}

func TestAssemblerOverlapScenario(t *testing.T) {
	// spec scenario 7: cap = 4, overlap = 2, character sizer, no semantic
	// ranges beyond the universal fallback ladder.
	input := "1234567890"
	asm := NewAssembler[FallbackLevel](input, nil, Size(4), Characters{}, TrimAll, 2, defaultSectioner[FallbackLevel])
	chunks := drain(asm)

	var texts []string
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	assert.Equal(t, []string{"1234", "3456", "5678", "7890"}, texts)
}

func TestAssemblerReconstructionWithoutOverlap(t *testing.T) {
	input := "The quick brown fox jumps over the lazy dog. It ran and ran and ran."
	for _, cap := range []int{1, 3, 5, 8, 20, 1000} {
		asm := NewAssembler[FallbackLevel](input, nil, Size(cap), Characters{}, TrimNone, 0, defaultSectioner[FallbackLevel])
		chunks := drain(asm)

		var joined strings.Builder
		for _, c := range chunks {
			joined.WriteString(c.Text)
		}
		if joined.String() != input {
			t.Errorf("cap=%d: reconstruction failed: got %q, want %q", cap, joined.String(), input)
		}
	}
}

func TestAssemblerCoverageOffsetsPartitionInput(t *testing.T) {
	input := "one two three four five six seven eight nine ten"
	asm := NewAssembler[FallbackLevel](input, nil, Size(6), Characters{}, TrimNone, 0, defaultSectioner[FallbackLevel])
	chunks := drain(asm)
	require.NotEmpty(t, chunks)

	prevEnd := 0
	for i, c := range chunks {
		assert.Equal(t, prevEnd, c.Offset, "chunk %d should start exactly where the previous one ended", i)
		prevEnd = c.Offset + len(c.Text)
	}
	assert.Equal(t, len(input), prevEnd, "chunks should cover the entire input")
}

func TestAssemblerMonotoneOffsets(t *testing.T) {
	input := "abcdefghijklmnopqrstuvwxyz0123456789"
	asm := NewAssembler[FallbackLevel](input, nil, Size(3), Characters{}, TrimAll, 1, defaultSectioner[FallbackLevel])
	chunks := drain(asm)

	for i := 1; i < len(chunks); i++ {
		assert.Greater(t, chunks[i].Offset, chunks[i-1].Offset, "offsets must strictly increase")
	}
}

func TestAssemblerSizeBound(t *testing.T) {
	input := "a bb ccc dddd eeeee ffffff"
	cap := Size(4)
	asm := NewAssembler[FallbackLevel](input, nil, cap, Characters{}, TrimAll, 0, defaultSectioner[FallbackLevel])
	chunks := drain(asm)

	for _, c := range chunks {
		count := len(Characters{}.Atoms(c.Text))
		if count > 4 {
			// Only acceptable when the chunk is itself a single atomic
			// section too big to split further (none of the test's atoms
			// are wider than one rune, so this should never trigger).
			t.Errorf("chunk %q measures %d, want <= 4", c.Text, count)
		}
	}
}

func TestAssemblerTerminatesOnEmptyInput(t *testing.T) {
	asm := NewAssembler[FallbackLevel]("", nil, Size(10), Characters{}, TrimAll, 0, defaultSectioner[FallbackLevel])
	_, _, ok := asm.Next()
	assert.False(t, ok, "an empty input should yield no chunks")
}

func TestAssemblerSingleAtomExceedingCapacityStillEmits(t *testing.T) {
	// Capacity of 0 can never be "Less" or "Equal" for any non-empty atom
	// count, so the very first section is emitted anyway (progress
	// guarantee), as a single oversized chunk.
	cap, err := SizeRange(0, 0)
	require.NoError(t, err)
	asm := NewAssembler[FallbackLevel]("hello", nil, cap, Characters{}, TrimAll, 0, defaultSectioner[FallbackLevel])
	offset, text, ok := asm.Next()
	require.True(t, ok)
	assert.Equal(t, 0, offset)
	assert.NotEmpty(t, text)
}

func TestAssemblerRespectsSemanticLevels(t *testing.T) {
	// One custom Sentence-level boundary at the midpoint and nothing else.
	// The boundary's level is chosen, but with ample capacity the binary
	// search merges all of that level's sections into a single chunk
	// rather than splitting at the boundary.
	input := "first half here|second half here"
	ranges := []leveledRange[FallbackLevel]{
		{Level: Sentence, Range: Range{15, 16}}, // the '|' character
	}
	asm := NewAssembler[FallbackLevel](input, ranges, Size(100), Characters{}, TrimAll, 0, defaultSectioner[FallbackLevel])
	chunks := drain(asm)

	require.Len(t, chunks, 1, "the whole input fits in one chunk at this capacity")
	assert.Equal(t, input, chunks[0].Text)
}
