package textsplit

import (
	"strings"
	"unicode"
)

// TrimPolicy controls how whitespace at the edges of an assembled chunk
// is handled before the chunk is emitted.
type TrimPolicy int

const (
	// TrimNone leaves the chunk untouched, byte-exact including any
	// surrounding whitespace. Used to observe the assembler's raw section
	// boundaries, e.g. to verify that concatenating chunks reconstructs
	// the input.
	TrimNone TrimPolicy = iota
	// TrimAll strips all leading and trailing whitespace from the chunk.
	TrimAll
	// TrimPreserveIndentation strips leading newline/carriage-return runs
	// and all trailing whitespace, but keeps leading spaces/tabs intact —
	// unless the chunk has no embedded newline at all once fully trimmed,
	// in which case it behaves exactly like TrimAll. Used by the code
	// splitter (indentation is semantically meaningful) and by the
	// Markdown splitter, where it naturally collapses to TrimAll for
	// single-line (inline-level) chunks.
	TrimPreserveIndentation
)

// Trim applies the policy to chunk, which starts at offset in the
// original input, and returns the possibly-narrower (offset, text) pair.
func (p TrimPolicy) Trim(offset int, chunk string) (int, string) {
	switch p {
	case TrimNone:
		return offset, chunk
	case TrimPreserveIndentation:
		return trimPreservingIndentation(offset, chunk)
	default:
		return trimAll(offset, chunk)
	}
}

func trimAll(offset int, chunk string) (int, string) {
	trimmedLeft := strings.TrimLeftFunc(chunk, unicode.IsSpace)
	leadingCut := len(chunk) - len(trimmedLeft)
	trimmed := strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)
	return offset + leadingCut, trimmed
}

func trimPreservingIndentation(offset int, chunk string) (int, string) {
	fullyTrimmed := strings.TrimFunc(chunk, unicode.IsSpace)
	if !strings.ContainsAny(fullyTrimmed, "\n\r") {
		return trimAll(offset, chunk)
	}
	trimmedLeft := strings.TrimLeft(chunk, "\r\n")
	leadingCut := len(chunk) - len(trimmedLeft)
	trimmed := strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)
	return offset + leadingCut, trimmed
}
