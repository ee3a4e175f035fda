// Package sizers provides concrete Sizer implementations beyond the
// character-counting default, for callers that want chunk boundaries
// measured in words, bytes, or lines instead of Unicode characters.
package sizers

import (
	"regexp"

	"github.com/gomantics/textsplit"
)

// Words counts whitespace-separated words, mirroring the common
// "roughly how many words fit" sizing strategy.
type Words struct{}

var wordRun = regexp.MustCompile(`\S+`)

// Atoms returns one range per maximal run of non-whitespace bytes.
func (Words) Atoms(chunk string) []textsplit.Range {
	matches := wordRun.FindAllStringIndex(chunk, -1)
	atoms := make([]textsplit.Range, 0, len(matches))
	for _, m := range matches {
		atoms = append(atoms, textsplit.Range{Start: m[0], End: m[1]})
	}
	return atoms
}

// Bytes counts raw bytes, for callers sizing against a byte budget
// (e.g. a storage cell or network frame) rather than display length.
type Bytes struct{}

// Atoms returns one single-byte range per byte in the chunk.
func (Bytes) Atoms(chunk string) []textsplit.Range {
	atoms := make([]textsplit.Range, len(chunk))
	for i := 0; i < len(chunk); i++ {
		atoms[i] = textsplit.Range{Start: i, End: i + 1}
	}
	return atoms
}

// Lines counts newline-terminated lines, for callers that want chunks
// bounded by a maximum number of source lines.
type Lines struct{}

// Atoms returns one range per line, split on '\n' with the newline
// included in the preceding line's range.
func (Lines) Atoms(chunk string) []textsplit.Range {
	var atoms []textsplit.Range
	start := 0
	for i := 0; i < len(chunk); i++ {
		if chunk[i] == '\n' {
			atoms = append(atoms, textsplit.Range{Start: start, End: i + 1})
			start = i + 1
		}
	}
	if start < len(chunk) {
		atoms = append(atoms, textsplit.Range{Start: start, End: len(chunk)})
	}
	return atoms
}
