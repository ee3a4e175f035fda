package textsplit

import "github.com/gomantics/textsplit/languages"

// CodeChunk is a chunk of source code enriched with the line range it
// spans, as a complement to the raw byte offsets ChunkIndices reports.
// Line numbers are 1-based and inclusive, matching editor conventions.
// Language is the splitter's configured language name, empty if the
// splitter was built directly from a *sitter.Language via NewCodeSplitter
// rather than from the registry.
type CodeChunk struct {
	Offset    int
	Text      string
	StartLine int
	EndLine   int
	Language  languages.LanguageName
}

// ChunksWithMetadata splits source the same way ChunkIndices does, but
// additionally computes each chunk's 1-based line range within the
// original text.
func (s *CodeSplitter) ChunksWithMetadata(text string) []CodeChunk {
	lineStarts := lineStartOffsets(text)

	var chunks []CodeChunk
	for offset, chunk := range s.ChunkIndices(text) {
		chunks = append(chunks, CodeChunk{
			Offset:    offset,
			Text:      chunk,
			StartLine: lineAt(lineStarts, offset),
			EndLine:   lineAt(lineStarts, offset+len(chunk)-1),
			Language:  s.langName,
		})
	}
	return chunks
}

// lineStartOffsets returns the byte offset each line begins at, with
// line 1 starting at offset 0.
func lineStartOffsets(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineAt returns the 1-based line number containing the given byte
// offset.
func lineAt(lineStarts []int, offset int) int {
	if offset < 0 {
		offset = 0
	}
	lo, hi := 0, len(lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}
