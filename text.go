package textsplit

import (
	"iter"
	"regexp"

	"github.com/rivo/uniseg"
)

// LineBreaks is the Text splitter's semantic level: a run of one kind of
// line break repeated (CRLF pairs, CRs, or LFs), ranked by how many
// grapheme clusters the run contains (a blank line between paragraphs
// outranks a single line break).
type LineBreaks int

// Rank implements Level.
func (l LineBreaks) Rank() int {
	return int(l)
}

var lineBreakRun = regexp.MustCompile(`(?:\r\n)+|\r+|\n+`)

func extractLineBreaks(text string) []leveledRange[LineBreaks] {
	matches := lineBreakRun.FindAllStringIndex(text, -1)
	ranges := make([]leveledRange[LineBreaks], 0, len(matches))
	for _, m := range matches {
		level := LineBreaks(uniseg.GraphemeClusterCount(text[m[0]:m[1]]))
		ranges = append(ranges, leveledRange[LineBreaks]{Level: level, Range: Range{Start: m[0], End: m[1]}})
	}
	return ranges
}

// TextConfig configures a TextSplitter.
type TextConfig struct {
	Capacity Capacity
	Sizer    Sizer
	Trim     TrimPolicy
	Overlap  int
}

// TextOption customizes a TextConfig.
type TextOption func(*TextConfig)

// WithTextSizer overrides the default Characters sizer.
func WithTextSizer(s Sizer) TextOption {
	return func(c *TextConfig) { c.Sizer = s }
}

// WithTextTrim overrides the default TrimAll policy.
func WithTextTrim(t TrimPolicy) TextOption {
	return func(c *TextConfig) { c.Trim = t }
}

// WithTextOverlap sets the number of size-units of overlap between
// consecutive chunks.
func WithTextOverlap(n int) TextOption {
	return func(c *TextConfig) { c.Overlap = n }
}

// TextSplitter splits plain text into capacity-bounded chunks, preferring
// to break on paragraph boundaries, then lines, then falling back to
// sentence/word/grapheme/character boundaries.
type TextSplitter struct {
	cfg TextConfig
}

// NewTextSplitter builds a TextSplitter for the given capacity. Returns
// an error if overlap is negative or not strictly less than the
// capacity's upper bound.
func NewTextSplitter(capacity Capacity, opts ...TextOption) (*TextSplitter, error) {
	cfg := TextConfig{Capacity: capacity, Sizer: Characters{}, Trim: TrimAll}
	for _, o := range opts {
		o(&cfg)
	}
	if err := validateOverlap(cfg.Overlap, cfg.Capacity); err != nil {
		return nil, err
	}
	return &TextSplitter{cfg: cfg}, nil
}

// ChunkIndices returns a lazy sequence of (byte offset, chunk) pairs.
func (s *TextSplitter) ChunkIndices(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		ranges := extractLineBreaks(text)
		asm := NewAssembler[LineBreaks](text, ranges, s.cfg.Capacity, s.cfg.Sizer, s.cfg.Trim, s.cfg.Overlap, defaultSectioner[LineBreaks])
		for {
			offset, chunk, ok := asm.Next()
			if !ok {
				return
			}
			if !yield(offset, chunk) {
				return
			}
		}
	}
}

// Chunks returns a lazy sequence of chunk text, discarding offsets.
func (s *TextSplitter) Chunks(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, chunk := range s.ChunkIndices(text) {
			if !yield(chunk) {
				return
			}
		}
	}
}
