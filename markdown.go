package textsplit

import (
	"iter"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	gmtext "github.com/yuin/goldmark/text"
)

type elementKind int

const (
	elementSoftBreak elementKind = iota
	elementInline
	elementBlock
	elementRule
	elementHeading
)

// Element is the Markdown splitter's semantic level, mirroring a
// CommonMark event: a soft line break, an inline span (emphasis, a link,
// a code span, ...), a block (paragraph, list item, blockquote, ...), a
// thematic break, or a heading of a given level.
type Element struct {
	kind         elementKind
	headingLevel int
}

// Rank implements Level: SoftBreak < Inline < Block < Rule <
// Heading(H6) < ... < Heading(H1).
func (e Element) Rank() int {
	switch e.kind {
	case elementSoftBreak:
		return 0
	case elementInline:
		return 1
	case elementBlock:
		return 2
	case elementRule:
		return 3
	default:
		return 4 + (6 - e.headingLevel)
	}
}

type splitPosition int

const (
	splitOwn splitPosition = iota
	splitNext
)

func (e Element) splitPosition() splitPosition {
	if e.kind == elementHeading {
		return splitNext
	}
	return splitOwn
}

func (e Element) treatWhitespaceAsPrevious() bool {
	return e.kind == elementBlock
}

func headingElement(level int) Element {
	return Element{kind: elementHeading, headingLevel: level}
}

var (
	softBreakLevel = Element{kind: elementSoftBreak}
	inlineLevel    = Element{kind: elementInline}
	blockLevel     = Element{kind: elementBlock}
	ruleLevel      = Element{kind: elementRule}
)

// markdownSections implements the Own/Next emission styles §4.7
// describes for Markdown: most elements are their own section (preceded
// by the gap since the last emitted point); a Block also absorbs a
// purely-whitespace preceding gap into itself; a Heading instead
// terminates the previous section and becomes the start of the next one,
// so a heading stays attached to the content that follows it.
func markdownSections(text string, ranges []leveledRange[Element]) []offsetText {
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
		switch lr.Level.splitPosition() {
		case splitNext:
			emit(cursor, text[cursor:lr.Range.Start])
			cursor = lr.Range.Start
		default:
			prevSection := text[cursor:lr.Range.Start]
			if lr.Level.treatWhitespaceAsPrevious() && strings.TrimSpace(prevSection) == "" {
				emit(cursor, text[cursor:lr.Range.End])
				cursor = lr.Range.End
				continue
			}
			emit(cursor, prevSection)
			emit(lr.Range.Start, text[lr.Range.Start:lr.Range.End])
			cursor = lr.Range.End
		}
	}
	emit(cursor, text[cursor:])
	return out
}

type hasLines interface {
	Lines() *gmtext.Segments
}

// lineStart scans backward from pos to the start of its raw source line
// (the byte after the previous newline, or 0 at the start of the text).
func lineStart(source []byte, pos int) int {
	for i := pos - 1; i >= 0; i-- {
		if source[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// thematicBreakLine matches a CommonMark thematic break line: 0-3 leading
// spaces, then 3 or more of the same character (-, *, or _), optionally
// separated by spaces or tabs, and nothing else on the line.
var thematicBreakLine = regexp.MustCompile(`(?m:^[ \t]{0,3}(?:-[ \t]*(?:-[ \t]*){2,}|\*[ \t]*(?:\*[ \t]*){2,}|_[ \t]*(?:_[ \t]*){2,})$)`)

// computeRuleRange locates a thematic break's raw source range. goldmark's
// ast.ThematicBreak never populates Lines() and has no children, so its
// range has to be recovered by scanning the source between its nearest
// siblings (or its parent's own bounds) for the marker line.
func computeRuleRange(source []byte, n ast.Node) (Range, bool) {
	lo := 0
	if prev := n.PreviousSibling(); prev != nil {
		if r, ok := computeRange(prev); ok {
			lo = r.End
		}
	} else if p := n.Parent(); p != nil {
		if r, ok := computeRange(p); ok {
			lo = r.Start
		}
	}
	hi := len(source)
	if next := n.NextSibling(); next != nil {
		if r, ok := computeRange(next); ok {
			hi = r.Start
		}
	} else if p := n.Parent(); p != nil {
		if r, ok := computeRange(p); ok {
			hi = r.End
		}
	}
	if lo < 0 {
		lo = 0
	}
	if hi > len(source) {
		hi = len(source)
	}
	if lo >= hi {
		return Range{}, false
	}
	loc := thematicBreakLine.FindIndex(source[lo:hi])
	if loc == nil {
		return Range{}, false
	}
	start, end := lo+loc[0], lo+loc[1]
	if end < len(source) && source[end] == '\n' {
		end++
	}
	return Range{Start: start, End: end}, true
}

// computeRange derives a node's byte range. Leaf text nodes carry their
// own segment; block nodes carry a Lines() segment list covering their
// own source lines; anything else (inline containers such as emphasis,
// links, code spans) is the union of its descendants' ranges. goldmark
// does not track a container inline node's own delimiters as part of any
// child's range, so callers widen symmetric-delimiter nodes themselves.
func computeRange(n ast.Node) (Range, bool) {
	if t, ok := n.(*ast.Text); ok {
		return Range{Start: t.Segment.Start, End: t.Segment.Stop}, true
	}
	if hl, ok := n.(hasLines); ok && n.Type() != ast.TypeInline {
		lines := hl.Lines()
		if lines != nil && lines.Len() > 0 {
			first := lines.At(0)
			last := lines.At(lines.Len() - 1)
			return Range{Start: first.Start, End: last.Stop}, true
		}
	}

	start, end := -1, -1
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if r, ok := computeRange(c); ok {
			if start == -1 || r.Start < start {
				start = r.Start
			}
			if r.End > end {
				end = r.End
			}
		}
	}
	if start == -1 {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// extractElements walks a CommonMark document and records a semantic
// range for every heading, thematic break, block, inline span, and soft
// line break it finds. It uses goldmark's default CommonMark parser with
// no extensions, so GFM constructs such as tables and strikethrough are
// not recognized as their own nodes.
func extractElements(text string) []leveledRange[Element] {
	source := []byte(text)
	doc := goldmark.DefaultParser().Parse(gmtext.NewReader(source))

	var ranges []leveledRange[Element]
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Document:
			return ast.WalkContinue, nil
		case *ast.Heading:
			if r, ok := computeRange(node); ok {
				// goldmark's Lines() for an ATX heading starts after the
				// "#" marker and its following space; widen back to the
				// start of the raw line so the heading range covers the
				// whole construct, not just its content.
				r.Start = lineStart(source, r.Start)
				ranges = append(ranges, leveledRange[Element]{Level: headingElement(node.Level), Range: r})
			}
			return ast.WalkContinue, nil
		case *ast.ThematicBreak:
			if r, ok := computeRuleRange(source, node); ok {
				ranges = append(ranges, leveledRange[Element]{Level: ruleLevel, Range: r})
			}
			return ast.WalkContinue, nil
		case *ast.Text:
			if node.SoftLineBreak() || node.HardLineBreak() {
				gapStart := node.Segment.Stop
				if sib := node.NextSibling(); sib != nil {
					if sr, ok := computeRange(sib); ok && sr.Start > gapStart {
						ranges = append(ranges, leveledRange[Element]{Level: softBreakLevel, Range: Range{Start: gapStart, End: sr.Start}})
					}
				}
			}
			return ast.WalkContinue, nil
		default:
			switch node.Type() {
			case ast.TypeBlock:
				if r, ok := computeRange(node); ok {
					ranges = append(ranges, leveledRange[Element]{Level: blockLevel, Range: r})
				}
			case ast.TypeInline:
				if r, ok := computeRange(node); ok {
					r = widenInline(node, r)
					ranges = append(ranges, leveledRange[Element]{Level: inlineLevel, Range: r})
				}
			}
			return ast.WalkContinue, nil
		}
	})
	return ranges
}

// widenInline extends a container inline node's computed range to
// include its symmetric delimiters, which goldmark doesn't track as
// part of any child's segment.
func widenInline(n ast.Node, r Range) Range {
	switch n.(type) {
	case *ast.Emphasis:
		w := n.(*ast.Emphasis).Level
		return Range{Start: r.Start - w, End: r.End + w}
	case *extast.Strikethrough:
		return Range{Start: r.Start - 2, End: r.End + 2}
	default:
		return r
	}
}

// MarkdownConfig configures a MarkdownSplitter.
type MarkdownConfig struct {
	Capacity Capacity
	Sizer    Sizer
	Trim     TrimPolicy
	Overlap  int
}

// MarkdownOption customizes a MarkdownConfig.
type MarkdownOption func(*MarkdownConfig)

// WithMarkdownSizer overrides the default Characters sizer.
func WithMarkdownSizer(s Sizer) MarkdownOption {
	return func(c *MarkdownConfig) { c.Sizer = s }
}

// WithMarkdownTrim overrides the default TrimPreserveIndentation policy,
// e.g. to TrimNone to inspect the raw assembled sections.
func WithMarkdownTrim(t TrimPolicy) MarkdownOption {
	return func(c *MarkdownConfig) { c.Trim = t }
}

// WithMarkdownOverlap sets the number of size-units of overlap between
// consecutive chunks.
func WithMarkdownOverlap(n int) MarkdownOption {
	return func(c *MarkdownConfig) { c.Overlap = n }
}

// MarkdownSplitter splits CommonMark documents into capacity-bounded
// chunks, preferring to break on heading boundaries, then thematic
// breaks, then block boundaries (paragraphs, list items, ...), then
// inline spans and soft line breaks, and finally the universal fallback
// ladder.
type MarkdownSplitter struct {
	cfg MarkdownConfig
}

// NewMarkdownSplitter builds a MarkdownSplitter for the given capacity.
// Returns an error if overlap is negative or not strictly less than the
// capacity's upper bound.
func NewMarkdownSplitter(capacity Capacity, opts ...MarkdownOption) (*MarkdownSplitter, error) {
	cfg := MarkdownConfig{Capacity: capacity, Sizer: Characters{}, Trim: TrimPreserveIndentation}
	for _, o := range opts {
		o(&cfg)
	}
	if err := validateOverlap(cfg.Overlap, cfg.Capacity); err != nil {
		return nil, err
	}
	return &MarkdownSplitter{cfg: cfg}, nil
}

// ChunkIndices returns a lazy sequence of (byte offset, chunk) pairs.
func (s *MarkdownSplitter) ChunkIndices(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		ranges := extractElements(text)
		asm := NewAssembler[Element](text, ranges, s.cfg.Capacity, s.cfg.Sizer, s.cfg.Trim, s.cfg.Overlap, markdownSections)
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
func (s *MarkdownSplitter) Chunks(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, chunk := range s.ChunkIndices(text) {
			if !yield(chunk) {
				return
			}
		}
	}
}
