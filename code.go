package textsplit

import (
	"context"
	"fmt"
	"iter"

	"github.com/gomantics/textsplit/languages"
	sitter "github.com/smacker/go-tree-sitter"
)

// Depth is the Code splitter's semantic level: a tree-sitter node's depth
// below the root. Ordering is inverted relative to the raw number — a
// node closer to the root (smaller depth) is a stronger boundary, since
// it groups more of the surrounding source.
type Depth int

// Rank implements Level: smaller depth ranks higher.
func (d Depth) Rank() int {
	return -int(d)
}

// walkDepths records one leveled range per node in a depth-first
// pre-order walk of the tree, skipping the root itself. This produces
// the same visitation order as a cursor-based (child, sibling, parent)
// walk, since both are depth-first pre-order over the same tree.
func walkDepths(node *sitter.Node, depth int, out *[]leveledRange[Depth]) {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		*out = append(*out, leveledRange[Depth]{
			Level: Depth(depth),
			Range: Range{Start: int(child.StartByte()), End: int(child.EndByte())},
		})
		walkDepths(child, depth+1, out)
	}
}

func parseDepths(parser *sitter.Parser, text string) ([]leveledRange[Depth], *sitter.Node, error) {
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(text))
	if err != nil {
		return nil, nil, err
	}
	root := tree.RootNode()
	var ranges []leveledRange[Depth]
	walkDepths(root, 1, &ranges)
	return ranges, root, nil
}

// CodeConfig configures a CodeSplitter.
type CodeConfig struct {
	Capacity Capacity
	Sizer    Sizer
	Trim     TrimPolicy
	Overlap  int
}

// CodeOption customizes a CodeConfig.
type CodeOption func(*CodeConfig)

// WithCodeSizer overrides the default Characters sizer.
func WithCodeSizer(s Sizer) CodeOption {
	return func(c *CodeConfig) { c.Sizer = s }
}

// WithCodeTrim overrides the default TrimPreserveIndentation policy, e.g.
// to TrimNone to inspect the raw assembled sections.
func WithCodeTrim(t TrimPolicy) CodeOption {
	return func(c *CodeConfig) { c.Trim = t }
}

// WithCodeOverlap sets the number of size-units of overlap between
// consecutive chunks.
func WithCodeOverlap(n int) CodeOption {
	return func(c *CodeConfig) { c.Overlap = n }
}

// CodeSplitter splits source code into capacity-bounded chunks using a
// tree-sitter grammar, preferring to break at the node depths that keep
// complete syntactic units (functions, statements, ...) together.
type CodeSplitter struct {
	cfg      CodeConfig
	language *sitter.Language
	langName languages.LanguageName
}

// NewCodeSplitter builds a CodeSplitter for the given tree-sitter
// language. It validates the grammar by loading it into a throwaway
// parser, returning a *CodeSplitterError if the grammar is incompatible
// with this build of go-tree-sitter, and validates overlap the same way
// every other splitter does.
func NewCodeSplitter(language *sitter.Language, capacity Capacity, opts ...CodeOption) (*CodeSplitter, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(language)
	if _, err := parser.ParseCtx(context.Background(), nil, []byte{}); err != nil {
		return nil, &CodeSplitterError{Err: err}
	}

	cfg := CodeConfig{Capacity: capacity, Sizer: Characters{}, Trim: TrimPreserveIndentation}
	for _, o := range opts {
		o(&cfg)
	}
	if err := validateOverlap(cfg.Overlap, cfg.Capacity); err != nil {
		return nil, err
	}

	return &CodeSplitter{cfg: cfg, language: language}, nil
}

// NewCodeSplitterForLanguage builds a CodeSplitter for a language known
// to the registry, auto-selecting its grammar.
func NewCodeSplitterForLanguage(name languages.LanguageName, capacity Capacity, opts ...CodeOption) (*CodeSplitter, error) {
	if name == "" {
		return nil, ErrLanguageNotSpecified
	}
	lang, ok := languages.GetLanguageConfig(name)
	if !ok {
		return nil, &LanguageError{Language: name, Err: ErrUnsupportedLanguage}
	}
	if lang.GetParser == nil {
		return nil, &LanguageError{Language: name, Err: ErrNoASTSupport}
	}

	splitter, err := NewCodeSplitter(lang.GetParser(), capacity, opts...)
	if err != nil {
		return nil, &LanguageError{Language: name, Err: err}
	}
	splitter.langName = lang.Name
	return splitter, nil
}

// NewCodeSplitterForFile builds a CodeSplitter by detecting the language
// from a file path (extension, or exact filename for things like
// "Dockerfile"), falling back to languages.Generic when nothing matches.
func NewCodeSplitterForFile(path string, capacity Capacity, opts ...CodeOption) (*CodeSplitter, error) {
	lang, _ := languages.DetectLanguage(path)
	return NewCodeSplitterForLanguage(lang.Name, capacity, opts...)
}

// ChunkIndices returns a lazy sequence of (byte offset, chunk) pairs.
func (s *CodeSplitter) ChunkIndices(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		parser := sitter.NewParser()
		parser.SetLanguage(s.language)
		ranges, _, err := parseDepths(parser, text)
		if err != nil {
			// The grammar was already validated at construction, so a
			// parse failure here means the parser itself hit a timeout
			// or cancellation, neither of which this splitter sets up.
			panic(fmt.Errorf("textsplit: parsing source: %w", err))
		}

		asm := NewAssembler[Depth](text, ranges, s.cfg.Capacity, s.cfg.Sizer, s.cfg.Trim, s.cfg.Overlap, defaultSectioner[Depth])
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
func (s *CodeSplitter) Chunks(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, chunk := range s.ChunkIndices(text) {
			if !yield(chunk) {
				return
			}
		}
	}
}
