package textsplit

import (
	"errors"
	"fmt"

	"github.com/gomantics/textsplit/languages"
)

// Sentinel errors that can be checked with errors.Is().
var (
	// ErrLanguageNotSpecified is returned when no language is specified
	// for a CodeSplitter built from a language name.
	ErrLanguageNotSpecified = errors.New("textsplit: language must be specified")

	// ErrUnsupportedLanguage is returned when the requested language has
	// no entry in the grammar registry.
	ErrUnsupportedLanguage = errors.New("textsplit: unsupported language")

	// ErrNoASTSupport is returned when a language doesn't support
	// tree-sitter parsing (the Generic pseudo-language).
	ErrNoASTSupport = errors.New("textsplit: language does not support AST parsing")

	// ErrInvalidOverlap is returned when overlap is negative or is not
	// strictly less than the capacity's upper bound.
	ErrInvalidOverlap = errors.New("textsplit: invalid overlap")

	// ErrInvalidCapacity is returned when a capacity's bounds are
	// malformed (start > end).
	ErrInvalidCapacity = errors.New("textsplit: invalid capacity")

	// ErrIncompatibleGrammar is returned when a tree-sitter grammar fails
	// to load into a parser.
	ErrIncompatibleGrammar = errors.New("textsplit: incompatible grammar")
)

// LanguageError wraps a sentinel error with the language name that
// triggered it.
type LanguageError struct {
	Language languages.LanguageName
	Err      error
}

func (e *LanguageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Language, e.Err)
}

func (e *LanguageError) Unwrap() error {
	return e.Err
}

// CodeSplitterError wraps a grammar-loading failure encountered while
// constructing a CodeSplitter.
type CodeSplitterError struct {
	Err error
}

func (e *CodeSplitterError) Error() string {
	return fmt.Sprintf("textsplit: %v: %v", ErrIncompatibleGrammar, e.Err)
}

func (e *CodeSplitterError) Unwrap() error {
	return errors.Join(ErrIncompatibleGrammar, e.Err)
}

// validateOverlap checks the overlap/capacity configuration error
// required at construction time by every splitter.
func validateOverlap(overlap int, capacity Capacity) error {
	if overlap < 0 {
		return fmt.Errorf("%w: overlap must be non-negative, got %d", ErrInvalidOverlap, overlap)
	}
	if end, ok := capacity.End(); ok && overlap >= end {
		return fmt.Errorf("%w: overlap (%d) must be less than capacity end (%d)", ErrInvalidOverlap, overlap, end)
	}
	return nil
}
