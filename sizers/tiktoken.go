package sizers

import (
	"fmt"

	"github.com/gomantics/textsplit"
	"github.com/pkoukk/tiktoken-go"
)

// Tiktoken measures chunks in BPE tokens using a tiktoken encoding,
// for callers sizing chunks against a language model's context window
// rather than a character or word count.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken builds a Tiktoken sizer for the named OpenAI model,
// falling back to the cl100k_base encoding if the model isn't
// recognized.
func NewTiktoken(model string) (*Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("sizers: loading tiktoken encoding: %w", err)
		}
	}
	return &Tiktoken{enc: enc}, nil
}

// NewTiktokenEncoding builds a Tiktoken sizer for an explicit encoding
// name (e.g. "o200k_base"), for callers that already know which
// encoding their model uses.
func NewTiktokenEncoding(encoding string) (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("sizers: loading tiktoken encoding %q: %w", encoding, err)
	}
	return &Tiktoken{enc: enc}, nil
}

// Atoms encodes the chunk and returns one range per BPE token, each
// range spanning the bytes that token decodes back to. Token
// boundaries from a standalone Encode call don't always line up with
// where they'd fall inside a larger document, so this is an
// approximation suited to relative sizing rather than exact offsets.
func (t *Tiktoken) Atoms(chunk string) []textsplit.Range {
	tokens := t.enc.Encode(chunk, nil, nil)
	atoms := make([]textsplit.Range, 0, len(tokens))
	offset := 0
	for _, tok := range tokens {
		n := len(t.enc.Decode([]int{tok}))
		if n == 0 {
			continue
		}
		atoms = append(atoms, textsplit.Range{Start: offset, End: offset + n})
		offset += n
	}
	return atoms
}
