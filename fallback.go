package textsplit

import "github.com/rivo/uniseg"

// FallbackLevel is the universal segmentation ladder used when no
// format-specific semantic range fits the capacity. Ordered ascending:
// a single character is the weakest boundary, a sentence the strongest.
type FallbackLevel int

const (
	Char FallbackLevel = iota
	GraphemeCluster
	Word
	Sentence
)

// Rank implements Level.
func (f FallbackLevel) Rank() int {
	return int(f)
}

func (f FallbackLevel) String() string {
	switch f {
	case Char:
		return "char"
	case GraphemeCluster:
		return "grapheme"
	case Word:
		return "word"
	case Sentence:
		return "sentence"
	default:
		return "unknown"
	}
}

// fallbackSections splits text (which begins at byte 0 of its own
// coordinate space) into consecutive segments at the given level. The
// returned offsets are relative to text, not to any enclosing document.
func fallbackSections(level FallbackLevel, text string) []offsetText {
	if text == "" {
		return nil
	}
	switch level {
	case Char:
		return charSections(text)
	case GraphemeCluster:
		return graphemeSections(text)
	case Word:
		return wordSections(text)
	default:
		return sentenceSections(text)
	}
}

func charSections(text string) []offsetText {
	var out []offsetText
	for i, r := range text {
		out = append(out, offsetText{Offset: i, Text: string(r)})
	}
	return out
}

func graphemeSections(text string) []offsetText {
	var out []offsetText
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, to := g.Positions()
		out = append(out, offsetText{Offset: from, Text: text[from:to]})
	}
	return out
}

func wordSections(text string) []offsetText {
	var out []offsetText
	remaining := text
	cursor := 0
	state := -1
	for len(remaining) > 0 {
		word, rest, newState := uniseg.FirstWordInString(remaining, state)
		out = append(out, offsetText{Offset: cursor, Text: word})
		cursor += len(word)
		remaining = rest
		state = newState
	}
	return out
}

func sentenceSections(text string) []offsetText {
	var out []offsetText
	remaining := text
	cursor := 0
	state := -1
	for len(remaining) > 0 {
		sentence, rest, newState := uniseg.FirstSentenceInString(remaining, state)
		out = append(out, offsetText{Offset: cursor, Text: sentence})
		cursor += len(sentence)
		remaining = rest
		state = newState
	}
	return out
}
