package textsplit

import "testing"

func TestFallbackLevelRank(t *testing.T) {
	if !(Char.Rank() < GraphemeCluster.Rank() && GraphemeCluster.Rank() < Word.Rank() && Word.Rank() < Sentence.Rank()) {
		t.Fatal("fallback levels are not ordered Char < GraphemeCluster < Word < Sentence")
	}
}

func TestCharSections(t *testing.T) {
	sections := fallbackSections(Char, "abc")
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	want := []offsetText{{0, "a"}, {1, "b"}, {2, "c"}}
	for i, s := range sections {
		if s != want[i] {
			t.Errorf("sections[%d] = %+v, want %+v", i, s, want[i])
		}
	}
}

func TestGraphemeSections(t *testing.T) {
	// "a̐é" is an 'a' with a combining diacritic, then a precomposed 'é':
	// two grapheme clusters even though more than two runes.
	text := "a̐é"
	sections := graphemeSections(text)
	if len(sections) != 2 {
		t.Fatalf("got %d grapheme sections, want 2: %+v", len(sections), sections)
	}
	if sections[0].Offset != 0 {
		t.Errorf("sections[0].Offset = %d, want 0", sections[0].Offset)
	}
	if sections[1].Offset != len(sections[0].Text) {
		t.Errorf("sections[1].Offset = %d, want %d", sections[1].Offset, len(sections[0].Text))
	}
}

func TestWordSections(t *testing.T) {
	sections := wordSections("hello world")
	var words []string
	for _, s := range sections {
		words = append(words, s.Text)
	}
	joined := ""
	for _, w := range words {
		joined += w
	}
	if joined != "hello world" {
		t.Errorf("word sections do not reconstruct input: %q", joined)
	}
	foundHello, foundWorld := false, false
	for _, w := range words {
		if w == "hello" {
			foundHello = true
		}
		if w == "world" {
			foundWorld = true
		}
	}
	if !foundHello || !foundWorld {
		t.Errorf("expected sections containing %q and %q, got %v", "hello", "world", words)
	}
}

func TestSentenceSectionsReconstruct(t *testing.T) {
	text := "First sentence. Second sentence! Third?"
	sections := sentenceSections(text)
	joined := ""
	for _, s := range sections {
		joined += s.Text
	}
	if joined != text {
		t.Errorf("sentence sections do not reconstruct input: got %q, want %q", joined, text)
	}
}

func TestFallbackSectionsEmpty(t *testing.T) {
	for _, level := range []FallbackLevel{Char, GraphemeCluster, Word, Sentence} {
		if got := fallbackSections(level, ""); got != nil {
			t.Errorf("fallbackSections(%v, \"\") = %v, want nil", level, got)
		}
	}
}

func TestFallbackLevelString(t *testing.T) {
	tests := map[FallbackLevel]string{
		Char:            "char",
		GraphemeCluster: "grapheme",
		Word:            "word",
		Sentence:        "sentence",
	}
	for level, want := range tests {
		if got := level.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", level, got, want)
		}
	}
}
