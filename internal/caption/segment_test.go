package caption

import "testing"

func defaultSegmenter() *Segmenter {
	return &Segmenter{MaxWords: 4, MinWords: 2, PauseThreshold: 0.5}
}

func TestSegment_Empty(t *testing.T) {
	s := defaultSegmenter()
	if got := s.Segment(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestSegment_PauseBreak(t *testing.T) {
	s := defaultSegmenter()

	words := []TimedWord{
		{Text: "Hello", Start: 0.0, End: 0.4},
		{Text: "world", Start: 0.42, End: 0.9},
		{Text: "this", Start: 1.6, End: 1.8}, // 0.7s gap triggers break
		{Text: "is", Start: 1.8, End: 1.9},
		{Text: "great!", Start: 1.9, End: 2.3},
	}

	phrases := s.Segment(words)
	if len(phrases) != 2 {
		t.Fatalf("expected 2 phrases, got %d", len(phrases))
	}
	if len(phrases[0]) != 2 || phrases[0][0].Text != "Hello" || phrases[0][1].Text != "world" {
		t.Errorf("first phrase = %v, want [Hello world]", phrases[0])
	}
	if len(phrases[1]) != 3 || phrases[1][2].Text != "great!" {
		t.Errorf("second phrase = %v, want [this is great!]", phrases[1])
	}
}

func TestSegment_MaxWordsBreak(t *testing.T) {
	s := defaultSegmenter()

	var words []TimedWord
	for i := 0; i < 8; i++ {
		start := float64(i) * 0.3
		words = append(words, TimedWord{Text: "w", Start: start, End: start + 0.25})
	}

	phrases := s.Segment(words)
	if len(phrases) != 2 {
		t.Fatalf("expected 2 phrases of 4, got %d", len(phrases))
	}
	for i, p := range phrases {
		if len(p) != 4 {
			t.Errorf("phrase %d has %d words, want 4", i, len(p))
		}
	}
}

func TestSegment_PunctuationBreak(t *testing.T) {
	s := defaultSegmenter()

	words := []TimedWord{
		{Text: "Stop.", Start: 0.0, End: 0.3},
		{Text: "go", Start: 0.35, End: 0.6},
		{Text: "now", Start: 0.6, End: 0.9},
	}

	phrases := s.Segment(words)
	// "Stop." closes the first phrase; it is then too short and merges forward.
	if len(phrases) != 1 {
		t.Fatalf("expected 1 phrase after merging, got %d", len(phrases))
	}
	if len(phrases[0]) != 3 {
		t.Errorf("merged phrase has %d words, want 3", len(phrases[0]))
	}
}

func TestSegment_EllipsisBreak(t *testing.T) {
	s := &Segmenter{MaxWords: 4, MinWords: 1, PauseThreshold: 0.5}

	words := []TimedWord{
		{Text: "well...", Start: 0.0, End: 0.3},
		{Text: "maybe", Start: 0.35, End: 0.6},
	}

	phrases := s.Segment(words)
	if len(phrases) != 2 {
		t.Fatalf("expected 2 phrases, got %d", len(phrases))
	}
}

func TestSegment_SingleWordWithPunctuation(t *testing.T) {
	s := defaultSegmenter()

	words := []TimedWord{{Text: "Wow!", Start: 0.0, End: 0.5}}

	phrases := s.Segment(words)
	if len(phrases) != 1 || len(phrases[0]) != 1 {
		t.Fatalf("expected a single one-word phrase, got %v", phrases)
	}
}

func TestSegment_Coverage(t *testing.T) {
	s := defaultSegmenter()

	var words []TimedWord
	texts := []string{"a.", "b", "c", "d", "e!", "f", "g", "h", "i", "j?"}
	for i, text := range texts {
		start := float64(i) * 0.3
		// Inject a big pause in the middle.
		if i >= 5 {
			start += 1.0
		}
		words = append(words, TimedWord{Text: text, Start: start, End: start + 0.25})
	}

	phrases := s.Segment(words)

	var flat []string
	for _, p := range phrases {
		if len(p) == 0 {
			t.Fatal("empty phrase emitted")
		}
		if len(p) > s.MaxWords+1 {
			t.Errorf("phrase exceeds maxWords+1: %d words", len(p))
		}
		for _, w := range p {
			flat = append(flat, w.Text)
		}
	}

	if len(flat) != len(texts) {
		t.Fatalf("coverage broken: %d words out, %d in", len(flat), len(texts))
	}
	for i := range texts {
		if flat[i] != texts[i] {
			t.Errorf("word %d = %q, want %q (order must be preserved)", i, flat[i], texts[i])
		}
	}
}

func TestMergeShortPhrases_MergesWhenCombinedFits(t *testing.T) {
	s := defaultSegmenter()

	phrases := []Phrase{
		{{Text: "one"}},
		{{Text: "two"}, {Text: "three"}, {Text: "four"}},
	}

	merged := s.mergeShortPhrases(phrases)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged phrase, got %d", len(merged))
	}
	if len(merged[0]) != 4 {
		t.Errorf("merged phrase has %d words, want 4", len(merged[0]))
	}
}

func TestMergeShortPhrases_RejectsOversizedMerge(t *testing.T) {
	s := defaultSegmenter()

	// 1 + 5 = 6 > maxWords+1 (5), so no merge.
	phrases := []Phrase{
		{{Text: "one"}},
		{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}, {Text: "e"}},
	}

	merged := s.mergeShortPhrases(phrases)
	if len(merged) != 2 {
		t.Fatalf("expected 2 phrases (merge rejected), got %d", len(merged))
	}
}

func TestMergeShortPhrases_PlusOneTolerance(t *testing.T) {
	s := defaultSegmenter()

	// 1 + 4 = 5 = maxWords+1, allowed by the softening.
	phrases := []Phrase{
		{{Text: "one"}},
		{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}},
	}

	merged := s.mergeShortPhrases(phrases)
	if len(merged) != 1 {
		t.Fatalf("expected merge at maxWords+1, got %d phrases", len(merged))
	}
}

func TestMergeShortPhrases_TrailingShortPhraseKept(t *testing.T) {
	s := defaultSegmenter()

	phrases := []Phrase{
		{{Text: "a"}, {Text: "b"}, {Text: "c"}},
		{{Text: "one"}},
	}

	merged := s.mergeShortPhrases(phrases)
	if len(merged) != 2 {
		t.Fatalf("trailing short phrase must survive, got %d phrases", len(merged))
	}
}
