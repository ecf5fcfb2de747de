package caption

import "testing"

func TestNormalizeTimings_Empty(t *testing.T) {
	if got := NormalizeTimings(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestNormalizeTimings_BenignOverlapClamped(t *testing.T) {
	words := []TimedWord{
		{Text: "one", Start: 0, End: 1.0},
		{Text: "two", Start: 0.95, End: 1.5}, // 0.05s overlap, within tolerance
	}

	out := NormalizeTimings(words)
	if out[1].Start != 1.0 {
		t.Errorf("start = %f, want clamped to 1.0", out[1].Start)
	}
}

func TestNormalizeTimings_LargeOverlapLeftAlone(t *testing.T) {
	words := []TimedWord{
		{Text: "one", Start: 0, End: 1.0},
		{Text: "two", Start: 0.5, End: 1.5}, // 0.5s overlap, beyond tolerance
	}

	out := NormalizeTimings(words)
	if out[1].Start != 0.5 {
		t.Errorf("start = %f, want 0.5 (unchanged)", out[1].Start)
	}
}

func TestNormalizeTimings_ZeroDurationPadded(t *testing.T) {
	words := []TimedWord{
		{Text: "one", Start: 1.0, End: 1.0},
	}

	out := NormalizeTimings(words)
	if out[0].End != 1.05 {
		t.Errorf("end = %f, want 1.05", out[0].End)
	}
}

func TestNormalizeTimings_NegativeDurationPadded(t *testing.T) {
	words := []TimedWord{
		{Text: "one", Start: 1.0, End: 0.8},
	}

	out := NormalizeTimings(words)
	if out[0].End != 1.05 {
		t.Errorf("end = %f, want 1.05", out[0].End)
	}
}

func TestNormalizeTimings_MinDurationExtended(t *testing.T) {
	words := []TimedWord{
		{Text: "one", Start: 1.0, End: 1.01},
	}

	out := NormalizeTimings(words)
	if out[0].End != 1.03 {
		t.Errorf("end = %f, want 1.03", out[0].End)
	}
}

func TestNormalizeTimings_Monotonicity(t *testing.T) {
	// Deliberately messy input: overlaps, zero durations, jitter.
	words := []TimedWord{
		{Text: "a", Start: 0.0, End: 0.0},
		{Text: "b", Start: 0.02, End: 0.3},
		{Text: "c", Start: 0.28, End: 0.28},
		{Text: "d", Start: 0.3, End: 0.31},
		{Text: "e", Start: 0.4, End: 0.2},
	}

	out := NormalizeTimings(words)
	if len(out) != len(words) {
		t.Fatalf("length = %d, want %d (no word dropped)", len(out), len(words))
	}

	prevEnd := 0.0
	for i, w := range out {
		if w.End <= w.Start {
			t.Errorf("word %d: end %f <= start %f", i, w.End, w.Start)
		}
		if w.End-w.Start < minWordDuration {
			t.Errorf("word %d: duration %f < %f", i, w.End-w.Start, minWordDuration)
		}
		if w.Start < prevEnd {
			t.Errorf("word %d: start %f < previous end %f", i, w.Start, prevEnd)
		}
		prevEnd = w.End
	}
}

func TestNormalizeTimings_ConfidencePassesThrough(t *testing.T) {
	conf := 0.87
	words := []TimedWord{
		{Text: "one", Start: 0, End: 0, Confidence: &conf},
	}

	out := NormalizeTimings(words)
	if out[0].Confidence == nil || *out[0].Confidence != 0.87 {
		t.Errorf("confidence not preserved: %v", out[0].Confidence)
	}
}

func TestNormalizeTimings_InputNotMutated(t *testing.T) {
	words := []TimedWord{
		{Text: "one", Start: 1.0, End: 1.0},
	}

	NormalizeTimings(words)
	if words[0].End != 1.0 {
		t.Errorf("input slice was mutated: end = %f", words[0].End)
	}
}
