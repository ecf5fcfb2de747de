package worker

import (
	"testing"

	"github.com/Araon/Steno/internal/caption"
)

func TestApplyTimeOffset(t *testing.T) {
	words := []caption.TimedWord{
		{Text: "one", Start: 0.0, End: 0.5},
		{Text: "two", Start: 0.5, End: 1.0},
	}

	applyTimeOffset(words, 90.0)

	if words[0].Start != 90.0 || words[0].End != 90.5 {
		t.Errorf("first word = [%f, %f], want [90.0, 90.5]", words[0].Start, words[0].End)
	}
	if words[1].Start != 90.5 || words[1].End != 91.0 {
		t.Errorf("second word = [%f, %f], want [90.5, 91.0]", words[1].Start, words[1].End)
	}
}

func TestApplyTimeOffset_RoundsToMilliseconds(t *testing.T) {
	words := []caption.TimedWord{
		{Text: "one", Start: 0.1, End: 0.2},
	}

	// 0.1 + 0.0012 would be 0.1012 without rounding.
	applyTimeOffset(words, 0.0012)

	if words[0].Start != 0.101 {
		t.Errorf("start = %v, want 0.101", words[0].Start)
	}
	if words[0].End != 0.201 {
		t.Errorf("end = %v, want 0.201", words[0].End)
	}
}

func TestMergeResults_OrdersByIndex(t *testing.T) {
	results := []chunkResult{
		{Index: 1, Transcript: &caption.Transcript{
			Text:     "second part",
			Duration: 30,
			Words:    []caption.TimedWord{{Text: "second", Start: 90, End: 90.5}},
		}},
		{Index: 0, Transcript: &caption.Transcript{
			Text:     "first part",
			Duration: 90,
			Language: "en",
			Words:    []caption.TimedWord{{Text: "first", Start: 0, End: 0.5}},
		}},
	}

	combined := mergeResults(results)

	if combined.Text != "first part second part" {
		t.Errorf("text = %q", combined.Text)
	}
	if len(combined.Words) != 2 || combined.Words[0].Text != "first" {
		t.Errorf("words out of order: %v", combined.Words)
	}
	if combined.Duration != 120 {
		t.Errorf("duration = %f, want 120", combined.Duration)
	}
	if combined.Language != "en" {
		t.Errorf("language = %q, want en (from first chunk)", combined.Language)
	}
}

func TestMergeResults_SingleChunk(t *testing.T) {
	results := []chunkResult{
		{Index: 0, Transcript: &caption.Transcript{Text: "only", Duration: 10}},
	}

	combined := mergeResults(results)
	if combined.Text != "only" || combined.Duration != 10 {
		t.Errorf("combined = %+v", combined)
	}
}
