package caption

import "log/slog"

const (
	// overlapTolerance is the largest overlap with the previous word that is
	// silently clamped. Larger overlaps are logged and left alone: clamping
	// a big jump would distort timings that are genuinely odd upstream.
	overlapTolerance = 0.1

	// minWordDuration is the shortest duration any word may have after repair.
	minWordDuration = 0.03

	// zeroDurationPad replaces zero or negative durations.
	zeroDurationPad = 0.05
)

// NormalizeTimings repairs raw word timestamps into a strictly sequential,
// non-overlapping sequence where every word lasts at least minWordDuration.
// No word is dropped or reordered and confidence values pass through
// unchanged. The input slice is not modified.
func NormalizeTimings(words []TimedWord) []TimedWord {
	if len(words) == 0 {
		return nil
	}

	out := make([]TimedWord, 0, len(words))
	prevEnd := 0.0

	for _, w := range words {
		if w.Start < prevEnd {
			if prevEnd-w.Start <= overlapTolerance {
				w.Start = prevEnd
			} else {
				slog.Debug("word overlaps previous beyond tolerance",
					"text", w.Text, "start", w.Start, "prev_end", prevEnd)
			}
		}

		if w.End <= w.Start {
			w.End = w.Start + zeroDurationPad
		}
		if w.End-w.Start < minWordDuration {
			w.End = w.Start + minWordDuration
		}

		prevEnd = w.End
		out = append(out, w)
	}

	return out
}
