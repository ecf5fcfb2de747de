package caption

import "strings"

// sentenceEnders close a phrase when the previous word ends with one of them.
var sentenceEnders = []string{".", "!", "?", "..."}

func endsWithSentencePunctuation(text string) bool {
	text = strings.TrimSpace(text)
	for _, p := range sentenceEnders {
		if strings.HasSuffix(text, p) {
			return true
		}
	}
	return false
}

// Segmenter groups a normalized word sequence into caption-sized phrases.
type Segmenter struct {
	MaxWords       int
	MinWords       int
	PauseThreshold float64
}

// shouldBreakBefore decides whether the accumulated phrase closes before word.
func (s *Segmenter) shouldBreakBefore(word TimedWord, current Phrase) bool {
	if len(current) == 0 {
		return false
	}

	prev := current[len(current)-1]

	// Natural pause between words.
	if word.Start-prev.End > s.PauseThreshold {
		return true
	}

	// Phrase is already full.
	if len(current) >= s.MaxWords {
		return true
	}

	// Previous word closed a sentence.
	return endsWithSentencePunctuation(prev.Text)
}

// Segment partitions words into contiguous phrases. Every input word lands in
// exactly one phrase, in original order. Empty input yields nil.
func (s *Segmenter) Segment(words []TimedWord) []Phrase {
	if len(words) == 0 {
		return nil
	}

	var phrases []Phrase
	var current Phrase

	for _, w := range words {
		if s.shouldBreakBefore(w, current) {
			phrases = append(phrases, current)
			current = nil
		}
		current = append(current, w)
	}

	if len(current) > 0 {
		phrases = append(phrases, current)
	}

	return s.mergeShortPhrases(phrases)
}

// mergeShortPhrases joins undersized phrases with their successor to avoid
// orphan one-word captions. The +1 tolerance keeps near-threshold merges from
// being rejected by a single word.
func (s *Segmenter) mergeShortPhrases(phrases []Phrase) []Phrase {
	if len(phrases) <= 1 {
		return phrases
	}

	merged := make([]Phrase, 0, len(phrases))
	i := 0

	for i < len(phrases) {
		current := phrases[i]

		if len(current) < s.MinWords && i+1 < len(phrases) {
			next := phrases[i+1]

			if len(current)+len(next) <= s.MaxWords+1 {
				combined := make(Phrase, 0, len(current)+len(next))
				combined = append(combined, current...)
				combined = append(combined, next...)
				merged = append(merged, combined)
				i += 2
				continue
			}
		}

		merged = append(merged, current)
		i++
	}

	return merged
}
