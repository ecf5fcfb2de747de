package caption

import (
	"strings"
	"unicode/utf8"
)

// defaultLineStartWords are function words favored to begin a display line
// rather than end one.
var defaultLineStartWords = map[string]struct{}{
	"and": {}, "but": {}, "or": {}, "so": {}, "because": {},
	"if": {}, "when": {}, "while": {}, "that": {}, "which": {}, "then": {},
}

// WrapPhrase converts a phrase into caption words with line-break flags under
// a character budget. This is a soft greedy wrapper: the two percentage
// thresholds bias breaks toward clause boundaries before the hard limit is
// hit. The first word never breaks; a single word longer than the budget is
// never split mid-word. lineStartWords may be nil to use the default set.
func WrapPhrase(phrase Phrase, maxCharsPerLine int, lineStartWords map[string]struct{}) []CaptionWord {
	if len(phrase) == 0 {
		return nil
	}
	if lineStartWords == nil {
		lineStartWords = defaultLineStartWords
	}

	out := make([]CaptionWord, 0, len(phrase))
	lineChars := 0

	for i, w := range phrase {
		cw := CaptionWord{Text: w.Text, Start: w.Start, End: w.End}
		wordLen := utf8.RuneCountInString(w.Text)

		if i == 0 {
			lineChars = wordLen
			out = append(out, cw)
			continue
		}

		_, preferred := lineStartWords[strings.ToLower(w.Text)]
		prevComma := strings.HasSuffix(phrase[i-1].Text, ",")

		breakHere := false
		switch {
		case lineChars+1+wordLen > maxCharsPerLine:
			breakHere = true
		case preferred && lineChars > maxCharsPerLine/2:
			breakHere = true
		case prevComma && float64(lineChars) > 0.6*float64(maxCharsPerLine):
			breakHere = true
		}

		if breakHere {
			cw.LineBreakBefore = true
			lineChars = wordLen
		} else {
			lineChars += 1 + wordLen
		}
		out = append(out, cw)
	}

	return out
}

// LineCount returns the number of display lines in a wrapped word sequence.
func LineCount(words []CaptionWord) int {
	if len(words) == 0 {
		return 0
	}
	lines := 1
	for _, w := range words {
		if w.LineBreakBefore {
			lines++
		}
	}
	return lines
}
