package caption

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Araon/Steno/internal/config"
)

// Generate runs the full pipeline (timing normalization, phrase segmentation,
// line wrapping, style assignment) and returns the final caption document.
// An empty transcript yields a document with an empty caption list, not an
// error. The only failure mode is invalid options.
func Generate(transcript *Transcript, tagger Tagger, opts *config.CaptionOptions) (*Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("caption options: %w", err)
	}

	defaultAnimation := ParseAnimation(opts.DefaultAnimation)

	normalized := NormalizeTimings(transcript.Words)

	seg := &Segmenter{
		MaxWords:       opts.MaxWordsPerCaption,
		MinWords:       opts.MinWordsPerCaption,
		PauseThreshold: opts.PauseThreshold,
	}
	phrases := seg.Segment(normalized)

	slog.Debug("segmented transcript", "words", len(normalized), "phrases", len(phrases))

	captions := make([]Caption, 0, len(phrases))
	for i, phrase := range phrases {
		captions = append(captions, newCaption(phrase, i, opts.MaxCharsPerLine, defaultAnimation))
	}

	st := &Stylizer{
		Tagger:            tagger,
		VaryAnimations:    opts.VaryAnimations,
		EmphasizeKeywords: opts.EmphasizeKeywords,
	}
	doc := st.Stylize(captions)

	if opts.Theme != "" {
		doc = ApplyTheme(doc, opts.Theme)
	}

	// The settings block reports the budget the captions were actually
	// wrapped with, not the theme's.
	doc.Settings.MaxCharsPerLine = opts.MaxCharsPerLine

	return doc, nil
}

// newCaption builds an unstyled caption from a wrapped phrase.
func newCaption(phrase Phrase, index, maxCharsPerLine int, animation Animation) Caption {
	words := WrapPhrase(phrase, maxCharsPerLine, nil)

	texts := make([]string, len(phrase))
	for i, w := range phrase {
		texts[i] = w.Text
	}

	return Caption{
		ID:              newCaptionID(index),
		Text:            strings.Join(texts, " "),
		Start:           phrase[0].Start,
		End:             phrase[len(phrase)-1].End,
		Words:           words,
		Emphasis:        []string{},
		Style:           StyleNormal,
		Animation:       animation,
		Position:        PositionCenter,
		MaxCharsPerLine: maxCharsPerLine,
		LineCount:       LineCount(words),
	}
}

func newCaptionID(index int) string {
	u := uuid.New()
	return fmt.Sprintf("caption_%d_%s", index, hex.EncodeToString(u[:4]))
}
