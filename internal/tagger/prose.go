// Package tagger provides lexical-category tagging for the caption stylizer.
package tagger

import (
	"log/slog"
	"strings"

	prose "github.com/jdkato/prose/v2"

	"github.com/Araon/Steno/internal/caption"
)

// Prose tags text with jdkato/prose and maps its Penn Treebank tags to the
// coarse categories the stylizer consumes.
type Prose struct{}

// NewProse returns a prose-backed tagger.
func NewProse() *Prose {
	return &Prose{}
}

// Tag implements caption.Tagger. Tagging failures are logged and yield no
// tokens; the stylizer then falls back to last-word emphasis.
func (p *Prose) Tag(text string) []caption.TaggedWord {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		slog.Warn("lexical tagging failed", "err", err)
		return nil
	}

	tokens := doc.Tokens()
	out := make([]caption.TaggedWord, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, caption.TaggedWord{
			Text:     tok.Text,
			Category: mapPennTag(tok.Tag),
		})
	}
	return out
}

// mapPennTag converts a Penn Treebank tag to a coarse lexical category.
// NNP/NNPS come before NN/NNS — prefix order matters.
func mapPennTag(tag string) caption.Category {
	switch {
	case strings.HasPrefix(tag, "NNP"):
		return caption.CategoryProperNoun
	case strings.HasPrefix(tag, "NN"):
		return caption.CategoryNoun
	case strings.HasPrefix(tag, "VB"):
		return caption.CategoryVerb
	case strings.HasPrefix(tag, "JJ"):
		return caption.CategoryAdjective
	case strings.HasPrefix(tag, "RB"):
		return caption.CategoryAdverb
	}
	return caption.CategoryUnknown
}
