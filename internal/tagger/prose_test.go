package tagger

import (
	"testing"

	"github.com/Araon/Steno/internal/caption"
)

func TestMapPennTag(t *testing.T) {
	tests := []struct {
		tag  string
		want caption.Category
	}{
		{"NN", caption.CategoryNoun},
		{"NNS", caption.CategoryNoun},
		{"NNP", caption.CategoryProperNoun},
		{"NNPS", caption.CategoryProperNoun},
		{"VB", caption.CategoryVerb},
		{"VBD", caption.CategoryVerb},
		{"VBG", caption.CategoryVerb},
		{"JJ", caption.CategoryAdjective},
		{"JJR", caption.CategoryAdjective},
		{"RB", caption.CategoryAdverb},
		{"RBS", caption.CategoryAdverb},
		{"DT", caption.CategoryUnknown},
		{"IN", caption.CategoryUnknown},
		{"PRP", caption.CategoryUnknown},
		{"", caption.CategoryUnknown},
	}

	for _, tt := range tests {
		if got := mapPennTag(tt.tag); got != tt.want {
			t.Errorf("mapPennTag(%q) = %s, want %s", tt.tag, got, tt.want)
		}
	}
}

func TestProse_TagSimpleSentence(t *testing.T) {
	tags := NewProse().Tag("the dog ran quickly")
	if len(tags) == 0 {
		t.Fatal("expected tokens for a plain sentence")
	}

	byText := make(map[string]caption.Category)
	for _, tok := range tags {
		byText[tok.Text] = tok.Category
	}

	if byText["dog"] != caption.CategoryNoun {
		t.Errorf("dog tagged %s, want noun", byText["dog"])
	}
	if byText["quickly"] != caption.CategoryAdverb {
		t.Errorf("quickly tagged %s, want adverb", byText["quickly"])
	}
}

func TestProse_TagEmptyText(t *testing.T) {
	if tags := NewProse().Tag(""); len(tags) != 0 {
		t.Errorf("expected no tokens for empty text, got %v", tags)
	}
}
