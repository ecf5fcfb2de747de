package caption

import "strings"

// emphasisCategories are the lexical categories worth visually emphasizing.
var emphasisCategories = map[Category]struct{}{
	CategoryNoun:       {},
	CategoryVerb:       {},
	CategoryAdjective:  {},
	CategoryAdverb:     {},
	CategoryProperNoun: {},
}

// animationCycle provides visual variety across a caption sequence.
var animationCycle = []Animation{
	AnimationScaleIn,
	AnimationFadeIn,
	AnimationWordByWord,
}

// maxEmphasisWords caps emphasis entries per caption for a clean look.
const maxEmphasisWords = 2

// Stylizer selects emphasis words, a visual style, and an animation for each
// caption. It is deterministic: restyling its own output with the same flags
// and indices yields identical captions.
type Stylizer struct {
	Tagger            Tagger
	VaryAnimations    bool
	EmphasizeKeywords bool
}

// Stylize applies styling to all captions and assembles the final document.
func (st *Stylizer) Stylize(captions []Caption) *Document {
	styled := make([]Caption, 0, len(captions))
	for i, c := range captions {
		styled = append(styled, st.stylizeCaption(c, i))
	}

	settings := DefaultSettings()
	return &Document{
		Version:  SchemaVersion,
		Captions: styled,
		Settings: &settings,
	}
}

func (st *Stylizer) stylizeCaption(c Caption, index int) Caption {
	emphasis := []string{}
	if st.EmphasizeKeywords {
		emphasis = st.findEmphasisWords(c)
	}

	if st.VaryAnimations {
		c.Animation = animationCycle[index%len(animationCycle)]
	}

	c.Emphasis = emphasis
	c.Style = selectStyle(c, emphasis)
	return c
}

// findEmphasisWords picks up to maxEmphasisWords words worth highlighting.
// Tagger output only counts when the token also appears among the caption's
// own words, guarding against tokenization drift between the tagger and the
// transcript. With no category match, the last word is emphasized (lyric
// convention).
func (st *Stylizer) findEmphasisWords(c Caption) []string {
	emphasis := []string{}
	if len(c.Words) == 0 {
		return emphasis
	}

	wordTexts := make(map[string]struct{}, len(c.Words))
	for _, w := range c.Words {
		wordTexts[strings.ToLower(w.Text)] = struct{}{}
	}

	if st.Tagger != nil {
		for _, tok := range st.Tagger.Tag(c.Text) {
			if _, ok := emphasisCategories[tok.Category]; !ok {
				continue
			}
			if _, ok := wordTexts[strings.ToLower(tok.Text)]; ok {
				emphasis = append(emphasis, tok.Text)
			}
		}
	}

	if len(emphasis) == 0 {
		last := strings.TrimRight(c.Words[len(c.Words)-1].Text, ".,!?")
		if last != "" {
			emphasis = append(emphasis, last)
		}
	}

	if len(emphasis) > maxEmphasisWords {
		emphasis = emphasis[:maxEmphasisWords]
	}
	return emphasis
}

// selectStyle picks the visual style in strict priority order.
func selectStyle(c Caption, emphasis []string) Style {
	text := strings.TrimSpace(c.Text)

	switch {
	case strings.HasSuffix(text, "?"):
		return StyleItalic
	case strings.HasSuffix(text, "!"):
		return StyleBold
	case len(c.Words) <= 2:
		return StyleBold
	case len(emphasis) >= maxEmphasisWords:
		return StyleHighlight
	}
	return StyleNormal
}
