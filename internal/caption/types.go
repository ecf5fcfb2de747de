package caption

// SchemaVersion is the caption document schema version. Downstream renderers
// bind to the serialized field names, so both are frozen.
const SchemaVersion = "1.0"

// Style is the visual style of a caption.
type Style string

const (
	StyleNormal    Style = "normal"
	StyleBold      Style = "bold"
	StyleItalic    Style = "italic"
	StyleHighlight Style = "highlight"
)

// Animation is the entrance animation of a caption.
type Animation string

const (
	AnimationNone       Animation = "none"
	AnimationFadeIn     Animation = "fade-in"
	AnimationScaleIn    Animation = "scale-in"
	AnimationWordByWord Animation = "word-by-word"
	AnimationTypewriter Animation = "typewriter"
)

// ParseAnimation maps an animation name to its enum value. Unknown names
// degrade to scale-in rather than failing.
func ParseAnimation(s string) Animation {
	switch Animation(s) {
	case AnimationNone, AnimationFadeIn, AnimationScaleIn, AnimationWordByWord, AnimationTypewriter:
		return Animation(s)
	}
	return AnimationScaleIn
}

// Position is the vertical placement of a caption on screen.
type Position string

const (
	PositionTop    Position = "top"
	PositionCenter Position = "center"
	PositionBottom Position = "bottom"
)

// TimedWord is a single word from the speech engine with timing information.
type TimedWord struct {
	Text       string   `json:"text"`
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Transcript is the raw speech-engine output the pipeline consumes.
type Transcript struct {
	Words    []TimedWord `json:"words"`
	Text     string      `json:"text,omitempty"`
	Duration float64     `json:"duration"`
	Language string      `json:"language"`
}

// Phrase is a contiguous run of normalized words destined to become one caption.
type Phrase []TimedWord

// CaptionWord is a word within a caption. LineBreakBefore is true when a new
// display line starts at this word.
type CaptionWord struct {
	Text            string  `json:"text"`
	Start           float64 `json:"start"`
	End             float64 `json:"end"`
	LineBreakBefore bool    `json:"lineBreakBefore,omitempty"`
}

// Caption is one styled, time-aligned caption segment.
type Caption struct {
	ID              string        `json:"id"`
	Text            string        `json:"text"`
	Start           float64       `json:"start"`
	End             float64       `json:"end"`
	Words           []CaptionWord `json:"words"`
	Emphasis        []string      `json:"emphasis"`
	Style           Style         `json:"style"`
	Animation       Animation     `json:"animation"`
	Position        Position      `json:"position"`
	MaxCharsPerLine int           `json:"maxCharsPerLine"`
	LineCount       int           `json:"lineCount"`
}

// Settings holds global rendering settings for a caption document.
type Settings struct {
	FontFamily      string  `json:"fontFamily"`
	FontSize        int     `json:"fontSize"`
	FontWeight      int     `json:"fontWeight"`
	Color           string  `json:"color"`
	BackgroundColor string  `json:"backgroundColor"`
	EmphasisScale   float64 `json:"emphasisScale"`
	MaxCharsPerLine int     `json:"maxCharsPerLine"`
	LineHeight      float64 `json:"lineHeight"`
}

// Document is the externally visible caption artifact.
type Document struct {
	Version  string    `json:"version"`
	Captions []Caption `json:"captions"`
	Settings *Settings `json:"settings,omitempty"`
}

// Category is a coarse lexical category supplied by an external tagger.
type Category string

const (
	CategoryNoun       Category = "noun"
	CategoryVerb       Category = "verb"
	CategoryAdjective  Category = "adjective"
	CategoryAdverb     Category = "adverb"
	CategoryProperNoun Category = "proper-noun"
	CategoryUnknown    Category = "unknown"
)

// TaggedWord is one token of tagger output, in source order.
type TaggedWord struct {
	Text     string
	Category Category
}

// Tagger assigns coarse lexical categories to the tokens of a text. The
// pipeline never constructs one; callers inject an implementation (or a fake
// in tests).
type Tagger interface {
	Tag(text string) []TaggedWord
}
