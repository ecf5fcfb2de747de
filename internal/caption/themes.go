package caption

// DefaultTheme is used when a requested theme does not exist.
const DefaultTheme = "default"

// themes maps theme names to rendering settings. Themes affect settings
// only, never caption content.
var themes = map[string]Settings{
	"default": {
		FontFamily:      "Inter",
		FontSize:        48,
		FontWeight:      700,
		Color:           "#FFFFFF",
		BackgroundColor: "transparent",
		EmphasisScale:   1.2,
		MaxCharsPerLine: 30,
		LineHeight:      1.2,
	},
	"minimal": {
		FontFamily:      "Helvetica",
		FontSize:        40,
		FontWeight:      400,
		Color:           "#FFFFFF",
		BackgroundColor: "transparent",
		EmphasisScale:   1.1,
		MaxCharsPerLine: 30,
		LineHeight:      1.3,
	},
	"bold": {
		FontFamily:      "Impact",
		FontSize:        56,
		FontWeight:      900,
		Color:           "#FFFFFF",
		BackgroundColor: "transparent",
		EmphasisScale:   1.3,
		MaxCharsPerLine: 26,
		LineHeight:      1.1,
	},
	"playful": {
		FontFamily:      "Comic Sans MS",
		FontSize:        44,
		FontWeight:      700,
		Color:           "#FFFF00",
		BackgroundColor: "transparent",
		EmphasisScale:   1.4,
		MaxCharsPerLine: 28,
		LineHeight:      1.25,
	},
}

// ThemeSettings returns the settings for a named theme, falling back to the
// default theme for unknown names.
func ThemeSettings(name string) Settings {
	if s, ok := themes[name]; ok {
		return s
	}
	return themes[DefaultTheme]
}

// DefaultSettings returns the default theme's settings.
func DefaultSettings() Settings {
	return themes[DefaultTheme]
}

// ApplyTheme returns a new document whose settings are replaced wholesale by
// the named theme. Captions are untouched.
func ApplyTheme(doc *Document, theme string) *Document {
	settings := ThemeSettings(theme)
	return &Document{
		Version:  doc.Version,
		Captions: doc.Captions,
		Settings: &settings,
	}
}

// ThemeNames lists the available themes.
func ThemeNames() []string {
	return []string{"default", "minimal", "bold", "playful"}
}
