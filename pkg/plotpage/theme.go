package plotpage

// Theme represents a color theme for visualizations.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ParseTheme maps a configured name to a theme. Unknown names are dark.
func ParseTheme(name string) Theme {
	if Theme(name) == ThemeLight {
		return ThemeLight
	}

	return ThemeDark
}

// ThemeConfig holds the colors a page and its charts are drawn with.
type ThemeConfig struct {
	Background    string
	Surface       string
	Border        string
	TextPrimary   string
	TextSecondary string
	TextMuted     string
	Accent        string
	AccentSubtle  string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// Point is the scatter dot color.
	Point string
	// Palette colors series and language classes in order.
	Palette []string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeLight {
		return lightTheme
	}

	return darkTheme
}

// Color returns the i-th palette color, wrapping around.
func (tc ThemeConfig) Color(i int) string {
	if len(tc.Palette) == 0 {
		return tc.Accent
	}

	return tc.Palette[i%len(tc.Palette)]
}

var lightTheme = ThemeConfig{
	Background:    "#fafaf9", // stone-50.
	Surface:       "#ffffff",
	Border:        "#e7e5e4", // stone-200.
	TextPrimary:   "#1c1917", // stone-900.
	TextSecondary: "#44403c", // stone-700.
	TextMuted:     "#78716c", // stone-500.
	Accent:        "#a16207", // amber-700.
	AccentSubtle:  "#fef3c7", // amber-100.

	ChartBackground: "transparent",
	ChartGrid:       "#e7e5e4",
	ChartAxis:       "#a8a29e", // stone-400.
	ChartText:       "#44403c",
	ChartTextMuted:  "#78716c",

	Point: "#4682b4", // steelblue.
	Palette: []string{
		"#a16207", "#0369a1", "#4d7c0f", "#7c3aed", "#be185d",
		"#0891b2", "#c2410c", "#4338ca", "#15803d", "#b91c1c",
	},
}

var darkTheme = ThemeConfig{
	Background:    "#0c0a09", // stone-950.
	Surface:       "#1c1917", // stone-900.
	Border:        "#44403c", // stone-700.
	TextPrimary:   "#fafaf9",
	TextSecondary: "#d6d3d1", // stone-300.
	TextMuted:     "#a8a29e",
	Accent:        "#d97706", // amber-600.
	AccentSubtle:  "#451a03", // amber-950.

	ChartBackground: "transparent",
	ChartGrid:       "#44403c",
	ChartAxis:       "#57534e", // stone-600.
	ChartText:       "#d6d3d1",
	ChartTextMuted:  "#a8a29e",

	Point: "#60a5fa", // blue-400.
	Palette: []string{
		"#fbbf24", "#38bdf8", "#a3e635", "#a78bfa", "#f472b6",
		"#22d3ee", "#fb923c", "#818cf8", "#4ade80", "#f87171",
	},
}
