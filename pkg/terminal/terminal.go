// Package terminal renders session snapshots as terminal text: headed
// sections, go-pretty tables and block progress bars.
package terminal

import (
	"os"
	"strconv"

	"github.com/fatih/color"
)

// Default width constants.
const (
	DefaultWidth = 80
	MinWidth     = 60
	MaxWidth     = 120
)

// Config holds terminal rendering configuration.
type Config struct {
	Width   int
	NoColor bool
}

// NewConfig creates a Config from the environment: COLUMNS sets the width
// and NO_COLOR (or a non-terminal stdout) disables color.
func NewConfig() Config {
	return Config{
		Width:   DetectWidth(),
		NoColor: color.NoColor,
	}
}

// DetectWidth returns the terminal width from COLUMNS clamped to
// [MinWidth, MaxWidth], or DefaultWidth if not set or invalid.
func DetectWidth() int {
	width, err := strconv.Atoi(os.Getenv("COLUMNS"))
	if err != nil || width <= 0 {
		return DefaultWidth
	}

	return min(max(width, MinWidth), MaxWidth)
}

// Colorize paints text with the given attributes unless color is disabled.
func (c Config) Colorize(text string, attrs ...color.Attribute) string {
	if c.NoColor || len(attrs) == 0 {
		return text
	}

	painter := color.New(attrs...)
	painter.EnableColor()

	return painter.Sprint(text)
}
