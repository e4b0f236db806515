package config

import "time"

// Source defaults.
const (
	DefaultTimezone         = "Local"
	DefaultLoadTimeout      = 30 * time.Second
	DefaultGitRevision      = "HEAD"
	DefaultGitIndentWidth   = 4
	DefaultChartWidth       = 1000
	DefaultChartHeight      = 450
	DefaultChartBandPadding = 0.2
)

// Narrative defaults.
const (
	DefaultNarrativeThreshold      = 0.5
	DefaultNarrativeViewportHeight = 800
	DefaultNarrativeStepHeight     = 120
)

// Render and logging defaults.
const (
	DefaultRenderTheme       = "dark"
	DefaultRenderBoundLayout = "2006-01-02 15:04"
	DefaultRenderTitle       = "Commit history"
	DefaultLoggingLevel      = "info"
	DefaultLoggingFormat     = "text"
)
