// Package config loads commitlens settings from a YAML file and
// COMMITLENS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidTimezone    = errors.New("unknown timezone")
	ErrInvalidLoadTimeout = errors.New("load timeout must not be negative")
	ErrInvalidIndentWidth = errors.New("indent width must be positive")
	ErrInvalidChartSize   = errors.New("chart width and height must be positive")
	ErrInvalidBandPadding = errors.New("band padding must be in [0,1)")
	ErrInvalidThreshold   = errors.New("narrative threshold must be in [0,1]")
	ErrInvalidStepHeight  = errors.New("narrative viewport and step height must be positive")
	ErrInvalidTheme       = errors.New("unknown render theme")
	ErrInvalidLogFormat   = errors.New("unknown logging format")
)

const envPrefix = "COMMITLENS"

var (
	themes     = []string{"light", "dark"}
	logFormats = []string{"text", "json"}
)

// Config holds all configuration for commitlens.
type Config struct {
	Source    SourceConfig    `mapstructure:"source"`
	Chart     ChartConfig     `mapstructure:"chart"`
	Narrative NarrativeConfig `mapstructure:"narrative"`
	Render    RenderConfig    `mapstructure:"render"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// SourceConfig controls how change logs are read.
type SourceConfig struct {
	// Timezone interprets timestamps without an offset: "Local", "UTC" or an
	// IANA name.
	Timezone    string        `mapstructure:"timezone"`
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
	Git         GitConfig     `mapstructure:"git"`
}

// GitConfig controls the blame-based source.
type GitConfig struct {
	Revision    string   `mapstructure:"revision"`
	Include     []string `mapstructure:"include"`
	IndentWidth int      `mapstructure:"indent_width"`
}

// ChartConfig is the scatter geometry.
type ChartConfig struct {
	Width       float64 `mapstructure:"width"`
	Height      float64 `mapstructure:"height"`
	BandPadding float64 `mapstructure:"band_padding"`
}

// NarrativeConfig is the scroll tracker geometry.
type NarrativeConfig struct {
	Threshold      float64 `mapstructure:"threshold"`
	ViewportHeight float64 `mapstructure:"viewport_height"`
	StepHeight     float64 `mapstructure:"step_height"`
}

// RenderConfig controls the HTML page.
type RenderConfig struct {
	Theme       string `mapstructure:"theme"`
	BoundLayout string `mapstructure:"bound_layout"`
	Title       string `mapstructure:"title"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Source.Timezone {
	case "", DefaultTimezone:
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Source.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, c.Source.Timezone)
	}

	return loc, nil
}

// LoadConfig loads configuration from file and environment variables. An
// empty path searches ".", "./config" and "/etc/commitlens" for
// config.yaml and falls back to defaults when none exists.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("config")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/commitlens")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	viperCfg := viper.New()
	setDefaults(viperCfg)

	var config Config

	// Defaults always decode.
	_ = viperCfg.Unmarshal(&config)

	return &config
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("source.timezone", DefaultTimezone)
	viperCfg.SetDefault("source.load_timeout", DefaultLoadTimeout)
	viperCfg.SetDefault("source.git.revision", DefaultGitRevision)
	viperCfg.SetDefault("source.git.include", []string{})
	viperCfg.SetDefault("source.git.indent_width", DefaultGitIndentWidth)

	viperCfg.SetDefault("chart.width", DefaultChartWidth)
	viperCfg.SetDefault("chart.height", DefaultChartHeight)
	viperCfg.SetDefault("chart.band_padding", DefaultChartBandPadding)

	viperCfg.SetDefault("narrative.threshold", DefaultNarrativeThreshold)
	viperCfg.SetDefault("narrative.viewport_height", DefaultNarrativeViewportHeight)
	viperCfg.SetDefault("narrative.step_height", DefaultNarrativeStepHeight)

	viperCfg.SetDefault("render.theme", DefaultRenderTheme)
	viperCfg.SetDefault("render.bound_layout", DefaultRenderBoundLayout)
	viperCfg.SetDefault("render.title", DefaultRenderTitle)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.format", DefaultLoggingFormat)
}

func validateConfig(config *Config) error {
	if _, err := config.Location(); err != nil {
		return err
	}

	if config.Source.LoadTimeout < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidLoadTimeout, config.Source.LoadTimeout)
	}

	if config.Source.Git.IndentWidth <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIndentWidth, config.Source.Git.IndentWidth)
	}

	if config.Chart.Width <= 0 || config.Chart.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidChartSize, config.Chart.Width, config.Chart.Height)
	}

	if config.Chart.BandPadding < 0 || config.Chart.BandPadding >= 1 {
		return fmt.Errorf("%w: %g", ErrInvalidBandPadding, config.Chart.BandPadding)
	}

	if config.Narrative.Threshold < 0 || config.Narrative.Threshold > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidThreshold, config.Narrative.Threshold)
	}

	if config.Narrative.ViewportHeight <= 0 || config.Narrative.StepHeight <= 0 {
		return fmt.Errorf("%w: viewport %g, step %g",
			ErrInvalidStepHeight, config.Narrative.ViewportHeight, config.Narrative.StepHeight)
	}

	if !slices.Contains(themes, config.Render.Theme) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, config.Render.Theme)
	}

	if !slices.Contains(logFormats, config.Logging.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	return nil
}
