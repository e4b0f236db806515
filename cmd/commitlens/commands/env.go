package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/commitlens/pkg/changelog"
	"github.com/Sumatoshi-tech/commitlens/pkg/config"
	"github.com/Sumatoshi-tech/commitlens/pkg/observability"
	"github.com/Sumatoshi-tech/commitlens/pkg/selection"
	"github.com/Sumatoshi-tech/commitlens/pkg/session"
	"github.com/Sumatoshi-tech/commitlens/pkg/version"
)

// Sentinel errors.
var (
	// ErrNoSource is returned when neither a log argument nor --git is given.
	ErrNoSource = errors.New("a change log path, URL or --git repository is required")
	// ErrTooManySources is returned when both a log argument and --git are given.
	ErrTooManySources = errors.New("give either a change log argument or --git, not both")
)

const logFormatJSON = "json"

// env is what every data command runs against.
type env struct {
	cfg       *config.Config
	providers observability.Providers
	metrics   *observability.REDMetrics
	session   *session.Session
}

type envOptions struct {
	mode       observability.AppMode
	prometheus bool
	logWriter  io.Writer
}

// newEnv loads configuration, starts observability and loads the change log
// named by args (or --git) into a fresh session.
func newEnv(cmd *cobra.Command, args []string, opts envOptions) (*env, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString(flagConfig)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	obsCfg := observability.DefaultConfig().WithEnv()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = opts.mode
	obsCfg.Prometheus = opts.prometheus
	obsCfg.LogLevel = logLevel(cmd, cfg)
	obsCfg.LogJSON = cfg.Logging.Format == logFormatJSON || opts.mode == observability.ModeMCP
	obsCfg.LogWriter = opts.logWriter

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	red, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return nil, errors.Join(err, providers.Shutdown(context.Background()))
	}

	src, err := resolveSource(cmd, args, cfg, loc, providers.Logger)
	if err != nil {
		return nil, errors.Join(err, providers.Shutdown(context.Background()))
	}

	sess := session.New(session.Options{
		Location: loc,
		Layout: selection.Layout{
			Width:   cfg.Chart.Width,
			Height:  cfg.Chart.Height,
			Padding: cfg.Chart.BandPadding,
		},
		Threshold:      cfg.Narrative.Threshold,
		ViewportHeight: cfg.Narrative.ViewportHeight,
		StepHeight:     cfg.Narrative.StepHeight,
		BoundLayout:    cfg.Render.BoundLayout,
		LoadTimeout:    cfg.Source.LoadTimeout,
		Logger:         providers.Logger,
		Metrics:        red,
	})

	snap := sess.Load(cmd.Context(), src)
	providers.Logger.DebugContext(cmd.Context(), "change log loaded",
		"source", src.Name(), "records", snap.Summary.TotalRecords, "commits", snap.Commits)

	return &env{cfg: cfg, providers: providers, metrics: red, session: sess}, nil
}

// close flushes telemetry.
func (e *env) close() {
	err := e.providers.Shutdown(context.Background())
	if err != nil {
		e.providers.Logger.Warn("observability shutdown failed", "error", err)
	}
}

func logLevel(cmd *cobra.Command, cfg *config.Config) slog.Level {
	verbose, _ := cmd.Flags().GetBool(flagVerbose)
	quiet, _ := cmd.Flags().GetBool(flagQuiet)

	switch {
	case verbose:
		return observability.ParseLevel("debug")
	case quiet:
		return observability.ParseLevel("error")
	default:
		return observability.ParseLevel(cfg.Logging.Level)
	}
}

// resolveSource picks the change log source: --git, an http(s) URL, or a
// local CSV path.
func resolveSource(
	cmd *cobra.Command, args []string, cfg *config.Config, loc *time.Location, logger *slog.Logger,
) (changelog.Source, error) {
	gitPath, _ := cmd.Flags().GetString(flagGit)

	switch {
	case gitPath != "" && len(args) > 0:
		return nil, ErrTooManySources
	case gitPath != "":
		revision, _ := cmd.Flags().GetString(flagRevision)
		if revision == "" {
			revision = cfg.Source.Git.Revision
		}

		return changelog.GitSource{
			Path:        gitPath,
			Revision:    revision,
			Include:     cfg.Source.Git.Include,
			IndentWidth: cfg.Source.Git.IndentWidth,
			Location:    loc,
			Logger:      logger,
		}, nil
	case len(args) == 0:
		return nil, ErrNoSource
	case strings.HasPrefix(args[0], "http://"), strings.HasPrefix(args[0], "https://"):
		return changelog.HTTPSource{URL: args[0], Location: loc}, nil
	default:
		return changelog.CSVSource{Path: args[0], Location: loc}, nil
	}
}
