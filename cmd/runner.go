package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spoconv/internal/download"
	"github.com/desertthunder/spoconv/internal/services"
	"github.com/desertthunder/spoconv/internal/shared"
	"github.com/desertthunder/spoconv/internal/tasks"
	"github.com/desertthunder/spoconv/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Source, Resolver and Extractor replace the Spotify, YouTube and yt-dlp implementations when set.
type Runner struct {
	config     *shared.Config
	source     services.PlaylistSource
	resolver   services.VideoResolver
	extractor  download.Extractor
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	palette    *ui.Palette
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config // skips loading config.toml when set
	Source     services.PlaylistSource
	Resolver   services.VideoResolver
	Extractor  download.Extractor
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Palette    *ui.Palette
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Palette == nil {
		opts.Palette = ui.DefaultPalette
	}

	return &Runner{
		config:     opts.Config,
		source:     opts.Source,
		resolver:   opts.Resolver,
		extractor:  opts.Extractor,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		palette:    opts.Palette,
	}
}

// SetLogger replaces the runner's logger
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){initCommand, cacheCommand} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configPath returns the --config value, defaulting to config.toml beside the executable.
func (r *Runner) configPath(cmd *cli.Command) string {
	if path := cmd.String("config"); path != "" {
		return path
	}
	return shared.DefaultConfigPath()
}

// loadConfig returns the injected config, the config file, or defaults when the file is
// missing and optional.
func (r *Runner) loadConfig(cmd *cli.Command, required bool) (*shared.Config, error) {
	if r.config != nil && !cmd.IsSet("config") {
		return r.config, nil
	}

	path := r.configPath(cmd)
	config, err := shared.LoadConfig(path)
	if err != nil {
		if !required && errors.Is(err, shared.ErrMissingConfig) {
			r.logger.Debug("config file not found, using defaults", "path", path)
			return shared.DefaultConfig(), nil
		}
		return nil, err
	}

	r.logger.Debug("loaded config", "path", path)
	return config, nil
}

// setLogLevel applies --verbose and --quiet.
func (r *Runner) setLogLevel(cmd *cli.Command) {
	switch {
	case cmd.Bool("verbose"):
		shared.SetLogLevel(r.logger, log.DebugLevel)
	case cmd.Bool("quiet"):
		shared.SetLogLevel(r.logger, log.ErrorLevel)
	}
}

// logProgress reports engine progress; per-track steps are logged at debug level.
func (r *Runner) logProgress(u tasks.ProgressUpdate) {
	if err, ok := u.Data.(error); ok {
		r.logger.Warn(u.Message, "phase", u.Phase, "error", err)
		return
	}

	switch u.Phase {
	case tasks.ResolveTracks, tasks.DownloadTracks:
		r.logger.Debug(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total)
	default:
		r.logger.Info(u.Message, "phase", u.Phase)
	}
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
