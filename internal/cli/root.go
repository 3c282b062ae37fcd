// Package cli implements the image-vectorize command line.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-vectorize/internal/config"
	"github.com/ironsheep/image-vectorize/internal/imaging"
	"github.com/ironsheep/image-vectorize/internal/vectorize"
)

// logLevelEnv overrides the configured log level.
const logLevelEnv = "IMAGE_VECTORIZE_LOG_LEVEL"

// Version information, set by SetVersionInfo.
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// SetVersionInfo records the build information printed by "version".
func SetVersionInfo(v, built, commit string) {
	version = v
	buildTime = built
	gitCommit = commit
}

// app holds state shared by every subcommand of one invocation.
type app struct {
	configPath string
	verbose    bool

	cfg *config.Config
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "image-vectorize",
		Short: "Convert raster images into layered SVG",
		Long: `image-vectorize traces the colored shapes of a raster image into an SVG
of filled regions. Shapes nested inside other shapes become their own paths,
drawn largest first, and white interiors are cut out as holes.

Settings are read from ~/.image-vectorize/config.toml (or --config) and can
be overridden per run with flags.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ~/.image-vectorize/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newConvertCmd(a),
		newServeCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line until completion or an interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

// setup loads the configuration and installs the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	levelName := cfg.LogLevel
	if env := os.Getenv(logLevelEnv); env != "" {
		levelName = env
	}
	level, err := config.ParseLevel(levelName)
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}

	// stdout carries SVG or MCP traffic, so logs always go to stderr.
	vectorize.SetLogger(newLogger(cmd.ErrOrStderr(), level))
	vectorize.Logger().Debug("starting", "version", version, "built", buildTime, "commit", gitCommit)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// upscaler returns the configured super-resolution upscaler and a function
// that releases it. The upscaler is nil when none is configured.
func (a *app) upscaler() (imaging.Upscaler, func()) {
	up := a.cfg.NewUpscaler()
	if up == nil {
		return nil, func() {}
	}
	if err := up.Acquire(); err != nil {
		vectorize.Logger().Warn("super-resolution unavailable, using lanczos", "error", err)
	}
	return up, func() { _ = up.Close() }
}
