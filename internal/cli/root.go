package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tessro/wavebar/internal/config"
	wberrors "github.com/tessro/wavebar/internal/errors"
	"github.com/tessro/wavebar/internal/logging"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg       *config.Config
	logger    = logging.Discard()
	closeLogs = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "wavebar",
	Short: "A Spotify progress bar with a loudness waveform",
	Long: `Wavebar shows what Spotify is playing as a seekable progress bar.

When Spotify has an audio analysis for the track, the bar is drawn as a
loudness waveform; otherwise it falls back to a flat bar. Click or drag on
the bar to seek.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogging(cmd.ErrOrStderr())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLogs()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.wavebarrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", wberrors.ErrInvalidConfig, err)
	}

	return nil
}

// initLogging sends logs to the configured file. Without one, logs are
// only shown with --verbose.
func initLogging(stderr io.Writer) error {
	logCfg := cfg.Log
	var fallback io.Writer
	if verbose {
		fallback = stderr
		logCfg.Level = "debug"
	}

	l, closer, err := logging.Open(logCfg, fallback)
	if err != nil {
		return err
	}
	logger, closeLogs = l, closer
	return nil
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, wberrors.Format(err))
		_ = closeLogs()
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// Logger returns the process logger.
func Logger() *slog.Logger {
	return logger
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
