package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/TheMichaelB/vecfmt/internal/config"
	"github.com/TheMichaelB/vecfmt/internal/events"
	"github.com/TheMichaelB/vecfmt/internal/services/fixtures"
	"github.com/TheMichaelB/vecfmt/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "vecfmt",
	Short: "Normalize and check cipher test vector fixtures",
	Long: `vecfmt turns copy-pasted cipher test vectors (key, iv, stream lines)
into one normalized record per line and checks the result against a
hand-edited reference file.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

var (
	configFile string
	jsonOutput bool
	noColor    bool
	strictMode bool

	cfg         *config.Config
	logger      *events.Logger
	service     *fixtures.Service
	stopSignals context.CancelFunc
)

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"input":     "paths.input",
	"output":    "paths.output",
	"reference": "paths.reference",
	"entries":   "format.entries_per_record",
	"check":     "format.self_check",
	"echo":      "format.echo",
	"log-level": "log.level",
	"log-file":  "log.file",
}

func init() {
	rootCmd.Version = Version

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"Config file (default: ./vecfmt.yaml or ~/.config/vecfmt/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn",
		"Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-file", "",
		"Write logs to a rotated file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print machine readable results")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&strictMode, "strict", false,
		"Exit non-zero on any error or mismatch")
}

func setup(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	loader := config.NewLoader(configFile)
	for name, key := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := loader.Viper().BindPFlag(key, flag); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var err error
	cfg, err = loader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	cfg.Log.Color = cfg.Log.Color && !noColor

	logger, err = events.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	events.SetDefault(logger)

	if path := loader.ConfigFile(); path != "" {
		logger.WithField("path", path).Debug("Loaded config")
	}

	service = fixtures.NewService(storage.NewLocalStore(logger), &cfg.Format, logger)

	var ctx context.Context
	ctx, stopSignals = signal.NotifyContext(context.Background(), os.Interrupt)
	cmd.SetContext(events.WithCommand(events.WithLogger(ctx, logger), cmd.Name()))
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if stopSignals != nil {
		stopSignals()
	}
	if logger != nil {
		_ = logger.Close()
	}
}

// reportedError wraps an error a command has already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}

func alreadyReported(err error) error {
	return &reportedError{err: err}
}

// reportExit prints err unless the failing command already did.
func reportExit(err error) {
	var reported *reportedError
	if errors.As(err, &reported) {
		return
	}
	printError("%v", err)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportExit(err)
		os.Exit(1)
	}
}
