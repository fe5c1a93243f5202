// Package config handles command-line and environment configuration for
// fibseq. Precedence is CLI flags > environment variables > defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

const (
	// EnvPrefix is prepended to every environment variable key.
	EnvPrefix = "FIBSEQ_"

	// DefaultCount is the number of Fibonacci numbers the default run
	// reports. F(19)=4181, so the default report fits comfortably in
	// native integers, but values are exact at any count.
	DefaultCount = 20

	// DefaultAddr is the listen address for serve mode.
	DefaultAddr = ":8080"

	// DefaultLogLevel is the zerolog level name used when none is given.
	DefaultLogLevel = "info"
)

// AppConfig holds the complete runtime configuration.
type AppConfig struct {
	// N is the count of Fibonacci numbers to generate and display.
	N int
	// Quiet suppresses the report and prints only the final value.
	Quiet bool
	// Color enables ANSI color output. Colors are opt-in: the default
	// report must match the documented plain format byte for byte.
	Color bool
	// NoColor disables ANSI color output even when Color is set.
	NoColor bool
	// OutputFile is a path to also write the report to (empty for none).
	OutputFile string
	// Serve enables the HTTP API instead of the one-shot report.
	Serve bool
	// Addr is the listen address for serve mode.
	Addr string
	// LogLevel is the zerolog level name (trace..panic).
	LogLevel string
	// LogLevelSet records whether LogLevel came from the flag or the
	// environment rather than the default.
	LogLevelSet bool
	// Version requests printing the version and exiting.
	Version bool
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment variable overrides for flags not explicitly set.
//
// Returns flag.ErrHelp when --help was requested, or a ConfigError for
// invalid values.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		N:        DefaultCount,
		Addr:     DefaultAddr,
		LogLevel: DefaultLogLevel,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.IntVar(&cfg.N, "n", cfg.N, "count of Fibonacci numbers to generate")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "print only the final value (shorthand)")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "print only the final value")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "enable colored output")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "also write the report to a file (shorthand)")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "also write the report to a file")
	fs.BoolVar(&cfg.Serve, "serve", cfg.Serve, "run the HTTP API instead of printing a report")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for --serve")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.BoolVar(&cfg.Version, "version", cfg.Version, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Prints the first N Fibonacci numbers (default %d).\n\nOptions:\n", DefaultCount)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		// flag already printed the message; classify it for the exit code.
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}

	applyEnvOverrides(&cfg, fs)
	cfg.LogLevelSet = isFlagSet(fs, "log-level") || os.Getenv(EnvPrefix+"LOG_LEVEL") != ""

	if err := validate(cfg); err != nil {
		fmt.Fprintf(errWriter, "%s: %v\n", programName, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate rejects configurations the application cannot act on.
func validate(cfg AppConfig) error {
	if cfg.Serve && cfg.Addr == "" {
		return apperrors.ValidationError{Field: "addr", Message: "must not be empty in serve mode"}
	}
	if !validLogLevel(cfg.LogLevel) {
		return apperrors.NewConfigError("unknown log level %q", cfg.LogLevel)
	}
	return nil
}

// validLogLevel reports whether name is a recognized zerolog level name.
func validLogLevel(name string) bool {
	switch name {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return true
	}
	return false
}
