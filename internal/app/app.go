// Package app wires configuration, the sequence generator, and the
// presentation layers into a runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/fibseq/internal/cli"
	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/server"
	"github.com/agbru/fibseq/internal/ui"
)

// Application represents the fibseq application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	// log is created during Run from the configured level.
	log logging.Logger
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "fibseq"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	logging.SetGlobalLevel(a.logLevel())
	// Colors are opt-in so the bare invocation emits the plain report
	// byte for byte. --no-color and NO_COLOR still win over --color.
	ui.InitTheme(a.Config.NoColor || !a.Config.Color)
	a.log = logging.NewLogger(os.Stderr, "fibseq")

	if a.Config.Serve {
		return a.runServe(ctx)
	}
	return a.runReport(out)
}

// logLevel resolves the effective log level. Report mode stays at error
// level unless a level was explicitly configured; serve mode uses the
// configured level as-is.
func (a *Application) logLevel() string {
	if !a.Config.Serve && !a.Config.LogLevelSet {
		return "error"
	}
	return a.Config.LogLevel
}

// runReport generates the sequence once and prints the report.
func (a *Application) runReport(out io.Writer) int {
	seq := fibonacci.Generate(a.Config.N)

	if a.Config.Quiet {
		cli.DisplayQuietReport(out, seq)
	} else {
		cli.DisplaySequenceReport(out, seq)
	}

	if a.Config.OutputFile != "" {
		if err := cli.WriteReportToFile(a.Config.OutputFile, seq); err != nil {
			a.log.Error("saving report", err, logging.String("path", a.Config.OutputFile))
			return apperrors.ExitErrorGeneric
		}
		a.log.Debug("report saved", logging.String("path", a.Config.OutputFile))
	}

	return apperrors.ExitSuccess
}

// runServe runs the HTTP API until SIGINT/SIGTERM.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	srv := server.New(a.Config.Addr, server.WithLogger(a.log))
	err := srv.Run(ctx)
	if err != nil {
		a.log.Error("server failed", err, logging.String("addr", a.Config.Addr))
	}
	return serveExitCode(err)
}

// serveExitCode maps a serve-mode error to a process exit code. A graceful
// signal shutdown returns nil from the server and exits 0; a shutdown that
// outlives its grace period surfaces as a context error and exits with the
// canceled status.
func serveExitCode(err error) int {
	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case apperrors.IsContextError(err):
		return apperrors.ExitErrorCanceled
	default:
		return apperrors.ExitErrorGeneric
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeFor maps a startup error from New to a process exit code:
// help requests exit 0 and configuration problems exit with the
// configuration status.
func ExitCodeFor(err error) int {
	switch {
	case err == nil || IsHelpError(err):
		return apperrors.ExitSuccess
	case isConfigError(err):
		return apperrors.ExitErrorConfig
	default:
		return apperrors.ExitErrorGeneric
	}
}

// isConfigError reports whether err is one of the configuration error types.
func isConfigError(err error) bool {
	var cfgErr apperrors.ConfigError
	var valErr apperrors.ValidationError
	return errors.As(err, &cfgErr) || errors.As(err, &valErr)
}
