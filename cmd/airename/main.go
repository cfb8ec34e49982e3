package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/airename/internal/casing"
	"github.com/alnah/airename/internal/cli"
	"github.com/alnah/airename/internal/config"
	"github.com/alnah/airename/internal/ffmpeg"
	"github.com/alnah/airename/internal/lang"
	"github.com/alnah/airename/internal/logger"
	"github.com/alnah/airename/internal/provider"
	"github.com/alnah/airename/internal/renamer"
	"github.com/alnah/airename/internal/source"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK           = 0
	ExitGeneral      = 1
	ExitUsage        = 2
	ExitSetup        = 3
	ExitValidation   = 4
	ExitRenameFailed = 5
	ExitInterrupt    = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// Context with signal cancellation.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCmd(cli.DefaultEnv())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// newRootCmd assembles the command tree around env.
func newRootCmd(env *cli.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "airename",
		Short:   "Rename images, videos and documents after their content",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(cli.RenameCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))
	rootCmd.AddCommand(cli.PresetCmd(env))
	rootCmd.AddCommand(cli.TypesCmd(env))

	return rootCmd
}

// exitCode maps errors to process exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Cobra doesn't expose typed errors, so we check for known error message patterns.
	if isCobraUsageError(err) {
		return ExitUsage
	}

	// Setup errors: settings that cannot work, or a missing tool.
	if errors.Is(err, config.ErrUnknownKey) || errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrPresetNotFound) || errors.Is(err, provider.ErrUnsupportedKind) ||
		errors.Is(err, casing.ErrUnknownStyle) || errors.Is(err, lang.ErrInvalid) ||
		errors.Is(err, logger.ErrInvalidLevel) || errors.Is(err, logger.ErrInvalidFormat) ||
		errors.Is(err, renamer.ErrInvalidMaxChars) || errors.Is(err, ffmpeg.ErrNotFound) ||
		errors.Is(err, cli.ErrAPIKeyMissing) {
		return ExitSetup
	}

	// Validation errors: the paths given cannot be processed.
	if errors.Is(err, cli.ErrFileNotFound) || errors.Is(err, cli.ErrNoFiles) ||
		errors.Is(err, source.ErrUnsupportedType) || errors.Is(err, source.ErrInvalidExtension) ||
		errors.Is(err, source.ErrNoText) {
		return ExitValidation
	}

	if errors.Is(err, cli.ErrRenameFailed) {
		return ExitRenameFailed
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// These patterns are stable across Cobra versions (tested with v1.8+).
var cobraUsageErrorPatterns = []string{
	"required flag",             // Missing required flag
	"unknown flag",              // Flag doesn't exist
	"unknown shorthand",         // Short flag doesn't exist
	"unknown command",           // Subcommand doesn't exist
	"flag needs an argument",    // Flag provided without value
	"invalid argument",          // Invalid flag value type
	"if any flags in the group", // Mutually exclusive flag violation
	"accepts ",                  // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",         // Too few arguments
	"requires at most",          // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
