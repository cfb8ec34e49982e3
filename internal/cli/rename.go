package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/alnah/airename/internal/format"
	"github.com/alnah/airename/internal/logger"
	"github.com/alnah/airename/internal/renamer"
	"github.com/alnah/airename/internal/sanitize"
	"github.com/alnah/airename/internal/source"
)

// renameOptions holds the rename-only flags.
type renameOptions struct {
	preset  string
	apply   bool
	json    bool
	verbose bool
	retries int
}

// RenameCmd creates the rename command.
// The env parameter provides injectable dependencies for testing.
func RenameCmd(env *Env) *cobra.Command {
	var opts renameOptions

	cmd := &cobra.Command{
		Use:   "rename <path>...",
		Short: "Name files after their content",
		Long: `Send each file to an AI model and use its description as the new filename.

Images are sent as-is, videos as a few frames sampled with FFmpeg, and
text files as their content. Directories are scanned for supported files
(subdirectories only with --recursive).

By default the new names are only shown. Use --apply to rename the files.
Existing files are never overwritten.

Settings come from flags, then --preset, then the config file and
AIRENAME_* environment variables (see "airename config list").`,
		Example: `  airename rename ~/Pictures/inbox
  airename rename scan.txt notes.md --case snakeCase --chars 30
  airename rename ~/Videos -r --provider openai --model gpt-4o-mini --apply
  airename rename photos/ --preset holiday --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.retries < 0 {
				return fmt.Errorf("invalid argument %d for --retries: must be 0 or more", opts.retries)
			}
			return runRename(cmd.Context(), env, args, changedSettings(cmd), opts)
		},
	}

	addSettingFlags(cmd)
	cmd.Flags().StringVar(&opts.preset, "preset", "", "Use settings from a saved preset")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Rename the files (default: preview only)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print results as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log model calls and timings")
	cmd.Flags().IntVar(&opts.retries, "retries", 0, "Retry unreachable or timed-out requests N times")

	return cmd
}

// runRename previews, and with opts.apply performs, the renames.
// overrides maps config keys to command-line values.
func runRename(ctx context.Context, env *Env, paths []string, overrides map[string]string, opts renameOptions) error {
	cfg, err := resolveConfig(env, opts.preset, overrides)
	if err != nil {
		return err
	}
	base, err := buildRequest(cfg)
	if err != nil {
		return err
	}
	log, err := newLogger(env, cfg, opts.verbose)
	if err != nil {
		return err
	}
	ctx = logger.WithOperation(ctx, "rename")

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%s: %w", p, ErrFileNotFound)
			}
			return err
		}
	}

	loaderOpts := []source.Option{
		source.WithFrameCount(cfg.Frames),
		source.WithCustomTypes(cfg.CustomTypes),
	}
	if ffmpegPath, err := env.FFmpegResolver.Resolve(ctx); err == nil {
		loaderOpts = append(loaderOpts, source.WithFrameExtractor(env.FrameExtractorFactory.NewFrameExtractor(ffmpegPath)))
	} else {
		log.WithContext(ctx).Debug("video support disabled", "error", err)
	}
	loader := source.NewLoader(loaderOpts...)

	files, err := loader.Collect(paths, cfg.IncludeSubdirs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return ErrNoFiles
	}

	r := renamer.New(
		renamer.WithInvokerFactory(env.InvokerFactory.NewInvoker),
		renamer.WithSanitizer(sanitize.New(
			sanitize.WithStopwords(slices.Concat(sanitize.DefaultStopwords, cfg.Stopwords)),
		)),
		renamer.WithLogger(log.WithComponent("renamer")),
		renamer.WithRetries(opts.retries),
		renamer.WithConcurrency(cfg.Concurrency),
	)

	if !opts.json {
		fmt.Fprintf(env.Stderr, "Analyzing %s with %s (%s), up to %s per request...\n",
			format.Count(len(files), "file"), base.Provider.Kind.DisplayName(), cfg.Model,
			format.DurationHuman(base.Provider.Timeout))
	}

	start := env.Now()
	summary := r.Preview(ctx, files, loader, base)
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.apply {
		summary = r.Apply(summary.Results)
	}
	elapsed := env.Now().Sub(start)

	if opts.json {
		if err := writeJSON(env.Stdout, summary); err != nil {
			return err
		}
	} else {
		writeResults(env.Stdout, summary, opts.apply)
		writeSummary(env.Stderr, summary, opts.apply, elapsed)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d: %w", summary.Failed, summary.Total, ErrRenameFailed)
	}
	return nil
}
