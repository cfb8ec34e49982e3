package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alnah/airename/internal/casing"
	"github.com/alnah/airename/internal/config"
	"github.com/alnah/airename/internal/lang"
	"github.com/alnah/airename/internal/logger"
	"github.com/alnah/airename/internal/provider"
	"github.com/alnah/airename/internal/renamer"
)

// settingFlag binds a command-line flag to the config key it overrides.
type settingFlag struct {
	flag string
	key  string
}

var settingFlags = []settingFlag{
	{"provider", config.KeyProvider},
	{"model", config.KeyModel},
	{"base-url", config.KeyBaseURL},
	{"case", config.KeyCase},
	{"chars", config.KeyChars},
	{"language", config.KeyLanguage},
	{"frames", config.KeyFrames},
	{"prompt", config.KeyCustomPrompt},
	{"concurrency", config.KeyConcurrency},
	{"timeout", config.KeyTimeout},
	{"recursive", config.KeyIncludeSubdirs},
}

// addSettingFlags registers the flags that override config settings.
// Defaults are empty: only flags the user sets take part in resolution.
func addSettingFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("provider", "p", "", "Model provider: ollama, openai, lm-studio")
	f.StringP("model", "m", "", "Model name (e.g. llava, gpt-4o-mini)")
	f.String("base-url", "", "Provider endpoint (default depends on provider)")
	f.StringP("case", "c", "", "Case style: kebabCase, snakeCase, camelCase, ...")
	f.Int("chars", 0, "Maximum filename length in characters")
	f.StringP("language", "l", "", "Filename language (code or English name)")
	f.Int("frames", 0, "Frames sampled from each video")
	f.String("prompt", "", "Extra instructions appended to the prompt")
	f.Int("concurrency", 0, "Files processed at once")
	f.Duration("timeout", 0, "Per-request timeout (e.g. 90s, 2m)")
	f.BoolP("recursive", "r", false, "Include subdirectories")
}

// changedSettings returns the config overrides given on the command line.
func changedSettings(cmd *cobra.Command) map[string]string {
	out := make(map[string]string)
	for _, sf := range settingFlags {
		if f := cmd.Flags().Lookup(sf.flag); f != nil && f.Changed {
			out[sf.key] = f.Value.String()
		}
	}
	return out
}

// resolveConfig layers settings: config file and env, then the preset,
// then command-line overrides.
func resolveConfig(env *Env, preset string, overrides map[string]string) (config.Config, error) {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return cfg, err
	}
	if preset != "" {
		p, err := config.FindPreset(preset)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Apply(p.Settings); err != nil {
			return cfg, fmt.Errorf("preset %s: %w", preset, err)
		}
	}
	if err := cfg.Apply(overrides); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildRequest turns resolved settings into the request template shared
// by every file of a batch.
func buildRequest(cfg config.Config) (renamer.Request, error) {
	kind, err := provider.ParseKind(cfg.Provider)
	if err != nil {
		return renamer.Request{}, err
	}
	style, err := casing.ParseStyle(cfg.Case)
	if err != nil {
		return renamer.Request{}, err
	}
	language, err := lang.Parse(cfg.Language)
	if err != nil {
		return renamer.Request{}, err
	}
	// A custom base URL may point at a local OpenAI-compatible server.
	if kind == provider.OpenAI && cfg.APIKey == "" && cfg.BaseURL == "" {
		return renamer.Request{}, ErrAPIKeyMissing
	}

	return renamer.Request{
		Case:               style,
		MaxChars:           cfg.Chars,
		Language:           language,
		CustomInstructions: cfg.CustomPrompt,
		Provider: provider.Config{
			Kind:     kind,
			Endpoint: cfg.BaseURL,
			APIKey:   cfg.APIKey,
			Model:    cfg.Model,
			Timeout:  cfg.Timeout,
		},
	}, nil
}

// newLogger builds the diagnostics logger. verbose forces debug level.
func newLogger(env *Env, cfg config.Config, verbose bool) (*logger.Logger, error) {
	lc, err := logger.FromConfig(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	if verbose {
		lc.Level = slog.LevelDebug
	}
	lc.Writer = env.Stderr
	return logger.New(lc), nil
}
