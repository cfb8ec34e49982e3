package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/airename/internal/config"
)

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/airename/config.
Unset keys fall back to AIRENAME_<KEY> environment variables
(e.g. AIRENAME_BASE_URL), then to built-in defaults.
The API key is read from AIRENAME_API_KEY or OPENAI_API_KEY only.

Supported settings:
  provider         ollama, openai or lm-studio (default: ollama)
  model            Model name (default: llava)
  base-url         Provider endpoint (default depends on provider)
  case             Case style (default: kebabCase)
  chars            Maximum filename length, 1-255 (default: 50)
  language         Filename language, code or English name (default: en)
  frames           Frames sampled per video, 1-10 (default: 3)
  custom-prompt    Extra instructions appended to the prompt
  concurrency      Files processed at once, 1-32 (default: 4)
  timeout          Per-request timeout (default: 2m)
  include-subdirs  Scan subdirectories (default: false)
  custom-types     Extra extensions read as text, comma-separated
  stopwords        Extra answer words never used as a name, comma-separated
  log-level        debug, info, warn or error (default: warn)
  log-format       text or json (default: text)`,
		Example: `  airename config set provider lm-studio
  airename config set case snakeCase
  airename config get model
  airename config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Without a value, the key is removed
and its environment variable or default applies again.`,
		Example: `  airename config set chars 40
  airename config set language French
  airename config set base-url`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 2 {
				value = args[1]
			}
			return runConfigSet(env, args[0], value)
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the effective value: config file, then environment, then default.`,
		Example: `  airename config get provider`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration values with their origin:
the config file, an environment variable, or the built-in default.`,
		Example: `  airename config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// runConfigSet handles the "config set" command.
func runConfigSet(env *Env, key, value string) error {
	if err := config.Save(key, value); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		fmt.Fprintf(env.Stderr, "Unset %s\n", key)
		return nil
	}
	fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, value)
	return nil
}

// runConfigGet handles the "config get" command.
func runConfigGet(env *Env, key string) error {
	value, _, err := effectiveValue(env, key)
	if err != nil {
		return err
	}
	if value != "" {
		fmt.Fprintln(env.Stdout, value)
	}
	return nil
}

// runConfigList handles the "config list" command.
func runConfigList(env *Env) error {
	for _, key := range config.Keys() {
		value, origin, err := effectiveValue(env, key)
		if err != nil {
			return err
		}
		if value == "" {
			continue
		}
		fmt.Fprintf(env.Stdout, "%s=%s (%s)\n", key, value, origin)
	}

	switch {
	case env.Getenv(config.EnvAPIKey) != "":
		fmt.Fprintf(env.Stdout, "api-key=*** (env %s)\n", config.EnvAPIKey)
	case env.Getenv(config.EnvOpenAIKey) != "":
		fmt.Fprintf(env.Stdout, "api-key=*** (env %s)\n", config.EnvOpenAIKey)
	}
	return nil
}

// effectiveValue returns the value of key and where it comes from.
func effectiveValue(env *Env, key string) (value, origin string, err error) {
	value, err = config.Get(key)
	if err != nil {
		return "", "", err
	}
	if value != "" {
		return value, "file", nil
	}
	if v := env.Getenv(config.EnvName(key)); v != "" {
		return v, "env " + config.EnvName(key), nil
	}
	return config.Defaults().Values()[key], "default", nil
}
