package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/alnah/airename/internal/config"
)

// presetKeys are the settings captured by "preset save".
var presetKeys = []string{
	config.KeyProvider, config.KeyModel, config.KeyBaseURL, config.KeyCase,
	config.KeyChars, config.KeyLanguage, config.KeyFrames, config.KeyCustomPrompt,
}

// PresetCmd creates the preset command with subcommands.
func PresetCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Save and reuse naming settings",
		Long: fmt.Sprintf(`Save the current naming settings under a name and reuse them with
"airename rename --preset <name>". At most %d presets are kept; saving
more drops the oldest.`, config.MaxPresets),
		Example: `  airename preset save holiday --case capitalCase --language French
  airename preset list
  airename rename ~/Pictures/2026-07 --preset holiday`,
	}

	cmd.AddCommand(presetSaveCmd(env))
	cmd.AddCommand(presetListCmd(env))
	cmd.AddCommand(presetShowCmd(env))
	cmd.AddCommand(presetDeleteCmd(env))

	return cmd
}

func presetSaveCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save current settings as a preset",
		Long: `Save the effective settings (config file, environment, and any flags
given here) as a preset. Saving an existing name replaces it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresetSave(env, args[0], changedSettings(cmd))
		},
	}
	addSettingFlags(cmd)
	return cmd
}

func presetListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List presets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresetList(env)
		},
	}
}

func presetShowCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print the settings of a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresetShow(env, args[0])
		},
	}
}

func presetDeleteCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresetDelete(env, args[0])
		},
	}
}

// runPresetSave handles the "preset save" command.
func runPresetSave(env *Env, name string, overrides map[string]string) error {
	cfg, err := resolveConfig(env, "", overrides)
	if err != nil {
		return err
	}

	all := cfg.Values()
	settings := make(map[string]string, len(presetKeys))
	for _, key := range presetKeys {
		if v := all[key]; v != "" {
			settings[key] = v
		}
	}

	if err := config.SavePreset(name, settings, env.Now()); err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "Saved preset %s\n", name)
	return nil
}

// runPresetList handles the "preset list" command.
func runPresetList(env *Env) error {
	presets, err := config.Presets()
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		fmt.Fprintln(env.Stderr, "No presets saved.")
		return nil
	}
	for _, p := range presets {
		s := p.Settings
		fmt.Fprintf(env.Stdout, "%-16s %s  %s/%s %s %s chars %s\n",
			p.Name, p.Time().Local().Format("2006-01-02 15:04"),
			s[config.KeyProvider], s[config.KeyModel], s[config.KeyCase],
			s[config.KeyChars], s[config.KeyLanguage])
	}
	return nil
}

// runPresetShow handles the "preset show" command.
func runPresetShow(env *Env, name string) error {
	p, err := config.FindPreset(name)
	if err != nil {
		return err
	}
	for _, key := range slices.Sorted(maps.Keys(p.Settings)) {
		fmt.Fprintf(env.Stdout, "%s=%s\n", key, p.Settings[key])
	}
	return nil
}

// runPresetDelete handles the "preset delete" command.
func runPresetDelete(env *Env, name string) error {
	if err := config.DeletePreset(name); err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "Deleted preset %s\n", name)
	return nil
}
