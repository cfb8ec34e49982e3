package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/airename/internal/config"
	"github.com/alnah/airename/internal/source"
)

// TypesCmd creates the types command with subcommands.
func TypesCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Manage supported file types",
		Long: `List the file types airename reads and manage custom ones.

Custom types are read as text. They are stored in the custom-types
config key.`,
		Example: `  airename types list
  airename types add .nfo .srt
  airename types remove srt`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List supported file types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypesList(env)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <ext>...",
		Short: "Add custom file types",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypesAdd(env, args)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "remove <ext>...",
		Aliases: []string{"rm"},
		Short:   "Remove custom file types",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypesRemove(env, args)
		},
	})

	return cmd
}

// runTypesList handles the "types list" command.
func runTypesList(env *Env) error {
	custom, err := customTypes()
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "Images: %s\n", strings.Join(source.Extensions(source.KindImage), " "))
	fmt.Fprintf(env.Stdout, "Videos: %s (needs FFmpeg)\n", strings.Join(source.Extensions(source.KindVideo), " "))
	fmt.Fprintf(env.Stdout, "Text:   %s\n", strings.Join(source.Extensions(source.KindText), " "))
	if len(custom) == 0 {
		fmt.Fprintln(env.Stdout, "Custom: none")
	} else {
		fmt.Fprintf(env.Stdout, "Custom: %s\n", strings.Join(custom, " "))
	}
	return nil
}

// runTypesAdd handles the "types add" command.
func runTypesAdd(env *Env, exts []string) error {
	custom, err := customTypes()
	if err != nil {
		return err
	}

	builtin := source.BuiltinExtensions()
	for _, raw := range exts {
		ext, err := source.NormalizeExtension(raw)
		if err != nil {
			return err
		}
		switch {
		case slices.Contains(builtin, ext):
			fmt.Fprintf(env.Stderr, "%s is already supported\n", ext)
		case slices.Contains(custom, ext):
			fmt.Fprintf(env.Stderr, "%s is already a custom type\n", ext)
		default:
			custom = append(custom, ext)
			fmt.Fprintf(env.Stderr, "Added %s\n", ext)
		}
	}

	slices.Sort(custom)
	return config.Save(config.KeyCustomTypes, strings.Join(custom, ","))
}

// runTypesRemove handles the "types remove" command.
func runTypesRemove(env *Env, exts []string) error {
	custom, err := customTypes()
	if err != nil {
		return err
	}

	for _, raw := range exts {
		ext, err := source.NormalizeExtension(raw)
		if err != nil {
			return err
		}
		i := slices.Index(custom, ext)
		if i < 0 {
			fmt.Fprintf(env.Stderr, "%s is not a custom type\n", ext)
			continue
		}
		custom = slices.Delete(custom, i, i+1)
		fmt.Fprintf(env.Stderr, "Removed %s\n", ext)
	}

	return config.Save(config.KeyCustomTypes, strings.Join(custom, ","))
}

// customTypes returns the normalized custom types stored in the config file.
func customTypes() ([]string, error) {
	raw, err := config.Get(config.KeyCustomTypes)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range config.SplitList(raw) {
		if ext, err := source.NormalizeExtension(e); err == nil && !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out, nil
}
