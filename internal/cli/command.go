package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idelchi/dirsize/internal/config"
	"github.com/idelchi/dirsize/internal/integration"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// flags holds the values of flags that are not configuration keys.
type flags struct {
	config      string
	version     bool
	integration bool
}

// bindFlags registers the flags and binds the configuration keys to v.
func bindFlags(set *pflag.FlagSet, v *viper.Viper, f *flags) error {
	set.StringP("min-size", "s", config.DefaultMinSize, "Minimum size of entries to list, base 1024 (e.g., 10MB, 1GiB)")
	set.IntP("workers", "w", 0, "Number of entries sized concurrently (0=default)")
	set.StringP("output", "o", config.DefaultOutput, fmt.Sprintf("Output format: one of %v", config.Outputs))
	set.Bool("debug", false, "Enable debug output")
	set.StringVar(&f.config, "config", "", "Config file (default: "+config.Dir()+"/config.yaml)")
	set.BoolVarP(&f.version, "version", "v", false, "Show version and exit")
	set.BoolVarP(&f.integration, "init", "i", false, "Output init script for shell usage")

	set.SortFlags = false

	for key, name := range map[string]string{
		"min_size": "min-size",
		"workers":  "workers",
		"output":   "output",
		"debug":    "debug",
	} {
		if err := v.BindPFlag(key, set.Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %q: %w", name, err)
		}
	}

	return nil
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var f flags

	v := viper.New()

	cmd := &cobra.Command{
		Use:   "dirsize [flags] [path]",
		Short: "Show how much space each entry of a directory uses",
		Long: heredoc.Doc(`
			dirsize lists the entries of a directory together with their total size,
			largest first. Directories are sized recursively; symbolic links are not followed.

			Entries smaller than --min-size are not listed individually; their combined
			size is reported on a single line instead.

			Positional Arguments:
			  path                   Directory to analyze. Defaults to current directory if not specified.

			Settings can also be given in the config file or as DIRSIZE_* environment variables,
			e.g. DIRSIZE_MIN_SIZE=100MB.

			The '-i' flag prints a zsh function 'dz' which browses directories interactively with 'fzf'.
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.version {
				fmt.Fprintln(cmd.OutOrStdout(), c.version)

				return nil
			}

			if f.integration {
				rendered, err := integration.Render()
				if err != nil {
					return fmt.Errorf("rendering integration script: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), rendered)

				return nil
			}

			cfg, err := config.Load(v, f.config)
			if err != nil {
				return err
			}

			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			return logic(cmd.Context(), cfg, path, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	if err := bindFlags(cmd.Flags(), v, &f); err != nil {
		panic(err)
	}

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}
