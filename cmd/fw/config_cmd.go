package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/config"
	"github.com/raphi011/fw/internal/errs"
	"github.com/raphi011/fw/internal/output"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage fw configuration.

Global config: $XDG_CONFIG_HOME/fw/config.toml
Local config:  .fw.toml (in the repository root)

Precedence: flags > FW_REPO/FW_BRANCH > .fw.toml > global config.`,
		Example: `  fw config init          # Create default global config
  fw config init --local  # Create local repo config
  fw config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd(g))
	cmd.AddCommand(newConfigShowCmd(g))

	return cmd
}

func newConfigInitCmd(g *globals) *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config at $XDG_CONFIG_HOME/fw/config.toml.
With --local, creates .fw.toml in the current repository root.`,
		Example: `  fw config init           # Create global config
  fw config init --local   # Create local repo config
  fw config init -f        # Overwrite existing config
  fw config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if stdout {
				if local {
					out.Block(config.DefaultLocalConfig())
				} else {
					out.Block(config.DefaultConfig())
				}
				return nil
			}

			var (
				path string
				err  error
			)
			if local {
				// Outside a repository the working directory is used.
				root, rerr := g.repoRoot(ctx)
				if root == "" {
					return rerr
				}
				path, err = config.InitLocal(root, force)
			} else {
				path, err = config.Init(force)
			}
			if errors.Is(err, config.ErrExists) {
				return errs.Wrap(err, errs.InvalidInput, "config not written").
					WithGuidance("Use -f to overwrite")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-repo .fw.toml instead of global config")

	return cmd
}

func newConfigShowCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show the configuration fw would use in the current repository, after
merging the global config, .fw.toml and environment overrides.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			root, err := g.repoRoot(ctx)
			if root == "" {
				return err
			}
			cfg, err := config.Resolve(root, os.Getenv)
			if err != nil {
				return errs.Wrap(err, errs.InvalidInput, "invalid configuration")
			}
			return toml.NewEncoder(output.FromContext(ctx).Writer()).Encode(cfg)
		},
	}

	return cmd
}
