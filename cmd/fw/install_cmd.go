package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/engine"
)

func newInstallCmd(g *globals) *cobra.Command {
	var (
		branch string
		force  bool
	)

	cmd := &cobra.Command{
		Use:     "install [repo]",
		Short:   "Install the framework into .framework/",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Install the framework as a squashed git subtree under .framework/.

After the subtree is added, fw creates the overlay symlinks (AGENTS.md,
agents, .claude/agents, .claude/commands), copies the customizable
templates that don't exist yet, and offers to configure git aliases.

repo is "owner/name" or a clone URL. Without it the configured remote.repo
is used (default antbald/BALDART).`,
		Example: `  fw install                          # Install from the configured repository
  fw install my-org/framework -b dev  # Install a fork's dev branch
  fw install --force                  # Reinstall without asking`,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := g.open(ctx, targetFrom(args, branch), false)
			if err != nil {
				return err
			}
			defer s.close()

			_, err = s.engine.Install(ctx, engine.InstallOptions{Force: force})
			return err
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Upstream branch (default from config)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinstall over an existing installation without asking")

	return cmd
}
