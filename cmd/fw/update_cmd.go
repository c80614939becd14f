package main

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/config"
	"github.com/raphi011/fw/internal/engine"
	"github.com/raphi011/fw/internal/errs"
)

func newUpdateCmd(g *globals) *cobra.Command {
	var (
		branch string
		check  string
	)

	cmd := &cobra.Command{
		Use:     "update [repo]",
		Short:   "Pull upstream framework changes",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Fetch the upstream framework and merge it into .framework/.

Before merging, fw creates a backup tag (backup/<timestamp>) you can roll
back to. Conflicts are left in the working tree for you to resolve.

--check selects how fw decides whether there is anything to pull:
  upstream  compare the fetched upstream tree with .framework (default)
  outgoing  look for local commits under .framework since push.base_ref`,
		Example: `  fw update                  # Update from the configured repository
  fw update -b next          # Update from another branch
  fw update --check outgoing # Use the local-commit check`,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			if check != "" && !slices.Contains(config.ValidUpdateChecks, check) {
				return errs.Newf(errs.InvalidInput, "invalid --check %q: must be one of %v", check, config.ValidUpdateChecks)
			}

			ctx := cmd.Context()
			s, err := g.open(ctx, targetFrom(args, branch), true)
			if err != nil {
				return err
			}
			defer s.close()

			_, err = s.engine.Update(ctx, engine.UpdateOptions{Check: engine.UpdateCheck(check)})
			return err
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Upstream branch (default from config)")
	cmd.Flags().StringVar(&check, "check", "", "Update check: upstream or outgoing (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("check", cobra.FixedCompletions(config.ValidUpdateChecks, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
