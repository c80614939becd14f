package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/engine"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/output"
	"github.com/raphi011/fw/internal/report"
)

func newPushCmd(g *globals) *cobra.Command {
	var (
		branch  string
		kind    string
		message string
		copyRec bool
	)

	cmd := &cobra.Command{
		Use:     "push [repo]",
		Short:   "Contribute local framework changes upstream",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Push local commits under .framework/ back to the upstream framework.

fw lists the commits since push.base_ref (default origin/main), asks for
confirmation, classifies the change (breaking, feature or fix) and pushes
with git subtree push. The release itself (VERSION, CHANGELOG, tag) stays
a manual step; fw prints the record and a suggested version.

Without a terminal, pass --type and --message.`,
		Example: `  fw push                                   # Interactive
  fw push -t fix -m "Fix lint hook path"    # Non-interactive
  fw push -t feature -m "Add reviewer agent" --copy`,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := g.open(ctx, targetFrom(args, branch), true)
			if err != nil {
				return err
			}
			defer s.close()

			opts := engine.PushOptions{Kind: kind}
			if cmd.Flags().Changed("message") {
				opts.Description = &message
			}
			res, err := s.engine.Push(ctx, opts)
			if err != nil {
				return err
			}
			if res.FollowUp == nil {
				return nil
			}

			record := res.FollowUp.String()
			if !copyRec {
				output.FromContext(ctx).Block(record)
				return nil
			}
			if err := clipboard.WriteAll(record); err != nil {
				log.FromContext(ctx).Debug("clipboard write failed", "error", err)
				report.Warning(s.reporter, "Could not copy to clipboard: %v", err)
				output.FromContext(ctx).Block(record)
				return nil
			}
			report.Success(s.reporter, "Changelog entry copied to clipboard")
			return nil
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Upstream branch (default from config)")
	cmd.Flags().StringVarP(&kind, "type", "t", "", "Change type: breaking, feature or fix")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Short description of the change")
	cmd.Flags().BoolVar(&copyRec, "copy", false, "Copy the changelog entry to the clipboard")
	_ = cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(engine.ChangeKindNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
