package main

import (
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/engine"
	"github.com/raphi011/fw/internal/errs"
	"github.com/raphi011/fw/internal/framework"
	"github.com/raphi011/fw/internal/fsys"
	"github.com/raphi011/fw/internal/output"
	"github.com/raphi011/fw/internal/overlay"
	"github.com/raphi011/fw/internal/ui"
	"github.com/raphi011/fw/internal/ui/styles"
)

func newStatusCmd(g *globals) *cobra.Command {
	var checkRemote bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show installation, symlink and customization status",
		GroupID: GroupInfo,
		Args:    cobra.NoArgs,
		Long: `Show the installed version, verify the overlay symlinks and list the
customizable files. With --check-remote, also fetch upstream and report
whether an update is available.

The link table goes to stdout; everything else to stderr.`,
		Example: `  fw status
  fw status --check-remote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := g.open(ctx, target{}, true)
			if err != nil {
				return err
			}
			defer s.close()

			res, err := s.engine.Status(ctx, engine.StatusOptions{CheckRemote: checkRemote})
			if err != nil {
				return err
			}
			if len(res.Links) > 0 {
				output.FromContext(ctx).Block(linkTable(res))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkRemote, "check-remote", false, "Fetch upstream and compare")

	return cmd
}

func linkTable(res engine.StatusResult) string {
	rows := make([][]string, len(res.Links))
	for i, l := range res.Links {
		rows[i] = []string{l.Link.Path, l.Link.Target, string(l.State)}
	}
	return ui.Table{
		Headers:   []string{"LINK", "TARGET", "STATE"},
		Rows:      rows,
		Highlight: stateColumn,
	}.String()
}

func stateColumn(col int, cell string) lipgloss.Style {
	if col != 2 {
		return lipgloss.NewStyle()
	}
	if cell == string(overlay.LinkValid) {
		return styles.SuccessStyle
	}
	return styles.ErrorStyle
}

func newVersionCmd(g *globals) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Show the installed framework version",
		GroupID: GroupInfo,
		Args:    cobra.NoArgs,
		Long: `Show the framework version declared in .framework/VERSION.

Use fw --version for the version of fw itself.`,
		Example: `  fw version
  fw version --short   # Print only the version, for scripts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if short {
				return printVersion(g, cmd)
			}
			s, err := g.open(ctx, target{}, true)
			if err != nil {
				return err
			}
			defer s.close()

			_, err = s.engine.Version(ctx)
			return err
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version")

	return cmd
}

// printVersion writes the bare version to stdout. Unlike the full report,
// a missing installation is an error so scripts can test the exit code.
func printVersion(g *globals, cmd *cobra.Command) error {
	ctx := cmd.Context()
	root, err := g.repoRoot(ctx)
	if err != nil {
		return err
	}
	snap := framework.NewState(fsys.OS(), root).Describe()
	if !snap.Exists {
		return errs.New(errs.NotInstalled, "framework not installed").
			WithGuidance("Install with: fw install")
	}
	output.FromContext(ctx).Println(snap.Version)
	return nil
}

func newRepairCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repair",
		Short:   "Recreate broken symlinks and missing templates",
		GroupID: GroupInfo,
		Args:    cobra.NoArgs,
		Long: `Recreate the overlay symlinks and copy customizable files that are
missing. Files you have customized are never overwritten; anything in the
way of a link is moved aside to <path>.backup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := g.open(ctx, target{}, true)
			if err != nil {
				return err
			}
			defer s.close()

			_, err = s.engine.Repair(ctx)
			return err
		},
	}

	return cmd
}
