package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/fw/internal/git"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/output"
	"github.com/raphi011/fw/internal/ui"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	verbose   bool
	quiet     bool
	assumeYes bool
	chdir     string
}

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupInfo   = "info"
	GroupConfig = "config"
)

func newRootCmd() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:   "fw",
		Short: "Vendored framework manager",
		Long: `fw installs a shared framework into .framework/ as a git subtree and keeps
it in sync in both directions.

It pulls upstream updates with a backup tag to roll back to, pushes local
framework changes back upstream, and maintains the symlinks and copied
templates that expose the framework to your project.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip git check for completion and help commands
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}

			if g.verbose && g.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}

			// Flags are parsed now; replace the placeholder logger.
			ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, g.verbose, g.quiet))
			cmd.SetContext(ctx)

			if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return nil
			}
			return git.CheckGit()
		},
	}

	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Show external commands being executed")
	cmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "Only show warnings and errors")
	cmd.PersistentFlags().BoolVarP(&g.assumeYes, "yes", "y", false, "Answer yes to every confirmation")
	cmd.PersistentFlags().StringVarP(&g.chdir, "chdir", "C", "", "Run as if fw was started in `dir`")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	_ = cmd.MarkPersistentFlagDirname("chdir")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Framework Commands:"},
		&cobra.Group{ID: GroupInfo, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(newInstallCmd(g))
	cmd.AddCommand(newUpdateCmd(g))
	cmd.AddCommand(newPushCmd(g))

	cmd.AddCommand(newStatusCmd(g))
	cmd.AddCommand(newVersionCmd(g))
	cmd.AddCommand(newRepairCmd(g))

	cmd.AddCommand(newConfigCmd(g))
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = log.WithLogger(ctx, log.New(os.Stderr, false, false))
	ctx = output.WithPrinter(ctx, os.Stdout)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, ui.FormatError(err))
		cancel()
		os.Exit(1)
	}
}
