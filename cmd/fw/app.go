package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/fw/internal/config"
	"github.com/raphi011/fw/internal/engine"
	"github.com/raphi011/fw/internal/errs"
	"github.com/raphi011/fw/internal/fsys"
	"github.com/raphi011/fw/internal/git"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/report"
	"github.com/raphi011/fw/internal/ui"
	"github.com/raphi011/fw/internal/ui/prompt"
	"github.com/raphi011/fw/internal/ui/styles"
)

// target is the upstream given on the command line. Empty fields fall back
// to configuration.
type target struct {
	repo   string
	branch string
}

func targetFrom(args []string, branch string) target {
	t := target{branch: branch}
	if len(args) > 0 {
		t.repo = args[0]
	}
	return t
}

// session is one command run: the engine plus its terminal adapters.
type session struct {
	engine   *engine.Engine
	cfg      config.Config
	root     string
	reporter report.Reporter
	close    func()
}

func (g *globals) workDir() (string, error) {
	if g.chdir != "" {
		return filepath.Abs(g.chdir)
	}
	return os.Getwd()
}

// repoRoot resolves the working tree root. Outside a repository it returns
// the working directory together with the NotARepository error.
func (g *globals) repoRoot(ctx context.Context) (string, error) {
	dir, err := g.workDir()
	if err != nil {
		return "", err
	}
	top, err := git.TopLevel(ctx, dir)
	if err != nil {
		return dir, err
	}
	return top, nil
}

// open resolves configuration and builds the engine. Install passes
// requireRepo=false so the engine reports a missing repository itself.
func (g *globals) open(ctx context.Context, t target, requireRepo bool) (*session, error) {
	root, err := g.repoRoot(ctx)
	if err != nil && (requireRepo || root == "") {
		if e, ok := errs.As(err); ok {
			return nil, e.WithGuidance("Run fw from inside your project, or pass -C <dir>")
		}
		return nil, err
	}

	cfg, err := config.Resolve(root, os.Getenv)
	if err != nil {
		return nil, errs.Wrap(err, errs.InvalidInput, "invalid configuration").
			WithGuidance("Fix the file or recreate it: fw config init --force")
	}
	if t.repo != "" {
		cfg.Remote.Repo = t.repo
	}
	if t.branch != "" {
		cfg.Remote.Branch = t.branch
	}
	ref, err := cfg.Ref()
	if err != nil {
		return nil, errs.Wrap(err, errs.InvalidInput, "invalid repository")
	}

	styles.Init(cfg.UI)
	r, closeReporter := g.newReporter()

	ws := engine.Workspace{
		Root:        root,
		Remote:      ref,
		BaseRef:     cfg.Push.BaseRef,
		UpdateCheck: engine.UpdateCheck(cfg.Update.Check),
	}
	log.FromContext(ctx).Debug("workspace", "root", root, "remote", ref.String(), "check", cfg.Update.Check)

	return &session{
		engine:   engine.New(ws, git.NewRepo(root), fsys.OS(), g.newPrompter(), r),
		cfg:      cfg,
		root:     root,
		reporter: r,
		close:    closeReporter,
	}, nil
}

// newPrompter picks the terminal UI only when both ends are a terminal.
func (g *globals) newPrompter() engine.Prompter {
	if g.assumeYes || !isTerminal(os.Stdin) || !isTerminal(os.Stderr) {
		return prompt.Scripted{AssumeYes: g.assumeYes}
	}
	return prompt.NewTerminal()
}

func (g *globals) newReporter() (report.Reporter, func()) {
	// Verbose command logs would tear through the spinner line.
	tr := ui.NewReporter(os.Stderr, isTerminal(os.Stderr) && !g.verbose)
	var r report.Reporter = tr
	if g.quiet {
		r = quietReporter(tr)
	}
	return r, tr.Close
}

// quietReporter forwards only warnings and errors.
func quietReporter(next report.Reporter) report.Reporter {
	return report.Func(func(e report.Event) {
		if e.Kind == report.KindWarning || e.Kind == report.KindError {
			next.Report(e)
		}
	})
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
