package engine

import (
	"context"
	"path/filepath"
	"time"

	"github.com/raphi011/fw/internal/errs"
	"github.com/raphi011/fw/internal/framework"
	"github.com/raphi011/fw/internal/fsys"
	"github.com/raphi011/fw/internal/git"
	"github.com/raphi011/fw/internal/remote"
	"github.com/raphi011/fw/internal/report"
)

const root = "/repo"

// fakeVCS records calls and simulates subtree merges on a Mem tree.
type fakeVCS struct {
	fs *fsys.Mem

	notRepo   bool
	fetchErr  error
	fetches   int
	commits   []string
	logErr    error
	stat      string
	diff      string
	trees     map[string]string
	upstream  string // VERSION at FETCH_HEAD
	tags      []string
	tagErr    error
	merges    []git.SubtreeOp
	mergeErr  error
	onMerge   func(op git.SubtreeOp)
	config    map[string]string
	configErr error
}

func newFakeVCS(m *fsys.Mem) *fakeVCS {
	return &fakeVCS{fs: m, trees: map[string]string{}, config: map[string]string{}}
}

func (f *fakeVCS) IsRepository(context.Context) bool { return !f.notRepo }

func (f *fakeVCS) Fetch(context.Context, string, string) error {
	f.fetches++
	return f.fetchErr
}

func (f *fakeVCS) LogSince(context.Context, string, string) ([]string, error) {
	return f.commits, f.logErr
}

func (f *fakeVCS) DiffStat(context.Context, string, string, string) string { return f.stat }

func (f *fakeVCS) DiffContent(context.Context, string, string, string) string { return f.diff }

func (f *fakeVCS) TreeID(_ context.Context, rev string) string { return f.trees[rev] }

func (f *fakeVCS) AddTag(_ context.Context, name string) error {
	if f.tagErr != nil {
		return f.tagErr
	}
	f.tags = append(f.tags, name)
	return nil
}

func (f *fakeVCS) MergeSubtree(_ context.Context, op git.SubtreeOp) error {
	f.merges = append(f.merges, op)
	if f.mergeErr != nil {
		return f.mergeErr
	}
	if f.onMerge != nil {
		f.onMerge(op)
	}
	return nil
}

func (f *fakeVCS) ShowFile(_ context.Context, ref, path string) ([]byte, error) {
	if ref == FetchHead && path == framework.VersionFileName && f.upstream != "" {
		return []byte(f.upstream + "\n"), nil
	}
	return nil, errs.Newf(errs.NotFound, "%s not found at %s", path, ref)
}

func (f *fakeVCS) SetConfig(_ context.Context, key, value string) error {
	if f.configErr != nil {
		return f.configErr
	}
	f.config[key] = value
	return nil
}

// answers is a scripted Prompter. Unlisted confirmations take their default.
type answers struct {
	confirms  map[string]bool
	selectIdx int
	selectErr error
	input     string
	inputErr  error
	asked     []string
}

func (a *answers) Confirm(_ context.Context, req ConfirmRequest) (bool, error) {
	a.asked = append(a.asked, req.Message)
	if v, ok := a.confirms[req.Message]; ok {
		return v, nil
	}
	return req.Default, nil
}

func (a *answers) Select(_ context.Context, req SelectRequest) (int, error) {
	a.asked = append(a.asked, req.Message)
	return a.selectIdx, a.selectErr
}

func (a *answers) Input(_ context.Context, req InputRequest) (string, error) {
	a.asked = append(a.asked, req.Message)
	return a.input, a.inputErr
}

// vendor writes an upstream framework tree at the prefix.
func vendor(m *fsys.Mem, version string) {
	p := func(rel string) string { return filepath.Join(root, framework.Prefix, rel) }
	m.AddFile(p("VERSION"), version+"\n")
	m.AddFile(p("AGENTS.md"), "# Agents\n")
	m.AddFile(p("agents/coder.md"), "coder")
	m.AddFile(p(".claude/agents/reviewer.md"), "reviewer")
	m.AddFile(p(".claude/commands/new.md"), "new")
	m.AddFile(p(".claude/hooks/lint-before-commit.sh.template"), "#!/bin/sh\n")
	m.AddFile(p("docs/references/ui-guidelines.template.md"), "ui")
	m.AddFile(p("docs/references/brand-guidelines.md"), "brand")
	m.AddFile(p("templates/feature-card.template.yml"), "card")
}

var fixedNow = time.Date(2026, 10, 19, 12, 34, 56, 789_000_000, time.UTC)

type fixture struct {
	fs     *fsys.Mem
	vcs    *fakeVCS
	prompt *answers
	rec    *report.Recorder
	eng    *Engine
}

func newFixture(check UpdateCheck) *fixture {
	m := fsys.NewMem()
	m.AddDir(root)
	f := &fixture{
		fs:     m,
		vcs:    newFakeVCS(m),
		prompt: &answers{confirms: map[string]bool{}},
		rec:    &report.Recorder{},
	}
	ws := Workspace{
		Root:        root,
		Remote:      remote.Ref{Repo: "org/repo", Branch: "main"},
		UpdateCheck: check,
	}
	f.eng = New(ws, f.vcs, m, f.prompt, f.rec, WithClock(func() time.Time { return fixedNow }))
	return f
}

// installed returns a fixture with the framework vendored and the overlay built.
func installed(check UpdateCheck) *fixture {
	f := newFixture(check)
	vendor(f.fs, "1.2.0")
	mgrLinks(f)
	f.fs.Writes = 0
	return f
}

func mgrLinks(f *fixture) {
	if _, err := f.eng.overlay.CreateAllLinks(); err != nil {
		panic(err)
	}
}
