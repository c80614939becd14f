package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/fw/internal/errs"
	"github.com/raphi011/fw/internal/git"
)

func ptr[T any](v T) *T { return &v }

func TestPush_NotInstalled(t *testing.T) {
	t.Parallel()

	f := newFixture(CheckUpstream)
	_, err := f.eng.Push(context.Background(), PushOptions{})
	assert.True(t, errs.Is(err, errs.NotInstalled))
}

func TestPush_NoChanges(t *testing.T) {
	t.Parallel()

	f := installed(CheckUpstream)

	res, err := f.eng.Push(context.Background(), PushOptions{})
	require.NoError(t, err)
	assert.True(t, res.NoChanges)
	assert.Empty(t, f.vcs.merges)
	assert.Empty(t, f.prompt.asked)
	assert.True(t, f.rec.Contains("No changes to push"))
}

func TestPush_EmptyDescriptionRegardlessOfDivergence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		commits []string
		opts    PushOptions
		input   string
	}{
		{"flag, no commits", nil, PushOptions{Kind: "fix", Description: ptr("")}, ""},
		{"flag, with commits", []string{"abc123 Tweak agents"}, PushOptions{Kind: "fix", Description: ptr("   ")}, ""},
		{"prompted, with commits", []string{"abc123 Tweak agents"}, PushOptions{Kind: "fix"}, "  \t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := installed(CheckUpstream)
			f.vcs.commits = tt.commits
			f.prompt.input = tt.input

			_, err := f.eng.Push(context.Background(), tt.opts)
			require.Error(t, err)
			assert.Equal(t, errs.DescriptionRequired, errs.CodeOf(err))
			assert.Empty(t, f.vcs.merges)
		})
	}
}

func TestPush_Success(t *testing.T) {
	t.Parallel()

	f := installed(CheckUpstream)
	f.vcs.commits = []string{"abc123 Add planner agent"}
	f.vcs.stat = " .framework/agents/planner.md | 10 ++++++++++\n 1 file changed"
	f.prompt.selectIdx = 1
	f.prompt.input = "  Add planner agent  "

	res, err := f.eng.Push(context.Background(), PushOptions{})
	require.NoError(t, err)
	assert.True(t, res.Pushed)
	assert.Equal(t, f.vcs.stat, res.Stat)

	require.Len(t, f.vcs.merges, 1)
	assert.Equal(t, git.SubtreeOp{
		Mode:   git.SubtreePush,
		Prefix: ".framework",
		URL:    "https://github.com/org/repo.git",
		Branch: "main",
	}, f.vcs.merges[0])

	assert.Equal(t, &FollowUp{
		Kind:             Feature,
		Description:      "Add planner agent",
		CurrentVersion:   "1.2.0",
		SuggestedVersion: "1.3.0",
	}, res.FollowUp)
	assert.Equal(t, []string{
		"Show detailed diff?",
		"Push these changes?",
		"Change type?",
		"Brief description of change:",
	}, f.prompt.asked)
	assert.True(t, f.rec.Contains("Suggested version: 1.2.0 → 1.3.0"))
	assert.Equal(t, 0, f.fs.Writes)
}

func TestPush_OptionsSkipPrompts(t *testing.T) {
	t.Parallel()

	f := installed(CheckUpstream)
	f.vcs.commits = []string{"abc123 Fix typo"}

	res, err := f.eng.Push(context.Background(), PushOptions{Kind: "patch", Description: ptr("Fix typo")})
	require.NoError(t, err)
	require.NotNil(t, res.FollowUp)
	assert.Equal(t, Fix, res.FollowUp.Kind)
	assert.Equal(t, "1.2.1", res.FollowUp.SuggestedVersion)
	assert.NotContains(t, f.prompt.asked, "Change type?")
	assert.NotContains(t, f.prompt.asked, "Brief description of change:")
	assert.Equal(t, "## 1.2.1 (PATCH)\n\n- Fix typo\n", res.FollowUp.String())
}

func TestPush_InvalidKind(t *testing.T) {
	t.Parallel()

	f := installed(CheckUpstream)
	f.vcs.commits = []string{"abc123 Fix typo"}

	_, err := f.eng.Push(context.Background(), PushOptions{Kind: "zzz"})
	assert.True(t, errs.Is(err, errs.InvalidInput))
	assert.Empty(t, f.vcs.merges)
}

func TestPush_Declined(t *testing.T) {
	t.Parallel()

	f := installed(CheckUpstream)
	f.vcs.commits = []string{"abc123 Fix typo"}
	f.prompt.confirms["Push these changes?"] = false

	res, err := f.eng.Push(context.Background(), PushOptions{})
	require.NoError(t, err)
	assert.False(t, res.Pushed)
	assert.Empty(t, f.vcs.merges)
}

func TestPush_CancelledSelection(t *testing.T) {
	t.Parallel()

	f := installed(CheckUpstream)
	f.vcs.commits = []string{"abc123 Fix typo"}
	f.prompt.selectErr = ErrCancelled

	res, err := f.eng.Push(context.Background(), PushOptions{})
	require.NoError(t, err)
	assert.False(t, res.Pushed)
	assert.Empty(t, f.vcs.merges)
}

func TestPush_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want errs.Code
	}{
		{"classified auth", errs.New(errs.AuthorizationDenied, "denied"), errs.AuthorizationDenied},
		{"classified divergence", errs.New(errs.RemoteDiverged, "rejected"), errs.RemoteDiverged},
		{"classified conflict", errs.New(errs.Conflict, "conflict"), errs.RemoteDiverged},
		{"plain permission denied", errors.New("git@github.com: Permission denied (publickey)."), errs.AuthorizationDenied},
		{"plain 403", errors.New("The requested URL returned error: 403"), errs.AuthorizationDenied},
		{"plain non-fast-forward", errors.New("! [rejected] main -> main (non-fast-forward)"), errs.RemoteDiverged},
		{"generic vcs failure", errs.New(errs.VcsFailure, "fatal: bad object"), errs.PushFailed},
		{"network", errs.New(errs.NetworkUnavailable, "offline"), errs.PushFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := installed(CheckUpstream)
			f.vcs.commits = []string{"abc123 Fix typo"}
			f.vcs.mergeErr = tt.err

			res, err := f.eng.Push(context.Background(), PushOptions{Kind: "fix", Description: ptr("Fix typo")})
			require.Error(t, err)
			assert.Equal(t, tt.want, errs.CodeOf(err))
			assert.False(t, res.Pushed)
			assert.Nil(t, res.FollowUp)
		})
	}
}
