package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		repo string
		host string
		want string
	}{
		{"shorthand", "org/repo", "", "https://github.com/org/repo.git"},
		{"shorthand custom host", "org/repo", "gitlab.example.com", "https://gitlab.example.com/org/repo.git"},
		{"https without suffix", "https://github.com/org/repo", "", "https://github.com/org/repo.git"},
		{"https with suffix", "https://github.com/org/repo.git", "", "https://github.com/org/repo.git"},
		{"trailing slash", "https://github.com/org/repo/", "", "https://github.com/org/repo.git"},
		{"http", "http://git.local/org/repo", "", "http://git.local/org/repo.git"},
		{"scp style", "git@github.com:org/repo", "", "git@github.com:org/repo.git"},
		{"file url", "file:///srv/git/framework.git", "", "file:///srv/git/framework.git"},
		{"surrounding space", "  org/repo ", "", "https://github.com/org/repo.git"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.repo, tt.host))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"org/repo",
		"https://github.com/org/repo",
		"https://github.com/org/repo.git",
		"git@github.com:org/repo",
		"ssh://git@host/org/repo",
	}
	for _, in := range inputs {
		once := Normalize(in, "")
		assert.Equal(t, once, Normalize(once, ""), "Normalize not idempotent for %q", in)
	}
}

func TestNormalize_EquivalentForms(t *testing.T) {
	t.Parallel()

	want := "https://github.com/org/repo.git"
	for _, in := range []string{"org/repo", "https://github.com/org/repo", "https://github.com/org/repo.git"} {
		assert.Equal(t, want, Normalize(in, ""), "input %q", in)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	ref, err := Parse("org/repo", "", "")
	require.NoError(t, err)
	assert.Equal(t, "main", ref.Branch)
	assert.Equal(t, DefaultHost, ref.Host)
	assert.Equal(t, "https://github.com/org/repo.git", ref.URL())
	assert.Equal(t, "https://github.com/org/repo.git@main", ref.String())

	ref, err = Parse("https://example.com/x/y", "develop", "")
	require.NoError(t, err)
	assert.Equal(t, "develop", ref.BranchOrDefault())
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "repo", "/repo", "org/", "a/b/c", "org /repo"} {
		_, err := Parse(in, "", "")
		assert.Error(t, err, "Parse(%q)", in)
	}
}
