package git

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/raphi011/fw/internal/errs"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  string
		want errs.Code
	}{
		{"ssh publickey", "git@github.com: Permission denied (publickey).\nfatal: Could not read from remote repository.", errs.AuthorizationDenied},
		{"https 403", "remote: Permission to antbald/BALDART.git denied to someone.\nfatal: unable to access 'https://github.com/antbald/BALDART.git/': The requested URL returned error: 403", errs.AuthorizationDenied},
		{"no credentials", "fatal: could not read Username for 'https://github.com': terminal prompts disabled", errs.AuthorizationDenied},
		{"non fast forward", " ! [rejected]        abc -> main (non-fast-forward)\nerror: failed to push some refs", errs.RemoteDiverged},
		{"fetch first", "hint: Updates were rejected because the remote contains work that you do not have locally (fetch first)", errs.RemoteDiverged},
		{"merge conflict", "CONFLICT (content): Merge conflict in .framework/AGENTS.md\nAutomatic merge failed; fix conflicts and then commit the result.", errs.Conflict},
		{"dns", "fatal: unable to access 'https://github.com/a/b.git/': Could not resolve host: github.com", errs.NetworkUnavailable},
		{"refused", "ssh: connect to host github.com port 22: Connection refused\nfatal: Could not read from remote repository.", errs.NetworkUnavailable},
		{"unknown", "fatal: bad revision 'nope'", errs.VcsFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(errors.New(tt.msg)); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.msg, got, tt.want)
			}
		})
	}
}

func TestWrap_PassesCancellationThrough(t *testing.T) {
	t.Parallel()

	err := wrap(fmt.Errorf("run: %w", context.Canceled), "fetch failed")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("wrap() = %v, want context.Canceled", err)
	}
	if errs.CodeOf(err) != "" {
		t.Errorf("wrap() code = %q, want none", errs.CodeOf(err))
	}

	if wrap(nil, "x") != nil {
		t.Error("wrap(nil) should be nil")
	}
}
