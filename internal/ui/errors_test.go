package ui

import (
	"strings"
	"testing"

	"github.com/raphi011/fw/internal/errs"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	err := errs.New(errs.Conflict, "merge conflict during update").
		WithGuidance("Check conflicts: git status", "", "git checkout backup/2026-10-19T12-34-56").
		WithDetail(errs.DetailBackupTag, "backup/2026-10-19T12-34-56")

	got := FormatError(err)
	for _, want := range []string{
		"Error:",
		"merge conflict during update",
		"  Check conflicts: git status",
		"Backup tag: backup/2026-10-19T12-34-56",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatError() missing %q:\n%s", want, got)
		}
	}
}

func TestFormatError_Plain(t *testing.T) {
	t.Parallel()

	got := FormatError(errs.New(errs.NotInstalled, "framework not installed"))
	if strings.Contains(got, "Backup tag") {
		t.Errorf("unexpected backup tag line:\n%s", got)
	}
	if strings.Contains(got, "\n") {
		t.Errorf("error without guidance should be one line:\n%s", got)
	}
}
