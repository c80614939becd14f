package git

import (
	"context"
	"errors"
	"strings"

	"github.com/raphi011/fw/internal/errs"
)

var (
	authMarkers = []string{
		"permission denied",
		"permission to",
		"authentication failed",
		"could not read username",
		"could not read password",
		"access denied",
		"the requested url returned error: 403",
		"the requested url returned error: 401",
		"403 forbidden",
		"invalid username or password",
	}
	divergedMarkers = []string{
		"non-fast-forward",
		"[rejected]",
		"updates were rejected",
		"fetch first",
	}
	conflictMarkers = []string{
		"conflict",
		"automatic merge failed",
		"fix conflicts",
	}
	networkMarkers = []string{
		"could not resolve host",
		"unable to access",
		"failed to connect",
		"connection refused",
		"connection timed out",
		"operation timed out",
		"network is unreachable",
		"could not read from remote repository",
		"temporary failure in name resolution",
	}
)

// Classify maps a git failure to an error code by inspecting its message.
// Authorization is checked first because git often follows a denied
// credential with a generic "could not read from remote" line.
func Classify(err error) errs.Code {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errs.VcsFailure
	}
	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, authMarkers):
		return errs.AuthorizationDenied
	case containsAny(msg, divergedMarkers):
		return errs.RemoteDiverged
	case containsAny(msg, conflictMarkers):
		return errs.Conflict
	case containsAny(msg, networkMarkers):
		return errs.NetworkUnavailable
	default:
		return errs.VcsFailure
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// wrap classifies err and wraps it with message. Context cancellation is
// passed through unchanged so callers can detect it.
func wrap(err error, message string, args ...string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	e := errs.Wrap(err, Classify(err), message)
	if len(args) > 0 {
		e = e.WithDetail(errs.DetailCommand, "git "+strings.Join(args, " "))
	}
	return e
}
