// Package cmd provides helpers for executing shell commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users. The git
// port relies on this: its failure classification (conflict, permission
// denied, unreachable host) reads the stderr text carried by these errors.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, repoRoot, "git", "fetch", url, "main"); err != nil {
//	    // err.Error() is git's stderr output
//	}
//
//	out, err := cmd.OutputContext(ctx, repoRoot, "git", "log", "--oneline")
//
// Commands are echoed to the context logger when verbose mode is on.
package cmd
