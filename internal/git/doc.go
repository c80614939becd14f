// Package git provides git operations via shell commands.
//
// All operations use [os/exec.Command] to call the git CLI directly rather than
// using Go git libraries. This approach is simpler, more reliable, and ensures
// compatibility with user configurations (SSH keys, credential helpers, aliases).
//
// # Repository Port
//
// [Repo] is bound to one working tree and issues every command with
// "git -C <root>":
//
//   - [Repo.Fetch]: Retrieve an upstream branch into FETCH_HEAD
//   - [Repo.LogSince], [Repo.DiffStat], [Repo.DiffContent]: Local divergence under a prefix
//   - [Repo.TreeID]: Resolve trees for up-to-date checks
//   - [Repo.AddTag]: Rollback points before merges
//   - [Repo.MergeSubtree]: git subtree add, pull and push
//   - [Repo.ShowFile]: Read a file at a ref or in the working tree
//
// # Error Classification
//
// Failures are returned as coded errors. [Classify] maps git's messages to
// authorization, divergence, conflict and network codes; anything else is
// a generic VCS failure carrying git's own message.
package git
