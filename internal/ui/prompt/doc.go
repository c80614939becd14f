// Package prompt answers the engine's questions.
//
// [Terminal] runs small bubbletea programs on stderr:
//   - confirm: yes/no with a default on enter
//   - select: single choice by cursor or number
//   - input: single-line text
//
// [Scripted] answers without a terminal, for pipes, CI and --yes.
// Both implement engine.Prompter; cancelling a prompt (esc, ctrl+c)
// returns engine.ErrCancelled.
package prompt
