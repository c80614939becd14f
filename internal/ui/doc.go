// Package ui renders fw output on a terminal.
//
// [Reporter] turns engine events into styled lines on stderr: step headers,
// check marks, warnings, and bordered blocks for guidance and summaries.
// Progress events start a spinner when the output is a terminal and print
// a plain line otherwise. [Table] formats tabular data for stdout
// and [FormatError] renders a failed command with its guidance.
//
// Colors come from the styles package and are downsampled to what the
// output supports (NO_COLOR, pipes, 256-color terminals).
package ui
