// Package overlay maintains the files fw derives from the vendored tree.
//
// Two kinds of derived files exist:
//
//   - Links: symlinks from the host tree into .framework/ so that upstream
//     updates are picked up automatically. Existing non-link content at a
//     link path is renamed to <path>.backup, never deleted.
//   - Assets: files copied once out of .framework/ so they can be edited
//     locally. An existing destination is never overwritten.
//
// All paths handled by [Manager] are relative to the repository root.
package overlay
