// Package framework answers read-only questions about the vendored
// framework tree: is it installed, and which version does it declare.
package framework

import (
	"path/filepath"
	"strings"

	"github.com/raphi011/fw/internal/fsys"
)

const (
	// Prefix is the vendored subtree directory, relative to the repo root.
	Prefix = ".framework"
	// VersionFileName is the version file inside Prefix.
	VersionFileName = "VERSION"
	// UnknownVersion is reported when the version file is absent or empty.
	UnknownVersion = "unknown"
)

// VersionFile is the version file path relative to the repo root.
var VersionFile = filepath.Join(Prefix, VersionFileName)

// Snapshot is the installation state captured before an operation acts.
type Snapshot struct {
	Exists  bool
	Version string
}

// State queries the vendored tree under a repository root.
type State struct {
	fs   fsys.FS
	root string
}

// NewState returns a State for the repository at root.
func NewState(fs fsys.FS, root string) *State {
	return &State{fs: fs, root: root}
}

// Root returns the repository root.
func (s *State) Root() string {
	return s.root
}

// PrefixPath returns the absolute path of the vendored tree.
func (s *State) PrefixPath() string {
	return filepath.Join(s.root, Prefix)
}

// Exists reports whether the vendored directory is present.
func (s *State) Exists() bool {
	return fsys.IsDir(s.fs, s.PrefixPath())
}

// CurrentVersion returns the trimmed content of the version file, or
// UnknownVersion if it cannot be read. It never fails.
func (s *State) CurrentVersion() string {
	data, err := s.fs.ReadFile(filepath.Join(s.root, VersionFile))
	if err != nil {
		return UnknownVersion
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return UnknownVersion
	}
	return v
}

// Describe returns a snapshot of presence and version.
func (s *State) Describe() Snapshot {
	if !s.Exists() {
		return Snapshot{Exists: false, Version: UnknownVersion}
	}
	return Snapshot{Exists: true, Version: s.CurrentVersion()}
}
