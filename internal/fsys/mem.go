package fsys

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const maxSymlinkHops = 40

var (
	errNotDir   = errors.New("not a directory")
	errIsDir    = errors.New("is a directory")
	errNotEmpty = errors.New("directory not empty")
	errLoop     = errors.New("too many levels of symbolic links")
)

type memNode struct {
	mode    fs.FileMode
	data    []byte
	target  string
	modTime time.Time
}

// Mem is an in-memory FS. Paths are slash-separated and treated as absolute;
// relative names are resolved against "/". Symlinks are resolved the way the
// kernel does: relative targets are relative to the link's directory.
type Mem struct {
	nodes map[string]*memNode
	// Writes counts mutating calls, so tests can assert an operation
	// left the tree untouched.
	Writes int
}

// NewMem returns an empty in-memory filesystem containing only "/".
func NewMem() *Mem {
	return &Mem{nodes: map[string]*memNode{
		"/": {mode: fs.ModeDir | 0755, modTime: time.Now()},
	}}
}

// AddFile creates name with content, creating parent directories.
// It does not count as a write.
func (m *Mem) AddFile(name, content string) {
	writes := m.Writes
	if err := m.MkdirAll(filepath.Dir(name), 0755); err != nil {
		panic(err)
	}
	if err := m.WriteFile(name, []byte(content), 0644); err != nil {
		panic(err)
	}
	m.Writes = writes
}

// AddDir creates a directory and its parents. It does not count as a write.
func (m *Mem) AddDir(name string) {
	writes := m.Writes
	if err := m.MkdirAll(name, 0755); err != nil {
		panic(err)
	}
	m.Writes = writes
}

// AddSymlink creates a symlink, creating the link's parent directories.
// It does not count as a write.
func (m *Mem) AddSymlink(target, name string) {
	writes := m.Writes
	if err := m.MkdirAll(filepath.Dir(name), 0755); err != nil {
		panic(err)
	}
	if err := m.Symlink(target, name); err != nil {
		panic(err)
	}
	m.Writes = writes
}

func abs(name string) string {
	name = filepath.Clean("/" + filepath.ToSlash(name))
	return name
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// resolve returns the canonical path for name. Intermediate symlinks are
// always followed; the final element only when followLast is set. A missing
// final element is not an error: the returned path simply has no node.
func (m *Mem) resolve(name string, followLast bool) (string, error) {
	p := abs(name)
	for hops := 0; hops <= maxSymlinkHops; hops++ {
		parts := split(p)
		cur := "/"
		restart := false
		for i, part := range parts {
			next := filepath.Join(cur, part)
			last := i == len(parts)-1
			n, ok := m.nodes[next]
			if !ok {
				if last {
					return next, nil
				}
				return "", fs.ErrNotExist
			}
			if n.mode&fs.ModeSymlink != 0 && (!last || followLast) {
				target := n.target
				if !filepath.IsAbs(target) {
					target = filepath.Join(cur, target)
				}
				p = abs(filepath.Join(append([]string{target}, parts[i+1:]...)...))
				restart = true
				break
			}
			if !last && !n.mode.IsDir() {
				return "", errNotDir
			}
			cur = next
		}
		if !restart {
			return cur, nil
		}
	}
	return "", errLoop
}

func pathErr(op, name string, err error) error {
	return &fs.PathError{Op: op, Path: name, Err: err}
}

func (m *Mem) lookup(op, name string, followLast bool) (string, *memNode, error) {
	p, err := m.resolve(name, followLast)
	if err != nil {
		return "", nil, pathErr(op, name, err)
	}
	n, ok := m.nodes[p]
	if !ok {
		return p, nil, pathErr(op, name, fs.ErrNotExist)
	}
	return p, n, nil
}

func (m *Mem) parentDir(op, p string) error {
	parent, ok := m.nodes[filepath.Dir(p)]
	if !ok {
		return pathErr(op, p, fs.ErrNotExist)
	}
	if !parent.mode.IsDir() {
		return pathErr(op, p, errNotDir)
	}
	return nil
}

func (m *Mem) Stat(name string) (fs.FileInfo, error) {
	p, n, err := m.lookup("stat", name, true)
	if err != nil {
		return nil, err
	}
	return &memInfo{name: filepath.Base(p), node: n}, nil
}

func (m *Mem) Lstat(name string) (fs.FileInfo, error) {
	p, n, err := m.lookup("lstat", name, false)
	if err != nil {
		return nil, err
	}
	return &memInfo{name: filepath.Base(p), node: n}, nil
}

func (m *Mem) ReadFile(name string) ([]byte, error) {
	_, n, err := m.lookup("open", name, true)
	if err != nil {
		return nil, err
	}
	if n.mode.IsDir() {
		return nil, pathErr("read", name, errIsDir)
	}
	return slices.Clone(n.data), nil
}

func (m *Mem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	p, err := m.resolve(name, true)
	if err != nil {
		return pathErr("open", name, err)
	}
	if n, ok := m.nodes[p]; ok && n.mode.IsDir() {
		return pathErr("open", name, errIsDir)
	}
	if err := m.parentDir("open", p); err != nil {
		return err
	}
	m.nodes[p] = &memNode{mode: perm.Perm(), data: slices.Clone(data), modTime: time.Now()}
	m.Writes++
	return nil
}

func (m *Mem) MkdirAll(path string, perm fs.FileMode) error {
	p, err := m.resolve(path, true)
	if err == nil {
		if n, ok := m.nodes[p]; ok {
			if n.mode.IsDir() {
				return nil
			}
			return pathErr("mkdir", path, errNotDir)
		}
	}
	parent := filepath.Dir(abs(path))
	if parent != abs(path) {
		if err := m.MkdirAll(parent, perm); err != nil {
			return err
		}
	}
	p, err = m.resolve(path, true)
	if err != nil {
		return pathErr("mkdir", path, err)
	}
	m.nodes[p] = &memNode{mode: fs.ModeDir | perm.Perm(), modTime: time.Now()}
	m.Writes++
	return nil
}

func (m *Mem) ReadDir(name string) ([]fs.DirEntry, error) {
	p, n, err := m.lookup("open", name, true)
	if err != nil {
		return nil, err
	}
	if !n.mode.IsDir() {
		return nil, pathErr("readdir", name, errNotDir)
	}
	var entries []fs.DirEntry
	for key, child := range m.nodes {
		if key != "/" && filepath.Dir(key) == p {
			entries = append(entries, fs.FileInfoToDirEntry(&memInfo{name: filepath.Base(key), node: child}))
		}
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int { return strings.Compare(a.Name(), b.Name()) })
	return entries, nil
}

func (m *Mem) Symlink(oldname, newname string) error {
	p, err := m.resolve(newname, false)
	if err != nil {
		return pathErr("symlink", newname, err)
	}
	if _, ok := m.nodes[p]; ok {
		return pathErr("symlink", newname, fs.ErrExist)
	}
	if err := m.parentDir("symlink", p); err != nil {
		return err
	}
	m.nodes[p] = &memNode{mode: fs.ModeSymlink | 0777, target: oldname, modTime: time.Now()}
	m.Writes++
	return nil
}

func (m *Mem) Readlink(name string) (string, error) {
	_, n, err := m.lookup("readlink", name, false)
	if err != nil {
		return "", err
	}
	if n.mode&fs.ModeSymlink == 0 {
		return "", pathErr("readlink", name, fs.ErrInvalid)
	}
	return n.target, nil
}

func (m *Mem) Rename(oldpath, newpath string) error {
	op, _, err := m.lookup("rename", oldpath, false)
	if err != nil {
		return err
	}
	np, err := m.resolve(newpath, false)
	if err != nil {
		return pathErr("rename", newpath, err)
	}
	if err := m.parentDir("rename", np); err != nil {
		return err
	}
	moved := map[string]*memNode{}
	for key, n := range m.nodes {
		if key == op || strings.HasPrefix(key, op+"/") {
			moved[np+strings.TrimPrefix(key, op)] = n
			delete(m.nodes, key)
		}
	}
	for key, n := range moved {
		m.nodes[key] = n
	}
	m.Writes++
	return nil
}

func (m *Mem) Remove(name string) error {
	p, n, err := m.lookup("remove", name, false)
	if err != nil {
		return err
	}
	if n.mode.IsDir() && m.hasChildren(p) {
		return pathErr("remove", name, errNotEmpty)
	}
	delete(m.nodes, p)
	m.Writes++
	return nil
}

func (m *Mem) RemoveAll(path string) error {
	p, err := m.resolve(path, false)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return pathErr("removeall", path, err)
	}
	if _, ok := m.nodes[p]; !ok || p == "/" {
		return nil
	}
	for key := range m.nodes {
		if key == p || strings.HasPrefix(key, p+"/") {
			delete(m.nodes, key)
		}
	}
	m.Writes++
	return nil
}

func (m *Mem) hasChildren(p string) bool {
	for key := range m.nodes {
		if key != p && strings.HasPrefix(key, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}

type memInfo struct {
	name string
	node *memNode
}

func (i *memInfo) Name() string       { return i.name }
func (i *memInfo) Size() int64        { return int64(len(i.node.data)) }
func (i *memInfo) Mode() fs.FileMode  { return i.node.mode }
func (i *memInfo) ModTime() time.Time { return i.node.modTime }
func (i *memInfo) IsDir() bool        { return i.node.mode.IsDir() }
func (i *memInfo) Sys() any           { return nil }
