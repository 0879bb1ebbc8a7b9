// Package storetest provides an in-memory FileSystem for store tests.
package storetest

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// MemFS is an in-memory store.FileSystem that counts reads and writes.
// Directories are implicit: MkdirAll always succeeds.
type MemFS struct {
	Files  map[string][]byte
	Reads  map[string]int
	Writes map[string]int

	// WriteErr, when set, is returned by every WriteFile call.
	WriteErr error
}

// NewMemFS returns an empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{
		Files:  make(map[string][]byte),
		Reads:  make(map[string]int),
		Writes: make(map[string]int),
	}
}

// Put stores content at name without counting a write.
func (m *MemFS) Put(name, content string) {
	m.Files[filepath.Clean(name)] = []byte(content)
}

// ReadFile implements store.FileSystem.
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	name = filepath.Clean(name)
	m.Reads[name]++
	data, ok := m.Files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// WriteFile implements store.FileSystem.
func (m *MemFS) WriteFile(name string, data []byte, _ os.FileMode) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	name = filepath.Clean(name)
	m.Writes[name]++
	m.Files[name] = append([]byte(nil), data...)
	return nil
}

// Stat implements store.FileSystem.
func (m *MemFS) Stat(name string) (fs.FileInfo, error) {
	name = filepath.Clean(name)
	data, ok := m.Files[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return memInfo{name: filepath.Base(name), size: int64(len(data))}, nil
}

// Rename implements store.FileSystem.
func (m *MemFS) Rename(oldpath, newpath string) error {
	oldpath, newpath = filepath.Clean(oldpath), filepath.Clean(newpath)
	data, ok := m.Files[oldpath]
	if !ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}
	delete(m.Files, oldpath)
	m.Files[newpath] = data
	return nil
}

// Remove implements store.FileSystem.
func (m *MemFS) Remove(name string) error {
	name = filepath.Clean(name)
	if _, ok := m.Files[name]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.Files, name)
	return nil
}

// MkdirAll implements store.FileSystem.
func (m *MemFS) MkdirAll(string, os.FileMode) error { return nil }

type memInfo struct {
	name string
	size int64
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) Mode() fs.FileMode  { return 0o644 }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return false }
func (i memInfo) Sys() any           { return nil }

// TotalWrites returns the number of writes across all paths.
func (m *MemFS) TotalWrites() int {
	total := 0
	for _, n := range m.Writes {
		total += n
	}
	return total
}

// Paths returns the stored paths in sorted order.
func (m *MemFS) Paths() []string {
	paths := make([]string, 0, len(m.Files))
	for p := range m.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
