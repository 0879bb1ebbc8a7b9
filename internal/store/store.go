package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Field names of the global config document.
const (
	FieldCurrentSpace = "current_space"
	FieldSpaces       = "spaces"
)

// Document is a decoded JSON object.
type Document map[string]any

// FileSystem is the file access a Store and the code built on it need.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	Stat(name string) (fs.FileInfo, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	MkdirAll(path string, perm os.FileMode) error
}

type osFS struct{}

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (osFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (osFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

func (osFS) Remove(name string) error { return os.Remove(name) }

func (osFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

// Store is a cached JSON document loader and writer.
type Store struct {
	configPath string
	fs         FileSystem
	logger     *log.Logger
	cache      map[string]Document
}

// Option configures a Store.
type Option func(*Store)

// WithFileSystem replaces the OS file access.
func WithFileSystem(fsys FileSystem) Option {
	return func(s *Store) {
		s.fs = fsys
	}
}

// WithLogger sets the logger used for cache and I/O debug lines.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store whose global config document lives at configPath.
func New(configPath string, opts ...Option) *Store {
	s := &Store{
		configPath: filepath.Clean(configPath),
		fs:         osFS{},
		cache:      make(map[string]Document),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
	}
	return s
}

// FS returns the file system the Store reads and writes through.
func (s *Store) FS() FileSystem {
	return s.fs
}

// ConfigPath returns the path of the global config document.
func (s *Store) ConfigPath() string {
	return s.configPath
}

// SpaceConfig returns the global config document.
func (s *Store) SpaceConfig() (Document, error) {
	return s.load(s.configPath)
}

// CurrentSpace returns the current_space field of the global config document.
func (s *Store) CurrentSpace() (string, error) {
	return field[string](s, FieldCurrentSpace, "string")
}

// SpacesList returns the spaces field of the global config document.
func (s *Store) SpacesList() ([]string, error) {
	raw, err := s.lookup(FieldSpaces)
	if err != nil {
		return nil, err
	}

	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		spaces := make([]string, 0, len(v))
		for i, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, &FieldError{
					Field: fmt.Sprintf("%s[%d]", FieldSpaces, i),
					Kind:  ErrTypeMismatch,
					Want:  "string",
					Got:   jsonType(item),
				}
			}
			spaces = append(spaces, name)
		}
		return spaces, nil
	default:
		return nil, &FieldError{Field: FieldSpaces, Kind: ErrTypeMismatch, Want: "array", Got: jsonType(raw)}
	}
}

// Get returns the document at path, reading it only on the first call.
func (s *Store) Get(path string) (Document, error) {
	return s.load(path)
}

// Save writes doc to path and makes it the cached document for path.
func (s *Store) Save(path string, doc Document) error {
	key := filepath.Clean(path)

	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.fs.WriteFile(key, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	s.cache[key] = doc
	s.logger.Debug("saved document", "path", key, "bytes", len(data))
	return nil
}

// Forget drops the cached document for path.
func (s *Store) Forget(path string) {
	delete(s.cache, filepath.Clean(path))
}

// Reset drops every cached document.
func (s *Store) Reset() {
	s.cache = make(map[string]Document)
}

// Cached reports whether path has a cached document.
func (s *Store) Cached(path string) bool {
	_, ok := s.cache[filepath.Clean(path)]
	return ok
}

// Encode renders doc as 4-space indented JSON with sorted keys.
func Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Store) load(path string) (Document, error) {
	key := filepath.Clean(path)
	if doc, ok := s.cache[key]; ok {
		s.logger.Debug("cache hit", "path", key)
		return doc, nil
	}

	doc, err := s.read(key)
	if err != nil {
		return nil, err
	}
	s.cache[key] = doc
	return doc, nil
}

func (s *Store) read(path string) (Document, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("configuration file %q: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if doc == nil {
		return nil, &ParseError{Path: path, Err: errors.New("document is null")}
	}

	s.logger.Debug("loaded document", "path", path, "bytes", len(data))
	return doc, nil
}

// lookup returns a present, non-null field of the global config document.
func (s *Store) lookup(name string) (any, error) {
	doc, err := s.SpaceConfig()
	if err != nil {
		return nil, err
	}
	raw, ok := doc[name]
	if !ok || raw == nil {
		return nil, &FieldError{Field: name, Kind: ErrMissingField}
	}
	return raw, nil
}

// field returns a field of the global config document as a T.
func field[T any](s *Store, name, want string) (T, error) {
	var zero T
	raw, err := s.lookup(name)
	if err != nil {
		return zero, err
	}
	v, ok := raw.(T)
	if !ok {
		return zero, &FieldError{Field: name, Kind: ErrTypeMismatch, Want: want, Got: jsonType(raw)}
	}
	return v, nil
}
