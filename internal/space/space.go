// Package space manages the lifecycle of todo spaces: the global registry
// of known spaces in config.json and the per-space todo files.
package space

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todoforge/internal/appdir"
	"github.com/nibzard/todoforge/internal/store"
)

var (
	// ErrInvalidName is returned for names with characters other than letters and digits.
	ErrInvalidName = errors.New("name must contain only letters and numbers, no special characters")
	// ErrExists is returned when a space with the same name is already known.
	ErrExists = errors.New("space already exists")
	// ErrUnknownSpace is returned when a name is not in the list of spaces.
	ErrUnknownSpace = errors.New("space is not available, please create it first")
	// ErrMissingFile is returned when the todo file of a space does not exist.
	ErrMissingFile = errors.New("space file does not exist")
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidateName reports whether name can be used as a space name.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}

// Service manages spaces through a store.
type Service struct {
	store   *store.Store
	fs      store.FileSystem
	dataDir string
	logger  *log.Logger
}

// NewService creates a space service. Space files live in dataDir.
func NewService(st *store.Store, dataDir string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
	}
	return &Service{store: st, fs: st.FS(), dataDir: dataDir, logger: logger}
}

// Path returns the todo file of a space.
func (s *Service) Path(name string) string {
	return appdir.TodoPath(s.dataDir, name)
}

// Init creates the config and data directories and an empty global
// document. It reports whether the document was created.
func (s *Service) Init() (bool, error) {
	configPath := s.store.ConfigPath()
	for _, dir := range []string{filepath.Dir(configPath), s.dataDir} {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if _, err := s.fs.Stat(configPath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", configPath, err)
	}

	doc := store.Document{
		store.FieldCurrentSpace: "",
		store.FieldSpaces:       []string{},
	}
	if err := s.store.Save(configPath, doc); err != nil {
		return false, err
	}
	s.logger.Info("initialized", "config", configPath, "data", s.dataDir)
	return true, nil
}

// List returns the known spaces and the current one.
func (s *Service) List() ([]string, string, error) {
	spaces, err := s.store.SpacesList()
	if err != nil {
		return nil, "", err
	}
	current, err := s.store.CurrentSpace()
	if err != nil {
		return nil, "", err
	}
	return spaces, current, nil
}

// Create allocates an empty todo file for name and registers it. The new
// space becomes current when no space is current.
func (s *Service) Create(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	spaces, current, err := s.List()
	if err != nil {
		return err
	}
	if slices.Contains(spaces, name) {
		return fmt.Errorf("%q: %w", name, ErrExists)
	}

	if err := s.fs.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", s.dataDir, err)
	}
	path := s.Path(name)
	if err := s.ensureAbsent(name); err != nil {
		return err
	}
	if err := s.store.Save(path, store.Document{"todos": []any{}}); err != nil {
		return err
	}

	if current == "" {
		current = name
	}
	if err := s.saveConfig(current, append(slices.Clone(spaces), name)); err != nil {
		return err
	}
	s.logger.Info("space created", "space", name, "path", path)
	return nil
}

// Switch makes name the current space.
func (s *Service) Switch(name string) error {
	spaces, _, err := s.List()
	if err != nil {
		return err
	}
	if !slices.Contains(spaces, name) {
		return fmt.Errorf("%q: %w", name, ErrUnknownSpace)
	}
	return s.saveConfig(name, spaces)
}

// Rename moves the todo file of oldName and updates the registry.
func (s *Service) Rename(oldName, newName string) error {
	if err := ValidateName(newName); err != nil {
		return err
	}
	spaces, current, err := s.List()
	if err != nil {
		return err
	}
	idx := slices.Index(spaces, oldName)
	if idx < 0 {
		return fmt.Errorf("%q: %w", oldName, ErrUnknownSpace)
	}
	if slices.Contains(spaces, newName) {
		return fmt.Errorf("%q: %w", newName, ErrExists)
	}

	if err := s.ensureAbsent(newName); err != nil {
		return err
	}
	oldPath, newPath := s.Path(oldName), s.Path(newName)
	if err := s.fs.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename space file: %w", err)
	}
	s.store.Forget(oldPath)
	s.store.Forget(newPath)

	spaces = slices.Clone(spaces)
	spaces[idx] = newName
	if current == oldName {
		current = newName
	}
	if err := s.saveConfig(current, spaces); err != nil {
		return err
	}
	s.logger.Info("space renamed", "from", oldName, "to", newName)
	return nil
}

// Remove deletes the todo file of name and drops it from the registry.
// When name was current, the first remaining space becomes current.
func (s *Service) Remove(name string) error {
	path := s.Path(name)
	if _, err := s.fs.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q: %w", appdir.TodoFileName(name), ErrMissingFile)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	spaces, current, err := s.List()
	if err != nil {
		return err
	}

	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("remove space file: %w", err)
	}
	s.store.Forget(path)

	spaces = slices.DeleteFunc(slices.Clone(spaces), func(sp string) bool {
		return sp == name
	})
	if current == name {
		current = ""
		if len(spaces) > 0 {
			current = spaces[0]
		}
	}
	if err := s.saveConfig(current, spaces); err != nil {
		return err
	}
	s.logger.Info("space removed", "space", name)
	return nil
}

// ensureAbsent fails when a todo file for name already exists on disk,
// registered or not.
func (s *Service) ensureAbsent(name string) error {
	path := s.Path(name)
	_, err := s.fs.Stat(path)
	switch {
	case err == nil:
		return fmt.Errorf("%q: %w: %s is not registered", name, ErrExists, appdir.TodoFileName(name))
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}

func (s *Service) saveConfig(current string, spaces []string) error {
	doc := store.Document{
		store.FieldCurrentSpace: current,
		store.FieldSpaces:       spaces,
	}
	return s.store.Save(s.store.ConfigPath(), doc)
}
