package todo

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todoforge/internal/appdir"
	"github.com/nibzard/todoforge/internal/store"
)

// ErrNoSpace is returned when no space is current.
var ErrNoSpace = errors.New("no space available, create one with 'todoforge spaces add <name>'")

// Repository gives access to the todos of the current space.
type Repository struct {
	store   *store.Store
	dataDir string
	logger  *log.Logger
}

// NewRepository creates a repository over st whose space files live in dataDir.
// A nil logger discards output.
func NewRepository(st *store.Store, dataDir string, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
	}
	return &Repository{store: st, dataDir: dataDir, logger: logger}
}

// Path returns the file backing space.
func (r *Repository) Path(space string) string {
	return appdir.TodoPath(r.dataDir, space)
}

// CurrentPath resolves the current space and its file.
func (r *Repository) CurrentPath() (space, path string, err error) {
	space, err = r.store.CurrentSpace()
	if err != nil {
		return "", "", err
	}
	if space == "" {
		return "", "", ErrNoSpace
	}
	return space, r.Path(space), nil
}

// Todos loads the collection of the current space.
func (r *Repository) Todos() (*Collection, error) {
	space, _, err := r.CurrentPath()
	if err != nil {
		return nil, err
	}
	return r.SpaceTodos(space)
}

// SpaceTodos loads the collection of any space.
func (r *Repository) SpaceTodos(space string) (*Collection, error) {
	path := r.Path(space)
	doc, err := r.store.Get(path)
	if err != nil {
		return nil, err
	}
	c, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// SaveTodos writes c as the collection of the current space.
func (r *Repository) SaveTodos(c *Collection) error {
	space, path, err := r.CurrentPath()
	if err != nil {
		return err
	}
	if err := r.store.Save(path, c.Document()); err != nil {
		return err
	}
	r.logger.Debug("saved todos", "space", space, "count", c.Len())
	return nil
}

// Update applies fn to the first todo whose id starts with id and saves
// the collection. It reports false, without writing, when nothing matches.
func (r *Repository) Update(id string, fn func(*Todo)) (bool, error) {
	c, err := r.Todos()
	if err != nil {
		return false, err
	}

	t := c.Find(id)
	if t == nil {
		r.logger.Debug("todo not found", "id", id)
		return false, nil
	}
	fn(t)

	if err := r.SaveTodos(c); err != nil {
		return false, err
	}
	return true, nil
}

// SetDone sets the done flag of the todo matching id.
func (r *Repository) SetDone(id string, done bool) (bool, error) {
	return r.Update(id, func(t *Todo) {
		t.Done = done
	})
}

// Toggle flips the done flag of the todo matching id.
func (r *Repository) Toggle(id string) (bool, error) {
	return r.Update(id, func(t *Todo) {
		t.Done = !t.Done
	})
}

// EditTitle replaces the title of the todo matching id. The id is kept.
func (r *Repository) EditTitle(id, title string) (bool, error) {
	return r.Update(id, func(t *Todo) {
		t.Title = title
	})
}

// Remove drops every todo whose id starts with id and returns how many
// were removed. Nothing is written when the count is zero.
func (r *Repository) Remove(id string) (int, error) {
	c, err := r.Todos()
	if err != nil {
		return 0, err
	}

	removed := c.RemoveMatching(id)
	if removed == 0 {
		r.logger.Debug("todo not found", "id", id)
		return 0, nil
	}

	if err := r.SaveTodos(c); err != nil {
		return 0, err
	}
	return removed, nil
}

// Add appends a new todo to the current space.
func (r *Repository) Add(title string, done bool) (Todo, error) {
	c, err := r.Todos()
	if err != nil {
		return Todo{}, err
	}

	t := New(title, done)
	c.Add(t)

	if err := r.SaveTodos(c); err != nil {
		return Todo{}, err
	}
	return t, nil
}
