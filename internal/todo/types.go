package todo

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/nibzard/todoforge/internal/store"
)

// IDLength is the length of a generated todo id.
const IDLength = 40

// Todo is a single task in a space.
type Todo struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Done  bool   `json:"done" yaml:"done"`

	// Extra holds record keys todoforge does not manage. They are written
	// back unchanged.
	Extra map[string]any `json:"-" yaml:",inline"`
}

// Collection is the content of one space file.
type Collection struct {
	Todos []Todo `json:"todos" yaml:"todos"`

	// Extra holds top-level keys other than todos.
	Extra map[string]any `json:"-" yaml:",inline"`
}

var todoKeys = map[string]bool{"id": true, "title": true, "done": true}

// GenerateID derives the id of a todo from its title.
func GenerateID(title string) string {
	sum := sha1.Sum([]byte(title))
	return hex.EncodeToString(sum[:])
}

// New builds a todo with a generated id.
func New(title string, done bool) Todo {
	return Todo{ID: GenerateID(title), Title: title, Done: done}
}

// ShortID returns the first n characters of id.
func ShortID(id string, n int) string {
	if n <= 0 || len(id) <= n {
		return id
	}
	return id[:n]
}

// MatchID reports whether id is selected by prefix.
func MatchID(id, prefix string) bool {
	return prefix != "" && strings.HasPrefix(id, prefix)
}

// FromDocument decodes a space document.
// A document without a todos field yields an empty collection.
func FromDocument(doc store.Document) (*Collection, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode todo document: %w", err)
	}
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode todo document: %w", err)
	}
	if c.Todos == nil {
		c.Todos = []Todo{}
	}

	c.Extra = extraKeys(doc, func(k string) bool { return k == "todos" })
	if records, ok := doc["todos"].([]any); ok {
		for i, rec := range records {
			if m, ok := rec.(map[string]any); ok && i < len(c.Todos) {
				c.Todos[i].Extra = extraKeys(m, func(k string) bool { return todoKeys[k] })
			}
		}
	}
	return &c, nil
}

// extraKeys returns the entries of m that known does not claim, or nil.
func extraKeys(m map[string]any, known func(string) bool) map[string]any {
	var extra map[string]any
	for k, v := range m {
		if known(k) {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}
	return extra
}

// Document encodes the collection in the shape the store writes.
func (c *Collection) Document() store.Document {
	todos := make([]any, 0, len(c.Todos))
	for _, t := range c.Todos {
		rec := make(map[string]any, len(t.Extra)+3)
		for k, v := range t.Extra {
			rec[k] = v
		}
		rec["id"] = t.ID
		rec["title"] = t.Title
		rec["done"] = t.Done
		todos = append(todos, rec)
	}

	doc := make(store.Document, len(c.Extra)+1)
	for k, v := range c.Extra {
		doc[k] = v
	}
	doc["todos"] = todos
	return doc
}

// Len returns the number of todos.
func (c *Collection) Len() int {
	return len(c.Todos)
}

// Find returns the first todo whose id starts with prefix, or nil.
func (c *Collection) Find(prefix string) *Todo {
	for i := range c.Todos {
		if MatchID(c.Todos[i].ID, prefix) {
			return &c.Todos[i]
		}
	}
	return nil
}

// Add appends a todo.
func (c *Collection) Add(t Todo) {
	c.Todos = append(c.Todos, t)
}

// RemoveMatching drops every todo whose id starts with prefix and returns
// how many were dropped.
func (c *Collection) RemoveMatching(prefix string) int {
	kept := make([]Todo, 0, len(c.Todos))
	for _, t := range c.Todos {
		if MatchID(t.ID, prefix) {
			continue
		}
		kept = append(kept, t)
	}
	removed := len(c.Todos) - len(kept)
	c.Todos = kept
	return removed
}

// Sorted returns a copy with pending todos first, keeping file order
// within each group.
func (c *Collection) Sorted() []Todo {
	sorted := make([]Todo, len(c.Todos))
	copy(sorted, c.Todos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return !sorted[i].Done && sorted[j].Done
	})
	return sorted
}

// Counts returns the number of pending and done todos.
func (c *Collection) Counts() (pending, done int) {
	for _, t := range c.Todos {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return pending, done
}

// ToggleAt flips the done flag of the todo at index i.
// Out-of-range indexes are ignored.
func ToggleAt(todos []Todo, i int) []Todo {
	if i < 0 || i >= len(todos) {
		return todos
	}
	todos[i].Done = !todos[i].Done
	return todos
}
