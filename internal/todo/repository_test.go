package todo

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nibzard/todoforge/internal/store"
	"github.com/nibzard/todoforge/internal/store/storetest"
)

const (
	testConfigPath = "/cfg/config.json"
	testDataDir    = "/data"
)

var workPath = filepath.Join(testDataDir, "work_todo.json")

const sampleTodos = `{
    "todos": [
        {"id": "1234", "title": "Sample Task", "done": false},
        {"id": "5678", "title": "Another Task", "done": false}
    ]
}`

func newTestRepo(t *testing.T, config, todos string) (*Repository, *store.Store, *storetest.MemFS) {
	t.Helper()
	mem := storetest.NewMemFS()
	if config != "" {
		mem.Put(testConfigPath, config)
	}
	if todos != "" {
		mem.Put(workPath, todos)
	}
	st := store.New(testConfigPath, store.WithFileSystem(mem))
	return NewRepository(st, testDataDir, nil), st, mem
}

const workConfig = `{"current_space": "work", "spaces": ["work", "personal"]}`

func TestTodos(t *testing.T) {
	repo, _, _ := newTestRepo(t, workConfig, sampleTodos)

	c, err := repo.Todos()
	if err != nil {
		t.Fatalf("Todos() error = %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if c.Todos[0].Title != "Sample Task" {
		t.Errorf("first title = %q", c.Todos[0].Title)
	}
}

func TestTodosEmpty(t *testing.T) {
	repo, _, _ := newTestRepo(t, workConfig, `{"todos": []}`)

	c, err := repo.Todos()
	if err != nil {
		t.Fatalf("Todos() error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestSaveTodosWritesCurrentSpaceFile(t *testing.T) {
	repo, _, mem := newTestRepo(t, workConfig, "")

	c := &Collection{Todos: []Todo{
		{ID: "1234", Title: "Test Task #1"},
		{ID: "2345", Title: "Test Task #2", Done: true},
	}}
	if err := repo.SaveTodos(c); err != nil {
		t.Fatalf("SaveTodos() error = %v", err)
	}

	if mem.Writes[workPath] != 1 {
		t.Errorf("writes to %s = %d, want 1", workPath, mem.Writes[workPath])
	}
	if mem.TotalWrites() != 1 {
		t.Errorf("total writes = %d, want 1", mem.TotalWrites())
	}
}

func TestSetDone(t *testing.T) {
	repo, _, mem := newTestRepo(t, workConfig, sampleTodos)

	found, err := repo.SetDone("1234", true)
	if err != nil || !found {
		t.Fatalf("SetDone(true) = %v, %v", found, err)
	}
	c, _ := repo.Todos()
	if !c.Todos[0].Done {
		t.Error("todo 1234 should be done")
	}
	if mem.Writes[workPath] != 1 {
		t.Errorf("writes = %d, want 1", mem.Writes[workPath])
	}

	found, err = repo.SetDone("1234", false)
	if err != nil || !found {
		t.Fatalf("SetDone(false) = %v, %v", found, err)
	}
	c, _ = repo.Todos()
	if c.Todos[0].Done {
		t.Error("todo 1234 should be undone")
	}
	if mem.Writes[workPath] != 2 {
		t.Errorf("writes = %d, want 2", mem.Writes[workPath])
	}
	if c.Todos[1].Done {
		t.Error("todo 5678 must not change")
	}
}

func TestSetDoneKeepsUnknownFields(t *testing.T) {
	repo, st, _ := newTestRepo(t, workConfig, `{
    "meta": {"owner": "ana"},
    "todos": [{"id": "1234", "title": "Sample Task", "done": false, "priority": 3}]
}`)

	if found, err := repo.SetDone("1234", true); err != nil || !found {
		t.Fatalf("SetDone() = %v, %v", found, err)
	}

	st.Reset()
	doc, err := st.Get(workPath)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, ok := doc["meta"]; !ok {
		t.Error("top-level meta was dropped")
	}
	rec := doc["todos"].([]any)[0].(map[string]any)
	if rec["priority"] != float64(3) || rec["done"] != true {
		t.Errorf("record = %v, want priority 3 and done", rec)
	}
}

func TestToggle(t *testing.T) {
	repo, _, _ := newTestRepo(t, workConfig, sampleTodos)

	for i, want := range []bool{true, false, true} {
		if _, err := repo.Toggle("5678"); err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		c, _ := repo.Todos()
		if c.Todos[1].Done != want {
			t.Errorf("toggle %d: done = %v, want %v", i, c.Todos[1].Done, want)
		}
	}
}

func TestEditTitle(t *testing.T) {
	repo, _, mem := newTestRepo(t, workConfig, sampleTodos)

	found, err := repo.EditTitle("1234", "Updated Task")
	if err != nil || !found {
		t.Fatalf("EditTitle() = %v, %v", found, err)
	}
	c, _ := repo.Todos()
	if c.Todos[0].Title != "Updated Task" {
		t.Errorf("title = %q, want Updated Task", c.Todos[0].Title)
	}
	if c.Todos[0].ID != "1234" {
		t.Errorf("id changed to %q", c.Todos[0].ID)
	}
	if mem.Writes[workPath] != 1 {
		t.Errorf("writes = %d, want 1", mem.Writes[workPath])
	}
}

func TestUpdateAppliesAllFields(t *testing.T) {
	repo, _, mem := newTestRepo(t, workConfig, sampleTodos)

	found, err := repo.Update("1234", func(t *Todo) {
		t.Title = "Updated Title"
		t.Done = true
	})
	if err != nil || !found {
		t.Fatalf("Update() = %v, %v", found, err)
	}
	c, _ := repo.Todos()
	if c.Todos[0].Title != "Updated Title" || !c.Todos[0].Done {
		t.Errorf("todo = %+v", c.Todos[0])
	}
	if mem.Writes[workPath] != 1 {
		t.Errorf("writes = %d, want 1", mem.Writes[workPath])
	}
}

func TestUpdateNotFound(t *testing.T) {
	for _, id := range []string{"9999", "", "234"} {
		t.Run(id, func(t *testing.T) {
			repo, _, mem := newTestRepo(t, workConfig, sampleTodos)

			called := false
			found, err := repo.Update(id, func(*Todo) { called = true })
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if found || called {
				t.Errorf("Update(%q) found = %v, called = %v; want false, false", id, found, called)
			}
			if mem.TotalWrites() != 0 {
				t.Errorf("writes = %d, want 0", mem.TotalWrites())
			}
		})
	}
}

func TestUpdateFirstPrefixMatchWins(t *testing.T) {
	repo, _, _ := newTestRepo(t, workConfig, `{"todos": [
		{"id": "12aa", "title": "first", "done": false},
		{"id": "12bb", "title": "second", "done": false}
	]}`)

	if _, err := repo.SetDone("12", true); err != nil {
		t.Fatal(err)
	}
	c, _ := repo.Todos()
	if !c.Todos[0].Done || c.Todos[1].Done {
		t.Errorf("only the first match should change: %+v", c.Todos)
	}
}

func TestRemove(t *testing.T) {
	repo, _, mem := newTestRepo(t, workConfig, sampleTodos)

	n, err := repo.Remove("1234")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Remove() = %d, want 1", n)
	}
	c, _ := repo.Todos()
	if c.Len() != 1 || c.Todos[0].ID != "5678" {
		t.Errorf("remaining = %+v, want only 5678", c.Todos)
	}
	if mem.Writes[workPath] != 1 {
		t.Errorf("writes = %d, want 1", mem.Writes[workPath])
	}
}

func TestRemoveNotFound(t *testing.T) {
	repo, _, mem := newTestRepo(t, workConfig, sampleTodos)

	n, err := repo.Remove("9999")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Remove() = %d, want 0", n)
	}
	if mem.TotalWrites() != 0 {
		t.Errorf("writes = %d, want 0", mem.TotalWrites())
	}
}

// Removal matches by prefix like every other operation. An id that only
// contains the argument somewhere after its first character is kept.
func TestRemoveUsesPrefixNotSubstring(t *testing.T) {
	repo, _, mem := newTestRepo(t, workConfig, `{"todos": [
		{"id": "ab12", "title": "contains", "done": false},
		{"id": "12cd", "title": "starts with", "done": false}
	]}`)

	n, err := repo.Remove("12")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("Remove(12) = %d, want 1", n)
	}
	c, _ := repo.Todos()
	if c.Len() != 1 || c.Todos[0].ID != "ab12" {
		t.Errorf("remaining = %+v, want only ab12", c.Todos)
	}

	n, err = repo.Remove("b12")
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("Remove(b12) = %d, want 0", n)
	}
	if mem.Writes[workPath] != 1 {
		t.Errorf("writes = %d, want 1", mem.Writes[workPath])
	}
}

func TestAdd(t *testing.T) {
	repo, _, mem := newTestRepo(t, workConfig, sampleTodos)

	todo, err := repo.Add("New Task", false)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if len(todo.ID) != IDLength {
		t.Errorf("id length = %d, want %d", len(todo.ID), IDLength)
	}
	c, _ := repo.Todos()
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if !reflect.DeepEqual(c.Todos[2], todo) {
		t.Errorf("last todo = %+v, want %+v", c.Todos[2], todo)
	}
	if mem.Writes[workPath] != 1 {
		t.Errorf("writes = %d, want 1", mem.Writes[workPath])
	}
}

func TestRoundTripAfterCacheReset(t *testing.T) {
	repo, st, _ := newTestRepo(t, workConfig, `{"todos": []}`)

	c := &Collection{}
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		c.Add(New(title, len(title)%2 == 0))
	}
	if err := repo.SaveTodos(c); err != nil {
		t.Fatalf("SaveTodos() error = %v", err)
	}

	st.Reset()
	loaded, err := repo.Todos()
	if err != nil {
		t.Fatalf("Todos() error = %v", err)
	}
	if !reflect.DeepEqual(loaded.Todos, c.Todos) {
		t.Errorf("reloaded = %+v\nwant %+v", loaded.Todos, c.Todos)
	}
}

func TestRepositoryErrors(t *testing.T) {
	t.Run("current space without file", func(t *testing.T) {
		repo, _, mem := newTestRepo(t, `{"current_space": "ghost", "spaces": ["work"]}`, sampleTodos)

		if _, err := repo.Todos(); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Todos() error = %v, want ErrNotFound", err)
		}
		if _, err := repo.SetDone("1234", true); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("SetDone() error = %v, want ErrNotFound", err)
		}
		if _, err := repo.Remove("1234"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Remove() error = %v, want ErrNotFound", err)
		}
		if mem.TotalWrites() != 0 {
			t.Errorf("writes = %d, want 0", mem.TotalWrites())
		}
	})

	t.Run("no current space", func(t *testing.T) {
		repo, _, _ := newTestRepo(t, `{"current_space": "", "spaces": []}`, "")
		if _, err := repo.Todos(); !errors.Is(err, ErrNoSpace) {
			t.Errorf("Todos() error = %v, want ErrNoSpace", err)
		}
		if err := repo.SaveTodos(&Collection{}); !errors.Is(err, ErrNoSpace) {
			t.Errorf("SaveTodos() error = %v, want ErrNoSpace", err)
		}
	})

	t.Run("current space has wrong type", func(t *testing.T) {
		repo, _, _ := newTestRepo(t, `{"current_space": ["a", "b"], "spaces": []}`, "")
		if _, err := repo.Todos(); !errors.Is(err, store.ErrTypeMismatch) {
			t.Errorf("Todos() error = %v, want ErrTypeMismatch", err)
		}
	})

	t.Run("missing global config", func(t *testing.T) {
		repo, _, _ := newTestRepo(t, "", sampleTodos)
		if _, err := repo.Todos(); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Todos() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid space file", func(t *testing.T) {
		repo, _, _ := newTestRepo(t, workConfig, "INVALID JSON")
		var pe *store.ParseError
		if _, err := repo.Todos(); !errors.As(err, &pe) {
			t.Errorf("Todos() error = %v, want *store.ParseError", err)
		}
	})
}

func TestPath(t *testing.T) {
	repo, _, _ := newTestRepo(t, workConfig, "")
	if got := repo.Path("home"); got != filepath.Join(testDataDir, "home_todo.json") {
		t.Errorf("Path(home) = %q", got)
	}
	space, path, err := repo.CurrentPath()
	if err != nil || space != "work" || path != workPath {
		t.Errorf("CurrentPath() = %q, %q, %v", space, path, err)
	}
}

func TestSpaceTodos(t *testing.T) {
	repo, _, mem := newTestRepo(t, workConfig, sampleTodos)
	mem.Put(filepath.Join(testDataDir, "personal_todo.json"), `{"todos": [{"id": "abcd", "title": "gym", "done": true}]}`)

	c, err := repo.SpaceTodos("personal")
	if err != nil {
		t.Fatalf("SpaceTodos() error = %v", err)
	}
	if c.Len() != 1 || c.Todos[0].Title != "gym" {
		t.Errorf("SpaceTodos(personal) = %+v", c.Todos)
	}
	if _, err := repo.SpaceTodos("ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("SpaceTodos(ghost) error = %v, want ErrNotFound", err)
	}
}
