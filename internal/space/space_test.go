package space

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nibzard/todoforge/internal/appdir"
	"github.com/nibzard/todoforge/internal/store"
	"github.com/nibzard/todoforge/internal/store/storetest"
)

type fixture struct {
	svc        *Service
	store      *store.Store
	configPath string
	dataDir    string
}

func newFixture(t *testing.T, config string, spaceFiles ...string) *fixture {
	t.Helper()
	dir := t.TempDir()
	configPath := appdir.ConfigPath(dir)
	dataDir := appdir.DataPath(dir)

	if config != "" {
		if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if len(spaceFiles) > 0 {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range spaceFiles {
		if err := os.WriteFile(appdir.TodoPath(dataDir, name), []byte(`{"todos": []}`), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	st := store.New(configPath)
	return &fixture{
		svc:        NewService(st, dataDir, nil),
		store:      st,
		configPath: configPath,
		dataDir:    dataDir,
	}
}

// readConfig reads the global document straight from disk.
func (f *fixture) readConfig(t *testing.T) (string, []string) {
	t.Helper()
	data, err := os.ReadFile(f.configPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var doc struct {
		CurrentSpace string   `json:"current_space"`
		Spaces       []string `json:"spaces"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return doc.CurrentSpace, doc.Spaces
}

func modTime(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return info.ModTime().UnixNano()
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"work", false},
		{"Work2024", false},
		{"7", false},
		{"", true},
		{"?work", true},
		{"my-space", true},
		{"my space", true},
		{"../etc", true},
		{"päivä", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidName) {
				t.Errorf("error = %v, want ErrInvalidName", err)
			}
		})
	}
}

func TestInit(t *testing.T) {
	f := newFixture(t, "")

	created, err := f.svc.Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if !created {
		t.Error("Init() created = false, want true")
	}
	if info, err := os.Stat(f.dataDir); err != nil || !info.IsDir() {
		t.Errorf("data dir not created: %v", err)
	}
	current, spaces := f.readConfig(t)
	if current != "" || len(spaces) != 0 {
		t.Errorf("config = %q, %v; want empty", current, spaces)
	}

	created, err = f.svc.Init()
	if err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	if created {
		t.Error("second Init() must keep the existing document")
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t, "")
	if _, err := f.svc.Init(); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Create("work"); err != nil {
		t.Fatalf("Create(work) error = %v", err)
	}
	if err := f.svc.Create("personal"); err != nil {
		t.Fatalf("Create(personal) error = %v", err)
	}

	current, spaces := f.readConfig(t)
	if current != "work" {
		t.Errorf("current = %q, want work", current)
	}
	if !reflect.DeepEqual(spaces, []string{"work", "personal"}) {
		t.Errorf("spaces = %v", spaces)
	}
	data, err := os.ReadFile(f.svc.Path("personal"))
	if err != nil {
		t.Fatalf("space file: %v", err)
	}
	if string(data) != "{\n    \"todos\": []\n}\n" {
		t.Errorf("space file = %q", data)
	}
}

func TestCreateErrors(t *testing.T) {
	f := newFixture(t, `{"current_space": "work", "spaces": ["work"]}`, "work")

	if err := f.svc.Create("work"); !errors.Is(err, ErrExists) {
		t.Errorf("Create(work) error = %v, want ErrExists", err)
	}
	if err := f.svc.Create("?work"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Create(?work) error = %v, want ErrInvalidName", err)
	}
	if _, err := os.Stat(f.svc.Path("?work")); !os.IsNotExist(err) {
		t.Error("invalid space must not create a file")
	}
}

func TestCreateKeepsUnregisteredFile(t *testing.T) {
	f := newFixture(t, `{"current_space": "", "spaces": []}`)
	if err := os.MkdirAll(f.dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	home := f.svc.Path("home")
	content := `{"todos": [{"done": false, "id": "1", "title": "keep me"}]}`
	if err := os.WriteFile(home, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Create("home"); !errors.Is(err, ErrExists) {
		t.Fatalf("Create(home) error = %v, want ErrExists", err)
	}
	data, err := os.ReadFile(home)
	if err != nil || string(data) != content {
		t.Errorf("home file changed: %q, %v", data, err)
	}
	if _, spaces := f.readConfig(t); len(spaces) != 0 {
		t.Errorf("spaces = %v, want none registered", spaces)
	}
}

func TestCreateWithoutConfig(t *testing.T) {
	f := newFixture(t, "")
	if err := f.svc.Create("work"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Create() error = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	f := newFixture(t, `{"current_space": "personal", "spaces": ["work", "personal"]}`)

	spaces, current, err := f.svc.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if current != "personal" || !reflect.DeepEqual(spaces, []string{"work", "personal"}) {
		t.Errorf("List() = %v, %q", spaces, current)
	}
}

func TestSwitch(t *testing.T) {
	f := newFixture(t, `{"current_space": "personal", "spaces": ["work", "personal"]}`)

	if err := f.svc.Switch("work"); err != nil {
		t.Fatalf("Switch() error = %v", err)
	}
	current, spaces := f.readConfig(t)
	if current != "work" {
		t.Errorf("current = %q, want work", current)
	}
	if !reflect.DeepEqual(spaces, []string{"work", "personal"}) {
		t.Errorf("spaces = %v, want unchanged", spaces)
	}
}

func TestSwitchUnknownDoesNotWrite(t *testing.T) {
	f := newFixture(t, `{"current_space": "personal", "spaces": ["work", "personal"]}`)
	before := modTime(t, f.configPath)
	contents, _ := os.ReadFile(f.configPath)

	if err := f.svc.Switch("other"); !errors.Is(err, ErrUnknownSpace) {
		t.Fatalf("Switch(other) error = %v, want ErrUnknownSpace", err)
	}

	after, _ := os.ReadFile(f.configPath)
	if string(after) != string(contents) || modTime(t, f.configPath) != before {
		t.Error("config must not be written")
	}
}

func TestRename(t *testing.T) {
	f := newFixture(t, `{"current_space": "personal", "spaces": ["work", "personal"]}`, "work", "personal")

	// Warm the cache for the old path.
	if _, err := f.store.Get(f.svc.Path("personal")); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Rename("personal", "home"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	if _, err := os.Stat(f.svc.Path("home")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(f.svc.Path("personal")); !os.IsNotExist(err) {
		t.Error("old file still exists")
	}
	if f.store.Cached(f.svc.Path("personal")) {
		t.Error("old path still cached")
	}

	current, spaces := f.readConfig(t)
	if current != "home" {
		t.Errorf("current = %q, want home", current)
	}
	if !reflect.DeepEqual(spaces, []string{"work", "home"}) {
		t.Errorf("spaces = %v, want [work home]", spaces)
	}
}

func TestRenameNotCurrent(t *testing.T) {
	f := newFixture(t, `{"current_space": "personal", "spaces": ["work", "personal"]}`, "work", "personal")

	if err := f.svc.Rename("work", "office"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	current, spaces := f.readConfig(t)
	if current != "personal" {
		t.Errorf("current = %q, want personal", current)
	}
	if !reflect.DeepEqual(spaces, []string{"office", "personal"}) {
		t.Errorf("spaces = %v", spaces)
	}
}

func TestRenameErrors(t *testing.T) {
	f := newFixture(t, `{"current_space": "work", "spaces": ["work", "personal"]}`, "work", "personal")

	tests := []struct {
		name     string
		from, to string
		want     error
	}{
		{"unknown source", "ghost", "home", ErrUnknownSpace},
		{"target exists", "work", "personal", ErrExists},
		{"invalid target", "work", "my-work", ErrInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := f.svc.Rename(tt.from, tt.to); !errors.Is(err, tt.want) {
				t.Errorf("Rename(%q, %q) error = %v, want %v", tt.from, tt.to, err, tt.want)
			}
		})
	}

	if _, err := os.Stat(f.svc.Path("work")); err != nil {
		t.Errorf("work file must be untouched: %v", err)
	}
}

func TestRenameKeepsUnregisteredFile(t *testing.T) {
	f := newFixture(t, `{"current_space": "work", "spaces": ["work"]}`, "work", "old")
	old := f.svc.Path("old")
	content := `{"todos": [{"done": false, "id": "1", "title": "precious"}]}`
	if err := os.WriteFile(old, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Rename("work", "old"); !errors.Is(err, ErrExists) {
		t.Fatalf("Rename(work, old) error = %v, want ErrExists", err)
	}
	data, err := os.ReadFile(old)
	if err != nil || string(data) != content {
		t.Errorf("old file changed: %q, %v", data, err)
	}
	if _, err := os.Stat(f.svc.Path("work")); err != nil {
		t.Errorf("work file must stay: %v", err)
	}
	if current, spaces := f.readConfig(t); current != "work" || !reflect.DeepEqual(spaces, []string{"work"}) {
		t.Errorf("config = %q %v, want unchanged", current, spaces)
	}
}

func TestServiceUsesStoreFileSystem(t *testing.T) {
	mem := storetest.NewMemFS()
	mem.Put("/cfg/config.json", `{"current_space": "", "spaces": []}`)
	st := store.New("/cfg/config.json", store.WithFileSystem(mem))
	svc := NewService(st, "/data", nil)

	if err := svc.Create("work"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := svc.Rename("work", "home"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if _, ok := mem.Files[filepath.Join("/data", "home_todo.json")]; !ok {
		t.Fatalf("files = %v, want home_todo.json", mem.Paths())
	}
	if err := svc.Remove("home"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if got := mem.Paths(); !reflect.DeepEqual(got, []string{"/cfg/config.json"}) {
		t.Errorf("files = %v, want only config.json", got)
	}
}

func TestRemove(t *testing.T) {
	f := newFixture(t, `{"current_space": "personal", "spaces": ["work", "personal"]}`, "work", "personal")

	if err := f.svc.Remove("personal"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(f.svc.Path("personal")); !os.IsNotExist(err) {
		t.Error("space file still exists")
	}
	current, spaces := f.readConfig(t)
	if current != "work" {
		t.Errorf("current = %q, want work", current)
	}
	if !reflect.DeepEqual(spaces, []string{"work"}) {
		t.Errorf("spaces = %v, want [work]", spaces)
	}

	if err := f.svc.Remove("work"); err != nil {
		t.Fatalf("Remove(work) error = %v", err)
	}
	current, spaces = f.readConfig(t)
	if current != "" || len(spaces) != 0 {
		t.Errorf("config = %q, %v; want empty", current, spaces)
	}
}

func TestRemoveMissingFile(t *testing.T) {
	f := newFixture(t, `{"current_space": "work", "spaces": ["work"]}`, "work")
	before, _ := os.ReadFile(f.configPath)

	err := f.svc.Remove("personal")
	if !errors.Is(err, ErrMissingFile) {
		t.Fatalf("Remove() error = %v, want ErrMissingFile", err)
	}
	if want := `"personal_todo.json": space file does not exist`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	after, _ := os.ReadFile(f.configPath)
	if string(after) != string(before) {
		t.Error("config must not be written")
	}
	if _, err := os.Stat(filepath.Join(f.dataDir, "work_todo.json")); err != nil {
		t.Error("other space files must be untouched")
	}
}
