package cmd

import (
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/nibzard/todoforge/internal/appdir"
	"github.com/nibzard/todoforge/internal/logging"
	"github.com/nibzard/todoforge/internal/schema"
	"github.com/nibzard/todoforge/internal/todo"
)

// doctorCommand checks settings, directories, the global document and
// every space file.
func (a *app) doctorCommand(args []string) error {
	fs := flag.NewFlagSet("todoforge doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("todoforge doctor")
	fmt.Println("================")
	fmt.Println()

	allOK := true

	// Settings
	fmt.Println("Settings:")
	if len(a.cfg.Files) == 0 {
		fmt.Println("  ✅ No settings file (using defaults)")
	}
	for _, f := range a.cfg.Files {
		fmt.Printf("  ✅ Loaded %s\n", f)
	}
	if logging.ValidLevel(a.cfg.LogLevel) {
		fmt.Printf("  ✅ Log level: %s (%s)\n", a.cfg.LogLevel, a.cfg.Source("log_level"))
	} else {
		fmt.Printf("  ❌ Log level: %s (expected debug|info|warn|error)\n", a.cfg.LogLevel)
		allOK = false
	}
	if logging.ValidFormat(a.cfg.LogFormat) {
		fmt.Printf("  ✅ Log format: %s (%s)\n", a.cfg.LogFormat, a.cfg.Source("log_format"))
	} else {
		fmt.Printf("  ❌ Log format: %s (expected text|json|logfmt)\n", a.cfg.LogFormat)
		allOK = false
	}
	fmt.Println()

	// Directories
	if !checkDir("Config directory", a.cfg.ConfigDir) {
		allOK = false
	}
	if !checkDir("Data directory", a.cfg.DataDir) {
		allOK = false
	}

	// Global document
	configPath := a.store.ConfigPath()
	fmt.Printf("Config file: %s\n", configPath)
	doc, err := a.store.SpaceConfig()
	if err != nil {
		fmt.Printf("  ❌ %v\n", err)
		fmt.Println()
		fmt.Println("⚠️  Some checks failed. Run 'todoforge init' to create the config file.")
		return fmt.Errorf("doctor checks failed")
	}
	result := schema.ValidateConfig(doc)
	if !printResult(result) {
		allOK = false
	}
	fmt.Println()

	// List errors are already reported by the schema check.
	spaces, current, err := a.spaces.List()
	if err != nil {
		allOK = false
	}

	// Space files
	for _, name := range spaces {
		path := a.todos.Path(name)
		label := name
		if name == current {
			label += " (current)"
		}
		fmt.Printf("Space %s: %s\n", label, path)
		if !a.checkSpace(name, *verbose) {
			allOK = false
		}
		fmt.Println()
	}

	// Files in the data directory that no space refers to
	if entries, err := os.ReadDir(a.cfg.DataDir); err == nil {
		for _, e := range entries {
			name, ok := appdir.SpaceFromFileName(e.Name())
			if !ok || e.IsDir() || slices.Contains(spaces, name) {
				continue
			}
			fmt.Printf("⚠️  %s is not registered as a space\n", e.Name())
		}
	}

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. todoforge may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

func (a *app) checkSpace(name string, verbose bool) bool {
	doc, err := a.store.Get(a.todos.Path(name))
	if err != nil {
		fmt.Printf("  ❌ %v\n", err)
		return false
	}
	ok := printResult(schema.ValidateTodos(doc))
	if !ok {
		return false
	}

	c, err := todo.FromDocument(doc)
	if err != nil {
		fmt.Printf("  ❌ %v\n", err)
		return false
	}
	pending, done := c.Counts()
	fmt.Printf("  Todos: %d pending, %d done\n", pending, done)
	if verbose {
		for _, t := range c.Sorted() {
			mark := " "
			if t.Done {
				mark = "x"
			}
			fmt.Printf("    - [%s] %s %s\n", mark, todo.ShortID(t.ID, a.cfg.ShortIDLength), t.Title)
		}
	}
	return true
}

func printResult(result *schema.ValidationResult) bool {
	for _, w := range result.Warnings {
		fmt.Printf("  ⚠️  %s\n", w)
	}
	if result.Valid {
		fmt.Println("  ✅ Valid")
		return true
	}
	fmt.Println("  ❌ Validation failed:")
	for _, e := range result.Errors {
		fmt.Printf("     - %v\n", e)
	}
	return false
}

func checkDir(label, path string) bool {
	fmt.Printf("%s: %s\n", label, path)
	defer fmt.Println()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ❌ Not found (run 'todoforge init')")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
		}
		return false
	}
	if !info.IsDir() {
		fmt.Println("  ❌ Error: path is not a directory")
		return false
	}
	fmt.Println("  ✅ OK")
	return true
}
