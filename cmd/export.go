package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/todoforge/internal/store"
	"github.com/nibzard/todoforge/internal/todo"
)

// exportCommand prints a space collection as JSON or YAML.
func (a *app) exportCommand(args []string) error {
	fs := flag.NewFlagSet("todoforge export", flag.ContinueOnError)
	format := fs.String("format", "json", "Output format (json|yaml)")
	spaceName := fs.String("space", "", "Space to export (default: current space)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	var (
		c   *todo.Collection
		err error
	)
	if *spaceName != "" {
		c, err = a.todos.SpaceTodos(*spaceName)
	} else {
		c, err = a.todos.Todos()
	}
	if err != nil {
		return friendlyError(err)
	}

	data, err := encodeCollection(c, *format)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// encodeCollection renders c in the named format.
func encodeCollection(c *todo.Collection, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return store.Encode(c.Document())
	case "yaml", "yml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (expected json|yaml)", format)
	}
}
