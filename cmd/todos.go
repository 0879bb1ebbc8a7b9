package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gobwas/glob"

	"github.com/nibzard/todoforge/internal/todo"
	"github.com/nibzard/todoforge/internal/ui"
	"github.com/nibzard/todoforge/internal/utils"
)

// lsCommand shows the todos of the current space, pending first.
func (a *app) lsCommand(args []string) error {
	fs := flag.NewFlagSet("todoforge ls", flag.ContinueOnError)
	fullID := fs.Bool("f", false, "Show full ids")
	fs.BoolVar(fullID, "full-id", false, "Show full ids")
	match := fs.String("match", "", "Only show titles matching these comma-separated glob patterns")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	matcher, err := compileMatchers(*match)
	if err != nil {
		return err
	}

	space, _, err := a.todos.CurrentPath()
	if err != nil {
		return friendlyError(err)
	}
	c, err := a.todos.Todos()
	if err != nil {
		return friendlyError(err)
	}

	shown := make([]todo.Todo, 0, c.Len())
	for _, t := range c.Sorted() {
		if matcher(t.Title) {
			shown = append(shown, t)
		}
	}

	fmt.Print(ui.RenderTodos(shown, ui.TableOptions{
		FullID:        *fullID,
		ShortIDLength: a.cfg.ShortIDLength,
	}))
	if c.Len() == 0 {
		fmt.Println(ui.EmptyHint)
		return nil
	}
	fmt.Println(ui.RenderSummary(space, c))
	return nil
}

// compileMatchers builds a title filter from comma-separated glob patterns.
// An empty list matches every title.
func compileMatchers(patterns string) (func(string) bool, error) {
	var globs []glob.Glob
	for _, p := range utils.SplitAndTrim(patterns, ",") {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return func(title string) bool {
		if len(globs) == 0 {
			return true
		}
		for _, g := range globs {
			if g.Match(title) {
				return true
			}
		}
		return false
	}, nil
}

// addCommand appends a todo to the current space.
func (a *app) addCommand(args []string) error {
	fs := flag.NewFlagSet("todoforge add", flag.ContinueOnError)
	done := fs.Bool("done", false, "Add the todo as completed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		return fmt.Errorf("missing todo title")
	}

	t, err := a.todos.Add(title, *done)
	if err != nil {
		return friendlyError(err)
	}
	a.logger.Info("todo added", "id", t.ID)
	fmt.Println("Task added successfully")
	return nil
}

// doneCommand sets the done flag of one todo.
func (a *app) doneCommand(args []string, done bool) error {
	name := "todoforge done"
	if !done {
		name = "todoforge undo"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := singleArg(fs, "todo id")
	if err != nil {
		return err
	}

	found, err := a.todos.SetDone(id, done)
	if err != nil {
		return friendlyError(err)
	}
	if !found {
		printNotFound(id)
		return nil
	}
	fmt.Println("Updated.")
	return nil
}

// editCommand replaces the title of one todo.
func (a *app) editCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todoforge edit", flag.ContinueOnError)
	title := fs.String("title", "", "New title (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := singleArg(fs, "todo id")
	if err != nil {
		return err
	}

	newTitle := strings.TrimSpace(*title)
	if newTitle == "" {
		c, err := a.todos.Todos()
		if err != nil {
			return friendlyError(err)
		}
		current := c.Find(id)
		if current == nil {
			printNotFound(id)
			return nil
		}

		const label = "Edit todo title to"
		if ui.IsInteractive(stdin, os.Stdout) {
			value, ok, err := ui.Prompt(ctx, label, current.Title, stdin, os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Edit cancelled.")
				return nil
			}
			newTitle = value
		} else {
			newTitle, err = ui.ReadLine(stdin, os.Stdout, label)
			if err != nil {
				return err
			}
			fmt.Println()
		}
		if newTitle == "" {
			return fmt.Errorf("title cannot be empty")
		}
	}

	found, err := a.todos.EditTitle(id, newTitle)
	if err != nil {
		return friendlyError(err)
	}
	if !found {
		printNotFound(id)
		return nil
	}
	fmt.Println("Todo title edited.")
	return nil
}

// removeCommand drops every todo whose id starts with the argument.
func (a *app) removeCommand(args []string) error {
	fs := flag.NewFlagSet("todoforge remove", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := singleArg(fs, "todo id")
	if err != nil {
		return err
	}

	removed, err := a.todos.Remove(id)
	if err != nil {
		return friendlyError(err)
	}
	if removed == 0 {
		printNotFound(id)
		return nil
	}
	a.logger.Info("todos removed", "prefix", id, "count", removed)
	fmt.Printf("Todo with id %s has been removed.\n", id)
	return nil
}

// toggleCommand flips done flags, through the picker or for a single id.
func (a *app) toggleCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todoforge toggle", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() > 0 {
		id, err := singleArg(fs, "todo id")
		if err != nil {
			return err
		}
		found, err := a.todos.Toggle(id)
		if err != nil {
			return friendlyError(err)
		}
		if !found {
			printNotFound(id)
			return nil
		}
		fmt.Println("Updated.")
		return nil
	}

	c, err := a.todos.Todos()
	if err != nil {
		return friendlyError(err)
	}
	if c.Len() == 0 {
		fmt.Println(ui.EmptyHint)
		return nil
	}
	if !ui.IsInteractive(stdin, os.Stdout) {
		return fmt.Errorf("toggle needs a terminal, use 'todoforge toggle <id>' instead")
	}

	edited, saved, err := ui.RunPicker(ctx, c.Todos, a.cfg.ShortIDLength, stdin, os.Stdout)
	if err != nil {
		return err
	}
	if !saved {
		fmt.Println("No changes saved.")
		return nil
	}
	c.Todos = edited
	if err := a.todos.SaveTodos(c); err != nil {
		return err
	}
	fmt.Println("Updated.")
	return nil
}

func printNotFound(id string) {
	fmt.Printf("Id '%s' not found.\n", id)
}
