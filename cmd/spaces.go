package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/todoforge/internal/ui"
)

// spacesCommand dispatches the space subcommands.
func (a *app) spacesCommand(args []string) error {
	if len(args) == 0 {
		return a.spacesListCommand(nil)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "ls", "list":
		return a.spacesListCommand(rest)
	case "add", "create":
		return a.spacesAddCommand(rest)
	case "switch":
		return a.spacesSwitchCommand(rest)
	case "rename":
		return a.spacesRenameCommand(rest)
	case "remove", "rm":
		return a.spacesRemoveCommand(rest)
	default:
		printSpacesUsage()
		return fmt.Errorf("unknown spaces command: %s", sub)
	}
}

func (a *app) spacesListCommand(args []string) error {
	fs := flag.NewFlagSet("todoforge spaces ls", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	spaces, current, err := a.spaces.List()
	if err != nil {
		return friendlyError(err)
	}
	if len(spaces) == 0 {
		fmt.Println("No spaces yet. Create one with 'todoforge spaces add <name>'.")
		return nil
	}
	fmt.Print(ui.RenderSpaces(spaces, current))
	return nil
}

func (a *app) spacesAddCommand(args []string) error {
	fs := flag.NewFlagSet("todoforge spaces add", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	name, err := singleArg(fs, "space name")
	if err != nil {
		return err
	}

	if err := a.spaces.Create(name); err != nil {
		return friendlyError(err)
	}
	fmt.Printf("Space %s has been created successfully\n", name)
	return nil
}

func (a *app) spacesSwitchCommand(args []string) error {
	fs := flag.NewFlagSet("todoforge spaces switch", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	name, err := singleArg(fs, "space name")
	if err != nil {
		return err
	}

	if err := a.spaces.Switch(name); err != nil {
		return friendlyError(err)
	}
	fmt.Printf("Switched to '%s' space\n", name)
	return nil
}

func (a *app) spacesRenameCommand(args []string) error {
	fs := flag.NewFlagSet("todoforge spaces rename", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: todoforge spaces rename <old> <new>")
	}
	oldName, newName := fs.Arg(0), fs.Arg(1)

	if err := a.spaces.Rename(oldName, newName); err != nil {
		return friendlyError(err)
	}
	fmt.Printf("Space %s has been renamed to %s\n", oldName, newName)
	return nil
}

func (a *app) spacesRemoveCommand(args []string) error {
	fs := flag.NewFlagSet("todoforge spaces remove", flag.ContinueOnError)
	yes := fs.Bool("y", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	name, err := singleArg(fs, "space name")
	if err != nil {
		return err
	}

	if !*yes {
		ok, err := ui.Confirm(stdin, os.Stdout, fmt.Sprintf("Remove space '%s' and all of its todos?", name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := a.spaces.Remove(name); err != nil {
		return friendlyError(err)
	}
	fmt.Printf("Space '%s' has been removed\n", name)
	return nil
}

func printSpacesUsage() {
	fmt.Fprintln(os.Stderr, "Usage: todoforge spaces <command>")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  ls                   List spaces, * marks the current one")
	fmt.Fprintln(os.Stderr, "  add <name>           Create a space")
	fmt.Fprintln(os.Stderr, "  switch <name>        Make a space current")
	fmt.Fprintln(os.Stderr, "  rename <old> <new>   Rename a space")
	fmt.Fprintln(os.Stderr, "  remove [-y] <name>   Delete a space and its todos")
}
