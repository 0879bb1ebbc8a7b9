// Package cmd implements the CLI command structure for todoforge.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todoforge/internal/config"
	"github.com/nibzard/todoforge/internal/logging"
	"github.com/nibzard/todoforge/internal/space"
	"github.com/nibzard/todoforge/internal/store"
	"github.com/nibzard/todoforge/internal/todo"
)

// Version is set via ldflags at build time.
var Version = "dev"

// stdin is read by interactive commands.
var stdin io.Reader = os.Stdin

// app carries the services shared by subcommands.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	store  *store.Store
	todos  *todo.Repository
	spaces *space.Service
}

func newApp(cfg *config.Config, logger *log.Logger) *app {
	st := store.New(cfg.ConfigPath(), store.WithLogger(logger))
	return &app{
		cfg:    cfg,
		logger: logger,
		store:  st,
		todos:  todo.NewRepository(st, cfg.DataDir, logger),
		spaces: space.NewService(st, cfg.DataDir, logger),
	}
}

// Run executes the todoforge CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todoforge", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, os.Stdout)
		return nil
	}
	subcommand, remainingArgs := remainingArgs[0], remainingArgs[1:]

	logger := logging.NewFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)
	if !logging.ValidLevel(cfg.LogLevel) {
		logger.Warn("unknown log level, using warn", "level", cfg.LogLevel)
	}
	if !logging.ValidFormat(cfg.LogFormat) {
		logger.Warn("unknown log format, using text", "format", cfg.LogFormat)
	}
	logger.Debug("settings loaded", "config_dir", cfg.ConfigDir, "data_dir", cfg.DataDir, "files", cfg.Files)

	a := newApp(cfg, logger)

	switch subcommand {
	case "ls", "list":
		return a.lsCommand(remainingArgs)
	case "add":
		return a.addCommand(remainingArgs)
	case "done":
		return a.doneCommand(remainingArgs, true)
	case "undo":
		return a.doneCommand(remainingArgs, false)
	case "edit":
		return a.editCommand(ctx, remainingArgs)
	case "remove", "rm":
		return a.removeCommand(remainingArgs)
	case "toggle":
		return a.toggleCommand(ctx, remainingArgs)
	case "spaces", "space":
		return a.spacesCommand(remainingArgs)
	case "export":
		return a.exportCommand(remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "init":
		return a.initCommand(remainingArgs)
	case "completion":
		return completionCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// initCommand creates the config directory and the global document.
func (a *app) initCommand(args []string) error {
	fs := flag.NewFlagSet("todoforge init", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	created, err := a.spaces.Init()
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}
	if created {
		fmt.Printf("Initialized todoforge in %s\n", a.cfg.ConfigDir)
		fmt.Println("Create your first space with 'todoforge spaces add <name>'")
		return nil
	}
	fmt.Printf("Already initialized: %s\n", a.store.ConfigPath())
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("todoforge version %s\n", Version)
	return nil
}

// friendlyError adds a hint to errors a new user is likely to hit.
func friendlyError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w (run 'todoforge init' first)", err)
	}
	return err
}

// singleArg returns the only positional argument of fs.
func singleArg(fs *flag.FlagSet, name string) (string, error) {
	switch fs.NArg() {
	case 0:
		return "", fmt.Errorf("missing %s", name)
	case 1:
		return fs.Arg(0), nil
	default:
		return "", fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todoforge - Manage todos organized in spaces")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todoforge [options] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  ls [-f] [-match glob]     Show todos in the current space")
	fmt.Fprintln(w, "  add [-done] <title>       Add a todo")
	fmt.Fprintln(w, "  done <id>                 Mark a todo as done")
	fmt.Fprintln(w, "  undo <id>                 Mark a todo as not done")
	fmt.Fprintln(w, "  edit [-title t] <id>      Edit the title of a todo")
	fmt.Fprintln(w, "  remove <id>               Remove todos whose id starts with <id>")
	fmt.Fprintln(w, "  toggle [id]               Toggle todos interactively, or one by id")
	fmt.Fprintln(w, "  spaces <command>          Manage spaces (ls|add|switch|rename|remove)")
	fmt.Fprintln(w, "  export [-format f]        Print the current space as json or yaml")
	fmt.Fprintln(w, "  doctor                    Check settings, config and space files")
	fmt.Fprintln(w, "  init                      Create the config directory")
	fmt.Fprintln(w, "  completion <shell>        Print shell completion (bash|zsh|fish)")
	fmt.Fprintln(w, "  version                   Show version information")
	fmt.Fprintln(w, "  help                      Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ids may be abbreviated to any unique prefix.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  "+strings.Join([]string{
		"TODOFORGE_CONFIG_DIR",
		"TODOFORGE_DATA_DIR",
		"TODOFORGE_LOG_LEVEL",
		"TODOFORGE_LOG_FORMAT",
		"TODOFORGE_LOG_TIMESTAMPS",
		"TODOFORGE_SHORT_ID",
	}, "\n  "))
}
