package config

import (
	"flag"
)

// parseFlags defines and parses the global CLI flags.
// Only flags that are explicitly set are recorded as flag-sourced.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("todoforge", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.ConfigDir, "config-dir", cfg.ConfigDir, "Directory holding config.json and todoforge.toml")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding the <space>_todo.json files")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	names := map[string]string{
		"config-dir": "config_dir",
		"data-dir":   "data_dir",
		"log-level":  "log_level",
		"log-format": "log_format",
	}
	fs.Visit(func(f *flag.Flag) {
		if name, ok := names[f.Name]; ok {
			cfg.Sources[name] = SourceFlag
		}
	})

	return nil
}
