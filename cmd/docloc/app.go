package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/docloc/config"
)

// appContext carries the configuration shared by all subcommands.
type appContext struct {
	configPath string
	logLevel   string

	cfg *config.Config
}

// setup configures logging and loads the layered configuration.
func (a *appContext) setup() error {
	level := slog.LevelInfo
	switch strings.ToLower(a.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if a.configPath != "" {
		cfg, err := config.LoadFromFile(a.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.Project.Root == "" {
			cfg.Project.Root = filepath.Dir(a.configPath)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		a.cfg = cfg
		return nil
	}

	cfg, err := config.NewLoader(logger).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	return nil
}

// findCatalogs resolves the configured catalog globs against the
// project root. Explicit arguments bypass discovery.
func (a *appContext) findCatalogs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	seen := make(map[string]bool)
	var paths []string
	for _, glob := range a.cfg.Catalogs.Globs {
		matches, err := doublestar.FilepathGlob(filepath.Join(a.cfg.Project.Root, glob))
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", glob, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalogs matched %s under %s",
			strings.Join(a.cfg.Catalogs.Globs, ", "), a.cfg.Project.Root)
	}
	return paths, nil
}

// displayPath renders a catalog path relative to the project root.
func (a *appContext) displayPath(path string) string {
	if rel, err := filepath.Rel(a.cfg.Project.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
