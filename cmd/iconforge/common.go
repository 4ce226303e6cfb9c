package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/config"
	"github.com/grindlemire/iconforge/internal/log"
)

// parseArgs parses flags that may appear before, between or after
// positional arguments and returns the positionals.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// loadConfig reads env and the .iconforge.yml of the working directory, then
// applies a --data override.
func loadConfig(dataFlag string) (config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(wd)
	if err != nil {
		return config.Config{}, err
	}
	if dataFlag != "" {
		cfg.DataPath = dataFlag
	}
	cfg.ResolveDataPath(wd)
	return cfg, cfg.Validate()
}

// setupLogging sends tool logs to stderr: warnings by default, info with -v.
func setupLogging(verbose bool) {
	level := "warn"
	if verbose {
		level = "info"
	}
	log.SetOutput(os.Stderr, level)
}

// loadCatalog loads the catalog named by cfg.
func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, nil
}

// markupExts are the file extensions check scans.
var markupExts = []string{".html", ".htm", ".vue", ".svelte", ".templ", ".js", ".jsx", ".ts", ".tsx"}

func isMarkup(path string) bool {
	return slices.Contains(markupExts, strings.ToLower(filepath.Ext(path)))
}

// collectFiles expands paths into markup files. "dir/..." walks recursively,
// a plain directory is read one level deep.
func collectFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		if strings.HasSuffix(path, "/...") {
			root := strings.TrimSuffix(path, "/...")
			if root == "" {
				root = "."
			}

			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					name := d.Name()
					if p != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
						return filepath.SkipDir
					}
					return nil
				}
				if isMarkup(p) {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("reading directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && isMarkup(entry.Name()) {
					files = append(files, filepath.Join(path, entry.Name()))
				}
			}
		} else {
			files = append(files, path)
		}
	}

	return files, nil
}
