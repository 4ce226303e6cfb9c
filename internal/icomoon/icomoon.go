// Package icomoon merges IcoMoon selection files into catalog icon entries.
package icomoon

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/classname"
	"github.com/grindlemire/iconforge/internal/log"
)

// Selection is the subset of an IcoMoon export read by the combiner. Icons
// may carry their tags and paths directly or under an "icon" object, as
// selection.json does.
type Selection struct {
	Height *float64 `json:"height"`
	Icons  []Icon   `json:"icons"`
}

// Icon is one glyph in a selection.
type Icon struct {
	Tags  []string `json:"tags"`
	Paths []string `json:"paths"`
	Icon  *struct {
		Tags  []string `json:"tags"`
		Paths []string `json:"paths"`
	} `json:"icon"`
}

func (i Icon) tagsAndPaths() ([]string, []string) {
	tags, paths := i.Tags, i.Paths
	if i.Icon != nil {
		if len(tags) == 0 {
			tags = i.Icon.Tags
		}
		if len(paths) == 0 {
			paths = i.Icon.Paths
		}
	}
	return tags, paths
}

// Records converts a selection to icon records named "if-" plus the first
// tag. Icons without tags or paths are skipped.
func (s Selection) Records() []catalog.Record {
	vb := float64(catalog.DefaultViewBox)
	if s.Height != nil && *s.Height > 0 {
		vb = *s.Height
	}

	var out []catalog.Record
	for _, icon := range s.Icons {
		tags, paths := icon.tagsAndPaths()
		if len(tags) == 0 || len(paths) == 0 {
			continue
		}
		out = append(out, catalog.Record{
			Name:    classname.IconPrefix + tags[0],
			Paths:   paths,
			ViewBox: &vb,
		})
	}
	return out
}

// Skipped is an input file that could not be used.
type Skipped struct {
	File string
	Err  error
}

// Result is the outcome of a combine run.
type Result struct {
	Records []catalog.Record
	Files   int
	Skipped []Skipped
}

// Options tunes Combine.
type Options struct {
	// Workers bounds concurrent file reads. Zero uses GOMAXPROCS.
	Workers int
	// Progress is called once per processed file.
	Progress func(file string)
}

// Files lists the .json files directly inside dir, sorted by name.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// Combine reads every selection file in dir and concatenates their icons in
// file-name order. Unreadable or malformed files are skipped with a warning.
func Combine(ctx context.Context, dir string, opts Options) (*Result, error) {
	files, err := Files(dir)
	if err != nil {
		return nil, err
	}

	perFile := make([][]catalog.Record, len(files))
	errs := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perFile[i], errs[i] = readSelection(file)
			if opts.Progress != nil {
				opts.Progress(file)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Files: len(files)}
	for i, file := range files {
		if errs[i] != nil {
			log.Warn("icomoon", "skipping file", "file", file, "error", errs[i])
			res.Skipped = append(res.Skipped, Skipped{File: file, Err: errs[i]})
			continue
		}
		res.Records = append(res.Records, perFile[i]...)
	}
	log.Tool("combined icons", "files", len(files), "icons", len(res.Records), "skipped", len(res.Skipped))
	return res, nil
}

func readSelection(path string) ([]catalog.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sel Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return sel.Records(), nil
}

// Write saves records as an indented JSON array, creating parent directories.
func Write(path string, records []catalog.Record) error {
	if records == nil {
		records = []catalog.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
