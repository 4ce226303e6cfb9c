package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grindlemire/iconforge/internal/codegen"
)

// runGenerate writes a Go file declaring a constant for every class.
func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to iconforge.data.json")
	pkg := fs.String("pkg", "classes", "Package name of the generated file")
	output := fs.String("o", "classes_gen.go", "Output file")
	verbose := fs.Bool("v", false, "Verbose output")

	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	setupLogging(*verbose)

	cfg, err := loadConfig(*dataPath)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	gen := codegen.NewGenerator(*pkg)
	gen.Source = filepath.Base(cfg.DataPath)
	src, err := gen.Generate(cat, *output)
	if err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	if dir := filepath.Dir(*output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(*output, src, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if *verbose {
		fmt.Printf("Generated %s (%d classes)\n", *output, cat.Len())
	}
	return nil
}
