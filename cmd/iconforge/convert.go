package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/cssconv"
)

// runConvert turns a stylesheet into catalog entries, or catalog JSON into a
// stylesheet. With --auto a JSON input is converted to CSS and parsed back.
func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	outDir := fs.String("o", "output", "Output directory")
	auto := fs.Bool("auto", false, "JSON input: also parse the generated CSS back into entries")
	verbose := fs.Bool("v", false, "Verbose output")

	inputs, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	setupLogging(*verbose)
	if len(inputs) != 1 {
		return fmt.Errorf("convert takes exactly one input file")
	}
	input := inputs[0]

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	switch strings.ToLower(filepath.Ext(input)) {
	case ".css":
		return writeRecords(filepath.Join(*outDir, "output.json"), cssconv.ParseCSS(string(data)))
	case ".json":
		if !*auto {
			css, err := cssconv.ToCSS(data)
			if err != nil {
				return err
			}
			return writeCSS(filepath.Join(*outDir, "output.css"), css)
		}
		css, records, err := cssconv.RoundTrip(data)
		if err != nil {
			return err
		}
		if err := writeCSS(filepath.Join(*outDir, "output.css"), css); err != nil {
			return err
		}
		return writeRecords(filepath.Join(*outDir, "output.json"), records)
	default:
		return fmt.Errorf("unsupported input %s: expected .css or .json", input)
	}
}

func writeCSS(path, css string) error {
	if err := os.WriteFile(path, []byte(css), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func writeRecords(path string, records []catalog.Record) error {
	if records == nil {
		records = []catalog.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Wrote %d entries to %s\n", len(records), path)
	return nil
}
