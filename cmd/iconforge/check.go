package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/lint"
	"github.com/grindlemire/iconforge/internal/textdoc"
)

// runCheck implements the check subcommand. It reports unknown classes and
// repeated single-valued categories inside class attributes.
func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to iconforge.data.json")
	verbose := fs.Bool("v", false, "Verbose output")
	strict := fs.Bool("strict", false, "Fail on hints as well as warnings")

	paths, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	setupLogging(*verbose)

	// Default to current directory if no paths specified
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg, err := loadConfig(*dataPath)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	files, err := collectFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no markup files found")
	}

	if *verbose {
		fmt.Printf("Checking %d file(s) against %d classes\n", len(files), cat.Len())
	}

	var problems int
	for _, path := range files {
		n, err := checkFile(path, cat, *strict)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			problems++
			continue
		}
		problems += n
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	if *verbose {
		fmt.Printf("All %d file(s) passed checks\n", len(files))
	}
	return nil
}

// checkFile prints the findings for one file and returns how many count as
// failures.
func checkFile(path string, cat *catalog.Catalog, strict bool) (int, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}
	doc := &textdoc.Document{URI: path, Text: string(source)}

	failures := 0
	for _, f := range lint.Check(doc.Text, cat) {
		pos := doc.PositionAt(f.Span.Start)
		fmt.Printf("%s:%d:%d: %s: %s [%s]\n", path, pos.Line+1, pos.Character+1, f.Severity, f.Message, f.Code)
		if f.Severity <= lint.SeverityWarning || strict {
			failures++
		}
	}
	return failures, nil
}
