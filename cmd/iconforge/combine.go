package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"

	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/icomoon"
)

// runCombine merges the IcoMoon selection files of one directory into a
// single array of icon entries.
func runCombine(args []string) error {
	fs := flag.NewFlagSet("combine", flag.ExitOnError)
	output := fs.String("o", "output.data.json", "Output file")
	merge := fs.String("merge", "", "Existing data file whose entries are kept ahead of the new icons")
	workers := fs.Int("j", 0, "Files read in parallel (0 = GOMAXPROCS)")
	quiet := fs.Bool("q", false, "Hide the progress bar")
	verbose := fs.Bool("v", false, "Verbose output")

	dirs, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	setupLogging(*verbose)
	if len(dirs) != 1 {
		return fmt.Errorf("combine takes exactly one input directory")
	}

	files, err := icomoon.Files(dirs[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .json files in %s", dirs[0])
	}

	opts := icomoon.Options{Workers: *workers}
	if !*quiet {
		bar := progressbar.Default(int64(len(files)), "combining")
		opts.Progress = func(string) { _ = bar.Add(1) }
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := icomoon.Combine(ctx, dirs[0], opts)
	if err != nil {
		return err
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(os.Stderr, "skipped %s: %v\n", s.File, s.Err)
	}

	records := res.Records
	if *merge != "" {
		base, err := catalog.Load(*merge)
		if err != nil {
			return err
		}
		records = mergeRecords(base, res.Records)
	}

	if err := icomoon.Write(*output, records); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	fmt.Printf("Wrote %d icons from %d file(s) to %s\n", len(res.Records), res.Files-len(res.Skipped), *output)
	return nil
}

// mergeRecords appends the icons whose names base does not already define.
func mergeRecords(base *catalog.Catalog, icons []catalog.Record) []catalog.Record {
	out := base.Records()
	for _, r := range icons {
		if _, ok := base.Lookup(r.Name); ok {
			continue
		}
		out = append(out, r)
	}
	return out
}
