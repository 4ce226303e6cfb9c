package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grindlemire/iconforge/internal/gallery"
	"github.com/grindlemire/iconforge/internal/preview"
)

// runGallery renders an HTML page previewing every icon, color and utility.
func runGallery(args []string) error {
	fs := flag.NewFlagSet("gallery", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to iconforge.data.json")
	output := fs.String("o", "gallery.html", "Output file")
	title := fs.String("title", "IconForge Gallery", "Page title")
	markdown := fs.Bool("md", false, "Write Markdown instead of HTML")
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

	opts := preview.Options{Size: cfg.PreviewSize, Padding: cfg.PreviewPadding}
	var page []byte
	if *markdown {
		page = []byte(gallery.Markdown(cat, opts, *title))
	} else {
		page, err = gallery.Render(cat, opts, *title)
		if err != nil {
			return fmt.Errorf("rendering: %w", err)
		}
	}

	if err := os.WriteFile(*output, page, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	fmt.Printf("Wrote %s (%d classes)\n", *output, cat.Len())
	return nil
}
