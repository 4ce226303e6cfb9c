// Package main provides the iconforge CLI: the language server plus tooling
// for building and inspecting the class catalog.
//
// Usage:
//
//	iconforge lsp                     Start the language server on stdio
//	iconforge check [path...]         Report unknown classes in markup
//	iconforge combine <dir>           Merge IcoMoon exports into icon entries
//	iconforge convert <file>          Convert CSS to entries, or entries to CSS
//	iconforge generate -pkg p -o f    Generate Go constants for every class
//	iconforge gallery -o page.html    Render a preview page of the catalog
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

const usage = `iconforge - completion, previews and color markers for if-/is- utility classes

Usage:
  iconforge <command> [options] [args...]

Commands:
  lsp         Start the language server (for editor integration)
  check       Report unknown or repeated classes in class attributes
  combine     Merge IcoMoon selection files into catalog icon entries
  convert     Convert a stylesheet to catalog entries, or entries to CSS
  generate    Generate Go constants for every class in the catalog
  gallery     Render an HTML page previewing every class
  version     Print version information
  help        Show this help message

Common options:
  --data      Path to iconforge.data.json (env ICONFORGE_DATA)
  -v          Verbose output

Examples:
  iconforge lsp                              Start LSP server on stdio
  iconforge lsp --log /tmp/iconforge.log     Start with debug logging
  iconforge check ./web/...                  Check markup files recursively
  iconforge combine ./icomoon -o icons.json  Merge every selection.json in a directory
  iconforge combine ./icomoon -merge icons.json -o icons.json  Add new icons to an existing file
  iconforge convert utilities.css            Write output/output.json
  iconforge convert classes.json --auto      Write output/output.css, then re-parse it
  iconforge generate -pkg icons -o icons/classes_gen.go
  iconforge gallery -o gallery.html
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "lsp":
		err = runLSP(args)
	case "check":
		err = runCheck(args)
	case "combine":
		err = runCombine(args)
	case "convert":
		err = runConvert(args)
	case "generate":
		err = runGenerate(args)
	case "gallery":
		err = runGallery(args)
	case "version":
		fmt.Printf("iconforge version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
