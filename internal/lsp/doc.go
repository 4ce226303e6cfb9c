// Package lsp implements a Language Server Protocol server for IconForge
// utility classes.
//
// It provides completion, hover previews, document colors and unknown-class
// diagnostics inside class attributes, and pushes inline color markers to the
// client with the iconforge/decorations notification. The server
// communicates over stdio using JSON-RPC 2.0.
package lsp
