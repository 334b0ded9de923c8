// Package main provides the entry point for the codegenius CLI.
//
// Codegenius scans a source tree, classifies files by language family,
// extracts a lexical dependency graph, and renders one markdown document
// with mermaid diagrams describing the codebase.
//
// Usage:
//
//	codegenius scan [directory...]
//	codegenius history
//
// See --help for all available options.
package main

// main is the entry point for codegenius.
func main() {
	Execute()
}
