// Package main is the single-binary entrypoint for DuckTyper.
// DuckTyper is a local-first gamified learning tracker — one binary, one
// JSON file, zero accounts.
package main

import "github.com/quackverse/ducktyper/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
