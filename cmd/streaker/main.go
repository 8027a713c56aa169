// Package main is the entrypoint for the streaker server and its maintenance
// commands.
package main

import "github.com/saulo-duarte/streaker/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
