package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: iulia <command> [arguments]

Commands:
  run <manifest.yaml>     execute one test manifest and report the outcome
  check <dir>             run every manifest under a directory
  corpus <git-url> <dir>  clone or update a test-corpus repository
  version                 print the tool version

Options:
  -v, --verbose           enable debug logging (run/check)
`)
}
