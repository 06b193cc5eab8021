package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"iulia/interpreter-go/pkg/driver"
)

const cliToolVersion = "iulia-cli 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runManifests(args[1:], false)
	case "check":
		return runManifests(args[1:], true)
	case "corpus":
		return runCorpus(args[1:])
	default:
		printUsage()
		return 1
	}
}

func runManifests(args []string, dirMode bool) int {
	logger, args := newLogger(args)
	if len(args) != 1 {
		printUsage()
		return 1
	}

	var reports []*driver.Report
	var err error
	if dirMode {
		reports, err = driver.RunDir(logger, args[0])
	} else {
		var report *driver.Report
		report, err = driver.RunManifest(logger, args[0])
		if report != nil {
			reports = append(reports, report)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	failed := 0
	for _, report := range reports {
		status := "ok"
		if !report.Passed {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(os.Stdout, "%-4s %s\n", status, report.Name)
		for _, mismatch := range report.Mismatches {
			fmt.Fprintf(os.Stdout, "     %s\n", mismatch)
		}
	}
	fmt.Fprintf(os.Stdout, "%d manifests, %d failed\n", len(reports), failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func newLogger(args []string) (zerolog.Logger, []string) {
	level := zerolog.InfoLevel
	rest := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--verbose" || arg == "-v" {
			level = zerolog.DebugLevel
			continue
		}
		rest = append(rest, arg)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	return logger, rest
}
