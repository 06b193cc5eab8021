package driver

import (
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"iulia/interpreter-go/pkg/interpreter"
	"iulia/interpreter-go/pkg/machine"
	"iulia/interpreter-go/pkg/runtime"
)

// Report is the outcome of one manifest run.
type Report struct {
	Name       string
	Passed     bool
	Mismatches []string
}

// RunManifest executes a manifest's program against the reference engine
// and compares the machine state with the manifest's expectations.
func RunManifest(logger zerolog.Logger, path string) (*Report, error) {
	manifest, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(manifest.ProgramPath())
	if err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	program, err := DecodeProgram(data)
	if err != nil {
		return nil, err
	}

	state := machine.NewState()
	if manifest.CallData != "" {
		callData, err := decodeHexBytes(manifest.CallData)
		if err != nil {
			return nil, fmt.Errorf("runner: calldata: %w", err)
		}
		state.SetCallData(callData)
	}
	engine := machine.NewEngine(state)
	interp, err := interpreter.New(interpreter.Config{
		Engine:       engine,
		MaxCallDepth: manifest.MaxCallDepth,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("manifest", manifest.Name).Msg("running program")
	runErr := interp.Run(program)

	report := &Report{Name: manifest.Name}
	if manifest.Expect.Fault != "" {
		report.Mismatches = compareFault(manifest.Expect.Fault, runErr)
	} else if runErr != nil {
		report.Mismatches = []string{fmt.Sprintf("unexpected error: %v", runErr)}
	} else {
		report.Mismatches = compareState(manifest.Expect, state)
	}
	report.Passed = len(report.Mismatches) == 0

	event := logger.Info()
	if !report.Passed {
		event = logger.Error().Strs("mismatches", report.Mismatches)
	}
	event.Str("manifest", manifest.Name).Bool("passed", report.Passed).Msg("manifest finished")
	return report, nil
}

// RunDir runs every .yaml manifest under dir, in path order.
func RunDir(logger zerolog.Logger, dir string) ([]*Report, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && (strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	sort.Strings(paths)

	reports := make([]*Report, 0, len(paths))
	for _, path := range paths {
		report, err := RunManifest(logger, path)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func compareFault(expected string, runErr error) []string {
	kind, ok := runtime.FaultKindOf(runErr)
	switch {
	case runErr == nil:
		return []string{fmt.Sprintf("expected fault %s, run succeeded", expected)}
	case !ok:
		return []string{fmt.Sprintf("expected fault %s, got error: %v", expected, runErr)}
	case string(kind) != expected:
		return []string{fmt.Sprintf("expected fault %s, got %s", expected, kind)}
	}
	return nil
}

func compareState(expect Expectations, state *machine.State) []string {
	var mismatches []string

	expected := make(map[runtime.Value]runtime.Value, len(expect.Storage))
	for keyText, valueText := range expect.Storage {
		key, ok := runtime.ParseNumberValue(keyText)
		if !ok {
			mismatches = append(mismatches, fmt.Sprintf("bad storage key %q", keyText))
			continue
		}
		value, ok := runtime.ParseNumberValue(valueText)
		if !ok {
			mismatches = append(mismatches, fmt.Sprintf("bad storage value %q", valueText))
			continue
		}
		expected[key] = value
	}
	actual := state.Storage()
	for key, want := range expected {
		got := actual[key]
		if !got.Eq(&want) {
			mismatches = append(mismatches, fmt.Sprintf("storage[%s] = %s, want %s", key.Hex(), got.Hex(), want.Hex()))
		}
	}
	for key, got := range actual {
		if _, ok := expected[key]; !ok {
			mismatches = append(mismatches, fmt.Sprintf("unexpected storage write %s = %s", key.Hex(), got.Hex()))
		}
	}
	sort.Strings(mismatches)

	if expect.Trace != nil {
		trace := state.Trace()
		if len(trace) != len(expect.Trace) {
			mismatches = append(mismatches, fmt.Sprintf("trace has %d entries, want %d", len(trace), len(expect.Trace)))
		} else {
			for idx, want := range expect.Trace {
				if trace[idx] != want {
					mismatches = append(mismatches, fmt.Sprintf("trace[%d] = %q, want %q", idx, trace[idx], want))
				}
			}
		}
	}
	return mismatches
}

func decodeHexBytes(text string) ([]byte, error) {
	trimmed := strings.TrimPrefix(text, "0x")
	return hex.DecodeString(trimmed)
}
