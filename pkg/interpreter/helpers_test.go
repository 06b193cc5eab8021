package interpreter

import (
	"fmt"
	"testing"

	"iulia/interpreter-go/pkg/runtime"
)

// scriptEngine is a minimal instruction engine for interpreter tests: a
// few pure operations plus sstore, which records observable effects in
// execution order.
type scriptEngine struct {
	storage map[runtime.Value]runtime.Value
	effects []string
}

func newScriptEngine() *scriptEngine {
	return &scriptEngine{storage: make(map[runtime.Value]runtime.Value)}
}

func (e *scriptEngine) Eval(instruction string, args []runtime.Value) (runtime.Value, error) {
	switch instruction {
	case "add":
		var out runtime.Value
		out.Add(&args[0], &args[1])
		return out, nil
	case "sub":
		var out runtime.Value
		out.Sub(&args[0], &args[1])
		return out, nil
	case "mul":
		var out runtime.Value
		out.Mul(&args[0], &args[1])
		return out, nil
	case "lt":
		if args[0].Lt(&args[1]) {
			return runtime.NewValue(1), nil
		}
		return runtime.Value{}, nil
	case "gt":
		if args[0].Gt(&args[1]) {
			return runtime.NewValue(1), nil
		}
		return runtime.Value{}, nil
	case "sstore":
		e.storage[args[0]] = args[1]
		e.effects = append(e.effects, fmt.Sprintf("sstore(%s, %s)", args[0].Dec(), args[1].Dec()))
		return runtime.Value{}, nil
	default:
		return runtime.Value{}, fmt.Errorf("script engine: unknown instruction %q", instruction)
	}
}

func (e *scriptEngine) storageAt(slot uint64) runtime.Value {
	return e.storage[runtime.NewValue(slot)]
}

func newTestInterpreter(t *testing.T) (*Interpreter, *scriptEngine) {
	t.Helper()
	engine := newScriptEngine()
	interp, err := New(Config{Engine: engine})
	if err != nil {
		t.Fatalf("new interpreter: %v", err)
	}
	return interp, engine
}

func expectFault(t *testing.T, err error, kind runtime.FaultKind) {
	t.Helper()
	got, ok := runtime.FaultKindOf(err)
	if !ok || got != kind {
		t.Fatalf("expected %s fault, got %v", kind, err)
	}
}
