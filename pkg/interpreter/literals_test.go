package interpreter

import (
	"strings"
	"testing"

	"iulia/interpreter-go/pkg/ast"
	"iulia/interpreter-go/pkg/runtime"
)

func evaluateLiteralValue(t *testing.T, literal *ast.Literal) (runtime.Value, error) {
	t.Helper()
	interp, _ := newTestInterpreter(t)
	return interp.evaluateExpression(literal)
}

func TestBooleanLiterals(t *testing.T) {
	value, err := evaluateLiteralValue(t, ast.Bool(true))
	if err != nil || value.Uint64() != 1 {
		t.Fatalf("true must evaluate to 1, got %v %v", value, err)
	}
	value, err = evaluateLiteralValue(t, ast.Bool(false))
	if err != nil || !value.IsZero() {
		t.Fatalf("false must evaluate to 0, got %v %v", value, err)
	}
}

func TestBooleanLiteralBadToken(t *testing.T) {
	_, err := evaluateLiteralValue(t, ast.NewLiteral(ast.LiteralBoolean, "yes"))
	expectFault(t, err, runtime.FaultMalformedLiteral)
}

func TestNumberLiterals(t *testing.T) {
	value, err := evaluateLiteralValue(t, ast.Num("42"))
	if err != nil || value.Uint64() != 42 {
		t.Fatalf("decimal literal failed: %v %v", value, err)
	}
	value, err = evaluateLiteralValue(t, ast.Num("0x2a"))
	if err != nil || value.Uint64() != 42 {
		t.Fatalf("hex literal failed: %v %v", value, err)
	}
}

func TestNumberLiteralMalformed(t *testing.T) {
	_, err := evaluateLiteralValue(t, ast.Num("4x2"))
	expectFault(t, err, runtime.FaultMalformedLiteral)
}

func TestStringLiteralPacking(t *testing.T) {
	value, err := evaluateLiteralValue(t, ast.Str("hi"))
	if err != nil {
		t.Fatalf("string literal failed: %v", err)
	}
	bytes := value.Bytes32()
	if bytes[0] != 'h' || bytes[1] != 'i' || bytes[2] != 0 {
		t.Fatalf("bad packing: %x", bytes)
	}
}

func TestStringLiteralBoundary(t *testing.T) {
	if _, err := evaluateLiteralValue(t, ast.Str(strings.Repeat("a", 32))); err != nil {
		t.Fatalf("32-byte string must pack: %v", err)
	}
	_, err := evaluateLiteralValue(t, ast.Str(strings.Repeat("a", 33)))
	expectFault(t, err, runtime.FaultMalformedLiteral)
}
