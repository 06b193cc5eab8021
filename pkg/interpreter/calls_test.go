package interpreter

import (
	"reflect"
	"testing"

	"iulia/interpreter-go/pkg/ast"
	"iulia/interpreter-go/pkg/runtime"
)

func TestCallReturnsZeroInitializedVariables(t *testing.T) {
	interp, engine := newTestInterpreter(t)
	program := ast.Blk(
		ast.FnDef("pair", ast.IDs("a", "b"), ast.IDs("r1", "r2")),
		ast.Declare(ast.Call("pair", ast.Int(4), ast.Int(5)), "x", "y"),
		ast.ExprStmt(ast.Instr("sstore", ast.Int(0), ast.ID("x"))),
		ast.ExprStmt(ast.Instr("sstore", ast.Int(1), ast.ID("y"))),
	)
	if err := interp.Run(program); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	slot0, slot1 := engine.storageAt(0), engine.storageAt(1)
	if !slot0.IsZero() || !slot1.IsZero() {
		t.Fatalf("untouched return variables must be zero")
	}
}

func TestCallComputesSum(t *testing.T) {
	interp, engine := newTestInterpreter(t)
	program := ast.Blk(
		ast.FnDef("sum", ast.IDs("a", "b"), ast.IDs("r"),
			ast.Assign(ast.Instr("add", ast.ID("a"), ast.ID("b")), "r"),
		),
		ast.Declare(ast.Call("sum", ast.Int(2), ast.Int(3)), "s"),
		ast.ExprStmt(ast.Instr("sstore", ast.Int(0), ast.ID("s"))),
	)
	if err := interp.Run(program); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := engine.storageAt(0); got.Uint64() != 5 {
		t.Fatalf("sum(2,3) = %s, want 5", got.Dec())
	}
}

func TestRecursiveFactorial(t *testing.T) {
	interp, engine := newTestInterpreter(t)
	program := ast.Blk(
		ast.FnDef("fact", ast.IDs("n"), ast.IDs("r"),
			ast.Assign(ast.Int(1), "r"),
			ast.IfStmt(ast.Instr("gt", ast.ID("n"), ast.Int(1)),
				ast.Assign(
					ast.Instr("mul", ast.ID("n"),
						ast.Call("fact", ast.Instr("sub", ast.ID("n"), ast.Int(1)))),
					"r",
				),
			),
		),
		ast.Declare(ast.Call("fact", ast.Int(5)), "x"),
		ast.ExprStmt(ast.Instr("sstore", ast.Int(0), ast.ID("x"))),
	)
	if err := interp.Run(program); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := engine.storageAt(0); got.Uint64() != 120 {
		t.Fatalf("fact(5) = %s, want 120", got.Dec())
	}
}

func TestMutualRecursionWithForwardReference(t *testing.T) {
	interp, engine := newTestInterpreter(t)
	// isEven calls isOdd, which is defined later in the same block; the
	// header pass makes both visible before either runs.
	program := ast.Blk(
		ast.FnDef("isEven", ast.IDs("n"), ast.IDs("r"),
			ast.Assign(ast.Int(1), "r"),
			ast.IfStmt(ast.ID("n"),
				ast.Assign(ast.Call("isOdd", ast.Instr("sub", ast.ID("n"), ast.Int(1))), "r"),
			),
		),
		ast.FnDef("isOdd", ast.IDs("n"), ast.IDs("r"),
			ast.IfStmt(ast.ID("n"),
				ast.Assign(ast.Call("isEven", ast.Instr("sub", ast.ID("n"), ast.Int(1))), "r"),
			),
		),
		ast.Declare(ast.Call("isEven", ast.Int(4)), "x"),
		ast.ExprStmt(ast.Instr("sstore", ast.Int(0), ast.ID("x"))),
	)
	if err := interp.Run(program); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := engine.storageAt(0); got.Uint64() != 1 {
		t.Fatalf("isEven(4) = %s, want 1", got.Dec())
	}
}

func TestFunctionsAreLexicallyScoped(t *testing.T) {
	interp, _ := newTestInterpreter(t)
	program := ast.Blk(
		ast.Blk(ast.FnDef("g", nil, ast.IDs("r"))),
		ast.Declare(ast.Call("g"), "x"),
	)
	expectFault(t, interp.Run(program), runtime.FaultUndefinedFunction)
}

func TestCallUndefinedFunction(t *testing.T) {
	interp, _ := newTestInterpreter(t)
	program := ast.Blk(ast.Declare(ast.Call("missing"), "x"))
	expectFault(t, interp.Run(program), runtime.FaultUndefinedFunction)
}

func TestCallArityMismatch(t *testing.T) {
	interp, _ := newTestInterpreter(t)
	program := ast.Blk(
		ast.FnDef("one", ast.IDs("a"), ast.IDs("r")),
		ast.Declare(ast.Call("one", ast.Int(1), ast.Int(2)), "x"),
	)
	expectFault(t, interp.Run(program), runtime.FaultArityMismatch)
}

func TestCalleeDoesNotSeeCallerVariables(t *testing.T) {
	interp, _ := newTestInterpreter(t)
	program := ast.Blk(
		ast.FnDef("peek", nil, ast.IDs("r"),
			ast.Assign(ast.ID("secret"), "r"),
		),
		ast.Declare(ast.Int(42), "secret"),
		ast.Declare(ast.Call("peek"), "x"),
	)
	expectFault(t, interp.Run(program), runtime.FaultUndefinedName)
}

func TestArgumentsEvaluateRightToLeftDeliverLeftToRight(t *testing.T) {
	interp, engine := newTestInterpreter(t)
	// eff stores into its slot and passes its value through, so the
	// trace shows evaluation order while the sum shows delivery order.
	program := ast.Blk(
		ast.FnDef("eff", ast.IDs("slot", "v"), ast.IDs("r"),
			ast.ExprStmt(ast.Instr("sstore", ast.ID("slot"), ast.ID("v"))),
			ast.Assign(ast.ID("v"), "r"),
		),
		ast.FnDef("first", ast.IDs("a", "b"), ast.IDs("r"),
			ast.Assign(ast.ID("a"), "r"),
		),
		ast.Declare(
			ast.Call("first",
				ast.Call("eff", ast.Int(0), ast.Int(10)),
				ast.Call("eff", ast.Int(1), ast.Int(20)),
			),
			"x",
		),
		ast.ExprStmt(ast.Instr("sstore", ast.Int(2), ast.ID("x"))),
	)
	if err := interp.Run(program); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := []string{
		"sstore(1, 20)",
		"sstore(0, 10)",
		"sstore(2, 10)",
	}
	if !reflect.DeepEqual(engine.effects, want) {
		t.Fatalf("effect order %v, want %v", engine.effects, want)
	}
}

func TestInstructionArgumentsAlsoEvaluateRightToLeft(t *testing.T) {
	interp, engine := newTestInterpreter(t)
	program := ast.Blk(
		ast.FnDef("eff", ast.IDs("slot", "v"), ast.IDs("r"),
			ast.ExprStmt(ast.Instr("sstore", ast.ID("slot"), ast.ID("v"))),
			ast.Assign(ast.ID("v"), "r"),
		),
		ast.Declare(
			ast.Instr("add",
				ast.Call("eff", ast.Int(0), ast.Int(1)),
				ast.Call("eff", ast.Int(1), ast.Int(2)),
			),
			"x",
		),
		ast.ExprStmt(ast.Instr("sstore", ast.Int(2), ast.ID("x"))),
	)
	if err := interp.Run(program); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := []string{
		"sstore(1, 2)",
		"sstore(0, 1)",
		"sstore(2, 3)",
	}
	if !reflect.DeepEqual(engine.effects, want) {
		t.Fatalf("effect order %v, want %v", engine.effects, want)
	}
}

func TestCallDepthLimit(t *testing.T) {
	engine := newScriptEngine()
	interp, err := New(Config{Engine: engine, MaxCallDepth: 8})
	if err != nil {
		t.Fatalf("new interpreter: %v", err)
	}
	program := ast.Blk(
		ast.FnDef("spin", ast.IDs("n"), ast.IDs("r"),
			ast.Assign(ast.Call("spin", ast.ID("n")), "r"),
		),
		ast.Declare(ast.Call("spin", ast.Int(0)), "x"),
	)
	expectFault(t, interp.Run(program), runtime.FaultCallDepthExceeded)
}

func TestUnboundedDepthByDefaultStillTerminatesOnBoundedRecursion(t *testing.T) {
	interp, engine := newTestInterpreter(t)
	program := ast.Blk(
		ast.FnDef("count", ast.IDs("n"), ast.IDs("r"),
			ast.Assign(ast.ID("n"), "r"),
			ast.IfStmt(ast.Instr("lt", ast.ID("n"), ast.Int(100)),
				ast.Assign(ast.Call("count", ast.Instr("add", ast.ID("n"), ast.Int(1))), "r"),
			),
		),
		ast.Declare(ast.Call("count", ast.Int(0)), "x"),
		ast.ExprStmt(ast.Instr("sstore", ast.Int(0), ast.ID("x"))),
	)
	if err := interp.Run(program); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := engine.storageAt(0); got.Uint64() != 100 {
		t.Fatalf("count bottomed out at %s, want 100", got.Dec())
	}
}
