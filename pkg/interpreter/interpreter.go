package interpreter

import (
	"fmt"

	"iulia/interpreter-go/pkg/ast"
	"iulia/interpreter-go/pkg/runtime"
)

// InstructionEngine executes one primitive instruction against the shared
// machine state it wraps. It must not retain the argument slice beyond
// the call. Instructions that produce no result return a zero value;
// unknown instruction names are the engine's error, not the core's.
type InstructionEngine interface {
	Eval(instruction string, arguments []runtime.Value) (runtime.Value, error)
}

// Config wires an interpreter run.
type Config struct {
	// Engine executes primitive instructions. Required.
	Engine InstructionEngine
	// Globals seeds the root activation's environment. Usually empty.
	Globals map[string]runtime.Value
	// MaxCallDepth bounds user-function nesting when positive; zero
	// leaves recursion unbounded, matching the original semantics.
	MaxCallDepth int
}

// Interpreter is one activation: an environment plus shared engine state.
// User-function calls spawn a fresh activation that shares the engine
// (and through it the machine state) and a snapshot of the function
// table, but none of the caller's variables.
type Interpreter struct {
	engine       InstructionEngine
	env          *runtime.Environment
	maxCallDepth int
	depth        int
}

func New(cfg Config) (*Interpreter, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("interpreter: instruction engine is required")
	}
	if cfg.MaxCallDepth < 0 {
		return nil, fmt.Errorf("interpreter: negative call depth limit %d", cfg.MaxCallDepth)
	}
	return &Interpreter{
		engine:       cfg.Engine,
		env:          runtime.NewEnvironment(cfg.Globals, nil),
		maxCallDepth: cfg.MaxCallDepth,
	}, nil
}

// Environment exposes the activation's bindings (used by tests and the
// driver to inspect results).
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// Run executes a root block to completion or to the first fault.
func (i *Interpreter) Run(block *ast.Block) error {
	if block == nil {
		return fmt.Errorf("interpreter: nil root block")
	}
	return i.evaluateBlock(block)
}

func (i *Interpreter) evaluateStatement(node ast.Statement) error {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		// Evaluated for effect only; all results are discarded.
		_, err := i.evaluateMulti(n.Expression)
		return err
	case *ast.Assignment:
		return i.evaluateAssignment(n)
	case *ast.VariableDeclaration:
		return i.evaluateVariableDeclaration(n)
	case *ast.If:
		return i.evaluateIf(n)
	case *ast.Switch:
		return i.evaluateSwitch(n)
	case *ast.FunctionDefinition:
		// Registration happened in the enclosing block's header pass.
		return nil
	case *ast.ForLoop:
		return i.evaluateForLoop(n)
	case *ast.Block:
		return i.evaluateBlock(n)
	default:
		return fmt.Errorf("interpreter: unsupported statement type %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateAssignment(node *ast.Assignment) error {
	values, err := i.evaluateMulti(node.Value)
	if err != nil {
		return err
	}
	if len(values) != len(node.VariableNames) {
		return runtime.NewArityMismatchFault("assignment", len(node.VariableNames), len(values))
	}
	for idx, target := range node.VariableNames {
		if err := i.env.SetValue(target.Name, values[idx]); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateVariableDeclaration(node *ast.VariableDeclaration) error {
	values := make([]runtime.Value, len(node.Variables))
	if node.Value != nil {
		evaluated, err := i.evaluateMulti(node.Value)
		if err != nil {
			return err
		}
		values = evaluated
	}
	if len(values) != len(node.Variables) {
		return runtime.NewArityMismatchFault("declaration", len(node.Variables), len(values))
	}
	for idx, variable := range node.Variables {
		if err := i.env.DeclareValue(variable.Name, values[idx]); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateIf(node *ast.If) error {
	if node.Condition == nil {
		return runtime.NewMissingConditionFault("if")
	}
	condition, err := i.evaluateExpression(node.Condition)
	if err != nil {
		return err
	}
	if condition.IsZero() {
		return nil
	}
	return i.evaluateBlock(node.Body)
}

func (i *Interpreter) evaluateSwitch(node *ast.Switch) error {
	for idx, c := range node.Cases {
		if c.Value == nil && idx != len(node.Cases)-1 {
			return runtime.NewInvalidDefaultPlacementFault()
		}
	}
	scrutinee, err := i.evaluateExpression(node.Expression)
	if err != nil {
		return err
	}
	// Case values are evaluated lazily, stopping at the first match.
	for _, c := range node.Cases {
		if c.Value != nil {
			value, err := i.evaluateExpression(c.Value)
			if err != nil {
				return err
			}
			if !value.Eq(&scrutinee) {
				continue
			}
		}
		return i.evaluateBlock(c.Body)
	}
	return nil
}

func (i *Interpreter) evaluateForLoop(node *ast.ForLoop) error {
	if node.Condition == nil {
		return runtime.NewMissingConditionFault("for")
	}
	// The pre scope stays open across every condition/body/post
	// evaluation; it is the only scope shared between iterations.
	i.env.OpenScope()
	err := i.runForLoop(node)
	if closeErr := i.env.CloseScope(); err == nil {
		err = closeErr
	}
	return err
}

func (i *Interpreter) runForLoop(node *ast.ForLoop) error {
	for _, statement := range node.Pre.Statements {
		if err := i.evaluateStatement(statement); err != nil {
			return err
		}
	}
	for {
		condition, err := i.evaluateExpression(node.Condition)
		if err != nil {
			return err
		}
		if condition.IsZero() {
			return nil
		}
		if err := i.evaluateBlock(node.Body); err != nil {
			return err
		}
		if err := i.evaluateBlock(node.Post); err != nil {
			return err
		}
	}
}

func (i *Interpreter) evaluateBlock(block *ast.Block) error {
	i.env.OpenScope()
	err := i.runBlock(block)
	if closeErr := i.env.CloseScope(); err == nil {
		err = closeErr
	}
	return err
}

func (i *Interpreter) runBlock(block *ast.Block) error {
	// Header pass: sibling functions are visible before any statement
	// runs, so forward references and mutual recursion work.
	for _, statement := range block.Statements {
		if def, ok := statement.(*ast.FunctionDefinition); ok {
			if err := i.env.DeclareFunction(def); err != nil {
				return err
			}
		}
	}
	for _, statement := range block.Statements {
		if err := i.evaluateStatement(statement); err != nil {
			return err
		}
	}
	return nil
}
