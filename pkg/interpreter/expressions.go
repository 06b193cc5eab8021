package interpreter

import (
	"fmt"

	"iulia/interpreter-go/pkg/ast"
	"iulia/interpreter-go/pkg/runtime"
)

// evaluateExpression computes an expression in a single-value context.
func (i *Interpreter) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	values, err := i.evaluateMulti(node)
	if err != nil {
		return runtime.Value{}, err
	}
	if len(values) != 1 {
		return runtime.Value{}, runtime.NewArityMismatchFault("expression", 1, len(values))
	}
	return values[0], nil
}

// evaluateMulti computes an expression in a multi-value context
// (assignment and declaration right-hand sides, expression statements).
func (i *Interpreter) evaluateMulti(node ast.Expression) ([]runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		value, err := i.evaluateLiteral(n)
		if err != nil {
			return nil, err
		}
		return []runtime.Value{value}, nil
	case *ast.Identifier:
		value, err := i.env.Value(n.Name)
		if err != nil {
			return nil, err
		}
		return []runtime.Value{value}, nil
	case *ast.FunctionalInstruction:
		value, err := i.evaluateInstruction(n)
		if err != nil {
			return nil, err
		}
		return []runtime.Value{value}, nil
	case *ast.FunctionCall:
		return i.evaluateCall(n)
	default:
		return nil, fmt.Errorf("interpreter: unsupported expression type %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateLiteral(node *ast.Literal) (runtime.Value, error) {
	switch node.Kind {
	case ast.LiteralBoolean:
		switch node.Value {
		case "true":
			return runtime.NewValue(1), nil
		case "false":
			return runtime.NewValue(0), nil
		default:
			return runtime.Value{}, runtime.NewMalformedLiteralFault(fmt.Sprintf("boolean token %q", node.Value))
		}
	case ast.LiteralNumber:
		value, ok := runtime.ParseNumberValue(node.Value)
		if !ok {
			return runtime.Value{}, runtime.NewMalformedLiteralFault(fmt.Sprintf("number token %q", node.Value))
		}
		return value, nil
	case ast.LiteralString:
		value, ok := runtime.PackStringValue(node.Value)
		if !ok {
			return runtime.Value{}, runtime.NewMalformedLiteralFault(fmt.Sprintf("string literal of %d bytes", len(node.Value)))
		}
		return value, nil
	default:
		return runtime.Value{}, runtime.NewMalformedLiteralFault(fmt.Sprintf("literal kind %q", node.Kind))
	}
}

func (i *Interpreter) evaluateInstruction(node *ast.FunctionalInstruction) (runtime.Value, error) {
	arguments, err := i.evaluateArgs(node.Arguments)
	if err != nil {
		return runtime.Value{}, err
	}
	// The instruction might return nothing; the zero value slot it
	// yields in that case is still usable.
	return i.engine.Eval(node.Instruction, arguments)
}

func (i *Interpreter) evaluateCall(node *ast.FunctionCall) ([]runtime.Value, error) {
	def, err := i.env.Function(node.FunctionName.Name)
	if err != nil {
		return nil, err
	}
	arguments, err := i.evaluateArgs(node.Arguments)
	if err != nil {
		return nil, err
	}
	if len(arguments) != len(def.Parameters) {
		return nil, runtime.NewArityMismatchFault(def.Name, len(def.Parameters), len(arguments))
	}
	if i.maxCallDepth > 0 && i.depth >= i.maxCallDepth {
		return nil, runtime.NewCallDepthExceededFault(i.maxCallDepth)
	}

	bindings := make(map[string]runtime.Value, len(def.Parameters)+len(def.ReturnVariables))
	for idx, parameter := range def.Parameters {
		bindings[parameter.Name] = arguments[idx]
	}
	for _, returnVariable := range def.ReturnVariables {
		bindings[returnVariable.Name] = runtime.Value{}
	}

	activation := &Interpreter{
		engine:       i.engine,
		env:          runtime.NewEnvironment(bindings, i.env.FunctionsSnapshot()),
		maxCallDepth: i.maxCallDepth,
		depth:        i.depth + 1,
	}
	if err := activation.evaluateBlock(def.Body); err != nil {
		return nil, err
	}

	results := make([]runtime.Value, 0, len(def.ReturnVariables))
	for _, returnVariable := range def.ReturnVariables {
		value, err := activation.env.Value(returnVariable.Name)
		if err != nil {
			return nil, err
		}
		results = append(results, value)
	}
	return results, nil
}

// evaluateArgs evaluates an argument list rightmost-first, then restores
// source order before delivery. The reversed evaluation order is an
// observable contract whenever arguments have side effects.
func (i *Interpreter) evaluateArgs(expressions []ast.Expression) ([]runtime.Value, error) {
	values := make([]runtime.Value, len(expressions))
	for idx := len(expressions) - 1; idx >= 0; idx-- {
		value, err := i.evaluateExpression(expressions[idx])
		if err != nil {
			return nil, err
		}
		values[idx] = value
	}
	return values, nil
}
