package driver

import (
	"fmt"

	json "github.com/goccy/go-json"

	"iulia/interpreter-go/pkg/ast"
)

// DecodeProgram decodes a JSON program fixture into its root block. The
// fixture format mirrors the AST one-to-one: every node is an object with
// a "type" discriminator.
func DecodeProgram(data []byte) (*ast.Block, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	statement, err := decodeStatement(root)
	if err != nil {
		return nil, err
	}
	block, ok := statement.(*ast.Block)
	if !ok {
		return nil, fmt.Errorf("fixture: root node is %s, want Block", statement.NodeType())
	}
	return block, nil
}

func decodeStatement(node map[string]any) (ast.Statement, error) {
	typ, _ := node["type"].(string)
	switch ast.NodeType(typ) {
	case ast.NodeBlock:
		return decodeBlock(node)
	case ast.NodeExpressionStatement:
		expr, err := decodeExpressionField(node, "expression")
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr), nil
	case ast.NodeAssignment:
		names, err := decodeIdentifierList(node, "variableNames")
		if err != nil {
			return nil, err
		}
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		return ast.NewAssignment(names, value), nil
	case ast.NodeVariableDeclaration:
		names, err := decodeIdentifierList(node, "variables")
		if err != nil {
			return nil, err
		}
		var value ast.Expression
		if _, present := node["value"]; present {
			decoded, err := decodeExpressionField(node, "value")
			if err != nil {
				return nil, err
			}
			value = decoded
		}
		return ast.NewVariableDeclaration(names, value), nil
	case ast.NodeIf:
		condition, err := decodeExpressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewIf(condition, body), nil
	case ast.NodeSwitch:
		expression, err := decodeExpressionField(node, "expression")
		if err != nil {
			return nil, err
		}
		rawCases, _ := node["cases"].([]any)
		cases := make([]*ast.Case, 0, len(rawCases))
		for _, raw := range rawCases {
			caseNode, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("fixture: invalid case node %T", raw)
			}
			c, err := decodeCase(caseNode)
			if err != nil {
				return nil, err
			}
			cases = append(cases, c)
		}
		return ast.NewSwitch(expression, cases), nil
	case ast.NodeFunctionDefinition:
		return decodeFunctionDefinition(node)
	case ast.NodeForLoop:
		pre, err := decodeBlockField(node, "pre")
		if err != nil {
			return nil, err
		}
		condition, err := decodeExpressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		post, err := decodeBlockField(node, "post")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewForLoop(pre, condition, post, body), nil
	default:
		return nil, fmt.Errorf("fixture: unknown statement type %q", typ)
	}
}

func decodeExpression(node map[string]any) (ast.Expression, error) {
	typ, _ := node["type"].(string)
	switch ast.NodeType(typ) {
	case ast.NodeLiteral:
		return decodeLiteral(node)
	case ast.NodeIdentifier:
		return decodeIdentifier(node)
	case ast.NodeFunctionalInstruction:
		instruction, _ := node["instruction"].(string)
		if instruction == "" {
			return nil, fmt.Errorf("fixture: functional instruction missing name")
		}
		arguments, err := decodeArguments(node)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionalInstruction(instruction, arguments), nil
	case ast.NodeFunctionCall:
		nameNode, ok := node["functionName"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fixture: function call missing functionName")
		}
		name, err := decodeIdentifier(nameNode)
		if err != nil {
			return nil, err
		}
		arguments, err := decodeArguments(node)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionCall(name, arguments), nil
	default:
		return nil, fmt.Errorf("fixture: unknown expression type %q", typ)
	}
}

func decodeFunctionDefinition(node map[string]any) (*ast.FunctionDefinition, error) {
	name, _ := node["name"].(string)
	if name == "" {
		return nil, fmt.Errorf("fixture: function definition missing name")
	}
	parameters, err := decodeIdentifierList(node, "parameters")
	if err != nil {
		return nil, err
	}
	returnVariables, err := decodeIdentifierList(node, "returnVariables")
	if err != nil {
		return nil, err
	}
	body, err := decodeBlockField(node, "body")
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDefinition(name, parameters, returnVariables, body), nil
}

func decodeCase(node map[string]any) (*ast.Case, error) {
	var value *ast.Literal
	if rawValue, ok := node["value"].(map[string]any); ok {
		literal, err := decodeLiteral(rawValue)
		if err != nil {
			return nil, err
		}
		value = literal
	}
	body, err := decodeBlockField(node, "body")
	if err != nil {
		return nil, err
	}
	return ast.NewCase(value, body), nil
}

func decodeLiteral(node map[string]any) (*ast.Literal, error) {
	kind, _ := node["kind"].(string)
	value, _ := node["value"].(string)
	switch ast.LiteralKind(kind) {
	case ast.LiteralBoolean, ast.LiteralNumber, ast.LiteralString:
		return ast.NewLiteral(ast.LiteralKind(kind), value), nil
	default:
		return nil, fmt.Errorf("fixture: unknown literal kind %q", kind)
	}
}

func decodeIdentifier(node map[string]any) (*ast.Identifier, error) {
	name, _ := node["name"].(string)
	if name == "" {
		return nil, fmt.Errorf("fixture: identifier missing name")
	}
	return ast.NewIdentifier(name), nil
}

func decodeIdentifierList(node map[string]any, key string) ([]*ast.Identifier, error) {
	raw, _ := node[key].([]any)
	out := make([]*ast.Identifier, 0, len(raw))
	for _, entry := range raw {
		identNode, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fixture: invalid identifier in %q: %T", key, entry)
		}
		ident, err := decodeIdentifier(identNode)
		if err != nil {
			return nil, err
		}
		out = append(out, ident)
	}
	return out, nil
}

func decodeArguments(node map[string]any) ([]ast.Expression, error) {
	raw, _ := node["arguments"].([]any)
	out := make([]ast.Expression, 0, len(raw))
	for _, entry := range raw {
		exprNode, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fixture: invalid argument node %T", entry)
		}
		expr, err := decodeExpression(exprNode)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeExpressionField(node map[string]any, key string) (ast.Expression, error) {
	raw, ok := node[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fixture: missing %q node", key)
	}
	return decodeExpression(raw)
}

func decodeBlockField(node map[string]any, key string) (*ast.Block, error) {
	raw, ok := node[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fixture: missing %q block", key)
	}
	return decodeBlock(raw)
}

func decodeBlock(node map[string]any) (*ast.Block, error) {
	raw, _ := node["statements"].([]any)
	statements := make([]ast.Statement, 0, len(raw))
	for _, entry := range raw {
		statementNode, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fixture: invalid statement node %T", entry)
		}
		statement, err := decodeStatement(statementNode)
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
	}
	return ast.NewBlock(statements), nil
}
