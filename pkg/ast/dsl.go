package ast

import "strconv"

// Terse constructors used by tests and fixtures.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func IDs(names ...string) []*Identifier {
	out := make([]*Identifier, len(names))
	for i, name := range names {
		out[i] = NewIdentifier(name)
	}
	return out
}

func Num(text string) *Literal {
	return NewLiteral(LiteralNumber, text)
}

func Int(value uint64) *Literal {
	return NewLiteral(LiteralNumber, strconv.FormatUint(value, 10))
}

func Bool(value bool) *Literal {
	if value {
		return NewLiteral(LiteralBoolean, "true")
	}
	return NewLiteral(LiteralBoolean, "false")
}

func Str(value string) *Literal {
	return NewLiteral(LiteralString, value)
}

func Instr(name string, args ...Expression) *FunctionalInstruction {
	return NewFunctionalInstruction(name, args)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

func ExprStmt(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Assign(value Expression, names ...string) *Assignment {
	return NewAssignment(IDs(names...), value)
}

func Declare(value Expression, names ...string) *VariableDeclaration {
	return NewVariableDeclaration(IDs(names...), value)
}

func DeclareZero(names ...string) *VariableDeclaration {
	return NewVariableDeclaration(IDs(names...), nil)
}

func IfStmt(condition Expression, body ...Statement) *If {
	return NewIf(condition, Blk(body...))
}

func CaseArm(value *Literal, body ...Statement) *Case {
	return NewCase(value, Blk(body...))
}

func DefaultArm(body ...Statement) *Case {
	return NewCase(nil, Blk(body...))
}

func SwitchStmt(expression Expression, cases ...*Case) *Switch {
	return NewSwitch(expression, cases)
}

func FnDef(name string, params, returns []*Identifier, body ...Statement) *FunctionDefinition {
	return NewFunctionDefinition(name, params, returns, Blk(body...))
}

func ForStmt(pre []Statement, condition Expression, post []Statement, body ...Statement) *ForLoop {
	return NewForLoop(Blk(pre...), condition, Blk(post...), Blk(body...))
}

func Blk(statements ...Statement) *Block {
	return NewBlock(statements)
}
