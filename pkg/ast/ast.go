package ast

type NodeType string

const (
	NodeLiteral               NodeType = "Literal"
	NodeIdentifier            NodeType = "Identifier"
	NodeFunctionalInstruction NodeType = "FunctionalInstruction"
	NodeFunctionCall          NodeType = "FunctionCall"
	NodeExpressionStatement   NodeType = "ExpressionStatement"
	NodeAssignment            NodeType = "Assignment"
	NodeVariableDeclaration   NodeType = "VariableDeclaration"
	NodeIf                    NodeType = "If"
	NodeSwitch                NodeType = "Switch"
	NodeCase                  NodeType = "Case"
	NodeFunctionDefinition    NodeType = "FunctionDefinition"
	NodeForLoop               NodeType = "ForLoop"
	NodeBlock                 NodeType = "Block"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Expressions

type LiteralKind string

const (
	LiteralBoolean LiteralKind = "bool"
	LiteralNumber  LiteralKind = "number"
	LiteralString  LiteralKind = "string"
)

// Literal carries its source token verbatim; interpretation (boolean
// mapping, number parsing, string packing) happens at evaluation time.
type Literal struct {
	nodeImpl
	expressionMarker

	Kind  LiteralKind `json:"kind"`
	Value string      `json:"value"`
}

func NewLiteral(kind LiteralKind, value string) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Kind: kind, Value: value}
}

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// FunctionalInstruction applies a primitive machine instruction to its
// arguments.
type FunctionalInstruction struct {
	nodeImpl
	expressionMarker

	Instruction string       `json:"instruction"`
	Arguments   []Expression `json:"arguments"`
}

func NewFunctionalInstruction(instruction string, arguments []Expression) *FunctionalInstruction {
	return &FunctionalInstruction{
		nodeImpl:    newNodeImpl(NodeFunctionalInstruction),
		Instruction: instruction,
		Arguments:   arguments,
	}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker

	FunctionName *Identifier  `json:"functionName"`
	Arguments    []Expression `json:"arguments"`
}

func NewFunctionCall(functionName *Identifier, arguments []Expression) *FunctionCall {
	return &FunctionCall{
		nodeImpl:     newNodeImpl(NodeFunctionCall),
		FunctionName: functionName,
		Arguments:    arguments,
	}
}

// Statements

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expression Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expression}
}

type Assignment struct {
	nodeImpl
	statementMarker

	VariableNames []*Identifier `json:"variableNames"`
	Value         Expression    `json:"value"`
}

func NewAssignment(variableNames []*Identifier, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), VariableNames: variableNames, Value: value}
}

// VariableDeclaration introduces one or more names; Value is nil when the
// declaration has no initializer (names start at zero).
type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Variables []*Identifier `json:"variables"`
	Value     Expression    `json:"value,omitempty"`
}

func NewVariableDeclaration(variables []*Identifier, value Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Variables: variables, Value: value}
}

type If struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      *Block     `json:"body"`
}

func NewIf(condition Expression, body *Block) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Condition: condition, Body: body}
}

// Case is one arm of a Switch. A nil Value marks the default case, which
// must come last.
type Case struct {
	nodeImpl

	Value *Literal `json:"value,omitempty"`
	Body  *Block   `json:"body"`
}

func NewCase(value *Literal, body *Block) *Case {
	return &Case{nodeImpl: newNodeImpl(NodeCase), Value: value, Body: body}
}

type Switch struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
	Cases      []*Case    `json:"cases"`
}

func NewSwitch(expression Expression, cases []*Case) *Switch {
	return &Switch{nodeImpl: newNodeImpl(NodeSwitch), Expression: expression, Cases: cases}
}

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	Name            string        `json:"name"`
	Parameters      []*Identifier `json:"parameters"`
	ReturnVariables []*Identifier `json:"returnVariables"`
	Body            *Block        `json:"body"`
}

func NewFunctionDefinition(name string, parameters, returnVariables []*Identifier, body *Block) *FunctionDefinition {
	return &FunctionDefinition{
		nodeImpl:        newNodeImpl(NodeFunctionDefinition),
		Name:            name,
		Parameters:      parameters,
		ReturnVariables: returnVariables,
		Body:            body,
	}
}

type ForLoop struct {
	nodeImpl
	statementMarker

	Pre       *Block     `json:"pre"`
	Condition Expression `json:"condition"`
	Post      *Block     `json:"post"`
	Body      *Block     `json:"body"`
}

func NewForLoop(pre *Block, condition Expression, post, body *Block) *ForLoop {
	return &ForLoop{
		nodeImpl:  newNodeImpl(NodeForLoop),
		Pre:       pre,
		Condition: condition,
		Post:      post,
		Body:      body,
	}
}

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}
