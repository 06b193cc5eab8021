// Package interpreter walks an IULIA AST directly: statements dispatch by
// node type, expressions evaluate to one or more 256-bit values, and
// user-function calls spawn fresh activations that share the primitive
// instruction engine but none of the caller's variables.
package interpreter
