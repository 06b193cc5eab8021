package runtime

import (
	"errors"
	"fmt"
)

// FaultKind classifies interpreter invariant violations. Every fault is
// fatal: it indicates a bug in an upstream producer, never user input.
type FaultKind string

const (
	FaultUndefinedName           FaultKind = "UndefinedName"
	FaultUndefinedFunction       FaultKind = "UndefinedFunction"
	FaultArityMismatch           FaultKind = "ArityMismatch"
	FaultDuplicateDeclaration    FaultKind = "DuplicateDeclaration"
	FaultMalformedLiteral        FaultKind = "MalformedLiteral"
	FaultMissingCondition        FaultKind = "MissingCondition"
	FaultInvalidDefaultPlacement FaultKind = "InvalidDefaultPlacement"
	FaultCallDepthExceeded       FaultKind = "CallDepthExceeded"
	FaultScopeCorrupted          FaultKind = "ScopeCorrupted"
)

// Fault is the uniform internal-error signal. It carries the kind plus the
// minimal context needed to locate the upstream bug.
type Fault struct {
	Kind     FaultKind
	Name     string
	Expected int
	Actual   int
	Detail   string
}

func (f *Fault) Error() string {
	msg := fmt.Sprintf("interpreter fault %s", f.Kind)
	if f.Name != "" {
		msg += fmt.Sprintf(": %q", f.Name)
	}
	if f.Expected != 0 || f.Actual != 0 {
		msg += fmt.Sprintf(" (expected %d, got %d)", f.Expected, f.Actual)
	}
	if f.Detail != "" {
		msg += ": " + f.Detail
	}
	return msg
}

// FaultKindOf extracts the fault kind from an error chain, when present.
func FaultKindOf(err error) (FaultKind, bool) {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault.Kind, true
	}
	return "", false
}

func NewUndefinedNameFault(name string) *Fault {
	return &Fault{Kind: FaultUndefinedName, Name: name}
}

func NewUndefinedFunctionFault(name string) *Fault {
	return &Fault{Kind: FaultUndefinedFunction, Name: name}
}

func NewArityMismatchFault(name string, expected, actual int) *Fault {
	return &Fault{Kind: FaultArityMismatch, Name: name, Expected: expected, Actual: actual}
}

func NewDuplicateDeclarationFault(name string) *Fault {
	return &Fault{Kind: FaultDuplicateDeclaration, Name: name}
}

func NewMalformedLiteralFault(detail string) *Fault {
	return &Fault{Kind: FaultMalformedLiteral, Detail: detail}
}

func NewMissingConditionFault(construct string) *Fault {
	return &Fault{Kind: FaultMissingCondition, Detail: construct}
}

func NewInvalidDefaultPlacementFault() *Fault {
	return &Fault{Kind: FaultInvalidDefaultPlacement}
}

func NewCallDepthExceededFault(limit int) *Fault {
	return &Fault{Kind: FaultCallDepthExceeded, Expected: limit, Actual: limit + 1}
}

func NewScopeCorruptedFault(name string) *Fault {
	return &Fault{Kind: FaultScopeCorrupted, Name: name}
}
