package model

import (
	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/types"
)

// Receiver is how a method takes self.
type Receiver int

const (
	RecvRef      Receiver = iota // &self
	RecvRefMut                   // &mut self
	RecvOwned                    // self
	RecvOwnedMut                 // mut self
)

func (r Receiver) String() string {
	switch r {
	case RecvRefMut:
		return "&mut self"
	case RecvOwned:
		return "self"
	case RecvOwnedMut:
		return "mut self"
	default:
		return "&self"
	}
}

// Arg is one method argument.
type Arg struct {
	Name string
	Type *types.Type
}

// Arm is one arm of a match body. Body is an expression, or a statement when
// the enclosing match is a statement.
type Arm struct {
	Patterns []string
	Body     string
}

// Match is a match body over the receiver.
type Match struct {
	Scrutinee string
	Arms      []Arm
	// Fallback, when non-empty, is the body of a trailing catch-all arm.
	Fallback string
	// Stmt marks a match whose arms are statements; Tail is then evaluated
	// after it.
	Stmt bool
	Tail string
}

// Body is either a single expression or a match.
type Body struct {
	// Stmts run before Expr.
	Stmts []string
	Expr  string
	Match *Match
}

// MethodSpec is one synthesized accessor.
type MethodSpec struct {
	Kind       config.Kind
	Name       string
	Visibility string
	Receiver   Receiver
	Args       []Arg
	// Return is nil for methods returning nothing.
	Return  *types.Type
	Body    Body
	Doc     string
	MustUse bool
	// Member is the member or case the method was synthesized for.
	Member string
}
