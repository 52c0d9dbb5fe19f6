// Package model defines the descriptors accgen consumes and the method
// specifications it produces. Descriptors are built once by the front-end and
// treated as immutable afterwards.
package model

import (
	"fmt"
	"strings"

	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/types"
)

// EntityKind distinguishes product types from sum types.
type EntityKind int

const (
	Struct EntityKind = iota
	Enum
)

func (k EntityKind) String() string {
	if k == Enum {
		return "enum"
	}
	return "struct"
}

// Shape is the member layout of a case.
type Shape int

const (
	ShapeStruct Shape = iota // Case { a: T }
	ShapeTuple               // Case(T)
	ShapeUnit                // Case
)

func (s Shape) String() string {
	switch s {
	case ShapeTuple:
		return "tuple"
	case ShapeUnit:
		return "unit"
	default:
		return "struct"
	}
}

// ParseShape maps a declaration value to its Shape.
func ParseShape(s string) (Shape, bool) {
	switch s {
	case "struct", "":
		return ShapeStruct, true
	case "tuple":
		return ShapeTuple, true
	case "unit":
		return ShapeUnit, true
	default:
		return 0, false
	}
}

// Field describes one member of a struct or of a case.
type Field struct {
	// Name is the declared name, or the external name assigned to a
	// positional member.
	Name string
	// Index is the position of a positional member, -1 otherwise.
	Index      int
	Type       *types.Type
	Doc        []string
	Directives config.MemberDirectives
}

// PositionalName is the external name given to an unnamed positional member.
func PositionalName(index int) string {
	return fmt.Sprintf("_%d", index)
}

// Positional reports whether the member is addressed by index.
func (f *Field) Positional() bool {
	return f.Index >= 0
}

// Access returns the member expression relative to recv, e.g. "self.count"
// or "self.0".
func (f *Field) Access(recv string) string {
	if f.Positional() {
		return fmt.Sprintf("%s.%d", recv, f.Index)
	}
	return recv + "." + f.Name
}

// BindingName is the name a member is addressed under: the member rename
// when present, its own name otherwise.
func (f *Field) BindingName() string {
	if f.Directives.Default.Rename != nil && *f.Directives.Default.Rename != "" {
		return *f.Directives.Default.Rename
	}
	return f.Name
}

// Case describes one case of a sum type.
type Case struct {
	Name       string
	Shape      Shape
	Fields     []*Field
	Doc        []string
	Directives config.CaseDirectives
}

// Excluded reports whether the case takes no part in field unification.
func (c *Case) Excluded() bool {
	return c.Directives.Skip
}

// Path returns the case path relative to Self.
func (c *Case) Path() string {
	return "Self::" + c.Name
}

// Entity is one declaration being processed.
type Entity struct {
	Name       string
	Kind       EntityKind
	Fields     []*Field
	Cases      []*Case
	Doc        []string
	Directives config.EntityDirectives
}

// String returns a short description for logs.
func (e *Entity) String() string {
	if e.Kind == Enum {
		names := make([]string, len(e.Cases))
		for i, c := range e.Cases {
			names[i] = c.Name
		}
		return fmt.Sprintf("enum %s {%s}", e.Name, strings.Join(names, ", "))
	}
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Name
	}
	return fmt.Sprintf("struct %s {%s}", e.Name, strings.Join(names, ", "))
}
