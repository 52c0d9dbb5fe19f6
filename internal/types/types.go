// Package types models the type expressions of the declarations accgen reads
// and the signatures it synthesizes.
package types

import (
	"strings"
)

// TypeKind defines the shape of a type expression.
type TypeKind int

// Constants for the different kinds of type expressions.
const (
	Invalid   TypeKind = iota
	Path               // a::b::C<Args>
	Ref                // &'a mut T
	Slice              // [T]
	Array              // [T; N]
	Tuple              // (A, B), () is the unit type
	Qualified          // <T as Trait>::Assoc
	Impl               // impl Trait
	Lifetime           // 'a, only valid as a generic argument
)

func (k TypeKind) String() string {
	switch k {
	case Path:
		return "Path"
	case Ref:
		return "Ref"
	case Slice:
		return "Slice"
	case Array:
		return "Array"
	case Tuple:
		return "Tuple"
	case Qualified:
		return "Qualified"
	case Impl:
		return "Impl"
	case Lifetime:
		return "Lifetime"
	default:
		return "Invalid"
	}
}

// Segment is one component of a path, with its generic arguments.
type Segment struct {
	Name string
	Args []*Type
}

// Type is a parsed type expression.
type Type struct {
	Kind TypeKind
	// Global marks a path written with a leading "::".
	Global   bool
	Segments []Segment
	// Name is the lifetime name of a Ref or a Lifetime, without the quote.
	Name    string
	Mutable bool
	// Elem is the referent of a Ref, the element of a Slice or Array, the
	// self type of a Qualified path and the bound of an Impl.
	Elem *Type
	// Len is the length expression of an Array.
	Len   string
	Elems []*Type
	// Trait is the trait of a Qualified path; Segments then hold the
	// associated item path after it.
	Trait *Type
}

// NewPath builds a single-segment path type.
func NewPath(name string, args ...*Type) *Type {
	return &Type{Kind: Path, Segments: []Segment{{Name: name, Args: args}}}
}

// NewRef builds a shared reference to elem.
func NewRef(elem *Type) *Type {
	return &Type{Kind: Ref, Elem: elem}
}

// NewRefMut builds a mutable reference to elem.
func NewRefMut(elem *Type) *Type {
	return &Type{Kind: Ref, Mutable: true, Elem: elem}
}

// NewSlice builds [elem].
func NewSlice(elem *Type) *Type {
	return &Type{Kind: Slice, Elem: elem}
}

// NewImpl builds impl bound.
func NewImpl(bound *Type) *Type {
	return &Type{Kind: Impl, Elem: bound}
}

// Unit is the () type.
func Unit() *Type {
	return &Type{Kind: Tuple}
}

// SelfType is the Self path.
func SelfType() *Type {
	return NewPath("Self")
}

// Bool is the bool path.
func Bool() *Type {
	return NewPath("bool")
}

// Option wraps inner into Option<inner>.
func Option(inner *Type) *Type {
	return NewPath("Option", inner)
}

// Into builds impl Into<target>.
func Into(target *Type) *Type {
	return NewImpl(NewPath("Into", target))
}

// Last returns the last path segment, or nil when t is not a path.
func (t *Type) Last() *Segment {
	if t == nil || t.Kind != Path || len(t.Segments) == 0 {
		return nil
	}
	return &t.Segments[len(t.Segments)-1]
}

// PathString returns the segment names joined by "::", without arguments.
func (t *Type) PathString() string {
	if t == nil || t.Kind != Path {
		return ""
	}
	names := make([]string, len(t.Segments))
	for i, seg := range t.Segments {
		names[i] = seg.Name
	}
	s := strings.Join(names, "::")
	if t.Global {
		s = "::" + s
	}
	return s
}

// TypeArgs returns the generic arguments of the last segment that are types,
// skipping lifetimes.
func (t *Type) TypeArgs() []*Type {
	last := t.Last()
	if last == nil {
		return nil
	}
	var args []*Type
	for _, a := range last.Args {
		if a.Kind != Lifetime {
			args = append(args, a)
		}
	}
	return args
}

// IsUnit reports whether t is ().
func (t *Type) IsUnit() bool {
	return t != nil && t.Kind == Tuple && len(t.Elems) == 0
}

// IsBool reports whether t is the bool primitive.
func (t *Type) IsBool() bool {
	if t == nil || t.Kind != Path {
		return false
	}
	p := t.PathString()
	return p == "bool" || strings.HasSuffix(p, "primitive::bool")
}

// Clone returns a deep copy of t.
func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	c := *t
	if t.Segments != nil {
		c.Segments = make([]Segment, len(t.Segments))
		for i, seg := range t.Segments {
			c.Segments[i] = Segment{Name: seg.Name, Args: cloneAll(seg.Args)}
		}
	}
	c.Elem = t.Elem.Clone()
	c.Elems = cloneAll(t.Elems)
	c.Trait = t.Trait.Clone()
	return &c
}

func cloneAll(ts []*Type) []*Type {
	if ts == nil {
		return nil
	}
	out := make([]*Type, len(ts))
	for i, t := range ts {
		out[i] = t.Clone()
	}
	return out
}

// Equal reports whether two expressions print the same.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.String() == other.String()
}

// String prints t in canonical form.
func (t *Type) String() string {
	if t == nil {
		return "()"
	}
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *Type) write(sb *strings.Builder) {
	switch t.Kind {
	case Path:
		if t.Global {
			sb.WriteString("::")
		}
		writeSegments(sb, t.Segments)
	case Ref:
		sb.WriteString("&")
		if t.Name != "" {
			sb.WriteString("'")
			sb.WriteString(t.Name)
			sb.WriteString(" ")
		}
		if t.Mutable {
			sb.WriteString("mut ")
		}
		t.Elem.write(sb)
	case Slice:
		sb.WriteString("[")
		t.Elem.write(sb)
		sb.WriteString("]")
	case Array:
		sb.WriteString("[")
		t.Elem.write(sb)
		sb.WriteString("; ")
		sb.WriteString(t.Len)
		sb.WriteString("]")
	case Tuple:
		sb.WriteString("(")
		for i, e := range t.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.write(sb)
		}
		if len(t.Elems) == 1 {
			sb.WriteString(",")
		}
		sb.WriteString(")")
	case Qualified:
		sb.WriteString("<")
		t.Elem.write(sb)
		if t.Trait != nil {
			sb.WriteString(" as ")
			t.Trait.write(sb)
		}
		sb.WriteString(">")
		for _, seg := range t.Segments {
			sb.WriteString("::")
			writeSegments(sb, []Segment{seg})
		}
	case Impl:
		sb.WriteString("impl ")
		t.Elem.write(sb)
	case Lifetime:
		sb.WriteString("'")
		sb.WriteString(t.Name)
	default:
		sb.WriteString("_")
	}
}

func writeSegments(sb *strings.Builder, segs []Segment) {
	for i, seg := range segs {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(seg.Name)
		if len(seg.Args) == 0 {
			continue
		}
		sb.WriteString("<")
		for j, a := range seg.Args {
			if j > 0 {
				sb.WriteString(", ")
			}
			a.write(sb)
		}
		sb.WriteString(">")
	}
}
