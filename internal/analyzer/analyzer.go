// Package analyzer classifies declared member types: copy eligibility,
// optional wrappers and auto-dereferencing wrappers. Every function here is
// total; "not recognized" is an ordinary negative result.
package analyzer

import (
	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/types"
)

var scalarTypes = map[string]bool{
	"bool": true, "char": true,
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true, "isize": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "usize": true,
	"f32": true, "f64": true,
}

// IsScalar reports whether t is one of the primitive scalar types, bare or
// spelled through std::primitive / core::primitive.
func IsScalar(t *types.Type) bool {
	if t == nil || t.Kind != types.Path {
		return false
	}
	last := t.Last()
	if len(last.Args) > 0 || !scalarTypes[last.Name] {
		return false
	}
	switch len(t.Segments) {
	case 1:
		return !t.Global
	case 3:
		root := t.Segments[0].Name
		return (root == "std" || root == "core") && t.Segments[1].Name == "primitive"
	default:
		return false
	}
}

// IsCopy reports whether accessors of kind should hand the member out by
// value. Shared references always qualify; mutable references qualify only
// for mutable borrows, where they are reborrowed through &mut self.
func IsCopy(t *types.Type, kind config.Kind) bool {
	if t == nil {
		return false
	}
	if t.Kind == types.Ref {
		return !t.Mutable || kind == config.KindGetMut
	}
	return IsScalar(t)
}

// matchPath reports whether t is a path whose segments equal one of the
// accepted spellings, ignoring generic arguments and a leading "::".
func matchPath(t *types.Type, spellings ...string) bool {
	if t == nil || t.Kind != types.Path {
		return false
	}
	p := t.PathString()
	if t.Global {
		p = p[2:]
	}
	for _, s := range spellings {
		if p == s {
			return true
		}
	}
	return false
}

// UnwrapOptional returns T for Option<T>.
func UnwrapOptional(t *types.Type) (*types.Type, bool) {
	if !matchPath(t, "Option", "std::option::Option", "core::option::Option") {
		return nil, false
	}
	args := t.TypeArgs()
	if len(args) != 1 {
		return nil, false
	}
	return args[0], true
}

// IsOptional reports whether t is an optional wrapper.
func IsOptional(t *types.Type) bool {
	_, ok := UnwrapOptional(t)
	return ok
}
