package analyzer

import (
	"github.com/origadmin/accgen/internal/types"
)

// Recognizer inspects one wrapper shape and returns the type it dereferences
// to, one layer down.
type Recognizer func(t *types.Type) (*types.Type, bool)

// Recognizers is the chain consulted by InferDerefTarget, left to right.
var Recognizers = []Recognizer{
	OwnedString,
	OwnedArray,
	SmartPointer,
	CopyOnWrite,
}

// owned string-like types and their borrowed forms
var ownedStrings = []struct {
	target    string
	spellings []string
}{
	{"str", []string{"String", "std::string::String", "alloc::string::String"}},
	{"std::path::Path", []string{"PathBuf", "std::path::PathBuf"}},
	{"std::ffi::OsStr", []string{"OsString", "std::ffi::OsString"}},
	{"std::ffi::CStr", []string{"CString", "std::ffi::CString", "alloc::ffi::CString"}},
}

// OwnedString recognizes String and the other owned string buffers.
func OwnedString(t *types.Type) (*types.Type, bool) {
	if t == nil || len(t.TypeArgs()) != 0 {
		return nil, false
	}
	for _, s := range ownedStrings {
		if matchPath(t, s.spellings...) {
			target, err := types.Parse(s.target)
			if err != nil {
				return nil, false
			}
			return target, true
		}
	}
	return nil, false
}

// OwnedArray recognizes Vec<T> and returns [T].
func OwnedArray(t *types.Type) (*types.Type, bool) {
	if !matchPath(t, "Vec", "std::vec::Vec", "alloc::vec::Vec") {
		return nil, false
	}
	args := t.TypeArgs()
	if len(args) == 0 {
		return nil, false
	}
	// Vec<T, A> carries an allocator; the slice is still [T].
	return types.NewSlice(args[0]), true
}

// SmartPointer recognizes Box, Rc and Arc and returns their pointee.
func SmartPointer(t *types.Type) (*types.Type, bool) {
	if !matchPath(t,
		"Box", "std::boxed::Box", "alloc::boxed::Box",
		"Rc", "std::rc::Rc", "alloc::rc::Rc",
		"Arc", "std::sync::Arc", "alloc::sync::Arc") {
		return nil, false
	}
	args := t.TypeArgs()
	if len(args) == 0 {
		return nil, false
	}
	return args[0], true
}

// CopyOnWrite recognizes Cow<'a, T> and returns T.
func CopyOnWrite(t *types.Type) (*types.Type, bool) {
	if !matchPath(t, "Cow", "std::borrow::Cow", "alloc::borrow::Cow") {
		return nil, false
	}
	args := t.TypeArgs()
	if len(args) != 1 {
		return nil, false
	}
	return args[0], true
}

// InferDerefTarget returns the borrowed target of a known wrapper, one layer
// down.
func InferDerefTarget(t *types.Type) (*types.Type, bool) {
	for _, recognize := range Recognizers {
		if target, ok := recognize(t); ok {
			return target, true
		}
	}
	return nil, false
}

// DerefChain follows InferDerefTarget until no recognizer matches and
// returns the final target with the number of layers crossed. A depth of 0
// means t itself.
func DerefChain(t *types.Type) (*types.Type, int) {
	depth := 0
	for {
		next, ok := InferDerefTarget(t)
		if !ok {
			return t, depth
		}
		t = next
		depth++
	}
}

// ResolveQualified chases <X as Deref>::Target (and DerefMut) through
// inference on X. Paths that cannot be resolved are returned unchanged,
// leaving them to the compiler.
func ResolveQualified(t *types.Type) *types.Type {
	if t == nil || t.Kind != types.Qualified || t.Trait == nil {
		return t
	}
	if len(t.Segments) != 1 || t.Segments[0].Name != "Target" {
		return t
	}
	trait := t.Trait.Last()
	if trait == nil || (trait.Name != "Deref" && trait.Name != "DerefMut") {
		return t
	}
	self := ResolveQualified(t.Elem)
	if target, ok := InferDerefTarget(self); ok {
		return target
	}
	return t
}
