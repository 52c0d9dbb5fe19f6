package config

import (
	"fmt"
	"strings"
)

// Kind identifies one accessor kind.
type Kind int

// Accessor kinds, in the order methods are emitted for a member.
const (
	KindGet     Kind = iota // borrow
	KindGetMut              // mutable borrow
	KindSet                 // in-place set
	KindWith                // owned chainable set
	KindWithout             // owned chainable clear
	KindTake                // option take
	KindInto                // move out
	KindIs                  // case predicate
)

// Kinds lists every accessor kind in emission order.
var Kinds = []Kind{KindGet, KindGetMut, KindSet, KindWith, KindWithout, KindTake, KindInto, KindIs}

// MemberKinds lists the kinds that operate on a member.
var MemberKinds = Kinds[:len(Kinds)-1]

var kindNames = [...]string{
	KindGet:     "get",
	KindGetMut:  "get_mut",
	KindSet:     "set",
	KindWith:    "with",
	KindWithout: "without",
	KindTake:    "take",
	KindInto:    "into",
	KindIs:      "is",
}

// String returns the directive key naming the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind maps a directive key to its Kind.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// KindNames returns the directive keys of all kinds.
func KindNames() []string {
	return append([]string(nil), kindNames[:]...)
}

// Mutating reports whether accessors of this kind assign into the member.
func (k Kind) Mutating() bool {
	switch k {
	case KindSet, KindWith, KindWithout:
		return true
	default:
		return false
	}
}

// Mode is the entity-wide participation policy.
type Mode int

const (
	// ModeOptOut generates every accessor unless a directive skips it.
	ModeOptOut Mode = iota
	// ModeOptIn generates accessors only for members that carry configuration.
	ModeOptIn
)

// String returns the directive value naming the mode.
func (m Mode) String() string {
	if m == ModeOptIn {
		return "opt-in"
	}
	return "opt-out"
}

// ParseMode maps a directive value to its Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "opt-out", "optout", "":
		return ModeOptOut, true
	case "opt-in", "optin":
		return ModeOptIn, true
	default:
		return 0, false
	}
}
