package config

import (
	"github.com/origadmin/accgen/internal/types"
)

// Settings holds one tier of directives. A nil field is unset and lets the
// next wider tier decide.
type Settings struct {
	// Skip disables generation.
	Skip *bool
	// Vis is the visibility qualifier of the method, "" for private.
	Vis *string
	// Rename replaces the member name used to build method names.
	Rename *string
	// Template is a naming template with one placeholder, entity tiers only.
	Template *string
	// Doc is an explicit doc string on member tiers and a doc template on
	// entity tiers.
	Doc *string
	// Arg names the argument of setter methods.
	Arg *string
	// Copy overrides the copy classification.
	Copy *bool
	// Option unwraps optional members into optional borrows.
	Option *bool
	// Deref borrows through a smart pointer or container.
	Deref *Deref
	// Into accepts any value convertible into the member type.
	Into *bool
	// Wrap wraps the setter argument into the optional member automatically.
	Wrap *bool
	// Chain makes the in-place setter return the receiver.
	Chain *bool
	// MustUse marks the method result as must-use.
	MustUse *bool
	// IsPrefix names boolean borrow accessors with an "is_" prefix.
	IsPrefix *bool
	// Value is the expression the owned-clear accessor assigns.
	Value *string
}

// Deref is the auto-deref policy of a member. Target, when set, is an explicit
// borrow target and takes precedence over inference.
type Deref struct {
	Enabled bool
	Target  *types.Type
}

// IsZero reports whether no directive is set.
func (s *Settings) IsZero() bool {
	if s == nil {
		return true
	}
	return s.Skip == nil && s.Vis == nil && s.Rename == nil && s.Template == nil &&
		s.Doc == nil && s.Arg == nil && s.Copy == nil && s.Option == nil &&
		s.Deref == nil && s.Into == nil && s.Wrap == nil && s.Chain == nil &&
		s.MustUse == nil && s.IsPrefix == nil && s.Value == nil
}

// EntityDirectives are the two entity-wide tiers plus the participation policy.
type EntityDirectives struct {
	Mode Mode
	// Only restricts the kinds active entity-wide. Empty means all.
	Only    []Kind
	Default Settings
	Kinds   map[Kind]*Settings
}

// Restricts reports whether kind is filtered out by Only.
func (d *EntityDirectives) Restricts(kind Kind) bool {
	if d == nil || len(d.Only) == 0 {
		return false
	}
	for _, k := range d.Only {
		if k == kind {
			return false
		}
	}
	return true
}

// Kind returns the per-kind tier, or nil.
func (d *EntityDirectives) Kind(kind Kind) *Settings {
	if d == nil {
		return nil
	}
	return d.Kinds[kind]
}

// MemberDirectives are the two tiers scoped to one member.
type MemberDirectives struct {
	// Enabled is the bare participation marker.
	Enabled bool
	Default Settings
	Kinds   map[Kind]*Settings
}

// Kind returns the per-kind tier, or nil.
func (d *MemberDirectives) Kind(kind Kind) *Settings {
	if d == nil {
		return nil
	}
	return d.Kinds[kind]
}

// Present reports whether the member carries any configuration at all.
func (d *MemberDirectives) Present() bool {
	if d == nil {
		return false
	}
	return d.Enabled || !d.Default.IsZero() || len(d.Kinds) > 0
}

// CaseDirectives configure one case of a sum type.
type CaseDirectives struct {
	// Skip excludes the case from field unification.
	Skip bool
	// Is configures the case predicate. Nil when the case has no predicate
	// entry.
	Is *Settings
}

// Chain is the ordered list of tiers consulted for one (member, kind) pair,
// narrowest first.
type Chain [4]*Settings

// NewChain orders the tiers member-per-kind, member, entity-per-kind, entity.
func NewChain(entity *EntityDirectives, member *MemberDirectives, kind Kind) Chain {
	var c Chain
	if member != nil {
		c[0] = member.Kind(kind)
		c[1] = &member.Default
	}
	if entity != nil {
		c[2] = entity.Kind(kind)
		c[3] = &entity.Default
	}
	return c
}

// Tier names a position in a Chain.
type Tier int

const (
	TierMemberKind Tier = iota
	TierMember
	TierEntityKind
	TierEntity
)

func (t Tier) String() string {
	switch t {
	case TierMemberKind:
		return "member-kind"
	case TierMember:
		return "member"
	case TierEntityKind:
		return "entity-kind"
	case TierEntity:
		return "entity"
	default:
		return "default"
	}
}

// Resolve returns the first value set along the chain, narrowest first.
func Resolve[T any](c Chain, get func(*Settings) *T) (T, bool) {
	v, _, ok := ResolveTier(c, get)
	return v, ok
}

// ResolveTier is Resolve that also reports the tier that decided.
func ResolveTier[T any](c Chain, get func(*Settings) *T) (T, Tier, bool) {
	for i, s := range c {
		if s == nil {
			continue
		}
		if p := get(s); p != nil {
			return *p, Tier(i), true
		}
	}
	var zero T
	return zero, Tier(len(c)), false
}

// ResolveOr is Resolve falling back to the engine default.
func ResolveOr[T any](c Chain, def T, get func(*Settings) *T) T {
	if v, ok := Resolve(c, get); ok {
		return v
	}
	return def
}

// First returns the first non-nil pointer's value.
func First[T any](vals ...*T) (T, bool) {
	for _, v := range vals {
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
