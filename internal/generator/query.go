package generator

import (
	"github.com/origadmin/accgen/internal/analyzer"
	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/generator/components"
	"github.com/origadmin/accgen/internal/model"
	"github.com/origadmin/accgen/internal/types"
)

// Query is a read-only view binding one member, or one case for predicates,
// and one accessor kind to the directives that apply to them. Every method
// resolves on demand.
type Query struct {
	Entity *model.Entity
	// Field is nil for case predicates.
	Field *model.Field
	// Case is set for case predicates only.
	Case *model.Case
	Kind config.Kind
}

// NewQuery creates the query of kind for member f of e.
func NewQuery(e *model.Entity, f *model.Field, kind config.Kind) *Query {
	return &Query{
		Entity: e,
		Field:  f,
		Kind:   kind,
	}
}

// NewCaseQuery creates the predicate query for case c of e. The case entry
// takes the member-per-kind position of the chain; there is no member tier.
func NewCaseQuery(e *model.Entity, c *model.Case) *Query {
	return &Query{
		Entity: e,
		Case:   c,
		Kind:   config.KindIs,
	}
}

// chain builds the precedence chain from the directives as they are now.
func (q *Query) chain() config.Chain {
	e := q.Entity
	if q.Case != nil {
		return config.Chain{q.Case.Directives.Is, nil, e.Directives.Kind(config.KindIs), &e.Directives.Default}
	}
	return config.NewChain(&e.Directives, &q.Field.Directives, q.Kind)
}

func (q *Query) kindEntry() *config.Settings {
	return q.chain()[config.TierMemberKind]
}

// Enabled decides whether the accessor is generated at all.
func (q *Query) Enabled() bool {
	entry := q.kindEntry()
	d := &q.Entity.Directives
	if d.Restricts(q.Kind) {
		// Only an explicit entry for this exact kind re-enables it.
		return entry != nil && !isTrue(entry.Skip)
	}
	if d.Mode == config.ModeOptIn {
		if q.Case != nil {
			if entry == nil {
				return false
			}
		} else {
			if !q.Field.Directives.Present() {
				return false
			}
			if q.Kind != config.KindGet && entry == nil {
				return false
			}
		}
	}
	if entry != nil && entry.Skip != nil {
		return !*entry.Skip
	}
	return !q.skipped()
}

// skipped resolves skip below the member-per-kind tier.
func (q *Query) skipped() bool {
	c := q.chain()
	for _, s := range c[config.TierMember:] {
		if s != nil && s.Skip != nil {
			return *s.Skip
		}
	}
	return false
}

// BaseName is the member name accessor names are built from.
func (q *Query) BaseName() string {
	if q.Case != nil {
		return components.ToSnakeCase(q.Case.Name)
	}
	return q.Field.BindingName()
}

// Name returns the method name.
func (q *Query) Name() string {
	if entry := q.kindEntry(); entry != nil && entry.Rename != nil {
		return *entry.Rename
	}
	tpl := q.entityKind().Template
	base := q.BaseName()
	if q.Kind == config.KindGet && tpl == nil && q.IsPrefix() && q.Field.Type.IsBool() {
		return components.BoolPrefix + base
	}
	return components.MethodName(q.Kind, tpl, base)
}

func (q *Query) entityKind() *config.Settings {
	if s := q.chain()[config.TierEntityKind]; s != nil {
		return s
	}
	return &config.Settings{}
}

// ArgName names the argument of setter methods.
func (q *Query) ArgName() string {
	if q.Field == nil {
		return ""
	}
	m := &q.Field.Directives
	var kindArg *string
	if entry := q.kindEntry(); entry != nil {
		kindArg = entry.Arg
	}
	if name, ok := config.First(kindArg, m.Default.Arg); ok {
		return name
	}
	return q.Field.BindingName()
}

// Visibility returns the visibility qualifier, "" for private.
func (q *Query) Visibility() string {
	return config.ResolveOr(q.chain(), "pub", func(s *config.Settings) *string { return s.Vis })
}

// Doc returns the documentation of the method.
func (q *Query) Doc() string {
	if entry := q.kindEntry(); entry != nil && entry.Doc != nil {
		return *entry.Doc
	}
	tpl := q.entityKind().Doc
	if q.Case != nil {
		doc := components.ApplyTemplate(components.DefaultDocs[config.KindIs], q.Case.Name)
		if tpl != nil {
			doc = components.ApplyTemplate(*tpl, q.Case.Name)
		}
		for _, l := range q.Case.Doc {
			doc += "\n" + l
		}
		return doc
	}
	return components.KindDoc(q.Kind, tpl, q.Field.Doc, q.BaseName())
}

// Copy reports whether the member is handed out by value. An explicit
// directive overrides the classification of its type.
func (q *Query) Copy() bool {
	if v, ok := config.Resolve(q.chain(), func(s *config.Settings) *bool { return s.Copy }); ok {
		return v
	}
	return analyzer.IsCopy(q.Field.Type, q.Kind)
}

// CopyOverride returns the explicit copy directive, if any.
func (q *Query) CopyOverride() (bool, bool) {
	return config.Resolve(q.chain(), func(s *config.Settings) *bool { return s.Copy })
}

// Option reports whether optional members are unwrapped into optional
// borrows. It is on unless turned off.
func (q *Query) Option() bool {
	return q.flag(true, func(s *config.Settings) *bool { return s.Option })
}

// Deref returns the auto-deref policy. Inference is on unless turned off.
func (q *Query) Deref() config.Deref {
	return config.ResolveOr(q.chain(), config.Deref{Enabled: true}, func(s *config.Settings) *config.Deref { return s.Deref })
}

// Into reports whether setters accept any value convertible into the member.
func (q *Query) Into() bool {
	return q.flag(false, func(s *config.Settings) *bool { return s.Into })
}

// Wrap reports whether setters wrap their argument into the optional member.
func (q *Query) Wrap() bool {
	return q.flag(false, func(s *config.Settings) *bool { return s.Wrap })
}

// Chain reports whether the in-place setter returns the receiver.
func (q *Query) Chain() bool {
	return q.flag(true, func(s *config.Settings) *bool { return s.Chain })
}

// MustUse reports whether the method is marked must-use. Consuming
// accessors default to it.
func (q *Query) MustUse() bool {
	def := q.Kind == config.KindWith || q.Kind == config.KindWithout || q.Kind == config.KindInto
	return q.flag(def, func(s *config.Settings) *bool { return s.MustUse })
}

// IsPrefix reports whether boolean borrow accessors take the "is_" prefix.
func (q *Query) IsPrefix() bool {
	return q.flag(false, func(s *config.Settings) *bool { return s.IsPrefix })
}

// Value returns the explicit expression of the owned-clear accessor.
func (q *Query) Value() (string, bool) {
	return config.Resolve(q.chain(), func(s *config.Settings) *string { return s.Value })
}

// Type returns the declared type of the member.
func (q *Query) Type() *types.Type {
	if q.Field == nil {
		return nil
	}
	return q.Field.Type
}

func (q *Query) flag(def bool, get func(*config.Settings) *bool) bool {
	return config.ResolveOr(q.chain(), def, get)
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
