// Package planner unifies the members of a sum type's cases into virtual
// fields and decides how far each one is covered.
package planner

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/origadmin/accgen/internal/model"
)

// BindingSuffix is appended to a match-arm binding that would shadow the
// argument of a mutating accessor.
const BindingSuffix = "_binding"

// Entry is one occurrence of a virtual field: the case it appears in and the
// member that carries it there.
type Entry struct {
	Case  *model.Case
	Field *model.Field
}

// VirtualField is the union of the same-named members across the cases of a
// sum type.
type VirtualField struct {
	// Name is the binding name shared by every entry.
	Name string
	// Field is the representative member: the first occurrence in case order.
	// Its directives configure the accessors of the virtual field.
	Field   *model.Field
	Entries []Entry
	// Total is the number of cases of the entity, excluded ones included.
	Total int
}

// Full reports whether every case of the entity carries the field. The
// denominator counts excluded cases too, so excluding any case makes every
// field partial.
func (v *VirtualField) Full() bool {
	return len(v.Entries) == v.Total
}

// Uniform reports whether all entries declare the same type.
func (v *VirtualField) Uniform() bool {
	for _, e := range v.Entries[1:] {
		if !e.Field.Type.Equal(v.Field.Type) {
			return false
		}
	}
	return true
}

// Cases returns the names of the contributing cases.
func (v *VirtualField) Cases() []string {
	names := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		names[i] = e.Case.Name
	}
	return names
}

// Binding returns the local name an arm binds the field to. A binding that
// equals arg, the argument of the accessor, is suffixed to avoid shadowing.
func (v *VirtualField) Binding(arg string) string {
	if arg != "" && v.Name == arg {
		return v.Name + BindingSuffix
	}
	return v.Name
}

// Pattern returns the pattern of entry e binding the field to local.
func (v *VirtualField) Pattern(e Entry, local string) string {
	c, f := e.Case, e.Field
	if f.Positional() {
		parts := make([]string, 0, f.Index+2)
		for i := 0; i < f.Index; i++ {
			parts = append(parts, "_")
		}
		parts = append(parts, local, "..")
		return fmt.Sprintf("%s(%s)", c.Path(), strings.Join(parts, ", "))
	}
	bind := f.Name
	if local != f.Name {
		bind = f.Name + ": " + local
	}
	return fmt.Sprintf("%s { %s, .. }", c.Path(), bind)
}

// CasePattern matches case c regardless of its members.
func CasePattern(c *model.Case) string {
	switch c.Shape {
	case model.ShapeUnit:
		return c.Path()
	case model.ShapeTuple:
		return c.Path() + "(..)"
	default:
		return c.Path() + " { .. }"
	}
}

// Coverage is the result of planning one sum type.
type Coverage struct {
	Entity *model.Entity
	// Fields lists the virtual fields in first-seen order.
	Fields []*VirtualField
	// Total is the case count used as the coverage denominator.
	Total int
	// Active is the number of cases taking part in unification.
	Active int
}

// Planner builds Coverage for sum types.
type Planner struct{}

// NewPlanner creates a new planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan unifies the members of e's cases by binding name. Excluded cases
// contribute no entries but still count toward the total.
func (p *Planner) Plan(e *model.Entity) *Coverage {
	total := len(e.Cases)
	slog.Debug("Planner: planning coverage", "entity", e.Name, "cases", total)

	// binding name -> *VirtualField
	fields := linkedhashmap.New()
	// binding name -> names of the cases carrying it
	seen := make(map[string]*linkedhashset.Set)
	active := 0
	for _, c := range e.Cases {
		if c.Excluded() {
			slog.Debug("Planner: case excluded from unification", "entity", e.Name, "case", c.Name)
			continue
		}
		active++
		for _, f := range c.Fields {
			name := f.BindingName()
			cases, ok := seen[name]
			if !ok {
				cases = linkedhashset.New()
				seen[name] = cases
			}
			if cases.Contains(c.Name) {
				slog.Warn("Planner: binding name used twice in one case, keeping the first",
					"entity", e.Name, "case", c.Name, "binding", name)
				continue
			}
			cases.Add(c.Name)

			v, ok := fields.Get(name)
			if !ok {
				v = &VirtualField{Name: name, Field: f, Total: total}
				fields.Put(name, v)
			}
			vf := v.(*VirtualField)
			vf.Entries = append(vf.Entries, Entry{Case: c, Field: f})
		}
	}

	cov := &Coverage{
		Entity: e,
		Fields: make([]*VirtualField, 0, fields.Size()),
		Total:  total,
		Active: active,
	}
	it := fields.Iterator()
	for it.Next() {
		vf := it.Value().(*VirtualField)
		cov.Fields = append(cov.Fields, vf)
		slog.Debug("Planner: virtual field", "entity", e.Name, "field", vf.Name,
			"cases", vf.Cases(), "full", vf.Full())
	}
	return cov
}
