// Package generator synthesizes the accessor methods of an entity: it resolves
// the directives of every (member, kind) pair and asks the resolver of that
// kind for a method.
package generator

import (
	"log/slog"

	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/model"
	"github.com/origadmin/accgen/internal/planner"
)

// Generator synthesizes accessors. It holds no state between entities.
type Generator struct {
	planner *planner.Planner
}

// NewGenerator creates a new generator.
func NewGenerator() *Generator {
	return &Generator{planner: planner.NewPlanner()}
}

// Generate returns the accessors of e in emission order: members in
// declaration order, kinds in their fixed order, then case predicates. A
// configuration error aborts the entity and no method is returned.
func (g *Generator) Generate(e *model.Entity) ([]*model.MethodSpec, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("Generator: generating accessors", "entity", e.String(), "mode", e.Directives.Mode)

	var methods []*model.MethodSpec
	switch e.Kind {
	case model.Struct:
		methods = g.generateStruct(e)
	case model.Enum:
		methods = g.generateEnum(e)
	}
	slog.Debug("Generator: done", "entity", e.Name, "methods", len(methods))
	return methods, nil
}

func (g *Generator) generateStruct(e *model.Entity) []*model.MethodSpec {
	var methods []*model.MethodSpec
	for _, f := range e.Fields {
		for _, kind := range config.MemberKinds {
			q := NewQuery(e, f, kind)
			if !q.Enabled() {
				continue
			}
			if m, ok := structResolvers[kind](q); ok {
				methods = append(methods, m)
			}
		}
	}
	return methods
}

func (g *Generator) generateEnum(e *model.Entity) []*model.MethodSpec {
	var methods []*model.MethodSpec
	cov := g.planner.Plan(e)
	for _, vf := range cov.Fields {
		for _, kind := range config.MemberKinds {
			q := NewQuery(e, vf.Field, kind)
			if !q.Enabled() {
				continue
			}
			if m, ok := enumResolvers[kind](q, vf); ok {
				methods = append(methods, m)
			}
		}
	}
	for _, c := range e.Cases {
		q := NewCaseQuery(e, c)
		if !q.Enabled() {
			continue
		}
		if m, ok := resolveIs(q); ok {
			methods = append(methods, m)
		}
	}
	return methods
}

// Resolve runs the resolver of q's kind for a product-type member. It is the
// single-accessor counterpart of Generate.
func Resolve(q *Query) (*model.MethodSpec, bool) {
	if q.Case != nil {
		return resolveIs(q)
	}
	r, ok := structResolvers[q.Kind]
	if !ok {
		return nil, false
	}
	return r(q)
}
