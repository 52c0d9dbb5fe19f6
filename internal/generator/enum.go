package generator

import (
	"github.com/origadmin/accgen/internal/analyzer"
	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/model"
	"github.com/origadmin/accgen/internal/planner"
	"github.com/origadmin/accgen/internal/types"
)

// enumResolver produces the accessor of one kind for a virtual field.
type enumResolver func(q *Query, vf *planner.VirtualField) (*model.MethodSpec, bool)

// enumResolvers are the resolvers of sum types, by kind.
var enumResolvers = map[config.Kind]enumResolver{
	config.KindGet:     resolveEnumGet,
	config.KindGetMut:  resolveEnumGetMut,
	config.KindSet:     resolveEnumSet,
	config.KindWith:    resolveEnumWith,
	config.KindWithout: resolveEnumWithout,
	config.KindTake:    resolveEnumTake,
	config.KindInto:    resolveEnumInto,
}

// arms builds one arm per entry of vf binding the field to local, with
// body computing the arm expression from that binding.
func arms(vf *planner.VirtualField, local string, body func(place) string) []model.Arm {
	out := make([]model.Arm, 0, len(vf.Entries))
	for _, e := range vf.Entries {
		out = append(out, model.Arm{
			Patterns: []string{vf.Pattern(e, local)},
			Body:     body(bindingPlace(local)),
		})
	}
	return out
}

// mergeArms joins arms with identical bodies into or-patterns, keeping the
// position of the first arm of each group.
func mergeArms(in []model.Arm) []model.Arm {
	var out []model.Arm
	index := make(map[string]int)
	for _, a := range in {
		if i, ok := index[a.Body]; ok {
			out[i].Patterns = append(out[i].Patterns, a.Patterns...)
			continue
		}
		index[a.Body] = len(out)
		out = append(out, model.Arm{Patterns: append([]string(nil), a.Patterns...), Body: a.Body})
	}
	return out
}

// readMatch builds the match of a reading accessor. A fully covered field
// yields an exhaustive match; a partial one wraps each arm in Some unless the
// arm is already optional, and falls back to None.
func readMatch(vf *planner.VirtualField, scrutinee string, ret *types.Type, optional bool, body func(place) string) (*model.Match, *types.Type) {
	local := vf.Binding("")
	if vf.Full() {
		return &model.Match{Scrutinee: scrutinee, Arms: mergeArms(arms(vf, local, body))}, ret
	}
	wrapped := body
	if !optional {
		ret = types.Option(ret)
		wrapped = func(p place) string { return "Some(" + body(p) + ")" }
	}
	return &model.Match{Scrutinee: scrutinee, Arms: arms(vf, local, wrapped), Fallback: "None"}, ret
}

func checkUniform(q *Query, vf *planner.VirtualField) bool {
	if vf.Uniform() {
		return true
	}
	_, _ = decline(q, "cases declare the field with different types")
	return false
}

// writable reports whether the accessor of q may assign vf: a mutating
// accessor needs the field in every case, with one type.
func writable(q *Query, vf *planner.VirtualField) bool {
	if q.Kind.Mutating() && !vf.Full() {
		_, _ = decline(q, "field is not present in every case")
		return false
	}
	return checkUniform(q, vf)
}

func resolveEnumGet(q *Query, vf *planner.VirtualField) (*model.MethodSpec, bool) {
	if !checkUniform(q, vf) {
		return nil, false
	}
	b := borrowGet(q, bindingPlace(vf.Name))
	m := q.method(model.RecvRef)
	m.Body.Match, m.Return = readMatch(vf, "self", b.ret, b.optional, func(p place) string {
		return borrowGet(q, p).expr
	})
	return m, true
}

func resolveEnumGetMut(q *Query, vf *planner.VirtualField) (*model.MethodSpec, bool) {
	if !checkUniform(q, vf) {
		return nil, false
	}
	b := borrowGetMut(q, bindingPlace(vf.Name))
	m := q.method(model.RecvRefMut)
	m.Body.Match, m.Return = readMatch(vf, "self", b.ret, b.optional, func(p place) string {
		return borrowGetMut(q, p).expr
	})
	return m, true
}

// writeMatch builds the statement match of a mutating accessor, binding the
// field under a name that cannot shadow arg.
func writeMatch(vf *planner.VirtualField, scrutinee, arg, value string) *model.Match {
	local := vf.Binding(arg)
	return &model.Match{
		Scrutinee: scrutinee,
		Arms: mergeArms(arms(vf, local, func(p place) string {
			return p.assign(value)
		})),
		Stmt: true,
	}
}

func resolveEnumSet(q *Query, vf *planner.VirtualField) (*model.MethodSpec, bool) {
	if !writable(q, vf) {
		return nil, false
	}
	arg := q.ArgName()
	argType, value := setterArg(q, arg)
	m := q.method(model.RecvRefMut)
	m.Args = []model.Arg{{Name: arg, Type: argType}}
	m.Body.Match = writeMatch(vf, "self", arg, value)
	if q.Chain() {
		m.Return = types.NewRefMut(types.SelfType())
		m.Body.Match.Tail = "self"
	}
	return m, true
}

func resolveEnumWith(q *Query, vf *planner.VirtualField) (*model.MethodSpec, bool) {
	if !writable(q, vf) {
		return nil, false
	}
	arg := q.ArgName()
	argType, value := setterArg(q, arg)
	m := q.method(model.RecvOwnedMut)
	m.Args = []model.Arg{{Name: arg, Type: argType}}
	m.Return = types.SelfType()
	m.Body.Match = writeMatch(vf, "&mut self", arg, value)
	m.Body.Match.Tail = "self"
	return m, true
}

func resolveEnumWithout(q *Query, vf *planner.VirtualField) (*model.MethodSpec, bool) {
	if !writable(q, vf) {
		return nil, false
	}
	value, ok := clearValue(q)
	if !ok {
		return decline(q, "member is neither bool nor optional and has no value directive")
	}
	m := q.method(model.RecvOwnedMut)
	m.Return = types.SelfType()
	m.Body.Match = writeMatch(vf, "&mut self", "", value)
	m.Body.Match.Tail = "self"
	return m, true
}

func resolveEnumTake(q *Query, vf *planner.VirtualField) (*model.MethodSpec, bool) {
	if !analyzer.IsOptional(q.Type()) {
		return decline(q, "member is not optional")
	}
	if !checkUniform(q, vf) {
		return nil, false
	}
	m := q.method(model.RecvRefMut)
	m.Body.Match, m.Return = readMatch(vf, "self", q.Type().Clone(), true, func(p place) string {
		return p.call("take")
	})
	return m, true
}

func resolveEnumInto(q *Query, vf *planner.VirtualField) (*model.MethodSpec, bool) {
	if q.Copy() {
		return decline(q, "member is copied by the borrow accessor")
	}
	if !checkUniform(q, vf) {
		return nil, false
	}
	m := q.method(model.RecvOwned)
	m.Body.Match, m.Return = readMatch(vf, "self", q.Type().Clone(), false, func(p place) string {
		// Moved out of an owned scrutinee, the binding is the value itself.
		return p.expr
	})
	return m, true
}

// resolveIs produces the predicate of one case.
func resolveIs(q *Query) (*model.MethodSpec, bool) {
	m := q.method(model.RecvRef)
	m.Return = types.Bool()
	m.Body.Expr = "matches!(self, " + planner.CasePattern(q.Case) + ")"
	return m, true
}
