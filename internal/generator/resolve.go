package generator

import (
	"log/slog"
	"strings"

	"github.com/origadmin/accgen/internal/analyzer"
	"github.com/origadmin/accgen/internal/model"
	"github.com/origadmin/accgen/internal/types"
)

// resolver produces the accessor of one kind, or declines with false.
type resolver func(q *Query) (*model.MethodSpec, bool)

// method starts a MethodSpec carrying everything the query decides on its
// own.
func (q *Query) method(recv model.Receiver) *model.MethodSpec {
	member := ""
	if q.Field != nil {
		member = q.Field.Name
	} else if q.Case != nil {
		member = q.Case.Name
	}
	return &model.MethodSpec{
		Kind:       q.Kind,
		Name:       q.Name(),
		Visibility: q.Visibility(),
		Receiver:   recv,
		Doc:        q.Doc(),
		MustUse:    q.MustUse(),
		Member:     member,
	}
}

func decline(q *Query, reason string) (*model.MethodSpec, bool) {
	member := ""
	if q.Field != nil {
		member = q.Field.Name
	}
	slog.Debug("Generator: accessor declined", "entity", q.Entity.Name, "member", member,
		"kind", q.Kind, "reason", reason)
	return nil, false
}

// place is where a member lives inside a method body: a field expression such
// as "self.count", or a match binding that already holds a reference to it.
type place struct {
	expr  string
	bound bool
}

func fieldPlace(f *model.Field) place {
	return place{expr: f.Access("self")}
}

func bindingPlace(name string) place {
	return place{expr: name, bound: true}
}

func amp(mut bool) string {
	if mut {
		return "&mut "
	}
	return "&"
}

// value reads the member by value.
func (p place) value() string {
	if p.bound {
		return "*" + p.expr
	}
	return p.expr
}

// ref borrows the member.
func (p place) ref(mut bool) string {
	if p.bound {
		return p.expr
	}
	return amp(mut) + p.expr
}

// deref borrows through depth layers of auto-deref wrappers.
func (p place) deref(depth int, mut bool) string {
	n := depth
	if p.bound {
		n++
	}
	return amp(mut) + strings.Repeat("*", n) + p.expr
}

func (p place) call(method string) string {
	return p.expr + "." + method + "()"
}

func (p place) assign(v string) string {
	if p.bound {
		return "*" + p.expr + " = " + v
	}
	return p.expr + " = " + v
}

// derefTarget resolves the auto-deref target of t and the number of layers
// crossed to reach it.
func derefTarget(q *Query, t *types.Type) (*types.Type, int, bool) {
	d := q.Deref()
	if !d.Enabled {
		return nil, 0, false
	}
	if d.Target != nil {
		target := analyzer.ResolveQualified(d.Target)
		depth := 1
		cur := t
		for i := 1; ; i++ {
			next, ok := analyzer.InferDerefTarget(cur)
			if !ok {
				break
			}
			if next.Equal(target) {
				depth = i
				break
			}
			cur = next
		}
		return target, depth, true
	}
	target, depth := analyzer.DerefChain(t)
	if depth == 0 {
		return nil, 0, false
	}
	return target, depth, true
}

// optionDerefTarget resolves the target of an optional member borrowed
// through as_deref, which crosses exactly one layer.
func optionDerefTarget(q *Query, inner *types.Type) (*types.Type, bool) {
	d := q.Deref()
	if !d.Enabled {
		return nil, false
	}
	if d.Target != nil {
		return analyzer.ResolveQualified(d.Target), true
	}
	return analyzer.InferDerefTarget(inner)
}

// borrowed is the return type and expression of a borrow accessor.
type borrowed struct {
	ret  *types.Type
	expr string
	// optional marks a return type that is already an Option.
	optional bool
}

// borrowGet resolves a shared borrow of the member at p.
func borrowGet(q *Query, p place) borrowed {
	t := q.Type()
	if q.Option() {
		if inner, ok := analyzer.UnwrapOptional(t); ok {
			if target, ok := optionDerefTarget(q, inner); ok {
				return borrowed{types.Option(types.NewRef(target)), p.call("as_deref"), true}
			}
			return borrowed{types.Option(types.NewRef(inner)), p.call("as_ref"), true}
		}
	}
	if q.Copy() {
		return borrowed{t.Clone(), p.value(), false}
	}
	if target, depth, ok := derefTarget(q, t); ok {
		return borrowed{types.NewRef(target), p.deref(depth, false), false}
	}
	return borrowed{types.NewRef(t.Clone()), p.ref(false), false}
}

// borrowGetMut resolves a mutable borrow of the member at p. Only mutable
// references are classified as copy here, and they are reborrowed; scalars
// are handed out by value only on an explicit directive.
func borrowGetMut(q *Query, p place) borrowed {
	t := q.Type()
	if q.Option() {
		if inner, ok := analyzer.UnwrapOptional(t); ok {
			if target, ok := optionDerefTarget(q, inner); ok {
				return borrowed{types.Option(types.NewRefMut(target)), p.call("as_deref_mut"), true}
			}
			return borrowed{types.Option(types.NewRefMut(inner)), p.call("as_mut"), true}
		}
	}
	isMutRef := t.Kind == types.Ref && t.Mutable
	copied, explicit := q.CopyOverride()
	if !explicit {
		copied = isMutRef
	}
	if copied {
		if isMutRef {
			return borrowed{types.NewRefMut(t.Elem.Clone()), p.deref(1, true), false}
		}
		return borrowed{t.Clone(), p.value(), false}
	}
	if target, depth, ok := derefTarget(q, t); ok {
		return borrowed{types.NewRefMut(target), p.deref(depth, true), false}
	}
	return borrowed{types.NewRefMut(t.Clone()), p.ref(true), false}
}

// setterArg resolves the argument type of set and with, and the value
// expression assigned from it.
func setterArg(q *Query, arg string) (*types.Type, string) {
	t := q.Type()
	argType, value := t.Clone(), arg
	wrapped := false
	if q.Wrap() {
		if inner, ok := analyzer.UnwrapOptional(t); ok {
			argType = inner.Clone()
			wrapped = true
		}
	}
	if q.Into() {
		argType = types.Into(argType)
		value = arg + ".into()"
	}
	if wrapped {
		value = "Some(" + value + ")"
	}
	return argType, value
}

// clearValue resolves the value assigned by the owned-clear accessor.
func clearValue(q *Query) (string, bool) {
	if v, ok := q.Value(); ok {
		return v, true
	}
	t := q.Type()
	if t.IsBool() {
		return "false", true
	}
	if analyzer.IsOptional(t) {
		return "None", true
	}
	return "", false
}
