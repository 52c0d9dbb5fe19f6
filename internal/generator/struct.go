package generator

import (
	"github.com/origadmin/accgen/internal/analyzer"
	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/model"
	"github.com/origadmin/accgen/internal/types"
)

// structResolvers are the resolvers of product types, by kind.
var structResolvers = map[config.Kind]resolver{
	config.KindGet:     resolveGet,
	config.KindGetMut:  resolveGetMut,
	config.KindSet:     resolveSet,
	config.KindWith:    resolveWith,
	config.KindWithout: resolveWithout,
	config.KindTake:    resolveTake,
	config.KindInto:    resolveInto,
}

func resolveGet(q *Query) (*model.MethodSpec, bool) {
	b := borrowGet(q, fieldPlace(q.Field))
	m := q.method(model.RecvRef)
	m.Return = b.ret
	m.Body.Expr = b.expr
	return m, true
}

func resolveGetMut(q *Query) (*model.MethodSpec, bool) {
	b := borrowGetMut(q, fieldPlace(q.Field))
	m := q.method(model.RecvRefMut)
	m.Return = b.ret
	m.Body.Expr = b.expr
	return m, true
}

func resolveSet(q *Query) (*model.MethodSpec, bool) {
	arg := q.ArgName()
	argType, value := setterArg(q, arg)
	m := q.method(model.RecvRefMut)
	m.Args = []model.Arg{{Name: arg, Type: argType}}
	m.Body.Stmts = []string{fieldPlace(q.Field).assign(value)}
	if q.Chain() {
		m.Return = types.NewRefMut(types.SelfType())
		m.Body.Expr = "self"
	}
	return m, true
}

func resolveWith(q *Query) (*model.MethodSpec, bool) {
	arg := q.ArgName()
	argType, value := setterArg(q, arg)
	m := q.method(model.RecvOwnedMut)
	m.Args = []model.Arg{{Name: arg, Type: argType}}
	m.Return = types.SelfType()
	m.Body.Stmts = []string{fieldPlace(q.Field).assign(value)}
	m.Body.Expr = "self"
	return m, true
}

func resolveWithout(q *Query) (*model.MethodSpec, bool) {
	value, ok := clearValue(q)
	if !ok {
		return decline(q, "member is neither bool nor optional and has no value directive")
	}
	m := q.method(model.RecvOwnedMut)
	m.Return = types.SelfType()
	m.Body.Stmts = []string{fieldPlace(q.Field).assign(value)}
	m.Body.Expr = "self"
	return m, true
}

func resolveTake(q *Query) (*model.MethodSpec, bool) {
	if !analyzer.IsOptional(q.Type()) {
		return decline(q, "member is not optional")
	}
	m := q.method(model.RecvRefMut)
	m.Return = q.Type().Clone()
	m.Body.Expr = fieldPlace(q.Field).call("take")
	return m, true
}

func resolveInto(q *Query) (*model.MethodSpec, bool) {
	if q.Copy() {
		return decline(q, "member is copied by the borrow accessor")
	}
	m := q.method(model.RecvOwned)
	m.Return = q.Type().Clone()
	m.Body.Expr = fieldPlace(q.Field).value()
	return m, true
}
