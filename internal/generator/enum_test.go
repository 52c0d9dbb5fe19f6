package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/model"
)

func TestGenerateEnum_FullAndPartial(t *testing.T) {
	e := newEnum(
		newCase("A", field("x", "String"), field("y", "u8")),
		newCase("B", field("x", "String")),
	)
	methods := generate(t, e)

	x := find(t, methods, "x")
	assert.Equal(t, "&str", x.Return.String())
	require.NotNil(t, x.Body.Match)
	assert.Equal(t, "self", x.Body.Match.Scrutinee)
	assert.Equal(t, []model.Arm{{
		Patterns: []string{"Self::A { x, .. }", "Self::B { x, .. }"},
		Body:     "&**x",
	}}, x.Body.Match.Arms)
	assert.Empty(t, x.Body.Match.Fallback)

	y := find(t, methods, "y")
	assert.Equal(t, "Option<u8>", y.Return.String())
	assert.Equal(t, []model.Arm{{Patterns: []string{"Self::A { y, .. }"}, Body: "Some(*y)"}}, y.Body.Match.Arms)
	assert.Equal(t, "None", y.Body.Match.Fallback)

	assert.Equal(t, []string{
		"x", "x_mut", "set_x", "with_x", "into_x",
		"y", "y_mut",
		"is_a", "is_b",
	}, names(methods))
}

func TestGenerateEnum_ExcludedCaseForcesPartial(t *testing.T) {
	c := newCase("C", field("x", "String"))
	c.Directives.Skip = true
	e := newEnum(
		newCase("A", field("x", "String")),
		newCase("B", field("x", "String")),
		c,
	)
	methods := generate(t, e)

	x := find(t, methods, "x")
	assert.Equal(t, "Option<&str>", x.Return.String())
	assert.Equal(t, []model.Arm{
		{Patterns: []string{"Self::A { x, .. }"}, Body: "Some(&**x)"},
		{Patterns: []string{"Self::B { x, .. }"}, Body: "Some(&**x)"},
	}, x.Body.Match.Arms)
	assert.Equal(t, "None", x.Body.Match.Fallback)

	// Partial coverage rules out every assigning accessor.
	assert.Equal(t, []string{"x", "x_mut", "into_x", "is_a", "is_b", "is_c"}, names(methods))
}

func TestGenerateEnum_SetAvoidsShadowing(t *testing.T) {
	e := newEnum(
		newCase("A", field("x", "u32")),
		newCase("B", field("x", "u32")),
	)
	methods := generate(t, e)

	set := find(t, methods, "set_x")
	require.Len(t, set.Args, 1)
	assert.Equal(t, "x", set.Args[0].Name)
	assert.Equal(t, "&mut Self", set.Return.String())
	m := set.Body.Match
	require.NotNil(t, m)
	assert.True(t, m.Stmt)
	assert.Equal(t, "self", m.Tail)
	assert.Equal(t, []model.Arm{{
		Patterns: []string{"Self::A { x: x_binding, .. }", "Self::B { x: x_binding, .. }"},
		Body:     "*x_binding = x",
	}}, m.Arms)

	with := find(t, methods, "with_x")
	assert.Equal(t, model.RecvOwnedMut, with.Receiver)
	assert.Equal(t, "&mut self", with.Body.Match.Scrutinee)
	assert.Equal(t, "Self", with.Return.String())
	assert.True(t, with.MustUse)

	get := find(t, methods, "x")
	assert.Equal(t, "u32", get.Return.String())
	assert.Equal(t, "*x", get.Body.Match.Arms[0].Body)
}

func TestGenerateEnum_ArgNameAvoidsSuffix(t *testing.T) {
	f := field("x", "u32")
	f.Directives.Kinds = map[config.Kind]*config.Settings{config.KindSet: {Arg: config.Ptr("value")}}
	e := newEnum(newCase("A", f), newCase("B", field("x", "u32")))

	set := find(t, generate(t, e), "set_x")
	assert.Equal(t, "*x = value", set.Body.Match.Arms[0].Body)
	assert.Equal(t, []string{"Self::A { x, .. }", "Self::B { x, .. }"}, set.Body.Match.Arms[0].Patterns)
}

func TestGenerateEnum_Optional(t *testing.T) {
	e := newEnum(
		newCase("A", field("label", "Option<String>")),
		newCase("B", field("label", "Option<String>")),
		newCase("C"),
	)
	methods := generate(t, e)

	get := find(t, methods, "label")
	// Already optional, so the partial accessor is not wrapped twice.
	assert.Equal(t, "Option<&str>", get.Return.String())
	assert.Equal(t, "label.as_deref()", get.Body.Match.Arms[0].Body)
	assert.Equal(t, "None", get.Body.Match.Fallback)

	take := find(t, methods, "take_label")
	assert.Equal(t, "Option<String>", take.Return.String())
	assert.Equal(t, []model.Arm{
		{Patterns: []string{"Self::A { label, .. }"}, Body: "label.take()"},
		{Patterns: []string{"Self::B { label, .. }"}, Body: "label.take()"},
	}, take.Body.Match.Arms)
	assert.Equal(t, "None", take.Body.Match.Fallback)

	into := find(t, methods, "into_label")
	assert.Equal(t, "Option<Option<String>>", into.Return.String())
	assert.Equal(t, "Some(label)", into.Body.Match.Arms[0].Body)
}

func TestGenerateEnum_Deref(t *testing.T) {
	e := newEnum(newCase("A", field("data", "Box<String>")), newCase("B", field("data", "Box<String>")))

	methods := generate(t, e)
	get := find(t, methods, "data")
	assert.Equal(t, "&str", get.Return.String())
	assert.Equal(t, "&***data", get.Body.Match.Arms[0].Body)

	mut := find(t, methods, "data_mut")
	assert.Equal(t, "&mut str", mut.Return.String())
	assert.Equal(t, "&mut ***data", mut.Body.Match.Arms[0].Body)

	off := field("data", "Box<String>")
	off.Directives.Default.Deref = &config.Deref{}
	e = newEnum(newCase("A", off), newCase("B", field("data", "Box<String>")))
	get = find(t, generate(t, e), "data")
	assert.Equal(t, "&Box<String>", get.Return.String())
	assert.Equal(t, "data", get.Body.Match.Arms[0].Body)
}

func TestGenerateEnum_TupleCases(t *testing.T) {
	pair := &model.Case{Name: "Pair", Shape: model.ShapeTuple, Fields: []*model.Field{
		{Name: "_0", Index: 0, Type: field("", "i32").Type},
		{Name: "_1", Index: 1, Type: field("", "i32").Type},
	}}
	single := &model.Case{Name: "Single", Shape: model.ShapeTuple, Fields: []*model.Field{
		{Name: "_0", Index: 0, Type: field("", "i32").Type},
	}}
	methods := generate(t, newEnum(pair, single))

	first := find(t, methods, "_0")
	assert.Equal(t, "i32", first.Return.String())
	assert.Equal(t, []string{"Self::Pair(_0, ..)", "Self::Single(_0, ..)"}, first.Body.Match.Arms[0].Patterns)

	second := find(t, methods, "_1")
	assert.Equal(t, "Option<i32>", second.Return.String())
	assert.Equal(t, []string{"Self::Pair(_, _1, ..)"}, second.Body.Match.Arms[0].Patterns)

	is := find(t, methods, "is_pair")
	assert.Equal(t, "matches!(self, Self::Pair(..))", is.Body.Expr)
}

func TestGenerateEnum_MixedTypesDecline(t *testing.T) {
	e := newEnum(newCase("A", field("x", "u32")), newCase("B", field("x", "u64")))
	assert.Equal(t, []string{"is_a", "is_b"}, names(generate(t, e)))
}

func TestGenerateEnum_Predicates(t *testing.T) {
	unit := newCase("Empty")
	named := newCase("HttpRequest", field("url", "String"))
	named.Doc = []string{"An outgoing request."}
	renamed := newCase("Other")
	renamed.Directives.Is = &config.Settings{Rename: config.Ptr("is_something_else")}
	skipped := newCase("Hidden")
	skipped.Directives.Is = &config.Settings{Skip: config.Ptr(true)}
	e := newEnum(unit, named, renamed, skipped)

	methods := generate(t, e)
	var preds []*model.MethodSpec
	for _, m := range methods {
		if m.Kind == config.KindIs {
			preds = append(preds, m)
		}
	}
	require.Len(t, preds, 3)
	assert.Equal(t, "is_empty", preds[0].Name)
	assert.Equal(t, "matches!(self, Self::Empty)", preds[0].Body.Expr)
	assert.Equal(t, "bool", preds[0].Return.String())
	assert.Equal(t, "Returns `true` if this is the `Empty` variant.", preds[0].Doc)

	assert.Equal(t, "is_http_request", preds[1].Name)
	assert.Equal(t, "matches!(self, Self::HttpRequest { .. })", preds[1].Body.Expr)
	assert.Equal(t, "Returns `true` if this is the `HttpRequest` variant.\nAn outgoing request.", preds[1].Doc)
	assert.Equal(t, "HttpRequest", preds[1].Member)

	assert.Equal(t, "is_something_else", preds[2].Name)
}

func TestGenerateEnum_PredicatesOptIn(t *testing.T) {
	a := newCase("A")
	b := newCase("B")
	b.Directives.Is = &config.Settings{}
	e := newEnum(a, b)
	e.Directives.Mode = config.ModeOptIn
	e.Directives.Kinds = map[config.Kind]*config.Settings{config.KindIs: {Template: config.Ptr("{}_case")}}

	assert.Equal(t, []string{"b_case"}, names(generate(t, e)))
}

func TestGenerateEnum_RepresentativeDirectives(t *testing.T) {
	a := field("x", "u32")
	a.Directives.Kinds = map[config.Kind]*config.Settings{config.KindGetMut: {Skip: config.Ptr(true)}}
	b := field("x", "u32")
	e := newEnum(newCase("A", a), newCase("B", b))
	assert.NotContains(t, names(generate(t, e)), "x_mut")
}
