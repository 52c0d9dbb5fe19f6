package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/model"
	"github.com/origadmin/accgen/internal/types"
)

func field(name, typ string) *model.Field {
	return &model.Field{Name: name, Index: -1, Type: types.MustParse(typ)}
}

func positional(i int, typ string) *model.Field {
	return &model.Field{Name: model.PositionalName(i), Index: i, Type: types.MustParse(typ)}
}

func newCase(name string, fields ...*model.Field) *model.Case {
	shape := model.ShapeStruct
	if len(fields) == 0 {
		shape = model.ShapeUnit
	} else if fields[0].Positional() {
		shape = model.ShapeTuple
	}
	return &model.Case{Name: name, Shape: shape, Fields: fields}
}

func newEnum(cases ...*model.Case) *model.Entity {
	return &model.Entity{Name: "Shape", Kind: model.Enum, Cases: cases}
}

func lookup(cov *Coverage, name string) (*VirtualField, bool) {
	for _, vf := range cov.Fields {
		if vf.Name == name {
			return vf, true
		}
	}
	return nil, false
}

func TestPlan_FullAndPartial(t *testing.T) {
	e := newEnum(
		newCase("A", field("x", "u32"), field("y", "String")),
		newCase("B", field("x", "u32")),
	)
	cov := NewPlanner().Plan(e)

	require.Len(t, cov.Fields, 2)
	assert.Equal(t, 2, cov.Total)
	assert.Equal(t, 2, cov.Active)

	x, ok := lookup(cov, "x")
	require.True(t, ok)
	assert.True(t, x.Full())
	assert.Equal(t, []string{"A", "B"}, x.Cases())
	assert.True(t, x.Uniform())

	y, ok := lookup(cov, "y")
	require.True(t, ok)
	assert.False(t, y.Full())
	assert.Equal(t, []string{"A"}, y.Cases())

	_, ok = lookup(cov, "z")
	assert.False(t, ok)
}

func TestPlan_ExcludedCaseForcesPartialCoverage(t *testing.T) {
	excluded := newCase("C", field("x", "u32"))
	excluded.Directives.Skip = true
	e := newEnum(
		newCase("A", field("x", "u32")),
		newCase("B", field("x", "u32")),
		excluded,
	)
	cov := NewPlanner().Plan(e)

	assert.Equal(t, 3, cov.Total)
	assert.Equal(t, 2, cov.Active)
	x, ok := lookup(cov, "x")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, x.Cases())
	// Present in every active case, still partial.
	assert.False(t, x.Full())
}

func TestPlan_CoverageConsistency(t *testing.T) {
	for n := 1; n <= 5; n++ {
		cases := make([]*model.Case, n)
		for i := range cases {
			cases[i] = newCase(fmt.Sprintf("C%d", i), field("shared", "bool"))
		}
		cov := NewPlanner().Plan(newEnum(cases...))
		shared, ok := lookup(cov, "shared")
		require.True(t, ok)
		assert.True(t, shared.Full(), "n=%d", n)

		for skip := 0; skip < n; skip++ {
			for i, c := range cases {
				c.Directives.Skip = i == skip
			}
			cov := NewPlanner().Plan(newEnum(cases...))
			if shared, ok := lookup(cov, "shared"); ok {
				assert.False(t, shared.Full(), "n=%d skip=%d", n, skip)
			} else {
				assert.Equal(t, 1, n, "only a single excluded case leaves nothing to unify")
			}
		}
		for _, c := range cases {
			c.Directives.Skip = false
		}
	}
}

func TestPlan_RenameUnifies(t *testing.T) {
	b := field("radius", "f64")
	b.Directives.Default.Rename = config.Ptr("size")
	e := newEnum(
		newCase("A", field("size", "f64")),
		newCase("B", b),
	)
	cov := NewPlanner().Plan(e)
	require.Len(t, cov.Fields, 1)
	size := cov.Fields[0]
	assert.Equal(t, "size", size.Name)
	assert.True(t, size.Full())
	assert.Equal(t, "Self::B { radius: size, .. }", size.Pattern(size.Entries[1], size.Binding("")))
}

func TestPlan_OrderIsFirstSeen(t *testing.T) {
	e := newEnum(
		newCase("A", field("b", "u8"), field("a", "u8")),
		newCase("B", field("c", "u8"), field("a", "u8")),
	)
	cov := NewPlanner().Plan(e)
	var names []string
	for _, f := range cov.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)
}

func TestPlan_DuplicateBindingInOneCase(t *testing.T) {
	dup := field("other", "u8")
	dup.Directives.Default.Rename = config.Ptr("x")
	e := newEnum(newCase("A", field("x", "u8"), dup))
	cov := NewPlanner().Plan(e)
	x, _ := lookup(cov, "x")
	require.Len(t, x.Entries, 1)
	assert.Equal(t, "x", x.Entries[0].Field.Name)
}

func TestVirtualField_Uniform(t *testing.T) {
	e := newEnum(
		newCase("A", field("x", "u32")),
		newCase("B", field("x", "u64")),
	)
	x, _ := lookup(NewPlanner().Plan(e), "x")
	assert.False(t, x.Uniform())
}

func TestVirtualField_Binding(t *testing.T) {
	v := &VirtualField{Name: "x"}
	assert.Equal(t, "x", v.Binding(""))
	assert.Equal(t, "x", v.Binding("value"))
	assert.Equal(t, "x_binding", v.Binding("x"))
}

func TestVirtualField_Pattern(t *testing.T) {
	tuple := newCase("Pair", positional(0, "i32"), positional(1, "i32"), positional(2, "i32"))
	named := newCase("Point", field("x", "i32"), field("y", "i32"))
	v := &VirtualField{}

	testCases := []struct {
		name  string
		entry Entry
		local string
		want  string
	}{
		{"tuple first", Entry{tuple, tuple.Fields[0]}, "_0", "Self::Pair(_0, ..)"},
		{"tuple middle", Entry{tuple, tuple.Fields[1]}, "_1", "Self::Pair(_, _1, ..)"},
		{"tuple last", Entry{tuple, tuple.Fields[2]}, "v", "Self::Pair(_, _, v, ..)"},
		{"named", Entry{named, named.Fields[1]}, "y", "Self::Point { y, .. }"},
		{"named rebound", Entry{named, named.Fields[0]}, "x_binding", "Self::Point { x: x_binding, .. }"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Pattern(tt.entry, tt.local))
		})
	}
}

func TestCasePattern(t *testing.T) {
	assert.Equal(t, "Self::Empty", CasePattern(newCase("Empty")))
	assert.Equal(t, "Self::Pair(..)", CasePattern(newCase("Pair", positional(0, "u8"))))
	assert.Equal(t, "Self::Point { .. }", CasePattern(newCase("Point", field("x", "u8"))))
}
