package template

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/model"
	"github.com/origadmin/accgen/internal/types"
)

func TestSignature(t *testing.T) {
	tests := []struct {
		name string
		m    *model.MethodSpec
		want string
	}{
		{
			name: "getter",
			m:    &model.MethodSpec{Name: "count", Visibility: "pub", Return: types.MustParse("u32")},
			want: "pub fn count(&self) -> u32",
		},
		{
			name: "private unit setter",
			m: &model.MethodSpec{Name: "set_count", Receiver: model.RecvRefMut, Args: []model.Arg{
				{Name: "count", Type: types.MustParse("u32")},
			}},
			want: "fn set_count(&mut self, count: u32)",
		},
		{
			name: "builder",
			m: &model.MethodSpec{Name: "with_name", Visibility: "pub(crate)", Receiver: model.RecvOwnedMut,
				Args:   []model.Arg{{Name: "name", Type: types.Into(types.MustParse("String"))}},
				Return: types.SelfType()},
			want: "pub(crate) fn with_name(mut self, name: impl Into<String>) -> Self",
		},
		{
			name: "explicit unit",
			m:    &model.MethodSpec{Name: "clear", Receiver: model.RecvOwned, Return: types.Unit()},
			want: "fn clear(self)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Signature(tt.m))
		})
	}
}

func TestBodyLines(t *testing.T) {
	tests := []struct {
		name string
		body model.Body
		want []string
	}{
		{
			name: "expression",
			body: model.Body{Expr: "&self.name"},
			want: []string{"&self.name"},
		},
		{
			name: "statements then tail",
			body: model.Body{Stmts: []string{"self.count = count"}, Expr: "self"},
			want: []string{"self.count = count;", "self"},
		},
		{
			name: "partial read",
			body: model.Body{Match: &model.Match{
				Scrutinee: "self",
				Arms:      []model.Arm{{Patterns: []string{"Self::A { y, .. }"}, Body: "Some(*y)"}},
				Fallback:  "None",
			}},
			want: []string{
				"match self {",
				"    Self::A { y, .. } => Some(*y),",
				"    _ => None,",
				"}",
			},
		},
		{
			name: "statement match",
			body: model.Body{Match: &model.Match{
				Scrutinee: "&mut self",
				Arms: []model.Arm{{
					Patterns: []string{"Self::A { x: x_binding, .. }", "Self::B { x: x_binding, .. }"},
					Body:     "*x_binding = x",
				}},
				Stmt: true,
				Tail: "self",
			}},
			want: []string{
				"match &mut self {",
				"    Self::A { x: x_binding, .. } | Self::B { x: x_binding, .. } => *x_binding = x,",
				"}",
				"self",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BodyLines(tt.body))
		})
	}
}

func TestDocLines(t *testing.T) {
	assert.Nil(t, DocLines(""))
	assert.Equal(t, []string{"/// Gets the count.", "///", "/// More."}, DocLines("Gets the count.\n\nMore."))
}

func sampleImpl() Impl {
	return NewImpl("Config", []*model.MethodSpec{
		{
			Kind: config.KindGet, Name: "count", Visibility: "pub", Return: types.MustParse("u32"),
			Doc: "Gets the `count` field.", Body: model.Body{Expr: "self.count"},
		},
		{
			Kind: config.KindWith, Name: "with_count", Visibility: "pub", Receiver: model.RecvOwnedMut,
			Args:    []model.Arg{{Name: "count", Type: types.MustParse("u32")}},
			Return:  types.SelfType(),
			MustUse: true,
			Body:    model.Body{Stmts: []string{"self.count = count"}, Expr: "self"},
		},
	})
}

func TestManager_Render(t *testing.T) {
	want := "impl Config {\n" +
		"    /// Gets the `count` field.\n" +
		"    pub fn count(&self) -> u32 {\n" +
		"        self.count\n" +
		"    }\n" +
		"\n" +
		"    #[must_use]\n" +
		"    pub fn with_count(mut self, count: u32) -> Self {\n" +
		"        self.count = count;\n" +
		"        self\n" +
		"    }\n" +
		"}\n"
	got, err := NewManager().RenderString(sampleImpl())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestManager_RenderSeveral(t *testing.T) {
	unit := NewImpl("Empty", nil)
	shape := NewImpl("Shape", []*model.MethodSpec{{
		Kind: config.KindIs, Name: "is_a", Visibility: "pub", Return: types.Bool(),
		Body: model.Body{Expr: "matches!(self, Self::A)"},
	}})
	var buf bytes.Buffer
	require.NoError(t, NewManager().Render(&buf, []Impl{sampleImpl(), unit, shape}))
	out := buf.String()
	assert.NotContains(t, out, "impl Empty")
	assert.Contains(t, out, "    }\n}\n\nimpl Shape {\n    pub fn is_a(&self) -> bool {\n        matches!(self, Self::A)\n    }\n}\n")
}

func TestManager_Load(t *testing.T) {
	dir := t.TempDir()
	custom := `{{- define "impl" -}}
// {{ .Name }}: {{ len .Methods }} accessors
{{ end }}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.tpl"), []byte(custom), 0o644))

	m := NewManager()
	require.NoError(t, m.Load(dir))
	got, err := m.RenderString(sampleImpl())
	require.NoError(t, err)
	assert.Equal(t, "// Config: 2 accessors\n", got)

	assert.Error(t, m.Load(filepath.Join(dir, "missing.tpl")))
	got, err = m.RenderString(sampleImpl())
	require.NoError(t, err)
	assert.Equal(t, "// Config: 2 accessors\n", got)
}
