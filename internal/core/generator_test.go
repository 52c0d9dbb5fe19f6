package core

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/origadmin/accgen/internal/diag"
	"github.com/origadmin/accgen/internal/model"
)

// section returns the named file of a, and whether it is present.
func section(a *txtar.Archive, name string) (string, bool) {
	for _, f := range a.Files {
		if f.Name == name {
			return string(f.Data), true
		}
	}
	return "", false
}

// TestGolden runs every archive under testdata. An archive holds decl.toml,
// the expected text output want.rs and the expected diagnostics want.err;
// a missing want file means no output of that kind.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			require.NoError(t, err)
			decl, ok := section(a, "decl.toml")
			require.True(t, ok, "archive has no decl.toml")
			wantRS, _ := section(a, "want.rs")
			wantErr, _ := section(a, "want.err")

			var out, errs bytes.Buffer
			printer := diag.NewPrinter(&errs, false)
			g := NewGenerator()
			res, err := g.Process("decl.toml", []byte(decl))
			if err != nil {
				printer.Print(err)
			} else {
				require.NoError(t, g.Write(&out, res, FormatText))
				printer.Print(res.Err())
			}
			assert.Equal(t, wantRS, out.String())
			assert.Equal(t, wantErr, errs.String())
		})
	}
}

const pointDecl = `
[[entity]]
name = "Point"
only = ["get", "set"]

[[entity.fields]]
name = "x"
type = "i32"

[[entity.fields]]
name = "tag"
type = "Option<String>"
option = true

[entity.fields.set]
wrap = true
chain = false
`

func TestProcess_Msgpack(t *testing.T) {
	g := NewGenerator()
	res, err := g.Process("point.toml", []byte(pointDecl))
	require.NoError(t, err)
	require.NoError(t, res.Err())

	var buf bytes.Buffer
	require.NoError(t, g.Write(&buf, res, FormatMsgpack))
	got, err := DecodeMsgpack(&buf)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Point", got[0].Entity)
	assert.Equal(t, "struct", got[0].Kind)
	require.Len(t, got[0].Methods, 4)

	get := got[0].Methods[0]
	assert.Equal(t, MethodOutput{
		Name:       "x",
		Kind:       "get",
		Member:     "x",
		Visibility: "pub",
		Receiver:   "&self",
		Return:     "i32",
		Doc:        "Gets the `x` field.",
		Body:       []string{"self.x"},
	}, get)

	set := got[0].Methods[3]
	assert.Equal(t, "set_tag", set.Name)
	assert.Equal(t, "&mut self", set.Receiver)
	assert.Equal(t, []ArgOutput{{Name: "tag", Type: "String"}}, set.Args)
	assert.Empty(t, set.Return)
	assert.Equal(t, []string{"self.tag = Some(tag);"}, set.Body)
}

func TestWrite_UnknownFormat(t *testing.T) {
	g := NewGenerator()
	res, err := g.Process("point.toml", []byte(pointDecl))
	require.NoError(t, err)
	assert.ErrorContains(t, g.Write(&bytes.Buffer{}, res, "yaml"), `unsupported output format "yaml"`)
}

func TestProcessFile_Missing(t *testing.T) {
	_, err := NewGenerator().ProcessFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to read declaration file")
}

func TestResult_Generated(t *testing.T) {
	res, err := NewGenerator().Process("decl.toml", []byte(`
[[entity]]
name = "A"
vis = "public"

[[entity]]
name = "B"
`))
	require.NoError(t, err)
	require.Len(t, res.Entities, 2)
	assert.Error(t, res.Entities[0].Err)
	assert.Nil(t, res.Entities[0].Methods)
	assert.NoError(t, res.Entities[1].Err)
	assert.True(t, diag.IsConfig(res.Err()))

	generated := res.Generated()
	require.Len(t, generated, 1)
	assert.Equal(t, "B", generated[0].Entity.Name)
}

type failingSynthesizer struct{ fail string }

func (s failingSynthesizer) Generate(e *model.Entity) ([]*model.MethodSpec, error) {
	if e.Name == s.fail {
		return []*model.MethodSpec{{Name: "partial"}}, errors.New("synthesis failed")
	}
	return nil, nil
}

func TestProcess_SynthesisErrorDropsMethods(t *testing.T) {
	g := NewGenerator().WithSynthesizer(failingSynthesizer{fail: "A"})
	res, err := g.Process("decl.toml", []byte("[[entity]]\nname = \"A\"\n\n[[entity]]\nname = \"B\"\n"))
	require.NoError(t, err)
	require.Len(t, res.Entities, 2)
	assert.EqualError(t, res.Entities[0].Err, "synthesis failed")
	assert.Nil(t, res.Entities[0].Methods)
	assert.NoError(t, res.Entities[1].Err)
	assert.False(t, diag.IsConfig(res.Err()))
}
