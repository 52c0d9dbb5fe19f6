package core

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/origadmin/accgen/internal/model"
	"github.com/origadmin/accgen/internal/template"
)

// EntityOutput is the machine-readable form of one generated entity, for
// serializers living outside this tool.
type EntityOutput struct {
	Entity  string         `msgpack:"entity"`
	Kind    string         `msgpack:"kind"`
	Methods []MethodOutput `msgpack:"methods"`
}

// MethodOutput is the machine-readable form of a MethodSpec. Types are
// printed; the body is laid out as it would be rendered.
type MethodOutput struct {
	Name       string      `msgpack:"name"`
	Kind       string      `msgpack:"kind"`
	Member     string      `msgpack:"member"`
	Visibility string      `msgpack:"visibility"`
	Receiver   string      `msgpack:"receiver"`
	Args       []ArgOutput `msgpack:"args"`
	Return     string      `msgpack:"return,omitempty"`
	Doc        string      `msgpack:"doc,omitempty"`
	MustUse    bool        `msgpack:"must_use"`
	Body       []string    `msgpack:"body"`
}

// ArgOutput is one method argument.
type ArgOutput struct {
	Name string `msgpack:"name"`
	Type string `msgpack:"type"`
}

// NewMethodOutput converts m.
func NewMethodOutput(m *model.MethodSpec) MethodOutput {
	out := MethodOutput{
		Name:       m.Name,
		Kind:       m.Kind.String(),
		Member:     m.Member,
		Visibility: m.Visibility,
		Receiver:   m.Receiver.String(),
		Doc:        m.Doc,
		MustUse:    m.MustUse,
		Body:       template.BodyLines(m.Body),
	}
	for _, a := range m.Args {
		out.Args = append(out.Args, ArgOutput{Name: a.Name, Type: a.Type.String()})
	}
	if m.Return != nil && !m.Return.IsUnit() {
		out.Return = m.Return.String()
	}
	return out
}

// Outputs converts the generated entities of r.
func Outputs(r *Result) []EntityOutput {
	var out []EntityOutput
	for _, e := range r.Generated() {
		eo := EntityOutput{Entity: e.Entity.Name, Kind: e.Entity.Kind.String()}
		for _, m := range e.Methods {
			eo.Methods = append(eo.Methods, NewMethodOutput(m))
		}
		out = append(out, eo)
	}
	return out
}

// EncodeMsgpack writes the generated entities of r as a msgpack array.
func EncodeMsgpack(w io.Writer, r *Result) error {
	if err := msgpack.NewEncoder(w).Encode(Outputs(r)); err != nil {
		return fmt.Errorf("failed to encode msgpack: %w", err)
	}
	return nil
}

// DecodeMsgpack reads what EncodeMsgpack wrote.
func DecodeMsgpack(r io.Reader) ([]EntityOutput, error) {
	var out []EntityOutput
	if err := msgpack.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode msgpack: %w", err)
	}
	return out, nil
}
