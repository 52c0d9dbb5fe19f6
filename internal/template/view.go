package template

import (
	"strings"

	"github.com/origadmin/accgen/internal/model"
)

// Impl is the data of one impl block.
type Impl struct {
	Name    string
	Methods []Method
}

// Method is a MethodSpec laid out as text lines. Body lines are relative to
// the method body indentation.
type Method struct {
	Name      string
	Kind      string
	Member    string
	Doc       []string
	MustUse   bool
	Signature string
	Body      []string
}

// NewImpl lays out the methods of entity name.
func NewImpl(name string, methods []*model.MethodSpec) Impl {
	impl := Impl{Name: name, Methods: make([]Method, 0, len(methods))}
	for _, m := range methods {
		impl.Methods = append(impl.Methods, NewMethod(m))
	}
	return impl
}

// NewMethod lays out m.
func NewMethod(m *model.MethodSpec) Method {
	return Method{
		Name:      m.Name,
		Kind:      m.Kind.String(),
		Member:    m.Member,
		Doc:       DocLines(m.Doc),
		MustUse:   m.MustUse,
		Signature: Signature(m),
		Body:      BodyLines(m.Body),
	}
}

// DocLines turns documentation text into outer doc comment lines.
func DocLines(doc string) []string {
	if doc == "" {
		return nil
	}
	lines := strings.Split(doc, "\n")
	out := make([]string, len(lines))
	for i, l := range lines {
		if l == "" {
			out[i] = "///"
			continue
		}
		out[i] = "/// " + l
	}
	return out
}

// Signature renders the method header up to the opening brace.
func Signature(m *model.MethodSpec) string {
	var sb strings.Builder
	if m.Visibility != "" {
		sb.WriteString(m.Visibility)
		sb.WriteByte(' ')
	}
	sb.WriteString("fn ")
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	sb.WriteString(m.Receiver.String())
	for _, a := range m.Args {
		sb.WriteString(", ")
		sb.WriteString(a.Name)
		sb.WriteString(": ")
		sb.WriteString(a.Type.String())
	}
	sb.WriteByte(')')
	if m.Return != nil && !m.Return.IsUnit() {
		sb.WriteString(" -> ")
		sb.WriteString(m.Return.String())
	}
	return sb.String()
}

const indent = "    "

// BodyLines renders a method body. Statements are terminated; the trailing
// expression, or the match of a reading accessor, is not.
func BodyLines(b model.Body) []string {
	var lines []string
	for _, s := range b.Stmts {
		lines = append(lines, s+";")
	}
	if m := b.Match; m != nil {
		lines = append(lines, "match "+m.Scrutinee+" {")
		for _, a := range m.Arms {
			lines = append(lines, indent+strings.Join(a.Patterns, " | ")+" => "+a.Body+",")
		}
		if m.Fallback != "" {
			lines = append(lines, indent+"_ => "+m.Fallback+",")
		}
		lines = append(lines, "}")
		if m.Tail != "" {
			lines = append(lines, m.Tail)
		}
	}
	if b.Expr != "" {
		lines = append(lines, b.Expr)
	}
	return lines
}
