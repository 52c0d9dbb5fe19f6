package components

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/origadmin/accgen/internal/config"
)

// DefaultDocs are the built-in documentation phrases per accessor kind. The
// placeholder receives the member description, or the case name for
// predicates.
var DefaultDocs = map[config.Kind]string{
	config.KindGet:     "Gets {}.",
	config.KindGetMut:  "Gets a mutable reference to {}.",
	config.KindSet:     "Sets {}.",
	config.KindWith:    "Returns `self` with {} set.",
	config.KindWithout: "Returns `self` with {} cleared.",
	config.KindTake:    "Takes {} out, leaving `None` in its place.",
	config.KindInto:    "Consumes `self`, returning {}.",
	config.KindIs:      "Returns `true` if this is the `{}` variant.",
}

// FieldPhrase describes a member without documentation.
func FieldPhrase(name string) string {
	return fmt.Sprintf("the `%s` field", name)
}

// Doc renders a documentation template for a member with the given doc
// lines. The first line fills the placeholder, the rest follow on their own
// lines.
func Doc(tpl string, lines []string, name string) string {
	subject := FieldPhrase(name)
	var rest []string
	if len(lines) > 0 {
		subject = lowerFirst(strings.TrimRight(strings.TrimSpace(lines[0]), "."))
		rest = lines[1:]
	}
	doc := ApplyTemplate(tpl, subject)
	if len(rest) == 0 {
		return doc
	}
	return doc + "\n" + strings.Join(rest, "\n")
}

// KindDoc renders the documentation of kind from the entity template, or the
// built-in phrase when tpl is nil.
func KindDoc(kind config.Kind, tpl *string, lines []string, name string) string {
	if tpl != nil {
		return Doc(*tpl, lines, name)
	}
	return Doc(DefaultDocs[kind], lines, name)
}

// lowerFirst lowers the first letter of s unless it starts an acronym.
func lowerFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	if len(runes) > 1 && unicode.IsUpper(runes[1]) {
		return s
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
