// Package components holds the naming and documentation conventions of the
// generated accessors.
package components

import (
	"strings"
	"unicode"

	"github.com/origadmin/accgen/internal/config"
)

// DefaultTemplates are the built-in naming templates per accessor kind.
var DefaultTemplates = map[config.Kind]string{
	config.KindGet:     "{}",
	config.KindGetMut:  "{}_mut",
	config.KindSet:     "set_{}",
	config.KindWith:    "with_{}",
	config.KindWithout: "without_{}",
	config.KindTake:    "take_{}",
	config.KindInto:    "into_{}",
	config.KindIs:      "is_{}",
}

// BoolPrefix replaces the bare-name convention of boolean borrow accessors.
const BoolPrefix = "is_"

// ApplyTemplate substitutes name into the placeholder of tpl.
func ApplyTemplate(tpl, name string) string {
	return strings.Replace(tpl, config.Placeholder, name, 1)
}

// MethodName names the accessor of kind for a member whose base name is
// name, using the entity template when one is set.
func MethodName(kind config.Kind, tpl *string, name string) string {
	if tpl != nil {
		return ApplyTemplate(*tpl, name)
	}
	return ApplyTemplate(DefaultTemplates[kind], name)
}

// ToSnakeCase converts a case name such as "HttpRequest" or "HTTPRequest" to
// "http_request".
func ToSnakeCase(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i, r := range runes {
		if r == '-' || r == ' ' {
			r = '_'
		}
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					sb.WriteByte('_')
				}
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
