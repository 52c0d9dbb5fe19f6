// Package diag reports configuration errors anchored at the directive that
// caused them.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Location identifies the offending directive: the declaration file and the
// key path inside it.
type Location struct {
	File string
	Key  string
	// Line is 1-based and zero when unknown.
	Line int
}

func (l Location) String() string {
	var parts []string
	if l.File != "" {
		if l.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", l.File, l.Line))
		} else {
			parts = append(parts, l.File)
		}
	}
	if l.Key != "" {
		parts = append(parts, l.Key)
	}
	return strings.Join(parts, ": ")
}

// Child returns the location of a nested key.
func (l Location) Child(key string) Location {
	if l.Key == "" {
		l.Key = key
	} else {
		l.Key = l.Key + "." + key
	}
	return l
}

// Index returns the location of an array element.
func (l Location) Index(i int) Location {
	l.Key = fmt.Sprintf("%s[%d]", l.Key, i)
	return l
}

// Error is a located configuration error.
type Error struct {
	Loc Location
	Msg string
	// Suggestion is the nearest valid key when the offending one looks like
	// a typo.
	Suggestion string
	// Expected lists the recognized keys when no suggestion is close enough.
	Expected []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	if loc := e.Loc.String(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Msg)
	if hint := e.Hint(); hint != "" {
		sb.WriteString("; ")
		sb.WriteString(hint)
	}
	return sb.String()
}

// Hint returns the suggestion part of the message, if any.
func (e *Error) Hint() string {
	switch {
	case e.Suggestion != "":
		return fmt.Sprintf("did you mean %q?", e.Suggestion)
	case len(e.Expected) > 0:
		return "expected one of: " + strings.Join(e.Expected, ", ")
	default:
		return ""
	}
}

// Errorf builds an Error at loc.
func Errorf(loc Location, format string, args ...any) *Error {
	return &Error{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

// UnknownKey builds the error for an unrecognized key, suggesting the nearest
// valid one or listing all of them.
func UnknownKey(loc Location, what, key string, valid []string) *Error {
	e := Errorf(loc, "unknown %s %q", what, key)
	if s, ok := Suggest(key, valid); ok {
		e.Suggestion = s
	} else {
		e.Expected = append([]string(nil), valid...)
	}
	return e
}

// List flattens err into its located errors. Errors that are not *Error are
// returned as is.
func List(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, List(e)...)
		}
		return out
	}
	return []error{err}
}

// IsConfig reports whether err carries at least one configuration error.
func IsConfig(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
