package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/origadmin/accgen/internal/diag"
	"github.com/origadmin/accgen/internal/types"
)

// DecodeSettings decodes the directive keys of one tier from a generic table
// as produced by the TOML decoder. Keys listed in skipKeys belong to the
// enclosing declaration and are ignored here. Unknown keys are reported with
// a suggestion drawn from the keys valid at this position.
func DecodeSettings(loc diag.Location, tier Tier, kind Kind, raw map[string]any, skipKeys []string) (*Settings, []error) {
	s := &Settings{}
	var errs []error
	allowed := AllowedKeys(tier, kind)
	for _, key := range sortedKeys(raw) {
		if slices.Contains(skipKeys, key) {
			continue
		}
		val := raw[key]
		kloc := loc.Child(key)
		if !slices.Contains(allowed, key) {
			if slices.Contains(SettingKeys, key) {
				e := diag.Errorf(kloc, "directive %q is not valid at the %s tier", key, tier)
				e.Expected = allowed
				errs = append(errs, e)
				continue
			}
			valid := append(slices.Clone(allowed), skipKeys...)
			errs = append(errs, diag.UnknownKey(loc, "key", key, valid))
			continue
		}
		if err := s.set(kloc, key, val); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, Check(loc, tier, kind, s)...)
	return s, errs
}

// DecodeKind decodes a per-kind entry, which is either a boolean (true marks
// the kind present, false skips it) or a table of directives.
func DecodeKind(loc diag.Location, tier Tier, kind Kind, raw any) (*Settings, []error) {
	switch v := raw.(type) {
	case bool:
		s := &Settings{}
		if !v {
			s.Skip = Ptr(true)
		}
		return s, nil
	case map[string]any:
		return DecodeSettings(loc, tier, kind, v, nil)
	default:
		return nil, []error{diag.Errorf(loc, "%s must be a boolean or a table, got %s", kind, typeName(raw))}
	}
}

func (s *Settings) set(loc diag.Location, key string, val any) error {
	var err error
	switch key {
	case KeySkip:
		s.Skip, err = boolValue(loc, val)
	case KeyVis:
		s.Vis, err = stringValue(loc, val)
		if err == nil {
			if vis, ok := NormalizeVis(*s.Vis); ok {
				s.Vis = &vis
			}
		}
	case KeyRename:
		s.Rename, err = stringValue(loc, val)
	case KeyTemplate:
		s.Template, err = stringValue(loc, val)
	case KeyDoc:
		s.Doc, err = docValue(loc, val)
	case KeyArg:
		s.Arg, err = stringValue(loc, val)
	case KeyCopy:
		s.Copy, err = boolValue(loc, val)
	case KeyOption:
		s.Option, err = boolValue(loc, val)
	case KeyDeref:
		s.Deref, err = derefValue(loc, val)
	case KeyInto:
		s.Into, err = boolValue(loc, val)
	case KeyWrap:
		s.Wrap, err = boolValue(loc, val)
	case KeyChain:
		s.Chain, err = boolValue(loc, val)
	case KeyMustUse:
		s.MustUse, err = boolValue(loc, val)
	case KeyIsPrefix:
		s.IsPrefix, err = boolValue(loc, val)
	case KeyValue:
		s.Value, err = stringValue(loc, val)
	default:
		err = diag.UnknownKey(loc, "key", key, SettingKeys)
	}
	return err
}

func boolValue(loc diag.Location, val any) (*bool, error) {
	b, ok := val.(bool)
	if !ok {
		return nil, diag.Errorf(loc, "expected a boolean, got %s", typeName(val))
	}
	return &b, nil
}

func stringValue(loc diag.Location, val any) (*string, error) {
	s, ok := val.(string)
	if !ok {
		return nil, diag.Errorf(loc, "expected a string, got %s", typeName(val))
	}
	return &s, nil
}

// docValue accepts a string or an array of lines.
func docValue(loc diag.Location, val any) (*string, error) {
	lines, err := StringList(loc, val)
	if err != nil {
		return nil, err
	}
	doc := strings.Join(lines, "\n")
	return &doc, nil
}

func derefValue(loc diag.Location, val any) (*Deref, error) {
	switch v := val.(type) {
	case bool:
		return &Deref{Enabled: v}, nil
	case string:
		t, err := types.Parse(v)
		if err != nil {
			return nil, diag.Errorf(loc, "invalid deref target: %v", err)
		}
		return &Deref{Enabled: true, Target: t}, nil
	default:
		return nil, diag.Errorf(loc, "expected a boolean or a type, got %s", typeName(val))
	}
}

// StringList accepts a string or an array of strings.
func StringList(loc diag.Location, val any) ([]string, error) {
	switch v := val.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, diag.Errorf(loc.Index(i), "expected a string, got %s", typeName(item))
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, diag.Errorf(loc, "expected a string or an array of strings, got %s", typeName(val))
	}
}

func typeName(val any) string {
	switch val.(type) {
	case nil:
		return "nothing"
	case bool:
		return "a boolean"
	case string:
		return "a string"
	case int64, int:
		return "an integer"
	case float64:
		return "a float"
	case []any, []map[string]any:
		return "an array"
	case map[string]any:
		return "a table"
	default:
		return fmt.Sprintf("%T", val)
	}
}

// TypeName describes the shape of a decoded value for error messages.
func TypeName(val any) string {
	return typeName(val)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SortedKeys returns the keys of a decoded table in lexical order.
func SortedKeys(m map[string]any) []string {
	return sortedKeys(m)
}
