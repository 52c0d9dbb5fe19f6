// Package parser reads declaration files: TOML documents listing the entities
// to generate accessors for, their members and the directives attached to them.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/diag"
	"github.com/origadmin/accgen/internal/model"
	"github.com/origadmin/accgen/internal/types"
)

// Keys of the declaration tables that are not directives.
const (
	keyEntity  = "entity"
	keyName    = "name"
	keyType    = "type"
	keyShape   = "shape"
	keyMode    = "mode"
	keyOnly    = "only"
	keyDoc     = "doc"
	keyFields  = "fields"
	keyCases   = "cases"
	keyIndex   = "index"
	keyEnabled = "enabled"
	keySkip    = "skip"
	keyIs      = "is"
)

var (
	entityKeys = []string{keyName, keyType, keyShape, keyMode, keyOnly, keyDoc, keyFields, keyCases}
	fieldKeys  = []string{keyName, keyIndex, keyType, keyDoc, keyEnabled}
	caseKeys   = []string{keyName, keyShape, keySkip, keyDoc, keyIs, keyFields}
)

// Decl is one decoded entity. Err holds every configuration error found in
// it; an entity with errors must not be generated.
type Decl struct {
	Entity *model.Entity
	Err    error
}

// Parser decodes declaration files.
type Parser struct {
	file string
}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and decodes the declaration file at path.
func (p *Parser) ParseFile(path string) ([]*Decl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file: %w", err)
	}
	return p.Parse(path, data)
}

// Parse decodes a declaration document. name locates diagnostics. The
// returned error is reserved for documents that are not valid TOML or carry
// no entity list; problems inside one entity are reported on its Decl.
func (p *Parser) Parse(name string, data []byte) ([]*Decl, error) {
	p.file = name
	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	root := diag.Location{File: name}
	for _, key := range config.SortedKeys(doc) {
		if key != keyEntity {
			return nil, diag.UnknownKey(root, "top-level key", key, []string{keyEntity})
		}
	}
	raw, ok := doc[keyEntity]
	if !ok {
		return nil, diag.Errorf(root, "no [[entity]] tables found")
	}
	tables, err := tableArray(root.Child(keyEntity), raw)
	if err != nil {
		return nil, err
	}

	decls := make([]*Decl, 0, len(tables))
	for i, t := range tables {
		entity, errs := p.entity(root.Child(keyEntity).Index(i), t)
		decl := &Decl{Entity: entity, Err: errors.Join(errs...)}
		if decl.Err != nil {
			slog.Debug("Parser: entity has configuration errors", "entity", entity.Name, "errors", len(errs))
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func (p *Parser) entity(loc diag.Location, t map[string]any) (*model.Entity, []error) {
	e := &model.Entity{}
	var errs []error
	collect := func(es ...error) {
		for _, err := range es {
			if err != nil {
				errs = append(errs, err)
			}
		}
	}

	e.Name, errs = requiredIdent(loc, t, keyName, errs)
	if v, ok := t[keyType]; ok {
		switch v {
		case "struct":
			e.Kind = model.Struct
		case "enum":
			e.Kind = model.Enum
		default:
			collect(diag.UnknownKey(loc.Child(keyType), "entity type", fmt.Sprint(v), []string{"struct", "enum"}))
		}
	}
	if v, ok := t[keyMode]; ok {
		s, _ := v.(string)
		mode, ok := config.ParseMode(s)
		if !ok {
			collect(diag.UnknownKey(loc.Child(keyMode), "mode", fmt.Sprint(v), []string{"opt-out", "opt-in"}))
		}
		e.Directives.Mode = mode
	}
	if v, ok := t[keyOnly]; ok {
		names, err := config.StringList(loc.Child(keyOnly), v)
		collect(err)
		for i, n := range names {
			kind, ok := config.ParseKind(n)
			if !ok {
				collect(diag.UnknownKey(loc.Child(keyOnly).Index(i), "accessor kind", n, config.KindNames()))
				continue
			}
			e.Directives.Only = append(e.Directives.Only, kind)
		}
	}
	if v, ok := t[keyDoc]; ok {
		lines, err := config.StringList(loc.Child(keyDoc), v)
		collect(err)
		e.Doc = lines
	}

	skip := append(slices.Clone(entityKeys), config.KindNames()...)
	def, es := config.DecodeSettings(loc, config.TierEntity, 0, t, skip)
	collect(es...)
	e.Directives.Default = *def
	e.Directives.Kinds, es = kinds(loc, config.TierEntityKind, t, config.Kinds)
	collect(es...)

	shape := model.ShapeStruct
	if v, ok := t[keyShape]; ok {
		s, _ := v.(string)
		sh, ok := model.ParseShape(s)
		if !ok || sh == model.ShapeUnit {
			collect(diag.UnknownKey(loc.Child(keyShape), "struct shape", fmt.Sprint(v), []string{"struct", "tuple"}))
		}
		shape = sh
	}

	switch e.Kind {
	case model.Struct:
		if _, ok := t[keyCases]; ok {
			collect(diag.Errorf(loc.Child(keyCases), "a struct has no cases, declare it with type = \"enum\""))
		}
		e.Fields, es = p.fields(loc, t, shape)
		collect(es...)
	case model.Enum:
		if _, ok := t[keyFields]; ok {
			collect(diag.Errorf(loc.Child(keyFields), "an enum has no fields of its own, declare them on its cases"))
		}
		if _, ok := t[keyShape]; ok {
			collect(diag.Errorf(loc.Child(keyShape), "shape applies to cases of an enum"))
		}
		e.Cases, es = p.cases(loc, t)
		collect(es...)
	}
	return e, errs
}

func (p *Parser) cases(loc diag.Location, t map[string]any) ([]*model.Case, []error) {
	raw, ok := t[keyCases]
	if !ok {
		return nil, nil
	}
	tables, err := tableArray(loc.Child(keyCases), raw)
	if err != nil {
		return nil, []error{err}
	}
	var errs []error
	cases := make([]*model.Case, 0, len(tables))
	seen := make(map[string]bool)
	for i, ct := range tables {
		cloc := loc.Child(keyCases).Index(i)
		c := &model.Case{}
		for _, key := range config.SortedKeys(ct) {
			if !slices.Contains(caseKeys, key) {
				errs = append(errs, diag.UnknownKey(cloc, "key", key, caseKeys))
			}
		}
		c.Name, errs = requiredIdent(cloc, ct, keyName, errs)
		if c.Name != "" && seen[c.Name] {
			errs = append(errs, diag.Errorf(cloc.Child(keyName), "duplicate case %q", c.Name))
		}
		seen[c.Name] = true

		if v, ok := ct[keyShape]; ok {
			s, _ := v.(string)
			shape, ok := model.ParseShape(s)
			if !ok {
				errs = append(errs, diag.UnknownKey(cloc.Child(keyShape), "case shape", fmt.Sprint(v), []string{"struct", "tuple", "unit"}))
			}
			c.Shape = shape
		} else if _, hasFields := ct[keyFields]; !hasFields {
			c.Shape = model.ShapeUnit
		}
		if v, ok := ct[keySkip]; ok {
			b, ok := v.(bool)
			if !ok {
				errs = append(errs, diag.Errorf(cloc.Child(keySkip), "expected a boolean, got %s", config.TypeName(v)))
			}
			c.Directives.Skip = b
		}
		if v, ok := ct[keyDoc]; ok {
			lines, err := config.StringList(cloc.Child(keyDoc), v)
			if err != nil {
				errs = append(errs, err)
			}
			c.Doc = lines
		}
		if v, ok := ct[keyIs]; ok {
			s, es := config.DecodeKind(cloc.Child(keyIs), config.TierMemberKind, config.KindIs, v)
			errs = append(errs, es...)
			c.Directives.Is = s
		}

		if c.Shape == model.ShapeUnit {
			if _, ok := ct[keyFields]; ok {
				errs = append(errs, diag.Errorf(cloc.Child(keyFields), "unit case %q cannot have fields", c.Name))
			}
		} else {
			var es []error
			c.Fields, es = p.fields(cloc, ct, c.Shape)
			errs = append(errs, es...)
		}
		cases = append(cases, c)
	}
	return cases, errs
}

func (p *Parser) fields(loc diag.Location, t map[string]any, shape model.Shape) ([]*model.Field, []error) {
	raw, ok := t[keyFields]
	if !ok {
		return nil, nil
	}
	tables, err := tableArray(loc.Child(keyFields), raw)
	if err != nil {
		return nil, []error{err}
	}
	var errs []error
	fields := make([]*model.Field, 0, len(tables))
	seen := make(map[string]bool)
	skip := append(slices.Clone(fieldKeys), config.KindNames()...)
	for i, ft := range tables {
		floc := loc.Child(keyFields).Index(i)
		f := &model.Field{Index: -1}

		if shape == model.ShapeTuple {
			f.Index = i
			if v, ok := ft[keyIndex]; ok {
				n, ok := v.(int64)
				if !ok || n != int64(i) {
					errs = append(errs, diag.Errorf(floc.Child(keyIndex), "positional members must be listed in order, expected index %d", i))
				}
			}
			f.Name = model.PositionalName(i)
			if _, ok := ft[keyName]; ok {
				f.Name, errs = requiredIdent(floc, ft, keyName, errs)
			}
		} else {
			if _, ok := ft[keyIndex]; ok {
				errs = append(errs, diag.Errorf(floc.Child(keyIndex), "index is only valid on a tuple-shaped declaration"))
			}
			f.Name, errs = requiredIdent(floc, ft, keyName, errs)
		}
		if f.Name != "" && seen[f.Name] {
			errs = append(errs, diag.Errorf(floc.Child(keyName), "duplicate member %q", f.Name))
		}
		seen[f.Name] = true

		if v, ok := ft[keyType]; ok {
			s, isString := v.(string)
			if !isString {
				errs = append(errs, diag.Errorf(floc.Child(keyType), "expected a type, got %s", config.TypeName(v)))
			} else if typ, err := types.Parse(s); err != nil {
				errs = append(errs, diag.Errorf(floc.Child(keyType), "invalid type: %v", err))
			} else {
				f.Type = typ
			}
		} else {
			errs = append(errs, diag.Errorf(floc, "missing required key %q", keyType))
		}
		if v, ok := ft[keyDoc]; ok {
			lines, err := config.StringList(floc.Child(keyDoc), v)
			if err != nil {
				errs = append(errs, err)
			}
			f.Doc = lines
		}
		if v, ok := ft[keyEnabled]; ok {
			b, ok := v.(bool)
			if !ok {
				errs = append(errs, diag.Errorf(floc.Child(keyEnabled), "expected a boolean, got %s", config.TypeName(v)))
			}
			f.Directives.Enabled = b
		}

		def, es := config.DecodeSettings(floc, config.TierMember, 0, ft, skip)
		errs = append(errs, es...)
		f.Directives.Default = *def
		f.Directives.Kinds, es = kinds(floc, config.TierMemberKind, ft, config.MemberKinds)
		errs = append(errs, es...)
		if _, ok := ft[config.KindIs.String()]; ok {
			errs = append(errs, diag.Errorf(floc.Child(config.KindIs.String()),
				"case predicates are configured on the case, not on a member"))
		}
		fields = append(fields, f)
	}
	return fields, errs
}

// kinds decodes the per-kind tables of t for the given kinds.
func kinds(loc diag.Location, tier config.Tier, t map[string]any, allowed []config.Kind) (map[config.Kind]*config.Settings, []error) {
	var (
		out  map[config.Kind]*config.Settings
		errs []error
	)
	for _, kind := range allowed {
		raw, ok := t[kind.String()]
		if !ok {
			continue
		}
		s, es := config.DecodeKind(loc.Child(kind.String()), tier, kind, raw)
		errs = append(errs, es...)
		if s == nil {
			continue
		}
		if out == nil {
			out = make(map[config.Kind]*config.Settings)
		}
		out[kind] = s
	}
	return out, errs
}

func tableArray(loc diag.Location, raw any) ([]map[string]any, error) {
	switch v := raw.(type) {
	case []map[string]any:
		return v, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, diag.Errorf(loc.Index(i), "expected a table, got %s", config.TypeName(item))
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, diag.Errorf(loc, "expected an array of tables, got %s", config.TypeName(raw))
	}
}

func requiredIdent(loc diag.Location, t map[string]any, key string, errs []error) (string, []error) {
	v, ok := t[key]
	if !ok {
		return "", append(errs, diag.Errorf(loc, "missing required key %q", key))
	}
	s, ok := v.(string)
	if !ok {
		return "", append(errs, diag.Errorf(loc.Child(key), "expected a string, got %s", config.TypeName(v)))
	}
	if !config.IsIdent(s) {
		return "", append(errs, diag.Errorf(loc.Child(key), "%q is not a valid identifier", s))
	}
	return s, errs
}
