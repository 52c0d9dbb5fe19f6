package model

import (
	"errors"

	"github.com/origadmin/accgen/internal/config"
	"github.com/origadmin/accgen/internal/diag"
)

// Validate checks every directive tier of e and the consistency of its
// members. All problems are reported together.
func (e *Entity) Validate() error {
	loc := diag.Location{Key: e.Name}
	var errs []error
	if !config.IsIdent(e.Name) {
		errs = append(errs, diag.Errorf(loc, "%q is not a valid entity name", e.Name))
	}
	d := &e.Directives
	errs = append(errs, config.Check(loc, config.TierEntity, 0, &d.Default)...)
	for _, kind := range config.Kinds {
		errs = append(errs, config.Check(loc.Child(kind.String()), config.TierEntityKind, kind, d.Kind(kind))...)
	}

	switch e.Kind {
	case Struct:
		if len(e.Cases) > 0 {
			errs = append(errs, diag.Errorf(loc, "struct %s declares cases", e.Name))
		}
		errs = append(errs, validateFields(loc.Child("fields"), e.Fields)...)
	case Enum:
		if len(e.Fields) > 0 {
			errs = append(errs, diag.Errorf(loc, "enum %s declares fields outside of its cases", e.Name))
		}
		seen := make(map[string]bool, len(e.Cases))
		for i, c := range e.Cases {
			cloc := loc.Child("cases").Index(i)
			if !config.IsIdent(c.Name) {
				errs = append(errs, diag.Errorf(cloc, "%q is not a valid case name", c.Name))
			}
			if seen[c.Name] {
				errs = append(errs, diag.Errorf(cloc, "duplicate case %q", c.Name))
			}
			seen[c.Name] = true
			errs = append(errs, config.Check(cloc.Child("is"), config.TierMemberKind, config.KindIs, c.Directives.Is)...)
			if c.Shape == ShapeUnit && len(c.Fields) > 0 {
				errs = append(errs, diag.Errorf(cloc, "unit case %q cannot have fields", c.Name))
			}
			errs = append(errs, validateFields(cloc.Child("fields"), c.Fields)...)
		}
	}
	return errors.Join(errs...)
}

func validateFields(loc diag.Location, fields []*Field) []error {
	var errs []error
	for i, f := range fields {
		floc := loc.Index(i)
		if f.Type == nil {
			errs = append(errs, diag.Errorf(floc, "member %q has no type", f.Name))
		}
		errs = append(errs, config.Check(floc, config.TierMember, 0, &f.Directives.Default)...)
		for _, kind := range config.Kinds {
			s := f.Directives.Kind(kind)
			if kind == config.KindIs && s != nil {
				errs = append(errs, diag.Errorf(floc.Child(kind.String()), "case predicates are configured on the case, not on a member"))
				continue
			}
			errs = append(errs, config.Check(floc.Child(kind.String()), config.TierMemberKind, kind, s)...)
		}
	}
	return errs
}
