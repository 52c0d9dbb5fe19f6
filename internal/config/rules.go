package config

import (
	"regexp"
	"slices"
	"strings"

	"github.com/origadmin/accgen/internal/diag"
)

// Directive keys of a Settings tier, in canonical order.
const (
	KeySkip     = "skip"
	KeyVis      = "vis"
	KeyRename   = "rename"
	KeyTemplate = "template"
	KeyDoc      = "doc"
	KeyArg      = "arg"
	KeyCopy     = "copy"
	KeyOption   = "option"
	KeyDeref    = "deref"
	KeyInto     = "impl_into"
	KeyWrap     = "wrap"
	KeyChain    = "chain"
	KeyMustUse  = "must_use"
	KeyIsPrefix = "is_prefix"
	KeyValue    = "value"
)

// SettingKeys lists every directive key.
var SettingKeys = []string{
	KeySkip, KeyVis, KeyRename, KeyTemplate, KeyDoc, KeyArg, KeyCopy, KeyOption,
	KeyDeref, KeyInto, KeyWrap, KeyChain, KeyMustUse, KeyIsPrefix, KeyValue,
}

var tierKeys = map[Tier][]string{
	TierEntity: {
		KeyVis, KeyCopy, KeyOption, KeyDeref, KeyInto, KeyWrap, KeyChain, KeyMustUse, KeyIsPrefix,
	},
	TierEntityKind: {
		KeySkip, KeyVis, KeyTemplate, KeyDoc, KeyCopy, KeyOption, KeyDeref, KeyInto, KeyWrap,
		KeyChain, KeyMustUse, KeyIsPrefix,
	},
	TierMember: {
		KeySkip, KeyVis, KeyRename, KeyArg, KeyCopy, KeyOption, KeyDeref, KeyInto, KeyWrap,
		KeyChain, KeyMustUse, KeyIsPrefix, KeyValue,
	},
	TierMemberKind: {
		KeySkip, KeyVis, KeyRename, KeyDoc, KeyArg, KeyCopy, KeyOption, KeyDeref, KeyInto,
		KeyWrap, KeyChain, KeyMustUse, KeyIsPrefix, KeyValue,
	},
}

var kindKeys = map[Kind][]string{
	KindGet:     {KeySkip, KeyVis, KeyRename, KeyTemplate, KeyDoc, KeyCopy, KeyOption, KeyDeref, KeyMustUse, KeyIsPrefix},
	KindGetMut:  {KeySkip, KeyVis, KeyRename, KeyTemplate, KeyDoc, KeyCopy, KeyOption, KeyDeref, KeyMustUse},
	KindSet:     {KeySkip, KeyVis, KeyRename, KeyTemplate, KeyDoc, KeyArg, KeyInto, KeyWrap, KeyChain, KeyMustUse},
	KindWith:    {KeySkip, KeyVis, KeyRename, KeyTemplate, KeyDoc, KeyArg, KeyInto, KeyWrap, KeyMustUse},
	KindWithout: {KeySkip, KeyVis, KeyRename, KeyTemplate, KeyDoc, KeyValue, KeyMustUse},
	KindTake:    {KeySkip, KeyVis, KeyRename, KeyTemplate, KeyDoc, KeyMustUse},
	KindInto:    {KeySkip, KeyVis, KeyRename, KeyTemplate, KeyDoc, KeyCopy, KeyMustUse},
	KindIs:      {KeySkip, KeyVis, KeyRename, KeyTemplate, KeyDoc, KeyMustUse},
}

// CaseKeys are the directive keys of a case predicate entry.
var CaseKeys = []string{KeySkip, KeyVis, KeyRename, KeyDoc, KeyMustUse}

// AllowedKeys returns the directive keys accepted at tier. For per-kind tiers
// the set is narrowed to the keys meaningful for kind.
func AllowedKeys(tier Tier, kind Kind) []string {
	keys := tierKeys[tier]
	if tier != TierEntityKind && tier != TierMemberKind {
		return slices.Clone(keys)
	}
	var out []string
	for _, k := range keys {
		if slices.Contains(kindKeys[kind], k) {
			out = append(out, k)
		}
	}
	return out
}

// SetKeys returns the keys set in s, in canonical order.
func (s *Settings) SetKeys() []string {
	if s == nil {
		return nil
	}
	set := map[string]bool{
		KeySkip: s.Skip != nil, KeyVis: s.Vis != nil, KeyRename: s.Rename != nil,
		KeyTemplate: s.Template != nil, KeyDoc: s.Doc != nil, KeyArg: s.Arg != nil,
		KeyCopy: s.Copy != nil, KeyOption: s.Option != nil, KeyDeref: s.Deref != nil,
		KeyInto: s.Into != nil, KeyWrap: s.Wrap != nil, KeyChain: s.Chain != nil,
		KeyMustUse: s.MustUse != nil, KeyIsPrefix: s.IsPrefix != nil, KeyValue: s.Value != nil,
	}
	var keys []string
	for _, k := range SettingKeys {
		if set[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

var (
	identRe = regexp.MustCompile(`^(r#)?[A-Za-z_][A-Za-z0-9_]*$`)
	visRe   = regexp.MustCompile(`^pub(\((crate|super|self|in [A-Za-z_:][A-Za-z0-9_:]*)\))?$`)
)

// IsIdent reports whether s is a valid identifier.
func IsIdent(s string) bool {
	return identRe.MatchString(s) && s != "_"
}

// NormalizeVis maps the accepted spellings of a visibility to its
// qualifier. "private" and "" both mean no qualifier.
func NormalizeVis(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "private" {
		return "", true
	}
	if !visRe.MatchString(s) {
		return "", false
	}
	return s, true
}

// Check validates one tier of directives. loc locates the tier; kind is only
// consulted for per-kind tiers.
func Check(loc diag.Location, tier Tier, kind Kind, s *Settings) []error {
	if s == nil {
		return nil
	}
	var errs []error
	allowed := AllowedKeys(tier, kind)
	for _, key := range s.SetKeys() {
		if !slices.Contains(allowed, key) {
			e := diag.Errorf(loc.Child(key), "directive %q is not valid at the %s tier", key, tier)
			e.Expected = allowed
			errs = append(errs, e)
		}
	}
	if s.Template != nil && strings.Count(*s.Template, Placeholder) != 1 {
		errs = append(errs, diag.Errorf(loc.Child(KeyTemplate),
			"naming template %q must contain exactly one %s", *s.Template, Placeholder))
	}
	if s.Doc != nil && tier == TierEntityKind && strings.Count(*s.Doc, Placeholder) > 1 {
		errs = append(errs, diag.Errorf(loc.Child(KeyDoc),
			"documentation template %q has more than one %s", *s.Doc, Placeholder))
	}
	if s.Rename != nil && !IsIdent(*s.Rename) {
		errs = append(errs, diag.Errorf(loc.Child(KeyRename), "%q is not a valid identifier", *s.Rename))
	}
	if s.Arg != nil && !IsIdent(*s.Arg) {
		errs = append(errs, diag.Errorf(loc.Child(KeyArg), "%q is not a valid identifier", *s.Arg))
	}
	if s.Vis != nil {
		if _, ok := NormalizeVis(*s.Vis); !ok {
			errs = append(errs, diag.Errorf(loc.Child(KeyVis), "invalid visibility %q", *s.Vis))
		}
	}
	if s.Value != nil && strings.TrimSpace(*s.Value) == "" {
		errs = append(errs, diag.Errorf(loc.Child(KeyValue), "empty value expression"))
	}
	if s.Deref != nil && s.Deref.Target != nil && (tier == TierEntity || tier == TierEntityKind) {
		errs = append(errs, diag.Errorf(loc.Child(KeyDeref),
			"an explicit deref target is only valid on a member, use a boolean here"))
	}
	return errs
}
