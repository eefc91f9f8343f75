package ast

import (
	"fmt"
	"slices"
	"strings"
)

// FieldType is one of the metadata fields a query can be scoped to.
type FieldType uint8

const (
	FieldNone FieldType = iota
	FieldTitle
	FieldSite
	FieldURL
	FieldLinks
	FieldAuthor
	FieldAuthorFollowers
	FieldAuthorGender
	FieldAuthorVerified
	FieldBlogName
	FieldLanguage
	FieldCountry
	FieldRegion
	FieldCity
	FieldContinent
	FieldPageType
	FieldEngagementType
)

// FieldValue describes what a field's scalar values look like.
type FieldValue uint8

const (
	ValueText FieldValue = iota
	ValueInteger
	ValueBool
	ValueEnum
	ValueLanguage
	ValueCountry
)

// FieldFlag captures capabilities beyond the value shape.
type FieldFlag uint8

const (
	FieldFlagNone FieldFlag = 0

	// FieldFlagRange marks fields that accept [a TO b] ranges.
	FieldFlagRange FieldFlag = 1 << iota
)

// FieldSpec describes a query field.
type FieldSpec struct {
	Type  FieldType
	Name  string
	Value FieldValue
	Flags FieldFlag
	// Enum lists accepted lower-case values for ValueEnum fields.
	Enum []string
}

// HasFlag reports whether the spec contains the given flag.
func (s FieldSpec) HasFlag(flag FieldFlag) bool {
	return s.Flags&flag != 0
}

// Numeric reports whether values of the field are integers.
func (s FieldSpec) Numeric() bool {
	return s.Value == ValueInteger
}

var fieldSpecs = []FieldSpec{
	{Type: FieldTitle, Name: "title"},
	{Type: FieldSite, Name: "site"},
	{Type: FieldURL, Name: "url"},
	{Type: FieldLinks, Name: "links"},
	{Type: FieldAuthor, Name: "author"},
	{Type: FieldAuthorFollowers, Name: "authorFollowers", Value: ValueInteger, Flags: FieldFlagRange},
	{Type: FieldAuthorGender, Name: "authorGender", Value: ValueEnum, Enum: []string{"female", "male", "unknown"}},
	{Type: FieldAuthorVerified, Name: "authorVerified", Value: ValueBool},
	{Type: FieldBlogName, Name: "blogName"},
	{Type: FieldLanguage, Name: "language", Value: ValueLanguage},
	{Type: FieldCountry, Name: "country", Value: ValueCountry},
	{Type: FieldRegion, Name: "region"},
	{Type: FieldCity, Name: "city"},
	{Type: FieldContinent, Name: "continent"},
	{Type: FieldPageType, Name: "pageType"},
	{Type: FieldEngagementType, Name: "engagementType", Value: ValueEnum, Enum: []string{"comment", "like", "quote", "reply", "retweet"}},
}

func (f FieldType) String() string {
	if f == FieldNone {
		return "none"
	}
	for _, s := range fieldSpecs {
		if s.Type == f {
			return s.Name
		}
	}
	return "FieldType(?)"
}

// FieldRegistry resolves field names. It is read-only after construction
// and safe for concurrent use.
type FieldRegistry struct {
	byName map[string]FieldSpec
	byType map[FieldType]FieldSpec
}

// NewFieldRegistry builds a registry from specs. Later specs with the same
// name win.
func NewFieldRegistry(specs []FieldSpec) *FieldRegistry {
	r := &FieldRegistry{
		byName: make(map[string]FieldSpec, len(specs)),
		byType: make(map[FieldType]FieldSpec, len(specs)),
	}
	for _, s := range specs {
		r.byName[strings.ToLower(s.Name)] = s
		r.byType[s.Type] = s
	}
	return r
}

var defaultFields = NewFieldRegistry(fieldSpecs)

// DefaultFields returns the built-in field registry.
func DefaultFields() *FieldRegistry {
	return defaultFields
}

// Lookup resolves a field name (case-insensitive).
func (r *FieldRegistry) Lookup(name string) (FieldSpec, bool) {
	if name == "" {
		return FieldSpec{}, false
	}
	spec, ok := r.byName[strings.ToLower(name)]
	return spec, ok
}

// Info returns the spec of a known field type.
func (r *FieldRegistry) Info(ft FieldType) (FieldSpec, bool) {
	spec, ok := r.byType[ft]
	return spec, ok
}

// Specs returns all registered fields sorted by name.
func (r *FieldRegistry) Specs() []FieldSpec {
	out := make([]FieldSpec, 0, len(r.byName))
	for _, s := range r.byName {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b FieldSpec) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Fingerprint renders the registry contents in a stable form for cache keys.
func (r *FieldRegistry) Fingerprint() string {
	var sb strings.Builder
	for i, s := range r.Specs() {
		if i > 0 {
			sb.WriteByte(';')
		}
		fmt.Fprintf(&sb, "%s:%d:%d:%d", s.Name, s.Type, s.Value, s.Flags)
		if len(s.Enum) > 0 {
			sb.WriteString("=" + strings.Join(s.Enum, "|"))
		}
	}
	return sb.String()
}
