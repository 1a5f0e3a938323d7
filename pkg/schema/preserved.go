package schema

import (
	"maps"
	"regexp"
)

// referenceRe matches a preprocessor symbol reference like $(name).
var referenceRe = regexp.MustCompile(`\$\([^)]+\)`)

// IsReference returns true if s contains a preprocessor symbol reference.
// Such values are only known after the server expanded the document.
func IsReference(s string) bool {
	return referenceRe.MatchString(s)
}

// Preserved stores document content of a schema that has no typed
// representation, so it is written back unchanged:
//   - the legacy type attribute of a component,
//   - values of non-string scalar fields that contain preprocessor
//     references.
//
// Schemas embed it to keep this content.
type Preserved struct {
	legacyType string
	references map[string]string
}

type preserver interface {
	preserved() *Preserved
}

func (p *Preserved) preserved() *Preserved {
	return p
}

// LegacyType returns the value of the legacy type attribute the schema was
// decoded from.
func (p *Preserved) LegacyType() string {
	return p.legacyType
}

// SetLegacyType sets the value that is written as legacy type attribute.
// The empty string omits the attribute.
func (p *Preserved) SetLegacyType(typeName string) {
	p.legacyType = typeName
}

// Reference returns the unexpanded value of the field name, if it contains
// a preprocessor reference.
func (p *Preserved) Reference(name string) (string, bool) {
	v, ok := p.references[name]
	return v, ok
}

// SetReference stores the unexpanded value of the field name.
func (p *Preserved) SetReference(name, value string) {
	if p.references == nil {
		p.references = map[string]string{}
	}

	p.references[name] = value
}

// ClearReference removes the unexpanded value of the field name.
func (p *Preserved) ClearReference(name string) {
	delete(p.references, name)
	if len(p.references) == 0 {
		p.references = nil
	}
}

// References returns a copy of all unexpanded values by field name.
func (p *Preserved) References() map[string]string {
	return maps.Clone(p.references)
}

func preservedOf(s Schema) *Preserved {
	if ps, ok := s.(preserver); ok {
		return ps.preserved()
	}

	return nil
}

// reference returns the unexpanded value of field name of s.
func reference(s Schema, name string) (string, bool) {
	if p := preservedOf(s); p != nil {
		return p.Reference(name)
	}

	return "", false
}

func hasReference(s Schema, name string) bool {
	_, ok := reference(s, name)
	return ok
}
