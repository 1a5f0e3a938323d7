// Package schema maps Go structs to XML elements and back.
//
// A type describes its XML representation by returning a table of fields
// from its Fields method. Every field binds an XML name and node type to a
// pointer into the instance, so a single generic encoder and decoder can
// handle all types without reflection.
package schema

// Schema is implemented by types that describe their XML mapping.
// The returned fields must point into the receiver.
type Schema interface {
	Fields() []Field
}

// Component is a Schema whose concrete type is selected by name when a
// document is decoded. TypeName is the XML discriminator, either the element
// name or the value of the type attribute.
type Component interface {
	Schema
	TypeName() string
}

// Validator is implemented by schemas that have constraints beyond required
// values. Validate is called by the validation pass after the field checks.
type Validator interface {
	Validate() error
}

const (
	// TypeAttr is the attribute that selects the concrete type of a single
	// nested component, e.g. <sourcecontrol type="svn">.
	TypeAttr = "type"
	// LegacyTypeAttr is written by older versions of the configuration
	// tool. It contains an assembly qualified .NET type name.
	LegacyTypeAttr = "ccnetconfigType"
)

func ownerName(name string, s Schema) string {
	if c, ok := s.(Component); ok {
		return c.TypeName()
	}

	return name
}
