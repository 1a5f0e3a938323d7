package schema

import (
	"errors"
	"slices"

	"github.com/beevik/etree"

	"github.com/simplesurance/ccnetcfg/internal/set"
)

// errNoRegistry is returned when a component has to be resolved but no
// registry was configured.
var errNoRegistry = errors.New("no type registry configured")

type codec struct {
	version      Version
	registry     *Registry
	strict       bool
	skipRequired bool
	allVersions  bool
	// omitLegacyTypes skips writing the legacy type attribute.
	omitLegacyTypes bool
	logf            func(format string, v ...any)
}

// skipped logs that a node in el is ignored because its field requires a
// newer version. In strict mode it is reported as unknown node instead.
func (c *codec) skipped(el *etree.Element, info *FieldInfo) {
	if c.logf == nil || c.strict {
		return
	}

	var found bool
	if info.Node == NodeAttribute {
		found = selectAttr(el, info.names()) != nil
	} else {
		found = selectElement(el, info.names()) != nil
	}

	if found {
		c.logf("ignoring %s %q of %q, it requires configuration version %s or newer, document version is %s\n",
			info.Node, info.Name, el.Tag, info.Since, c.version)
	}
}

func (c *codec) enabled(info *FieldInfo) bool {
	return c.allVersions || c.version.AtLeast(info.Since)
}

func (c *codec) encodeSchema(el *etree.Element, owner string, s Schema) error {
	if p := preservedOf(s); p != nil && p.legacyType != "" && !c.omitLegacyTypes {
		el.CreateAttr(LegacyTypeAttr, p.legacyType)
	}

	for _, f := range s.Fields() {
		info := f.Info()
		if !c.enabled(&info) {
			continue
		}

		if sf, ok := f.(*scalarField); ok && !sf.isSet() {
			if ref, found := reference(s, info.Name); found {
				sf.write(el, ref)
				continue
			}
		}

		if err := f.encode(c, owner, el); err != nil {
			return err
		}
	}

	return nil
}

// decodeSchema decodes the fields of s from el.
// extraAttrs are attributes that are accepted in strict mode in addition to
// the ones defined by the fields.
func (c *codec) decodeSchema(el *etree.Element, s Schema, extraAttrs ...string) error {
	fields := s.Fields()
	p := preservedOf(s)

	if a := el.SelectAttr(LegacyTypeAttr); a != nil && p != nil {
		p.legacyType = a.Value
	}

	for _, f := range fields {
		info := f.Info()
		if !c.enabled(&info) {
			c.skipped(el, &info)
			continue
		}

		if sf, ok := f.(*scalarField); ok && p != nil && sf.keepsReferences() {
			if text, found := sf.read(el); found && IsReference(text) {
				p.SetReference(info.Name, text)
				continue
			}
		}

		if err := f.decode(c, el); err != nil {
			return err
		}
	}

	if c.strict {
		return c.checkUnknownNodes(el, fields, extraAttrs)
	}

	return nil
}

func (c *codec) checkUnknownNodes(el *etree.Element, fields []Field, extraAttrs []string) error {
	attrs := set.From(extraAttrs)
	elems := set.Set[string]{}

	attrs.Add(LegacyTypeAttr)

	for _, f := range fields {
		info := f.Info()
		if !c.enabled(&info) {
			continue
		}

		for _, name := range info.names() {
			if info.Node == NodeAttribute {
				attrs.Add(name)
			} else {
				elems.Add(name)
			}
		}
	}

	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}

		if !attrs.Contains(a.Key) {
			return &UnknownNodeError{Element: el.Tag, Name: a.Key, Attribute: true}
		}
	}

	for _, child := range el.ChildElements() {
		if !elems.Contains(child.Tag) {
			return &UnknownNodeError{Element: el.Tag, Name: child.Tag}
		}
	}

	return nil
}

// resolve looks up the component type for el in the registry, creates it
// and decodes its fields.
// If byAttr is true the type name is read from the type attribute instead
// of the element name.
func (c *codec) resolve(cat Category, el *etree.Element, byAttr bool) (Component, error) {
	if c.registry == nil {
		return nil, errNoRegistry
	}

	reg, err := c.registry.resolve(cat, el, byAttr)
	if err != nil {
		return nil, err
	}

	if !c.allVersions && !c.version.AtLeast(reg.Since) {
		return nil, &VersionError{Name: reg.Name, Since: reg.Since, Version: c.version}
	}

	comp := reg.New()

	var extraAttrs []string
	if byAttr {
		extraAttrs = []string{TypeAttr}
	}

	if err := c.decodeSchema(el, comp, extraAttrs...); err != nil {
		return nil, err
	}

	return comp, nil
}

// checkTypeVersion returns a VersionError if the type name is registered
// with a newer version than the one that is encoded.
func (c *codec) checkTypeVersion(cat Category, name string) error {
	if c.registry == nil || c.allVersions {
		return nil
	}

	reg, exist := c.registry.Lookup(cat, name)
	if !exist || c.version.AtLeast(reg.Since) {
		return nil
	}

	return &VersionError{Name: reg.Name, Since: reg.Since, Version: c.version}
}

// Encoder converts schemas to XML elements.
type Encoder struct {
	// Version is the configuration version of the document. Fields and
	// types that require a newer version are not written.
	Version Version
	// Registry is optional. When it is set, components whose registered
	// version is newer than Version cause a VersionError.
	Registry *Registry
	// SkipRequired disables the checks for required values.
	SkipRequired bool
	// OmitLegacyTypes drops the legacy type attributes that components were
	// decoded with instead of writing them back.
	OmitLegacyTypes bool
}

func (e *Encoder) codec() *codec {
	return &codec{
		version:         e.Version,
		registry:        e.Registry,
		skipRequired:    e.SkipRequired,
		omitLegacyTypes: e.OmitLegacyTypes,
	}
}

// Encode returns s as element with the given name.
func (e *Encoder) Encode(name string, s Schema) (*etree.Element, error) {
	el := etree.NewElement(name)

	if err := e.codec().encodeSchema(el, ownerName(name, s), s); err != nil {
		return nil, err
	}

	return el, nil
}

// EncodeComponent returns c as element named by its TypeName.
func (e *Encoder) EncodeComponent(c Component) (*etree.Element, error) {
	return e.Encode(c.TypeName(), c)
}

// Decoder populates schemas from XML elements.
type Decoder struct {
	// Version is the configuration version of the document. Fields and
	// types that require a newer version are ignored.
	Version Version
	// Registry resolves the concrete types of nested components.
	Registry *Registry
	// Strict makes the decoder return an UnknownNodeError for attributes
	// and elements that are not part of the schema.
	Strict bool
	// Logf is optional, it logs nodes that are ignored because they
	// require a newer version.
	Logf func(format string, v ...any)
}

func (d *Decoder) codec() *codec {
	return &codec{
		version:  d.Version,
		registry: d.Registry,
		strict:   d.Strict,
		logf:     d.Logf,
	}
}

// Decode populates s with the content of el. If the element is not named
// name a TypeMismatchError is returned.
func (d *Decoder) Decode(el *etree.Element, name string, s Schema) error {
	if el.Tag != name {
		return &TypeMismatchError{Element: el.Tag, Type: name}
	}

	return d.codec().decodeSchema(el, s)
}

// DecodeComponent populates c with the content of el. The element must be
// named like the TypeName of c.
func (d *Decoder) DecodeComponent(el *etree.Element, c Component) error {
	return d.Decode(el, c.TypeName(), c)
}

// Resolve creates the component of category cat that el describes.
// The type is selected by the legacy type attribute if it exists and
// otherwise by the element name.
func (d *Decoder) Resolve(cat Category, el *etree.Element) (Component, error) {
	return d.codec().resolve(cat, el, false)
}

// Clone deep-copies src into dst by encoding and decoding it.
// dst must be an empty instance of the same type as src.
// Version restrictions and required values are ignored.
func Clone(r *Registry, src, dst Schema) error {
	c := codec{registry: r, skipRequired: true, allVersions: true}

	el := etree.NewElement("clone")
	if err := c.encodeSchema(el, "clone", src); err != nil {
		return err
	}

	return c.decodeSchema(el, dst)
}

// Describe returns the field descriptions of s.
func Describe(s Schema) []FieldInfo {
	fields := s.Fields()
	res := make([]FieldInfo, 0, len(fields))

	for _, f := range fields {
		info := f.Info()
		info.Aliases = slices.Clone(info.Aliases)
		res = append(res, info)
	}

	return res
}
