package schema

import (
	"github.com/beevik/etree"
)

// Node is the XML node type a field is mapped to.
type Node int

const (
	// NodeAttribute is an attribute of the element.
	NodeAttribute Node = iota
	// NodeElement is a child element containing text.
	NodeElement
	// NodeArray is a container element with one text element per item.
	NodeArray
	// NodeObject is a nested element with its own fields.
	NodeObject
	// NodeObjectList is a container element with one nested element per
	// item.
	NodeObjectList
	// NodeVariant is a nested component, selected by the type attribute.
	NodeVariant
	// NodeVariantList is a container element whose children are
	// components named by their type name.
	NodeVariantList
)

func (n Node) String() string {
	switch n {
	case NodeAttribute:
		return "attribute"
	case NodeElement:
		return "element"
	case NodeArray:
		return "array"
	case NodeObject:
		return "object"
	case NodeObjectList:
		return "object list"
	case NodeVariant:
		return "variant"
	case NodeVariantList:
		return "variant list"
	default:
		return "unknown"
	}
}

// FieldInfo describes how a property is mapped to XML and how it is
// presented to users.
type FieldInfo struct {
	Name string
	// Item is the element name of list items.
	Item string
	Node Node
	// Category is the registry category of variant fields.
	Category Category
	Required bool
	// Since is the first configuration version that supports the field.
	Since Version
	// Aliases are alternative names accepted when decoding.
	Aliases     []string
	Default     string
	Group       string
	Description string
	// Allowed lists the accepted values of enumerations.
	Allowed []string
}

func (i *FieldInfo) names() []string {
	return append([]string{i.Name}, i.Aliases...)
}

// Option sets optional properties of a field.
type Option func(*FieldInfo)

// Required marks the field as mandatory.
func Required() Option {
	return func(i *FieldInfo) {
		i.Required = true
	}
}

// Since sets the first configuration version that supports the field.
// Documents with an older version neither read nor write it.
func Since(major, minor int) Option {
	return func(i *FieldInfo) {
		i.Since = V(major, minor)
	}
}

// Alias adds an alternative name that is accepted when decoding.
func Alias(name string) Option {
	return func(i *FieldInfo) {
		i.Aliases = append(i.Aliases, name)
	}
}

// Default documents the value the CCNet server uses when the field is
// omitted.
func Default(value string) Option {
	return func(i *FieldInfo) {
		i.Default = value
	}
}

// Group sets the display category of the field.
func Group(name string) Option {
	return func(i *FieldInfo) {
		i.Group = name
	}
}

// Description sets the help text of the field.
func Description(text string) Option {
	return func(i *FieldInfo) {
		i.Description = text
	}
}

// OneOf restricts the values of array items.
func OneOf(values ...string) Option {
	return func(i *FieldInfo) {
		i.Allowed = values
	}
}

// Field binds a property of a Schema to its XML representation.
// Fields are created with Attr, Elem, Array, Object, Objects, Variant and
// Variants.
type Field interface {
	Info() FieldInfo

	isSet() bool
	encode(c *codec, owner string, el *etree.Element) error
	decode(c *codec, el *etree.Element) error
	nested() []nestedSchema
}

type nestedSchema struct {
	path     []string
	owner    string
	category Category
	schema   Schema
}

type base struct {
	info FieldInfo
}

func newBase(name string, node Node, opts []Option) base {
	b := base{info: FieldInfo{Name: name, Node: node}}
	for _, opt := range opts {
		opt(&b.info)
	}

	return b
}

func (b *base) Info() FieldInfo {
	return b.info
}

func (b *base) nested() []nestedSchema {
	return nil
}

// missing is called when an unset field is encoded.
func (b *base) missing(c *codec, owner string) error {
	if !b.info.Required || c.skipRequired {
		return nil
	}

	return &RequiredError{Type: owner, Property: b.info.Name}
}

func selectAttr(el *etree.Element, names []string) *etree.Attr {
	for _, name := range names {
		if a := el.SelectAttr(name); a != nil {
			return a
		}
	}

	return nil
}

func selectElement(el *etree.Element, names []string) *etree.Element {
	for _, name := range names {
		if child := el.SelectElement(name); child != nil {
			return child
		}
	}

	return nil
}
