package schema

import (
	"reflect"
	"strconv"

	"github.com/beevik/etree"
)

type scalarField struct {
	base
	value Value
}

// Attr maps v to the attribute name.
func Attr(name string, v Value, opts ...Option) Field {
	return newScalarField(name, NodeAttribute, v, opts)
}

// Elem maps v to the text of the child element name.
func Elem(name string, v Value, opts ...Option) Field {
	return newScalarField(name, NodeElement, v, opts)
}

func newScalarField(name string, node Node, v Value, opts []Option) *scalarField {
	f := scalarField{base: newBase(name, node, opts), value: v}

	if av, ok := v.(allowedValuer); ok {
		f.info.Allowed = av.allowedValues()
	}

	return &f
}

func (f *scalarField) isSet() bool {
	return f.value.IsSet()
}

func (f *scalarField) encode(c *codec, owner string, el *etree.Element) error {
	if !f.value.IsSet() {
		return f.missing(c, owner)
	}

	f.write(el, f.value.String())

	return nil
}

func (f *scalarField) write(el *etree.Element, text string) {
	if f.info.Node == NodeAttribute {
		el.CreateAttr(f.info.Name, text)
		return
	}

	el.CreateElement(f.info.Name).SetText(text)
}

// read returns the text of the attribute or child element of the field.
func (f *scalarField) read(el *etree.Element) (string, bool) {
	if f.info.Node == NodeAttribute {
		a := selectAttr(el, f.info.names())
		if a == nil {
			return "", false
		}

		return a.Value, true
	}

	child := selectElement(el, f.info.names())
	if child == nil {
		return "", false
	}

	return child.Text(), true
}

// keepsReferences returns true if preprocessor references can not be
// stored in the bound value and are kept as unexpanded text instead.
func (f *scalarField) keepsReferences() bool {
	_, isString := f.value.(stringValue)
	return !isString
}

func (f *scalarField) decode(_ *codec, el *etree.Element) error {
	text, found := f.read(el)
	if !found {
		return nil
	}

	if err := f.value.Set(text); err != nil {
		return fieldErrorWrap(err, f.info.Name)
	}

	return nil
}

type arrayField[T ~string] struct {
	base
	p *[]T
}

// Array maps a list of strings to a container element with one child
// element per item:
//
//	<name><item>a</item><item>b</item></name>
func Array[T ~string](name, item string, p *[]T, opts ...Option) Field {
	f := arrayField[T]{base: newBase(name, NodeArray, opts), p: p}
	f.info.Item = item

	return &f
}

func (f *arrayField[T]) isSet() bool {
	return len(*f.p) > 0
}

func (f *arrayField[T]) encode(c *codec, owner string, el *etree.Element) error {
	if len(*f.p) == 0 {
		return f.missing(c, owner)
	}

	container := el.CreateElement(f.info.Name)
	for _, v := range *f.p {
		container.CreateElement(f.info.Item).SetText(string(v))
	}

	return nil
}

func (f *arrayField[T]) decode(c *codec, el *etree.Element) error {
	container := selectElement(el, f.info.names())
	if container == nil {
		return nil
	}

	var res []T

	for _, child := range container.ChildElements() {
		if child.Tag != f.info.Item {
			if c.strict {
				return fieldErrorWrap(&UnknownNodeError{Element: container.Tag, Name: child.Tag}, f.info.Name)
			}
			continue
		}

		text := child.Text()
		if IsReference(text) {
			res = append(res, T(text))
			continue
		}

		v, err := canonical(text, f.info.Allowed)
		if err != nil {
			return fieldErrorWrap(err, f.info.Name, f.info.Item)
		}

		res = append(res, T(v))
	}

	*f.p = res

	return nil
}

type objectField[T any, PT interface {
	*T
	Schema
}] struct {
	base
	p *PT
}

// Object maps a nested struct to the child element name.
func Object[T any, PT interface {
	*T
	Schema
}](name string, p *PT, opts ...Option) Field {
	return &objectField[T, PT]{base: newBase(name, NodeObject, opts), p: p}
}

func (f *objectField[T, PT]) isSet() bool {
	return *f.p != nil
}

func (f *objectField[T, PT]) encode(c *codec, owner string, el *etree.Element) error {
	if *f.p == nil {
		return f.missing(c, owner)
	}

	child := el.CreateElement(f.info.Name)
	if err := c.encodeSchema(child, ownerName(f.info.Name, *f.p), *f.p); err != nil {
		return fieldErrorWrap(err, f.info.Name)
	}

	return nil
}

func (f *objectField[T, PT]) decode(c *codec, el *etree.Element) error {
	child := selectElement(el, f.info.names())
	if child == nil {
		return nil
	}

	v := PT(new(T))
	if err := c.decodeSchema(child, v); err != nil {
		return fieldErrorWrap(err, f.info.Name)
	}

	*f.p = v

	return nil
}

func (f *objectField[T, PT]) nested() []nestedSchema {
	if *f.p == nil {
		return nil
	}

	return []nestedSchema{{
		path:   []string{f.info.Name},
		owner:  ownerName(f.info.Name, *f.p),
		schema: *f.p,
	}}
}

type objectsField[T any, PT interface {
	*T
	Schema
}] struct {
	base
	p *[]PT
}

// Objects maps a list of nested structs to a container element with one
// child element per item:
//
//	<name><item .../><item .../></name>
func Objects[T any, PT interface {
	*T
	Schema
}](name, item string, p *[]PT, opts ...Option) Field {
	f := objectsField[T, PT]{base: newBase(name, NodeObjectList, opts), p: p}
	f.info.Item = item

	return &f
}

func (f *objectsField[T, PT]) isSet() bool {
	return len(*f.p) > 0
}

func (f *objectsField[T, PT]) encode(c *codec, owner string, el *etree.Element) error {
	if len(*f.p) == 0 {
		return f.missing(c, owner)
	}

	container := el.CreateElement(f.info.Name)
	for i, v := range *f.p {
		child := container.CreateElement(f.info.Item)
		if err := c.encodeSchema(child, ownerName(f.info.Item, v), v); err != nil {
			return fieldErrorWrap(err, f.info.Name, elementPathWithID(f.info.Item, strconv.Itoa(i)))
		}
	}

	return nil
}

func (f *objectsField[T, PT]) decode(c *codec, el *etree.Element) error {
	container := selectElement(el, f.info.names())
	if container == nil {
		return nil
	}

	var res []PT

	for i, child := range container.ChildElements() {
		if child.Tag != f.info.Item {
			if c.strict {
				return fieldErrorWrap(&UnknownNodeError{Element: container.Tag, Name: child.Tag}, f.info.Name)
			}
			continue
		}

		v := PT(new(T))
		if err := c.decodeSchema(child, v); err != nil {
			return fieldErrorWrap(err, f.info.Name, elementPathWithID(f.info.Item, strconv.Itoa(i)))
		}

		res = append(res, v)
	}

	*f.p = res

	return nil
}

func (f *objectsField[T, PT]) nested() []nestedSchema {
	res := make([]nestedSchema, 0, len(*f.p))

	for i, v := range *f.p {
		res = append(res, nestedSchema{
			path:   []string{f.info.Name, elementPathWithID(f.info.Item, strconv.Itoa(i))},
			owner:  ownerName(f.info.Item, v),
			schema: v,
		})
	}

	return res
}

// isNil returns true if c is nil or a nil pointer stored in the interface.
func isNil(c Component) bool {
	if c == nil {
		return true
	}

	v := reflect.ValueOf(c)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

type variantField[T Component] struct {
	base
	p *T
}

// Variant maps a component to the child element name. The concrete type is
// stored in the type attribute and resolved in the registry category cat:
//
//	<sourcecontrol type="svn">...</sourcecontrol>
//
// T is usually the interface type that the category's components
// implement.
func Variant[T Component](name string, cat Category, p *T, opts ...Option) Field {
	f := variantField[T]{base: newBase(name, NodeVariant, opts), p: p}
	f.info.Category = cat

	return &f
}

func (f *variantField[T]) isSet() bool {
	return !isNil(*f.p)
}

func (f *variantField[T]) encode(c *codec, owner string, el *etree.Element) error {
	if !f.isSet() {
		return f.missing(c, owner)
	}

	comp := *f.p

	if err := c.checkTypeVersion(f.info.Category, comp.TypeName()); err != nil {
		return fieldErrorWrap(err, f.info.Name)
	}

	child := el.CreateElement(f.info.Name)
	child.CreateAttr(TypeAttr, comp.TypeName())

	if err := c.encodeSchema(child, comp.TypeName(), comp); err != nil {
		return fieldErrorWrap(err, f.info.Name)
	}

	return nil
}

func (f *variantField[T]) decode(c *codec, el *etree.Element) error {
	child := selectElement(el, f.info.names())
	if child == nil {
		return nil
	}

	comp, err := c.resolve(f.info.Category, child, true)
	if err != nil {
		return fieldErrorWrap(err, f.info.Name)
	}

	v, ok := comp.(T)
	if !ok {
		return fieldErrorWrap(&TypeMismatchError{Element: child.Tag, Type: comp.TypeName()}, f.info.Name)
	}

	*f.p = v

	return nil
}

func (f *variantField[T]) nested() []nestedSchema {
	if !f.isSet() {
		return nil
	}

	return []nestedSchema{{
		path:     []string{f.info.Name},
		owner:    (*f.p).TypeName(),
		category: f.info.Category,
		schema:   *f.p,
	}}
}

type variantsField[T Component] struct {
	base
	p *[]T
}

// Variants maps a list of components to a container element. Each child
// element is named by the TypeName of its component:
//
//	<tasks><exec .../><nant .../></tasks>
func Variants[T Component](name string, cat Category, p *[]T, opts ...Option) Field {
	f := variantsField[T]{base: newBase(name, NodeVariantList, opts), p: p}
	f.info.Category = cat

	return &f
}

func (f *variantsField[T]) isSet() bool {
	return len(*f.p) > 0
}

func (f *variantsField[T]) encode(c *codec, owner string, el *etree.Element) error {
	if len(*f.p) == 0 {
		return f.missing(c, owner)
	}

	container := el.CreateElement(f.info.Name)
	for i, comp := range *f.p {
		if isNil(comp) {
			continue
		}

		path := elementPathWithID(comp.TypeName(), strconv.Itoa(i))

		if err := c.checkTypeVersion(f.info.Category, comp.TypeName()); err != nil {
			return fieldErrorWrap(err, f.info.Name, path)
		}

		child := container.CreateElement(comp.TypeName())
		if err := c.encodeSchema(child, comp.TypeName(), comp); err != nil {
			return fieldErrorWrap(err, f.info.Name, path)
		}
	}

	return nil
}

func (f *variantsField[T]) decode(c *codec, el *etree.Element) error {
	container := selectElement(el, f.info.names())
	if container == nil {
		return nil
	}

	var res []T

	for i, child := range container.ChildElements() {
		path := elementPathWithID(child.Tag, strconv.Itoa(i))

		comp, err := c.resolve(f.info.Category, child, false)
		if err != nil {
			return fieldErrorWrap(err, f.info.Name, path)
		}

		v, ok := comp.(T)
		if !ok {
			return fieldErrorWrap(&TypeMismatchError{Element: child.Tag, Type: comp.TypeName()}, f.info.Name, path)
		}

		res = append(res, v)
	}

	*f.p = res

	return nil
}

func (f *variantsField[T]) nested() []nestedSchema {
	res := make([]nestedSchema, 0, len(*f.p))

	for i, comp := range *f.p {
		if isNil(comp) {
			continue
		}

		res = append(res, nestedSchema{
			path:     []string{f.info.Name, elementPathWithID(comp.TypeName(), strconv.Itoa(i))},
			owner:    comp.TypeName(),
			category: f.info.Category,
			schema:   comp,
		})
	}

	return res
}
