package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/beevik/etree"
)

// Category groups component types that can be used at the same place in a
// document, e.g. triggers or source control blocks.
type Category string

// Factory returns a new, empty component.
type Factory func() Component

// Registration describes a component type.
type Registration struct {
	Category Category
	// Name is the TypeName of the components created by New.
	Name string
	New  Factory
	// Since is the first configuration version that supports the type.
	Since Version
	// Legacy are the .NET type names that older versions of the
	// configuration tool wrote into the ccnetconfigType attribute.
	Legacy      []string
	Description string
}

// Registry maps type names to component factories.
// It's methods are not concurrency-safe, types are expected to be
// registered during initialization.
type Registry struct {
	types      map[Category][]*Registration
	categories []Category
	// legacy maps full .NET type names and their class names to
	// registrations.
	legacy      map[string]*Registration
	legacyShort map[string]*Registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:       map[Category][]*Registration{},
		legacy:      map[string]*Registration{},
		legacyShort: map[string]*Registration{},
	}
}

// Register adds a component type to the registry.
// Registering a type name twice in the same category or a legacy name
// twice returns an error.
func (r *Registry) Register(reg Registration) error {
	if reg.Category == "" {
		return errors.New("category is empty")
	}

	if reg.Name == "" {
		return errors.New("name is empty")
	}

	if reg.New == nil {
		return fmt.Errorf("%s type %q: factory is nil", reg.Category, reg.Name)
	}

	if _, exist := r.Lookup(reg.Category, reg.Name); exist {
		return fmt.Errorf("%s type %q is already registered", reg.Category, reg.Name)
	}

	for _, l := range reg.Legacy {
		if existing, exist := r.legacy[l]; exist {
			return fmt.Errorf("legacy type name %q is already registered for %s type %q",
				l, existing.Category, existing.Name)
		}
	}

	if comp := reg.New(); comp.TypeName() != reg.Name {
		return fmt.Errorf("%s type %q: factory creates components with type name %q",
			reg.Category, reg.Name, comp.TypeName())
	}

	p := &reg
	p.Legacy = slices.Clone(reg.Legacy)

	if _, exist := r.types[reg.Category]; !exist {
		r.categories = append(r.categories, reg.Category)
	}
	r.types[reg.Category] = append(r.types[reg.Category], p)

	for _, l := range p.Legacy {
		r.legacy[l] = p

		short := legacyClassName(l)
		if _, exist := r.legacyShort[short]; !exist {
			r.legacyShort[short] = p
		}
	}

	return nil
}

// MustRegister is like Register but panics on errors.
func (r *Registry) MustRegister(reg Registration) {
	if err := r.Register(reg); err != nil {
		panic(fmt.Sprintf("registering component type failed: %s", err))
	}
}

// Lookup returns the registration of the type name in the category.
func (r *Registry) Lookup(cat Category, name string) (*Registration, bool) {
	for _, reg := range r.types[cat] {
		if reg.Name == name {
			return reg, true
		}
	}

	return nil, false
}

// Find returns the registrations of name in all categories.
func (r *Registry) Find(name string) []*Registration {
	var res []*Registration

	for _, cat := range r.categories {
		if reg, exist := r.Lookup(cat, name); exist {
			res = append(res, reg)
		}
	}

	return res
}

// Types returns the registrations of a category in registration order.
func (r *Registry) Types(cat Category) []*Registration {
	return slices.Clone(r.types[cat])
}

// Categories returns all categories in the order their first type was
// registered.
func (r *Registry) Categories() []Category {
	return slices.Clone(r.categories)
}

// New creates an empty component of a registered type.
func (r *Registry) New(cat Category, name string) (Component, error) {
	reg, exist := r.Lookup(cat, name)
	if !exist {
		return nil, &UnknownTypeError{Category: cat, Name: name}
	}

	return reg.New(), nil
}

// resolve returns the registration for el.
// A legacy type attribute takes precedence over the element and type
// attribute name.
func (r *Registry) resolve(cat Category, el *etree.Element, byAttr bool) (*Registration, error) {
	if a := el.SelectAttr(LegacyTypeAttr); a != nil {
		reg, err := r.lookupLegacy(a.Value)
		if err != nil {
			return nil, err
		}

		if reg.Category != cat {
			return nil, &TypeMismatchError{Element: el.Tag, Type: reg.Name}
		}

		return reg, nil
	}

	name := el.Tag
	if byAttr {
		a := el.SelectAttr(TypeAttr)
		if a == nil {
			return nil, fmt.Errorf("element %q has no %q attribute", el.Tag, TypeAttr)
		}
		name = a.Value
	}

	reg, exist := r.Lookup(cat, name)
	if !exist {
		return nil, &UnknownTypeError{Category: cat, Name: name}
	}

	return reg, nil
}

// lookupLegacy resolves an assembly qualified .NET type name like
// "Ns.IntervalTrigger, Assembly, Version=1.0.0.0".
func (r *Registry) lookupLegacy(typeName string) (*Registration, error) {
	name := typeName
	if i := strings.IndexByte(name, ','); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)

	if reg, exist := r.legacy[name]; exist {
		return reg, nil
	}

	if reg, exist := r.legacyShort[legacyClassName(name)]; exist {
		return reg, nil
	}

	return nil, &UnknownTypeError{Category: LegacyTypeAttr, Name: typeName}
}

// legacyClassName returns the class name of a namespace qualified type name.
func legacyClassName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}
