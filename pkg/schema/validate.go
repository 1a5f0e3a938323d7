package schema

import (
	"slices"
	"strings"
)

// Violations is the list of errors found by Validate.
type Violations []error

func (v Violations) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Error())
	}

	return strings.Join(msgs, "\n")
}

func (v Violations) Unwrap() []error {
	return v
}

type validator struct {
	version    Version
	registry   *Registry
	violations Violations
}

// Validate checks s and all nested schemas. Instead of stopping at the
// first error it collects all violations:
//   - required fields without values,
//   - components whose type requires a newer version than v (only if r is
//     not nil),
//   - errors returned by schemas implementing Validator.
//
// Fields that are not supported by version v are skipped.
// If violations are found a Violations error is returned, otherwise nil.
// name is used as type name in errors, if s is not a Component.
func Validate(r *Registry, v Version, name string, s Schema) error {
	val := validator{version: v, registry: r}

	val.walk(nil, ownerName(name, s), s)

	if len(val.violations) == 0 {
		return nil
	}

	return val.violations
}

func (v *validator) add(path []string, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			v.add(path, e)
		}
		return
	}

	if len(path) > 0 {
		err = fieldErrorWrap(err, slices.Clone(path)...)
	}

	v.violations = append(v.violations, err)
}

func (v *validator) walk(path []string, owner string, s Schema) {
	for _, f := range s.Fields() {
		info := f.Info()
		if !v.version.AtLeast(info.Since) {
			continue
		}

		if info.Required && !f.isSet() && !hasReference(s, info.Name) {
			v.add(path, &RequiredError{Type: owner, Property: info.Name})
		}

		for _, n := range f.nested() {
			p := append(slices.Clone(path), n.path...)

			if n.category != "" && v.registry != nil {
				reg, exist := v.registry.Lookup(n.category, n.owner)
				if exist && !v.version.AtLeast(reg.Since) {
					v.add(p, &VersionError{Name: reg.Name, Since: reg.Since, Version: v.version})
				}
			}

			v.walk(p, n.owner, n.schema)
		}
	}

	if val, ok := s.(Validator); ok {
		if err := val.Validate(); err != nil {
			v.add(path, err)
		}
	}
}
