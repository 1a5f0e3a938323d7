package schema

import (
	"net/url"
	"strconv"
	"strings"
)

// Value converts a scalar property between its Go representation and XML
// text.
type Value interface {
	// IsSet returns false if the property has no value and is omitted
	// from the document.
	IsSet() bool
	String() string
	Set(string) error
}

type allowedValuer interface {
	allowedValues() []string
}

type stringValue struct {
	p *string
}

// String binds a string property. The empty string is unset.
func String(p *string) Value {
	return stringValue{p: p}
}

func (v stringValue) IsSet() bool    { return *v.p != "" }
func (v stringValue) String() string { return *v.p }

func (v stringValue) Set(s string) error {
	*v.p = s
	return nil
}

type intValue struct {
	p **int
}

// Int binds an optional integer property.
func Int(p **int) Value {
	return intValue{p: p}
}

func (v intValue) IsSet() bool { return *v.p != nil }

func (v intValue) String() string {
	if *v.p == nil {
		return ""
	}

	return strconv.Itoa(**v.p)
}

func (v intValue) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return &ValueError{Value: s, Want: "an integer"}
	}

	*v.p = &n

	return nil
}

type boolValue struct {
	p **bool
}

// Bool binds an optional boolean property. Parsing is case-insensitive.
func Bool(p **bool) Value {
	return boolValue{p: p}
}

func (v boolValue) IsSet() bool { return *v.p != nil }

func (v boolValue) String() string {
	if *v.p == nil {
		return ""
	}

	return strconv.FormatBool(**v.p)
}

func (v boolValue) Set(s string) error {
	var b bool

	switch s = strings.TrimSpace(s); {
	case strings.EqualFold(s, "true"):
		b = true
	case strings.EqualFold(s, "false"):
		b = false
	default:
		return &ValueError{Value: s, Want: "true or false"}
	}

	*v.p = &b

	return nil
}

type enumValue[T ~string] struct {
	p       *T
	allowed []T
}

// Enum binds a property that accepts one of the allowed values. Values are
// matched case-insensitively and stored in the spelling of allowed. The
// empty string is unset.
func Enum[T ~string](p *T, allowed ...T) Value {
	return enumValue[T]{p: p, allowed: allowed}
}

func (v enumValue[T]) IsSet() bool    { return *v.p != "" }
func (v enumValue[T]) String() string { return string(*v.p) }

func (v enumValue[T]) Set(s string) error {
	s = strings.TrimSpace(s)

	if len(v.allowed) == 0 {
		*v.p = T(s)
		return nil
	}

	for _, a := range v.allowed {
		if strings.EqualFold(string(a), s) {
			*v.p = a
			return nil
		}
	}

	return &ValueError{Value: s, Want: "one of " + strings.Join(v.allowedValues(), ", ")}
}

func (v enumValue[T]) allowedValues() []string {
	res := make([]string, 0, len(v.allowed))
	for _, a := range v.allowed {
		res = append(res, string(a))
	}

	return res
}

type urlValue struct {
	p **url.URL
}

// URL binds an optional URL property.
func URL(p **url.URL) Value {
	return urlValue{p: p}
}

func (v urlValue) IsSet() bool { return *v.p != nil }

func (v urlValue) String() string {
	if *v.p == nil {
		return ""
	}

	return (*v.p).String()
}

func (v urlValue) Set(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return &ValueError{Value: s, Want: "a URL"}
	}

	*v.p = u

	return nil
}

// canonical returns the element of allowed that matches s
// case-insensitively. If allowed is empty s is returned.
func canonical(s string, allowed []string) (string, error) {
	if len(allowed) == 0 {
		return s, nil
	}

	s = strings.TrimSpace(s)
	for _, a := range allowed {
		if strings.EqualFold(a, s) {
			return a, nil
		}
	}

	return "", &ValueError{Value: s, Want: "one of " + strings.Join(allowed, ", ")}
}
