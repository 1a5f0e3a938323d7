package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRequired is matched by all RequiredErrors via errors.Is.
var ErrRequired = errors.New("required value is missing")

// RequiredError describes a required property that has no value.
type RequiredError struct {
	// Type is the type name of the object owning the property.
	Type     string
	Property string
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("%s: required value %q is missing", e.Type, e.Property)
}

func (e *RequiredError) Is(target error) bool {
	return target == ErrRequired
}

// TypeMismatchError is returned when an element can not be decoded into
// the requested type.
type TypeMismatchError struct {
	Element string
	Type    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot convert element %q to type %q", e.Element, e.Type)
}

// ValueError describes text that can not be parsed into the type of a
// property.
type ValueError struct {
	Value string
	Want  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value %q, expected %s", e.Value, e.Want)
}

// UnknownTypeError is returned when no type with the name is registered in
// the category.
type UnknownTypeError struct {
	Category Category
	Name     string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("no %s type named %q is registered", e.Category, e.Name)
}

// VersionError is returned when a type is used in a document with an older
// configuration version than the type requires.
type VersionError struct {
	Name    string
	Since   Version
	Version Version
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s requires configuration version %s or newer, document version is %s",
		e.Name, e.Since, e.Version)
}

// UnknownNodeError is returned by strict decoders for attributes and
// elements that are not part of the schema.
type UnknownNodeError struct {
	Element   string
	Name      string
	Attribute bool
}

func (e *UnknownNodeError) Error() string {
	if e.Attribute {
		return fmt.Sprintf("unknown attribute %q in element %q", e.Name, e.Element)
	}

	return fmt.Sprintf("unknown element %q in element %q", e.Name, e.Element)
}

// fieldError describes an error related to an element in a document.
type fieldError struct {
	elementPath []string
	err         error
}

// fieldErrorWrap returns a new fieldError that wraps the passed err, if err
// is not of type fieldError.
// If it is of type fieldError, the passed paths are prepended to it's
// elementPath and err is returned.
func fieldErrorWrap(err error, path ...string) error {
	var fErr *fieldError
	if errors.As(err, &fErr) {
		fErr.elementPath = append(path, fErr.elementPath...)
		return err
	}

	return &fieldError{
		elementPath: path,
		err:         err,
	}
}

func elementPathWithID(elem, id string) string {
	if id == "" {
		return elem
	}

	return fmt.Sprintf("%s[%s]", elem, id)
}

func (f *fieldError) Error() string {
	return fmt.Sprintf("%s: %s", strings.Join(f.elementPath, "."), f.err)
}

func (f *fieldError) Unwrap() error {
	return f.err
}

// Path returns the element path of err, if it was raised inside a
// document. Otherwise nil is returned.
func Path(err error) []string {
	var fErr *fieldError
	if errors.As(err, &fErr) {
		return fErr.elementPath
	}

	return nil
}

// WrapPath prefixes the element path of err with path.
func WrapPath(err error, path ...string) error {
	if err == nil || len(path) == 0 {
		return err
	}

	return fieldErrorWrap(err, path...)
}
