package cfg

import (
	"errors"
	"fmt"
)

// ErrDuplicateName is matched by all DuplicateNameErrors via errors.Is.
var ErrDuplicateName = errors.New("duplicate name")

// DuplicateNameError is returned when a document contains multiple projects
// or queues with the same name.
type DuplicateNameError struct {
	// Type is the type name of the items, project or queue.
	Type string
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s name %q is used multiple times", e.Type, e.Name)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// UnrecognizedItemError is returned when an element below the cruisecontrol
// root element does not describe a known item type.
type UnrecognizedItemError struct {
	Element string
	Err     error
}

func (e *UnrecognizedItemError) Error() string {
	return fmt.Sprintf("unrecognized item %q: %s", e.Element, e.Err)
}

func (e *UnrecognizedItemError) Unwrap() error {
	return e.Err
}
