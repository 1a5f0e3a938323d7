// Package validation contains checks for identifiers in ccnet.config files.
package validation

import (
	"errors"
	"fmt"
	"unicode"
)

// StrID ensures that id is not empty, does not start or end with a white space
// ([unicode.IsSpace]) and contains only printable characters
// ([unicode.IsPrint]).
func StrID(id string) error {
	if id == "" {
		return errors.New("is empty")
	}

	for pos, r := range id {
		if (pos == 0 || pos == len(id)-1) && unicode.IsSpace(r) {
			return errors.New("contains leading or trailing white spaces")
		}

		if !unicode.IsPrint(r) {
			return fmt.Errorf("contains non-printable character: %+q", r)
		}
	}

	return nil
}
