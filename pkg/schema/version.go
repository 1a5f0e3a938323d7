package schema

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Version is a CCNet configuration format version like 1.3.
type Version struct {
	Major int
	Minor int
	Patch int
}

// V returns the version major.minor.
func V(major, minor int) Version {
	return Version{Major: major, Minor: minor}
}

// ParseVersion parses a version in the format <Major>[.<Minor>[.<Patch>]].
func ParseVersion(s string) (Version, error) {
	var res Version

	s = strings.TrimSpace(s)
	if s == "" {
		return res, errors.New("version is empty")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return res, fmt.Errorf("invalid version %q, should be <Major>[.<Minor>[.<Patch>]]", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return res, fmt.Errorf("invalid version %q, should be <Major>[.<Minor>[.<Patch>]]", s)
		}
		nums[i] = n
	}

	res.Major, res.Minor, res.Patch = nums[0], nums[1], nums[2]

	return res, nil
}

// MustParseVersion is like ParseVersion but panics on errors.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}

	return v
}

// String returns the version as <Major>.<Minor>, the patch number is only
// appended when it is not 0.
func (v Version) String() string {
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}

	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1 if v is older than o, 1 if it is newer and 0 if both
// are equal.
func (v Version) Compare(o Version) int {
	if c := cmp.Compare(v.Major, o.Major); c != 0 {
		return c
	}

	if c := cmp.Compare(v.Minor, o.Minor); c != 0 {
		return c
	}

	return cmp.Compare(v.Patch, o.Patch)
}

// AtLeast returns true if v is equal or newer than o.
func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}

// IsZero returns true if no version is set.
func (v Version) IsZero() bool {
	return v == Version{}
}
