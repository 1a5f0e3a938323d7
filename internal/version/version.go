// Package version provides the version information of ccnetcfg.
package version

import (
	_ "embed" // initializes Version with the content of the ver file
	"fmt"
	"regexp"
	"runtime/debug"
	"strconv"
	"strings"
)

var (
	// GitCommit is the commit the binary was built from.
	// It's set via -ldflags when a release is built. If it is empty, the
	// VCS revision recorded by the Go toolchain is used.
	GitCommit = ""

	// Version is the semantic version of the release, see https://semver.org/.
	//go:embed ver
	Version string

	// Prerelease is appended after a hyphen to the version number.
	Prerelease = ""

	// Current is the version of the running binary, it is set by Load.
	Current = Info{}
)

const shortCommitLen = 12

var semverRe = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-([0-9A-Za-z.-]+))?$`)

// Info describes a version of ccnetcfg.
type Info struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Commit     string
}

// Load parses the package variables and sets Current.
func Load() error {
	info, err := Parse(Version)
	if err != nil {
		return fmt.Errorf("parsing version %q failed: %w", Version, err)
	}

	if Prerelease != "" {
		info.Prerelease = Prerelease
	}

	info.Commit = GitCommit
	if info.Commit == "" {
		info.Commit = buildRevision()
	}

	Current = *info

	return nil
}

func buildRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > shortCommitLen {
				return s.Value[:shortCommitLen]
			}

			return s.Value
		}
	}

	return ""
}

// Parse parses a version in the format <Major>[.<Minor>[.<Patch>]][-<Prerelease>].
func Parse(s string) (*Info, error) {
	m := semverRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, fmt.Errorf("%q is not in the format <Major>[.<Minor>[.<Patch>]][-<Prerelease>]", s)
	}

	var nums [3]int
	for i, str := range m[1:4] {
		if str == "" {
			continue
		}

		n, err := strconv.Atoi(str)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		nums[i] = n
	}

	return &Info{
		Major:      nums[0],
		Minor:      nums[1],
		Patch:      nums[2],
		Prerelease: m[4],
	}, nil
}

// Short returns the version number without the commit.
func (i *Info) Short() string {
	s := fmt.Sprintf("%d.%d.%d", i.Major, i.Minor, i.Patch)
	if i.Prerelease != "" {
		s += "-" + i.Prerelease
	}

	return s
}

func (i *Info) String() string {
	if i.Commit == "" {
		return i.Short()
	}

	return i.Short() + " (" + i.Commit + ")"
}
