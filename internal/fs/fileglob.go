package fs

import (
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// FileGlob returns the paths of the files that match pattern.
// The pattern syntax is the one of filepath.Glob, additionally '**' matches
// any number of directories. Directories are never part of the result.
// Absolute patterns result in absolute paths.
// If a non-wildcard part of the pattern does not exist, an error wrapping
// os.ErrNotExist is returned, otherwise a pattern without matches results in
// an empty slice.
func FileGlob(pattern string) ([]string, error) {
	paths, err := doublestar.FilepathGlob(
		pattern,
		doublestar.WithFilesOnly(),
		doublestar.WithFailOnIOErrors(),
		doublestar.WithFailOnPatternNotExist(),
	)
	if errors.Is(err, doublestar.ErrPatternNotExist) {
		return nil, fmt.Errorf("%w: %w", os.ErrNotExist, err)
	}

	return paths, err
}

// ResolveFiles resolves a list of file paths and glob patterns to file
// paths. Duplicates are removed, the order of the arguments is kept.
// A pattern that matches no files results in an error.
func ResolveFiles(patterns ...string) ([]string, error) {
	var res []string
	seen := map[string]struct{}{}

	for _, pattern := range patterns {
		paths, err := FileGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pattern, err)
		}

		if len(paths) == 0 {
			return nil, fmt.Errorf("%s: %w", pattern, os.ErrNotExist)
		}

		for _, p := range paths {
			if _, exist := seen[p]; exist {
				continue
			}

			seen[p] = struct{}{}
			res = append(res, p)
		}
	}

	return res, nil
}

// MatchGlob reports whether name matches the pattern. The pattern syntax is
// the one of FileGlob.
func MatchGlob(pattern, name string) (bool, error) {
	return doublestar.Match(pattern, name)
}
