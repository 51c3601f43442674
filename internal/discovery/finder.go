// Package discovery locates encrypted containers on a file system and maps
// them to their decrypted output locations.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// ErrInputNotFound is reported for an input path that does not exist
var ErrInputNotFound = errors.New("input path does not exist")

// Finder searches input paths for container files
type Finder struct {
	fs        afero.Fs
	extension string
	recursive bool
}

// NewFinder creates a Finder matching files with the given extension.
// Subdirectories of a directory input are only searched when recursive is set.
func NewFinder(fs afero.Fs, extension string, recursive bool) *Finder {
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return &Finder{
		fs:        fs,
		extension: extension,
		recursive: recursive,
	}
}

// Find returns the sorted, de-duplicated container paths reachable from inputs.
//
// Inputs that cannot be read are skipped; the returned error combines one
// entry per skipped input and does not invalidate the returned paths.
func (f *Finder) Find(inputs []string) ([]string, error) {
	seen := make(map[string]struct{})
	var errs error

	for _, input := range inputs {
		matches, err := f.findInPath(filepath.Clean(input))
		errs = multierr.Append(errs, err)
		for _, m := range matches {
			seen[m] = struct{}{}
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return paths, errs
}

// findInPath returns the containers at or below path
func (f *Finder) findInPath(path string) ([]string, error) {
	info, err := f.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if f.Matches(path) {
			return []string{path}, nil
		}
		return nil, nil
	}

	entries, err := afero.ReadDir(f.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	var (
		matches []string
		errs    error
	)
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())

		if entry.IsDir() {
			if !f.recursive {
				continue
			}
			found, err := f.findInPath(child)
			errs = multierr.Append(errs, err)
			matches = append(matches, found...)
			continue
		}

		if f.Matches(child) {
			matches = append(matches, child)
		}
	}

	return matches, errs
}

// Matches reports whether path carries the container extension, ignoring case
func (f *Finder) Matches(path string) bool {
	return strings.EqualFold(filepath.Ext(path), f.extension)
}
