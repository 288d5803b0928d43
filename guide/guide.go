// Package guide holds the embedded help pages shown by "llmedit guide" and
// the llmedit_guide MCP tool.
package guide

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// Overview is the page shown when no name is given.
const Overview = "guide"

// ErrNotFound is returned for a page that does not exist.
var ErrNotFound = errors.New("guide page not found")

// Get returns the markdown of the named page, or the overview for "".
func Get(name string) (string, error) {
	if name == "" {
		name = Overview
	}
	data, err := files.ReadFile(strings.TrimSuffix(name, ".md") + ".md")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns the page names other than the overview, sorted.
func List() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name != Overview {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
