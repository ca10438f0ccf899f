// Package extsort groups files by lowercase extension. It does no similarity
// scoring; files without an extension are left ungrouped.
package extsort

import (
	"path/filepath"
	"sort"
	"strings"
)

// Extension returns the lowercase text after the last dot of name's base, or
// "" when there is none. A leading dot alone (".bashrc") is not an extension,
// and neither is a trailing one ("notes.").
func Extension(name string) string {
	base := filepath.Base(name)
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 || idx == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}

// Groups maps extension to file paths, in input order within each group.
type Groups map[string][]string

// Keys returns the extensions in sorted order.
func (g Groups) Keys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Group assigns each path to its extension group. The second result lists the
// paths without an extension, which stay in place.
func Group(paths []string) (Groups, []string) {
	groups := make(Groups)
	var ungrouped []string
	for _, p := range paths {
		ext := Extension(p)
		if ext == "" {
			ungrouped = append(ungrouped, p)
			continue
		}
		groups[ext] = append(groups[ext], p)
	}
	return groups, ungrouped
}
