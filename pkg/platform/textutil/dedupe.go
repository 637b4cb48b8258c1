// Package textutil normalizes user-supplied string lists.
package textutil

import "strings"

// DedupeAndTrim trims each value and drops empty and repeated ones, keeping
// first-seen order. With fold set, values are lowercased before comparison
// and returned lowercased.
func DedupeAndTrim(values []string, fold bool) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if fold {
			v = strings.ToLower(v)
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
