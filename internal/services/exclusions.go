package services

import (
	"encoding/json"
	"sort"
	"strings"
)

// CanonicalExclusions normalizes an excluded-ingredient list so that
// two requests naming the same set compare equal: names are trimmed
// and lowercased, empties dropped, duplicates removed, and the result
// sorted. Client ordering is presentation, not identity.
func CanonicalExclusions(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// exclusionsKey renders a canonical list as the string the cart_line
// unique index is built over. JSON keeps the key unambiguous for any
// ingredient name.
func exclusionsKey(canonical []string) string {
	b, err := json.Marshal(canonical)
	if err != nil {
		return "[]"
	}
	return string(b)
}
