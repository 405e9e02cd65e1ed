package domain

import "strings"

// Split turns comma-separated text into a normalized list: parts are
// trimmed, empties dropped, and duplicates removed case-insensitively
// with the first occurrence's casing and position kept.
func Split(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// Dedup removes case-insensitive duplicates and empty entries from an
// already-structured list, preserving order and first-seen casing.
// An already-normalized list comes back unchanged.
func Dedup(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, p := range list {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// Join renders a list for table and chart display.
func Join(list []string) string {
	return strings.Join(list, ", ")
}
