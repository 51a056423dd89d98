package records

import "strings"

// Filter returns the records whose name or tax id contains term,
// case-insensitively. An empty term keeps every record. The input slice is
// never modified; the result is always a fresh slice.
func Filter(list []Client, term string) []Client {
	out := make([]Client, 0, len(list))
	if term == "" {
		return append(out, list...)
	}

	needle := strings.ToLower(term)
	for _, c := range list {
		if strings.Contains(strings.ToLower(c.Nombre), needle) ||
			strings.Contains(strings.ToLower(c.RNC), needle) {
			out = append(out, c)
		}
	}
	return out
}
