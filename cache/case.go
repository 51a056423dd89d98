package cache

import (
	"strings"
	"unicode"
)

// normalizeResource folds a resource name into the key namespace: lower
// snake case, ASCII letters and digits only. "DashboardStats",
// "dashboard-stats" and "dashboard stats" all become "dashboard_stats".
// Separators and punctuation never survive, so a resource can not forge the
// KeySeparator and collide with another resource's item keys.
func normalizeResource(s string) string {
	runes := []rune(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(runes) + 4)

	pendingSep := false
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 && b.Len() > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					pendingSep = true
				}
			}
			writeRune(&b, unicode.ToLower(r), &pendingSep)
		case unicode.IsLower(r) || unicode.IsDigit(r):
			writeRune(&b, r, &pendingSep)
		default:
			if b.Len() > 0 {
				pendingSep = true
			}
		}
	}

	return b.String()
}

func writeRune(b *strings.Builder, r rune, pendingSep *bool) {
	if *pendingSep {
		b.WriteByte('_')
		*pendingSep = false
	}
	b.WriteRune(r)
}
