package viewconfig

import "strings"

// NormalizeColor accepts 3 or 6 hex digits with an optional leading '#'
// and returns the lowercase "#rrggbb" form. ok is false for anything else.
func NormalizeColor(s string) (color string, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 3 && len(s) != 6 {
		return "", false
	}
	for _, r := range s {
		if !isHex(r) {
			return "", false
		}
	}
	s = strings.ToLower(s)
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	return "#" + s, true
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
