// Package projection turns the cached records of a board and its view
// configuration into the Kanban and List layouts. Both layouts share the
// same search, person and scope rules so they never disagree on which
// records are visible.
package projection

import (
	"regexp"
	"strconv"
	"strings"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type valueKind int

const (
	kindDate valueKind = iota
	kindNumber
	kindText
)

type typedValue struct {
	kind valueKind
	num  float64
	text string
}

func typeOf(s string) typedValue {
	trimmed := strings.TrimSpace(s)
	if isoDate.MatchString(trimmed) {
		return typedValue{kind: kindDate, text: trimmed}
	}
	if n, ok := parseNumber(trimmed); ok {
		return typedValue{kind: kindNumber, num: n}
	}
	return typedValue{kind: kindText, text: strings.ToLower(trimmed)}
}

// parseNumber strips everything except digits, sign and decimal point and
// parses what remains
func parseNumber(s string) (float64, bool) {
	var b strings.Builder
	digits := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '+':
			b.WriteRune(r)
		}
	}
	if !digits {
		return 0, false
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Compare orders two cell values. ISO dates compare lexicographically,
// numbers numerically, everything else as case-folded text. Across kinds,
// dates sort before numbers and numbers before text.
func Compare(a, b string) int {
	ta, tb := typeOf(a), typeOf(b)
	if ta.kind != tb.kind {
		if ta.kind < tb.kind {
			return -1
		}
		return 1
	}
	switch ta.kind {
	case kindNumber:
		switch {
		case ta.num < tb.num:
			return -1
		case ta.num > tb.num:
			return 1
		}
		return 0
	default:
		return strings.Compare(ta.text, tb.text)
	}
}

// matches is a case-insensitive substring test; an empty filter matches everything
func matches(text, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(filter))
}
