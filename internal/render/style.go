package render

import (
	"fmt"
	"strings"
)

// Style selects how bracketed annotation contents are spaced.
type Style int

const (
	StyleLegible Style = iota // list[ int ]
	StylePep8                 // list[int]
)

// String returns the lowercase name of the style.
func (s Style) String() string {
	switch s {
	case StyleLegible:
		return "legible"
	case StylePep8:
		return "pep8"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle parses a style name as produced by Style.String.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "", "legible":
		return StyleLegible, nil
	case "pep8":
		return StylePep8, nil
	default:
		return 0, fmt.Errorf("unknown render style %q", name)
	}
}

// delimit wraps content in the two runes of delimiters, after prefix.
func (s Style) delimit(delimiters, prefix, content string) string {
	left, right := delimiters[:1], delimiters[1:]

	if s == StylePep8 || content == "" {
		return prefix + left + content + right
	}

	return prefix + left + " " + content + " " + right
}
