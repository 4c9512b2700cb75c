package assemble

import (
	"strings"
)

// Path builds the fully-qualified name of a subject reached while walking.
// Examples:
//   - "dynadoc/store" for a module
//   - "dynadoc/store.Order" for a class in that module
//   - "dynadoc/store.Order.Total" for a method of that class
type Path struct {
	parts []string
}

// NewPath creates a path rooted at name.
func NewPath(root string) Path {
	return Path{parts: []string{root}}
}

// Member returns the path of a member named name.
func (p Path) Member(name string) Path {
	return Path{parts: append(append([]string{}, p.parts...), name)}
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return strings.Join(p.parts, ".")
}
