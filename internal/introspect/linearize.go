package introspect

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInconsistentHierarchy is returned when no C3 linearization exists.
var ErrInconsistentHierarchy = errors.New("cannot create a consistent method resolution order")

// Linearize returns the C3 linearization of class: the class itself first,
// then its ancestors, most derived first.
func Linearize(class *Class) ([]*Class, error) {
	return linearize(class, nil)
}

func linearize(class *Class, active []*Class) ([]*Class, error) {
	if slices.Contains(active, class) {
		return nil, fmt.Errorf("%w: %s inherits from itself", ErrInconsistentHierarchy, class.FullName())
	}

	active = append(active, class)

	sequences := make([][]*Class, 0, len(class.Bases)+1)

	for _, base := range class.Bases {
		order, err := linearize(base, active)
		if err != nil {
			return nil, err
		}

		sequences = append(sequences, order)
	}

	sequences = append(sequences, slices.Clone(class.Bases))

	merged, err := mergeC3(sequences)
	if err != nil {
		return nil, fmt.Errorf("%w for %s", err, class.FullName())
	}

	return append([]*Class{class}, merged...), nil
}

func mergeC3(sequences [][]*Class) ([]*Class, error) {
	var result []*Class

	for {
		sequences = slices.DeleteFunc(sequences, func(s []*Class) bool { return len(s) == 0 })
		if len(sequences) == 0 {
			return result, nil
		}

		var head *Class

		for _, seq := range sequences {
			if !inTail(seq[0], sequences) {
				head = seq[0]
				break
			}
		}

		if head == nil {
			return nil, ErrInconsistentHierarchy
		}

		result = append(result, head)

		for i, seq := range sequences {
			if seq[0] == head {
				sequences[i] = seq[1:]
			}
		}
	}
}

func inTail(candidate *Class, sequences [][]*Class) bool {
	for _, seq := range sequences {
		if slices.Contains(seq[1:], candidate) {
			return true
		}
	}

	return false
}

// depthFirst orders class and its ancestors depth first, left to right,
// visiting each class once.
func depthFirst(class *Class) []*Class {
	var order []*Class

	seen := make(map[*Class]struct{})

	var visit func(*Class)
	visit = func(c *Class) {
		if _, ok := seen[c]; ok {
			return
		}

		seen[c] = struct{}{}
		order = append(order, c)

		for _, base := range c.Bases {
			visit(base)
		}
	}

	visit(class)

	return order
}
