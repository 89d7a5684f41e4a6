package lights

import (
	"fmt"
	"strings"
)

// An Order is a permutation of the five directions. It defines the sequence
// in which the cycle engine grants right-of-way.
type Order [NumDirections]Direction

// DefaultOrder serves the directions in label index order.
func DefaultOrder() Order {
	return Order{North, NorthEast, SouthEast, SouthWest, NorthWest}
}

// NewOrder validates values as a permutation of 0..4. Partial or duplicated
// orders are rejected as a whole.
func NewOrder(values []int) (Order, error) {
	var o Order

	if len(values) != NumDirections {
		return o, fmt.Errorf("%w: got %d values", ErrInvalidOrder, len(values))
	}

	var seen [NumDirections]bool
	for i, v := range values {
		d := Direction(v)
		if !d.Valid() {
			return o, fmt.Errorf("%w: index %d out of range", ErrInvalidOrder, v)
		}

		if seen[d] {
			return o, fmt.Errorf("%w: index %d repeated", ErrInvalidOrder, v)
		}

		seen[d] = true
		o[i] = d
	}

	return o, nil
}

// At returns the direction served at position i of the pass. Positions wrap
// around, so At(NumDirections) is the first direction again.
func (o Order) At(i int) Direction {
	return o[((i%NumDirections)+NumDirections)%NumDirections]
}

// Next returns the direction served right after position i.
func (o Order) Next(i int) Direction {
	return o.At(i + 1)
}

// Ints returns the order as plain indices.
func (o Order) Ints() []int {
	values := make([]int, NumDirections)
	for i, d := range o {
		values[i] = int(d)
	}

	return values
}

// String joins the direction labels, e.g. "NORTH,NE,SE,SW,NW".
func (o Order) String() string {
	names := make([]string, NumDirections)
	for i, d := range o {
		names[i] = d.String()
	}

	return strings.Join(names, ",")
}
