// Package lights holds the signal state of the five-approach intersection:
// the directions, the service order, the per-direction timings and the
// RED/YELLOW/GREEN flags of every approach.
package lights

import (
	"fmt"
	"strings"
)

// NumDirections is the number of approaches served by the sequencer.
const NumDirections = 5

// A Direction is one of the five approaches, identified by its index.
type Direction int

// The five approaches, in label index order.
const (
	North Direction = iota
	NorthEast
	SouthEast
	SouthWest
	NorthWest
)

var directionNames = [NumDirections]string{"NORTH", "NE", "SE", "SW", "NW"}

// Directions returns all directions in label index order.
func Directions() []Direction {
	return []Direction{North, NorthEast, SouthEast, SouthWest, NorthWest}
}

// Valid reports whether d is one of the five approaches.
func (d Direction) Valid() bool {
	return d >= 0 && int(d) < NumDirections
}

// String returns the label of the direction.
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}

	return directionNames[d]
}

// ParseDirection maps a label, case-insensitively, back to its direction.
func ParseDirection(name string) (Direction, error) {
	for i, n := range directionNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Direction(i), nil
		}
	}

	return 0, fmt.Errorf("lights: unknown direction %q", name)
}
