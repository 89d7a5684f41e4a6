package lights

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// MinDuration is the floor applied to every configured duration.
	MinDuration = 100 * time.Millisecond

	// AllRedDuration is how long every approach stays red between two
	// green phases. It is not configurable.
	AllRedDuration = 10 * time.Millisecond

	// DelaysPerDirection is the number of values a delay list carries for
	// each direction: green, yellow and a reserved slot.
	DelaysPerDirection = 3

	// NumDelays is the length of a full delay list.
	NumDelays = NumDirections * DelaysPerDirection

	// MaxMillis is the largest millisecond value a time.Duration can hold.
	MaxMillis = math.MaxInt64 / int64(time.Millisecond)
)

// Timing holds the phase durations of one direction. Reserved is accepted
// and stored for compatibility with the controller's delay format, but the
// cycle engine does not use it.
type Timing struct {
	Green    time.Duration `json:"green" yaml:"green"`
	Yellow   time.Duration `json:"yellow" yaml:"yellow"`
	Reserved time.Duration `json:"reserved" yaml:"reserved"`
}

// Timings are the durations of all five directions, indexed by Direction.
type Timings [NumDirections]Timing

// DefaultTimings gives every direction five seconds of green and two of
// yellow.
func DefaultTimings() Timings {
	var t Timings
	for i := range t {
		t[i] = Timing{
			Green:    5 * time.Second,
			Yellow:   2 * time.Second,
			Reserved: 5 * time.Second,
		}
	}

	return t
}

// FromMillis converts a millisecond value to a duration, saturating at
// ±MaxMillis instead of overflowing.
func FromMillis(ms int) time.Duration {
	switch {
	case int64(ms) > MaxMillis:
		return time.Duration(MaxMillis) * time.Millisecond
	case int64(ms) < -MaxMillis:
		return -time.Duration(MaxMillis) * time.Millisecond
	}

	return time.Duration(ms) * time.Millisecond
}

// ClampMillis converts a millisecond value to a duration no shorter than
// MinDuration.
func ClampMillis(ms int) time.Duration {
	d := FromMillis(ms)
	if d < MinDuration {
		return MinDuration
	}

	return d
}

// NewTimings builds timings from a flat list of green/yellow/reserved
// triples in milliseconds, one triple per direction in label index order.
// Values below the floor are clamped up, never rejected.
func NewTimings(values []int) (Timings, error) {
	var t Timings

	if len(values) != NumDelays {
		return t, fmt.Errorf("%w: got %d values", ErrInvalidDelays, len(values))
	}

	for i := range t {
		base := i * DelaysPerDirection
		t[i] = Timing{
			Green:    ClampMillis(values[base]),
			Yellow:   ClampMillis(values[base+1]),
			Reserved: ClampMillis(values[base+2]),
		}
	}

	return t, nil
}

// Millis flattens the timings back into the delay list format.
func (t Timings) Millis() []int {
	values := make([]int, 0, NumDelays)
	for _, d := range t {
		values = append(values,
			int(d.Green.Milliseconds()),
			int(d.Yellow.Milliseconds()),
			int(d.Reserved.Milliseconds()))
	}

	return values
}

// String renders the timings as "NORTH=5000/2000/5000 NE=...".
func (t Timings) String() string {
	parts := make([]string, NumDirections)
	for i, d := range t {
		parts[i] = fmt.Sprintf("%s=%d/%d/%d",
			Direction(i),
			d.Green.Milliseconds(),
			d.Yellow.Milliseconds(),
			d.Reserved.Milliseconds())
	}

	return strings.Join(parts, " ")
}
