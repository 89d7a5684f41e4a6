package lights

import (
	"fmt"
	"strings"
	"time"
)

const (
	// StatePrefix starts every snapshot line produced by the cycle engine.
	StatePrefix = "STATE:"

	// HardwarePrefix starts snapshot lines reported by a physical
	// controller.
	HardwarePrefix = "HWSTATE:"

	// BitsPerDirection is the width of one direction in the bit string
	// encoding.
	BitsPerDirection = 3

	// BitsLen is the width of a full bit string snapshot.
	BitsLen = NumDirections * BitsPerDirection
)

// Flags are the three lamps of one approach. They are independent; more than
// one, or none, may be lit at a time.
type Flags struct {
	Red    bool `json:"RED"`
	Yellow bool `json:"YELLOW"`
	Green  bool `json:"GREEN"`
}

// Dark reports whether no lamp is lit.
func (f Flags) Dark() bool {
	return !f.Red && !f.Yellow && !f.Green
}

// State is the flag matrix of all five approaches, indexed by Direction.
type State [NumDirections]Flags

// AllRedState returns the state in which every approach shows only red.
func AllRedState() State {
	var s State
	for i := range s {
		s[i] = Flags{Red: true}
	}

	return s
}

// Count returns how many approaches satisfy pred.
func (s State) Count(pred func(Flags) bool) int {
	n := 0
	for _, f := range s {
		if pred(f) {
			n++
		}
	}

	return n
}

// Line encodes the state as "STATE:NORTH,1,0,0,NE,1,0,0,...".
func (s State) Line() string {
	return StatePrefix + s.csv()
}

// HardwareLine encodes the state with the hardware snapshot prefix.
func (s State) HardwareLine() string {
	return HardwarePrefix + s.csv()
}

func (s State) csv() string {
	fields := make([]string, 0, NumDirections*4)
	for i, f := range s {
		fields = append(fields,
			Direction(i).String(), bit(f.Red), bit(f.Yellow), bit(f.Green))
	}

	return strings.Join(fields, ",")
}

// Bits encodes the state as 15 characters, RED/YELLOW/GREEN for each
// direction in label index order.
func (s State) Bits() string {
	var b strings.Builder
	b.Grow(BitsLen)

	for _, f := range s {
		b.WriteString(bit(f.Red))
		b.WriteString(bit(f.Yellow))
		b.WriteString(bit(f.Green))
	}

	return b.String()
}

func bit(v bool) string {
	if v {
		return "1"
	}

	return "0"
}

// LooksLikeBits reports whether line consists only of '0' and '1'
// characters, regardless of its length.
func LooksLikeBits(line string) bool {
	if line == "" {
		return false
	}

	for _, c := range line {
		if c != '0' && c != '1' {
			return false
		}
	}

	return true
}

// ParseBits decodes the fixed-width bit string encoding.
func ParseBits(line string) (State, error) {
	var s State

	if len(line) != BitsLen {
		return s, fmt.Errorf("%w: want %d bits, got %d",
			ErrMalformedSnapshot, BitsLen, len(line))
	}

	if !LooksLikeBits(line) {
		return s, fmt.Errorf("%w: non-binary character in %q",
			ErrMalformedSnapshot, line)
	}

	for i := range s {
		base := i * BitsPerDirection
		s[i] = Flags{
			Red:    line[base] == '1',
			Yellow: line[base+1] == '1',
			Green:  line[base+2] == '1',
		}
	}

	return s, nil
}

// ParseLine decodes the "STATE:NAME,r,y,g,..." encoding. Every direction
// must appear exactly once, in any order.
func ParseLine(line string) (State, error) {
	var s State

	body, ok := strings.CutPrefix(line, StatePrefix)
	if !ok {
		return s, fmt.Errorf("%w: missing %q prefix", ErrMalformedSnapshot, StatePrefix)
	}

	fields := strings.Split(body, ",")
	if len(fields) != NumDirections*4 {
		return s, fmt.Errorf("%w: want %d fields, got %d",
			ErrMalformedSnapshot, NumDirections*4, len(fields))
	}

	var seen [NumDirections]bool
	for i := 0; i < len(fields); i += 4 {
		d, err := ParseDirection(fields[i])
		if err != nil {
			return s, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
		}

		if seen[d] {
			return s, fmt.Errorf("%w: direction %s repeated", ErrMalformedSnapshot, d)
		}
		seen[d] = true

		var f Flags
		for j, dst := range []*bool{&f.Red, &f.Yellow, &f.Green} {
			switch strings.TrimSpace(fields[i+1+j]) {
			case "1":
				*dst = true
			case "0":
			default:
				return s, fmt.Errorf("%w: bad flag %q for %s",
					ErrMalformedSnapshot, fields[i+1+j], d)
			}
		}

		s[d] = f
	}

	return s, nil
}

// A Snapshot is a full capture of the flag matrix at one instant.
type Snapshot struct {
	Seq    uint64    `json:"seq"`
	At     time.Time `json:"at"`
	Lights State     `json:"lights"`
}

// Line is the log line of the snapshot.
func (s Snapshot) Line() string {
	return s.Lights.Line()
}
