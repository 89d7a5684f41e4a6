package hwlink

import (
	"strings"

	"github.com/sarchlab/pentagon/lights"
)

// LineKind classifies an inbound line.
type LineKind int

// The kinds of inbound lines.
const (
	LineEmpty LineKind = iota
	LineText
	LineSnapshot
)

// A Line is a decoded inbound line.
type Line struct {
	Kind  LineKind
	Text  string
	State lights.State
}

// Decode classifies one inbound line. Lines made only of binary digits, and
// lines starting with the state prefix, are snapshots; a malformed snapshot
// yields an error wrapping lights.ErrMalformedSnapshot. Anything else is
// diagnostic text.
func Decode(raw string) (Line, error) {
	text := strings.TrimSpace(raw)

	switch {
	case text == "":
		return Line{Kind: LineEmpty}, nil
	case strings.HasPrefix(text, lights.StatePrefix):
		s, err := lights.ParseLine(text)
		return Line{Kind: LineSnapshot, Text: text, State: s}, err
	case lights.LooksLikeBits(text):
		s, err := lights.ParseBits(text)
		return Line{Kind: LineSnapshot, Text: text, State: s}, err
	default:
		return Line{Kind: LineText, Text: text}, nil
	}
}
