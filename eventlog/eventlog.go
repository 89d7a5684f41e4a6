// Package eventlog keeps the append-ordered record of snapshot lines and
// administrative events produced by the sequencer.
package eventlog

import (
	"strings"

	"github.com/sarchlab/pentagon/lights"
)

// DefaultRecent is the number of lines diagnostic views ask for.
const DefaultRecent = 100

// A Filter selects lines to hide from a query.
type Filter func(line string) bool

// Log retains every appended line in memory. Lines are never modified or
// pruned after Append.
//
// Log is not safe for concurrent use; its owner serializes access.
type Log struct {
	lines []string
}

// New creates an empty Log.
func New() *Log {
	return &Log{}
}

// Append records a line at the end of the log and returns its position,
// counting from zero.
func (l *Log) Append(line string) int {
	l.lines = append(l.lines, line)
	return len(l.lines) - 1
}

// Len returns the number of lines ever appended.
func (l *Log) Len() int {
	return len(l.lines)
}

// Recent returns the lines among the last n that are not excluded. Excluded
// lines still count toward the n most recent, so the result never holds
// more than n lines. A nil exclude keeps every line.
func (l *Log) Recent(n int, exclude Filter) []string {
	if n <= 0 {
		return nil
	}

	start := len(l.lines) - n
	if start < 0 {
		start = 0
	}

	out := make([]string, 0, len(l.lines)-start)
	for _, line := range l.lines[start:] {
		if exclude != nil && exclude(line) {
			continue
		}

		out = append(out, line)
	}

	return out
}

// Last returns the most recent line matching keep, if any.
func (l *Log) Last(keep Filter) (string, bool) {
	for i := len(l.lines) - 1; i >= 0; i-- {
		if keep(l.lines[i]) {
			return l.lines[i], true
		}
	}

	return "", false
}

// IsSnapshot reports whether line is a snapshot, either produced by the
// cycle engine or reported by a physical controller.
func IsSnapshot(line string) bool {
	return strings.HasPrefix(line, lights.StatePrefix) ||
		strings.HasPrefix(line, lights.HardwarePrefix)
}

// IsEngineSnapshot reports whether line is a snapshot produced by the cycle
// engine.
func IsEngineSnapshot(line string) bool {
	return strings.HasPrefix(line, lights.StatePrefix)
}
