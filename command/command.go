// Package command turns free-text control tokens, as typed into the control
// page or sent by the hardware console, into calls on the sequencer.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/pentagon/lights"
)

var (
	// ErrUnknown is returned for tokens that are not a recognized command.
	ErrUnknown = errors.New("command: unknown command")

	// ErrMalformed is returned when a recognized command carries arguments
	// that cannot be used.
	ErrMalformed = errors.New("command: malformed arguments")
)

// Kind identifies a command.
type Kind int

// The recognized commands.
const (
	KindUnknown Kind = iota
	KindPause
	KindResume
	KindStatus
	KindOrder
	KindDelay
)

var kindTokens = map[Kind]string{
	KindPause:  "!pause",
	KindResume: "!resume",
	KindStatus: "!status",
	KindOrder:  "!order",
	KindDelay:  "!delay",
}

func (k Kind) String() string {
	if token, ok := kindTokens[k]; ok {
		return token
	}

	return "unknown"
}

// A Command is a parsed control token.
type Command struct {
	Kind Kind
	Args []int
	Raw  string
}

// Parse recognizes "!pause", "!resume", "!status", "!order a,b,c,d,e" and
// "!delay v1,...,v15".
func Parse(raw string) (Command, error) {
	cmd := Command{Raw: raw}
	token := strings.TrimSpace(raw)

	switch token {
	case kindTokens[KindPause]:
		cmd.Kind = KindPause
		return cmd, nil
	case kindTokens[KindResume]:
		cmd.Kind = KindResume
		return cmd, nil
	case kindTokens[KindStatus]:
		cmd.Kind = KindStatus
		return cmd, nil
	}

	name, args, _ := strings.Cut(token, " ")
	switch name {
	case kindTokens[KindOrder]:
		cmd.Kind = KindOrder
		return parseArgs(cmd, args, lights.NumDirections)
	case kindTokens[KindDelay]:
		cmd.Kind = KindDelay
		return parseArgs(cmd, args, lights.NumDelays)
	}

	return cmd, fmt.Errorf("%w: %q", ErrUnknown, token)
}

func parseArgs(cmd Command, args string, want int) (Command, error) {
	fields := strings.Split(args, ",")
	if len(fields) != want {
		return cmd, fmt.Errorf("%w: %s wants %d values, got %d",
			ErrMalformed, cmd.Kind, want, len(fields))
	}

	cmd.Args = make([]int, 0, want)
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return cmd, fmt.Errorf("%w: %s: %q is not an integer",
				ErrMalformed, cmd.Kind, f)
		}

		cmd.Args = append(cmd.Args, v)
	}

	return cmd, nil
}
