package command

import (
	"errors"
	"fmt"
	"strings"
)

// Surface is the part of the sequencer that commands act on.
type Surface interface {
	SetOrder(values []int) error
	SetDelays(values []int) error
	Pause()
	Resume()
	RequestStatus()
	Note(line string)
}

// A Forwarder passes raw commands on to a physical controller.
type Forwarder interface {
	Send(cmd string) error
}

// Result acknowledges a dispatched command.
type Result struct {
	Command Command
	Err     error
}

// Applied reports whether the command was recognized and took effect.
func (r Result) Applied() bool {
	return r.Err == nil
}

// Router applies commands to a Surface and mirrors them to an optional
// Forwarder. Problems are written to the surface's log and reported in the
// Result; Dispatch never fails otherwise.
type Router struct {
	surface   Surface
	forwarder Forwarder
}

// NewRouter creates a Router acting on surface.
func NewRouter(surface Surface) *Router {
	return &Router{surface: surface}
}

// WithForwarder mirrors every dispatched command to f.
func (r *Router) WithForwarder(f Forwarder) *Router {
	r.forwarder = f
	return r
}

// Dispatch parses raw and applies it.
func (r *Router) Dispatch(raw string) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Result{Err: fmt.Errorf("%w: empty command", ErrUnknown)}
	}

	r.forward(raw)

	cmd, err := Parse(raw)
	switch {
	case errors.Is(err, ErrUnknown):
		r.surface.Note("Unknown command: " + raw)
		return Result{Command: cmd, Err: err}
	case err != nil:
		r.surface.Note(fmt.Sprintf("Invalid command: %s (%v)", raw, err))
		return Result{Command: cmd, Err: err}
	}

	err = r.apply(cmd)
	if err != nil {
		r.surface.Note(fmt.Sprintf("Rejected command: %s (%v)", raw, err))
	}

	return Result{Command: cmd, Err: err}
}

func (r *Router) apply(cmd Command) error {
	switch cmd.Kind {
	case KindPause:
		r.surface.Pause()
	case KindResume:
		r.surface.Resume()
	case KindStatus:
		r.surface.RequestStatus()
	case KindOrder:
		return r.surface.SetOrder(cmd.Args)
	case KindDelay:
		return r.surface.SetDelays(cmd.Args)
	default:
		panic("command: unhandled kind " + cmd.Kind.String())
	}

	return nil
}

func (r *Router) forward(raw string) {
	if r.forwarder == nil {
		return
	}

	if err := r.forwarder.Send(raw); err != nil {
		r.surface.Note(fmt.Sprintf("WARN: could not forward %q: %v", raw, err))
	}
}
