// Package hwlink mirrors the sequencer to a physical controller over a
// line-oriented serial link. Commands go out as newline-terminated strings;
// the controller answers with snapshots and free-form diagnostics.
package hwlink

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sarchlab/pentagon/lights"
)

// Sink receives what the controller reports.
type Sink interface {
	ObserveHardware(state lights.State)
	Note(line string)
}

// Link is a connection to a physical controller.
type Link struct {
	rw   io.ReadWriter
	sink Sink

	writeLock sync.Mutex
	closeOnce sync.Once
}

// NewLink wraps an already opened byte stream.
func NewLink(rw io.ReadWriter, sink Sink) *Link {
	return &Link{rw: rw, sink: sink}
}

// Open opens the serial device at path. The device is expected to be
// configured already; line settings are not touched.
func Open(path string, sink Sink) (*Link, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("hwlink: open %s: %w", path, err)
	}

	return NewLink(f, sink), nil
}

// Send writes one command line to the controller.
func (l *Link) Send(cmd string) error {
	l.writeLock.Lock()
	defer l.writeLock.Unlock()

	_, err := io.WriteString(l.rw, cmd+"\n")
	if err != nil {
		return fmt.Errorf("hwlink: write: %w", err)
	}

	return nil
}

// MaxLineLength is the longest inbound line the link accepts. Longer lines
// are dropped with a warning and reading goes on.
const MaxLineLength = 4096

// Listen reads lines from the controller until the stream ends or ctx is
// done, handing each of them to Handle.
func (l *Link) Listen(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = l.Close() })
	defer stop()

	r := bufio.NewReaderSize(l.rw, MaxLineLength)
	buf := make([]byte, 0, MaxLineLength)
	overlong := false

	for {
		frag, more, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil ||
				errors.Is(err, os.ErrClosed) {
				return nil
			}

			return fmt.Errorf("hwlink: read: %w", err)
		}

		if !overlong && len(buf)+len(frag) > MaxLineLength {
			overlong = true
			buf = buf[:0]
		}

		if !overlong {
			buf = append(buf, frag...)
		}

		if more {
			continue
		}

		if overlong {
			l.sink.Note(fmt.Sprintf(
				"WARN: discarded hardware line longer than %d bytes",
				MaxLineLength))
			overlong = false

			continue
		}

		l.Handle(string(buf))
		buf = buf[:0]
	}
}

// Handle processes one inbound line.
func (l *Link) Handle(raw string) {
	line, err := Decode(raw)
	if err != nil {
		l.sink.Note(fmt.Sprintf("WARN: discarded hardware snapshot %q: %v",
			line.Text, err))
		return
	}

	switch line.Kind {
	case LineSnapshot:
		l.sink.ObserveHardware(line.State)
	case LineText:
		l.sink.Note("HW: " + line.Text)
	}
}

// Close closes the underlying stream if it can be closed.
func (l *Link) Close() error {
	var err error

	l.closeOnce.Do(func() {
		if c, ok := l.rw.(io.Closer); ok {
			err = c.Close()
		}
	})

	return err
}
