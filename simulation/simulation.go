// Package simulation assembles a sequencer service: the cycle engine, its
// log and trace hooks, the command router, the optional hardware link and
// the HTTP monitor.
package simulation

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/sarchlab/pentagon/command"
	"github.com/sarchlab/pentagon/cycle"
	"github.com/sarchlab/pentagon/datarecording"
	"github.com/sarchlab/pentagon/hwlink"
	"github.com/sarchlab/pentagon/monitoring"
)

// A Simulation is an assembled sequencer service.
type Simulation struct {
	id     string
	logger *log.Logger

	engine       *cycle.Engine
	router       *command.Router
	link         *hwlink.Link
	dataRecorder datarecording.DataRecorder
	recordPath   string
	monitor      *monitoring.Monitor
	url          string

	terminateOnce sync.Once
}

// ID returns the session ID.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the cycle engine.
func (s *Simulation) GetEngine() *cycle.Engine {
	return s.engine
}

// GetRouter returns the command router.
func (s *Simulation) GetRouter() *command.Router {
	return s.router
}

// GetLink returns the hardware link, or nil in simulator-only mode.
func (s *Simulation) GetLink() *hwlink.Link {
	return s.link
}

// GetDataRecorder returns the trace recorder, or nil when not recording.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// RecordPath returns the trace file name, or "" when not recording.
func (s *Simulation) RecordPath() string {
	return s.recordPath
}

// GetMonitor returns the monitor, or nil when monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// URL returns the address of the dashboard, or "" without a monitor.
func (s *Simulation) URL() string {
	return s.url
}

// Run runs the engine, and listens to the hardware link, until ctx ends.
func (s *Simulation) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	if s.link != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := s.link.Listen(ctx); err != nil {
				s.logger.Printf("signal controller link closed: %v", err)
			}
		}()
	}

	err := s.engine.Run(ctx)

	wg.Wait()

	return err
}

// Terminate stops the monitor, closes the hardware link and flushes the
// trace. It is safe to call more than once.
func (s *Simulation) Terminate() {
	s.terminateOnce.Do(func() {
		if s.monitor != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			if err := s.monitor.Shutdown(ctx); err != nil {
				s.logger.Printf("monitor shutdown: %v", err)
			}
		}

		if s.link != nil {
			s.link.Close()
		}

		if s.dataRecorder != nil {
			if err := s.dataRecorder.Close(); err != nil {
				s.logger.Printf("closing trace: %v", err)
			}
		}
	})
}
