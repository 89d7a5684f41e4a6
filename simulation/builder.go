package simulation

import (
	"fmt"
	"log"
	"os"

	"github.com/sarchlab/pentagon/command"
	"github.com/sarchlab/pentagon/config"
	"github.com/sarchlab/pentagon/cycle"
	"github.com/sarchlab/pentagon/datarecording"
	"github.com/sarchlab/pentagon/hwlink"
	"github.com/sarchlab/pentagon/idgen"
	"github.com/sarchlab/pentagon/monitoring"
)

// AutoRecordPath asks the builder to name the trace file after the session.
const AutoRecordPath = "auto"

// Builder can be used to build a sequencer service.
type Builder struct {
	engineBuilder cycle.Builder
	monitorOn     bool
	addr          string
	serialDevice  string
	recordPath    string
	plan          *config.Plan
	logger        *log.Logger
	verbose       bool
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		engineBuilder: cycle.MakeBuilder(),
		monitorOn:     true,
		logger:        log.New(os.Stderr, "", log.LstdFlags),
	}
}

// MakeBuilderFromConfig creates a builder set up from c. The plan file, if
// any, is read here.
func MakeBuilderFromConfig(c config.Config) (Builder, error) {
	b := MakeBuilder().
		WithAddr(c.Addr).
		WithSerialDevice(c.SerialDevice).
		WithRecording(c.RecordPath)

	if c.Verbose {
		b = b.WithVerboseLog()
	}

	if c.PlanFile != "" {
		plan, err := config.LoadPlan(c.PlanFile)
		if err != nil {
			return b, err
		}

		b = b.WithPlan(plan)
	}

	return b, nil
}

// WithEngineBuilder sets the builder used to create the cycle engine.
func (b Builder) WithEngineBuilder(eb cycle.Builder) Builder {
	b.engineBuilder = eb
	return b
}

// WithoutMonitoring sets the service to not start the HTTP monitor.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithAddr sets the listening address of the monitor.
func (b Builder) WithAddr(addr string) Builder {
	b.addr = addr
	return b
}

// WithSerialDevice sets the device of the physical signal controller.
func (b Builder) WithSerialDevice(path string) Builder {
	b.serialDevice = path
	return b
}

// WithRecording writes a trace into the SQLite file at path. AutoRecordPath
// derives the name from the session ID.
func (b Builder) WithRecording(path string) Builder {
	b.recordPath = path
	return b
}

// WithPlan applies a signal plan before the engine starts.
func (b Builder) WithPlan(p config.Plan) Builder {
	b.plan = &p
	return b
}

// WithLogger sets the logger that receives the engine's log lines.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// WithVerboseLog also logs snapshots and phase changes.
func (b Builder) WithVerboseLog() Builder {
	b.verbose = true
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.addr != "" {
		panic("monitor address cannot be set when monitoring is disabled")
	}

	if b.logger == nil {
		panic("logger must be set")
	}
}

// Build builds the service. Nothing runs until Run is called, except the
// monitor, which starts serving right away.
func (b Builder) Build() (*Simulation, error) {
	b.parametersMustBeValid()

	s := &Simulation{
		id:     idgen.SessionID(),
		logger: b.logger,
	}

	s.engine = b.engineBuilder.Build()

	logHook := cycle.NewLogHook(b.logger)
	if b.verbose {
		logHook.Verbose()
	}
	s.engine.AcceptHook(logHook)

	if err := b.buildRecorder(s); err != nil {
		return nil, err
	}

	if b.plan != nil {
		if err := b.plan.Apply(s.engine); err != nil {
			s.Terminate()
			return nil, err
		}
	}

	s.router = command.NewRouter(s.engine)
	b.connectHardware(s)

	if b.monitorOn {
		if err := b.startMonitor(s); err != nil {
			s.Terminate()
			return nil, err
		}
	}

	return s, nil
}

func (b Builder) buildRecorder(s *Simulation) error {
	if b.recordPath == "" {
		return nil
	}

	path := b.recordPath
	if path == AutoRecordPath {
		path = "pentagon_" + s.id + ".sqlite3"
	}

	recorder, err := datarecording.New(path)
	if err != nil {
		return err
	}

	s.dataRecorder = recorder
	s.recordPath = path
	s.engine.AcceptHook(datarecording.NewTracer(recorder))

	return nil
}

func (b Builder) connectHardware(s *Simulation) {
	if b.serialDevice == "" {
		return
	}

	link, err := hwlink.Open(b.serialDevice, s.engine)
	if err != nil {
		b.logger.Printf("no signal controller, running simulator-only: %v", err)
		return
	}

	s.link = link
	s.router.WithForwarder(link)
}

func (b Builder) startMonitor(s *Simulation) error {
	s.monitor = monitoring.NewMonitor()
	if b.addr != "" {
		s.monitor.WithAddr(b.addr)
	}

	s.monitor.RegisterController(s.engine)
	s.monitor.RegisterDispatcher(s.router)

	url, err := s.monitor.StartServer()
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	s.url = url

	return nil
}
