// Package monitoring turns the sequencer into an HTTP service that shows the
// signal state and accepts operator commands.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/sarchlab/pentagon/command"
	"github.com/sarchlab/pentagon/cycle"
	"github.com/sarchlab/pentagon/eventlog"
	"github.com/sarchlab/pentagon/lights"
	"github.com/sarchlab/pentagon/monitoring/web"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// DefaultAddr is where the monitor listens unless told otherwise.
const DefaultAddr = "localhost:5000"

// Controller is the part of the cycle engine the monitor drives.
type Controller interface {
	SetOrder(values []int) error
	SetDelays(values []int) error
	Pause()
	Resume()
	Status() cycle.Status
	Position() cycle.Position
	RecentLog(n int) []string
}

// Dispatcher routes raw operator commands.
type Dispatcher interface {
	Dispatch(raw string) command.Result
}

// Monitor serves the signal state and the command surface over HTTP.
type Monitor struct {
	controller Controller
	dispatcher Dispatcher
	addr       string
	server     *http.Server
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{addr: DefaultAddr}
}

// WithAddr sets the listening address. A port of 0 picks a free port.
func (m *Monitor) WithAddr(addr string) *Monitor {
	m.addr = addr
	return m
}

// RegisterController registers the engine that is monitored.
func (m *Monitor) RegisterController(c Controller) {
	m.controller = c
}

// RegisterDispatcher registers the router that handles raw commands.
func (m *Monitor) RegisterDispatcher(d Dispatcher) {
	m.dispatcher = d
}

// Router returns the request router of the monitor.
func (m *Monitor) Router() *mux.Router {
	if m.controller == nil || m.dispatcher == nil {
		panic("monitor requires a controller and a dispatcher")
	}

	r := mux.NewRouter()

	r.HandleFunc("/status", m.status).Methods(http.MethodGet)
	r.HandleFunc("/command", m.command).Methods(http.MethodPost)
	r.HandleFunc("/serial", m.serial).Methods(http.MethodGet)
	r.HandleFunc("/order", m.order).Methods(http.MethodPost)
	r.HandleFunc("/delay", m.delay).Methods(http.MethodPost)
	r.HandleFunc("/api/pause", m.pause)
	r.HandleFunc("/api/continue", m.resume)
	r.HandleFunc("/api/position", m.position)
	r.HandleFunc("/api/state", m.state)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts listening and serving in the background. It returns
// the URL of the dashboard.
func (m *Monitor) StartServer() (string, error) {
	listener, err := net.Listen("tcp", m.addr)
	if err != nil {
		return "", fmt.Errorf("monitoring: listen on %s: %w", m.addr, err)
	}

	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	url := "http://" + listener.Addr().String()
	fmt.Fprintf(os.Stderr, "Monitoring traffic signals with %s\n", url)

	go func() {
		err := m.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("monitoring: %v", err)
		}
	}()

	return url, nil
}

// Shutdown stops the server started by StartServer.
func (m *Monitor) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

type statusRsp struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

var (
	successRsp = statusRsp{Status: "success"}
	errorRsp   = statusRsp{Status: "error"}
)

func (m *Monitor) status(w http.ResponseWriter, r *http.Request) {
	s := m.controller.Status()

	rsp := make(map[string]any, lights.NumDirections+3)
	for _, d := range lights.Directions() {
		rsp[d.String()] = s.Lights[d]
	}

	if s.Latest != "" {
		rsp["STATE"] = s.Latest
	}

	if s.Hardware != nil {
		rsp["HARDWARE"] = s.Hardware.Lights.HardwareLine()
	}

	if h := r.URL.Query().Get("history"); h != "" {
		n, err := strconv.Atoi(h)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid history")
			return
		}

		rsp["HISTORY"] = historyLines(s.History, n)
	}

	writeJSON(w, rsp)
}

func historyLines(history []lights.Snapshot, n int) []string {
	if n > len(history) {
		n = len(history)
	}

	lines := make([]string, 0, n)
	for _, snap := range history[len(history)-n:] {
		lines = append(lines, snap.Line())
	}

	return lines
}

type commandReq struct {
	Command string `json:"command"`
}

func (m *Monitor) command(w http.ResponseWriter, r *http.Request) {
	req := commandReq{}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.Command == "" {
		writeJSON(w, errorRsp)
		return
	}

	m.dispatcher.Dispatch(req.Command)

	writeJSON(w, successRsp)
}

func (m *Monitor) serial(w http.ResponseWriter, _ *http.Request) {
	lines := m.controller.RecentLog(eventlog.DefaultRecent)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := w.Write([]byte(strings.Join(lines, "\n")))
	dieOnErr(err)
}

type orderReq struct {
	Order []int `json:"order"`
}

func (m *Monitor) order(w http.ResponseWriter, r *http.Request) {
	req := orderReq{}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err == nil && len(req.Order) == lights.NumDirections {
		err = m.controller.SetOrder(req.Order)
	} else if err == nil {
		err = lights.ErrInvalidOrder
	}

	if err != nil {
		writeJSON(w, statusRsp{Status: "error", Message: "Invalid order"})
		return
	}

	writeJSON(w, successRsp)
}

type delayReq struct {
	Delay []int `json:"delay"`
}

func (m *Monitor) delay(w http.ResponseWriter, r *http.Request) {
	req := delayReq{}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err == nil && len(req.Delay) == lights.NumDelays {
		err = m.controller.SetDelays(req.Delay)
	} else if err == nil {
		err = lights.ErrInvalidDelays
	}

	if err != nil {
		writeJSON(w, statusRsp{Status: "error", Message: "Invalid delays"})
		return
	}

	writeJSON(w, successRsp)
}

func (m *Monitor) pause(w http.ResponseWriter, _ *http.Request) {
	m.controller.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) resume(w http.ResponseWriter, _ *http.Request) {
	m.controller.Resume()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) position(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.controller.Position())
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	s := m.controller.Status()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&s)
	serializer.SetMaxDepth(3)

	buf := bytes.NewBuffer(nil)

	err := serializer.Serialize(buf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(buf.Bytes())
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	writeJSON(w, statusRsp{Status: "error", Message: message})
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
