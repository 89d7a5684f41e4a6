// Package config collects the settings of a sequencer service from the
// environment, optional .env files and a YAML signal plan.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvAddr        = "PENTAGON_ADDR"
	EnvSerial      = "PENTAGON_SERIAL"
	EnvRecord      = "PENTAGON_RECORD"
	EnvPlan        = "PENTAGON_PLAN"
	EnvVerbose     = "PENTAGON_VERBOSE"
	EnvOpenBrowser = "PENTAGON_OPEN_BROWSER"
)

// DefaultAddr is the monitor address used when none is configured.
const DefaultAddr = "localhost:5000"

// Config holds the settings of a sequencer service.
type Config struct {
	// Addr is the listening address of the monitor.
	Addr string

	// SerialDevice is the path of the signal controller's serial device.
	// Empty means simulator-only.
	SerialDevice string

	// RecordPath is the SQLite file the trace is written to. Empty disables
	// recording. "auto" picks a fresh name per session.
	RecordPath string

	// PlanFile is a YAML signal plan applied at start-up.
	PlanFile string

	Verbose     bool
	OpenBrowser bool
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{Addr: DefaultAddr}
}

// Load reads the configuration from the environment. Variables found in the
// given .env files are added to the environment first, without overriding
// variables already set. Missing .env files are skipped.
func Load(envFiles ...string) (Config, error) {
	existing := make([]string, 0, len(envFiles))
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}

	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	c := Default()

	if v, ok := lookup(EnvAddr); ok {
		c.Addr = v
	}

	c.SerialDevice, _ = lookup(EnvSerial)
	c.RecordPath, _ = lookup(EnvRecord)
	c.PlanFile, _ = lookup(EnvPlan)

	var err error

	c.Verbose, err = lookupBool(EnvVerbose)
	if err != nil {
		return Config{}, err
	}

	c.OpenBrowser, err = lookupBool(EnvOpenBrowser)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	v = strings.TrimSpace(v)

	return v, ok && v != ""
}

func lookupBool(name string) (bool, error) {
	v, ok := lookup(name)
	if !ok {
		return false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s=%q is not a boolean", name, v)
	}

	return b, nil
}
