package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/pentagon/lights"
)

// Plan is a signal plan: the service order and the durations of each
// approach, in milliseconds.
//
//	order: [NORTH, SE, NE, SW, NW]
//	timings:
//	  NORTH: {green: 8000, yellow: 3000}
//	  SW:    {green: 4000}
//
// Directions missing from timings, and zero durations, keep the defaults.
type Plan struct {
	Order   []string                `yaml:"order,omitempty"`
	Timings map[string]PlanDuration `yaml:"timings,omitempty"`
}

// PlanDuration lists the durations of one approach in milliseconds.
type PlanDuration struct {
	Green    int `yaml:"green,omitempty"`
	Yellow   int `yaml:"yellow,omitempty"`
	Reserved int `yaml:"reserved,omitempty"`
}

// LoadPlan reads a plan file.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("config: read plan: %w", err)
	}

	return ParsePlan(data)
}

// ParsePlan decodes a YAML plan and checks that it names valid directions.
func ParsePlan(data []byte) (Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("config: parse plan: %w", err)
	}

	if _, err := p.OrderValues(); err != nil {
		return Plan{}, err
	}

	if _, err := p.DelayValues(); err != nil {
		return Plan{}, err
	}

	return p, nil
}

// OrderValues returns the order as direction indices, or nil when the plan
// keeps the current order.
func (p Plan) OrderValues() ([]int, error) {
	if len(p.Order) == 0 {
		return nil, nil
	}

	values := make([]int, 0, len(p.Order))
	for _, name := range p.Order {
		d, err := lights.ParseDirection(name)
		if err != nil {
			return nil, fmt.Errorf("config: plan order: %w", err)
		}

		values = append(values, int(d))
	}

	if _, err := lights.NewOrder(values); err != nil {
		return nil, fmt.Errorf("config: plan order: %w", err)
	}

	return values, nil
}

// DelayValues returns the fifteen delay values of the plan, starting from
// the default timings, or nil when the plan sets no timings.
func (p Plan) DelayValues() ([]int, error) {
	if len(p.Timings) == 0 {
		return nil, nil
	}

	timings := lights.DefaultTimings()
	for name, pd := range p.Timings {
		d, err := lights.ParseDirection(name)
		if err != nil {
			return nil, fmt.Errorf("config: plan timings: %w", err)
		}

		t := &timings[d]
		overrideMillis(&t.Green, pd.Green)
		overrideMillis(&t.Yellow, pd.Yellow)
		overrideMillis(&t.Reserved, pd.Reserved)
	}

	return timings.Millis(), nil
}

func overrideMillis(d *time.Duration, ms int) {
	if ms > 0 {
		*d = lights.FromMillis(ms)
	}
}

// Surface receives a plan.
type Surface interface {
	SetOrder(values []int) error
	SetDelays(values []int) error
}

// Apply sets the plan's order and delays on s.
func (p Plan) Apply(s Surface) error {
	order, err := p.OrderValues()
	if err != nil {
		return err
	}

	if order != nil {
		if err := s.SetOrder(order); err != nil {
			return err
		}
	}

	delays, err := p.DelayValues()
	if err != nil {
		return err
	}

	if delays != nil {
		return s.SetDelays(delays)
	}

	return nil
}
