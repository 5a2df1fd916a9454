package sim

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrNoUsableSchedule means every combination in the parameter space was an
// invalid roster, so the sweep produced no trial data at all. Unlike a
// single aborted trial this is fatal for the run.
var ErrNoUsableSchedule = errors.New("no usable schedule: every trial was aborted")

// PersonRange is the parameter space for one person: a half-open dose-rate
// range stepped on the sweep grid, and the candidate injection intervals.
type PersonRange struct {
	Name        string
	DoseMin     decimal.Decimal // mL per day, inclusive
	DoseMax     decimal.Decimal // mL per day, exclusive
	Frequencies []int           // candidate intervals in days
}

// SweepConfig carries the sweep-wide parameters.
type SweepConfig struct {
	NumVials   int             // vials to consume per trial
	VialVolume decimal.Decimal // mL per vial
	Step       decimal.Decimal // dose-rate grid increment
	Outcomes   int             // how many top outcomes to report
	Workers    int             // parallel trial runners (1 = sequential)
}

// Sweep enumerates every combination of dose rate and frequency across all
// people, runs one trial per combination, and ranks the unique outcomes by
// waste. Trials are independent, so they can run on a worker pool without
// affecting the (sorted) outcome.
type Sweep struct {
	cfg    SweepConfig
	people []PersonRange
}

// SweepSummary aggregates a finished sweep.
type SweepSummary struct {
	Outcomes []*Result `json:"outcomes"` // unique results, least waste first
	Trials   int       `json:"trials"`   // combinations attempted
	Aborted  int       `json:"aborted"`  // trials rejected for invalid dosages
}

func NewSweep(cfg SweepConfig, people []PersonRange) *Sweep {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Sweep{cfg: cfg, people: people}
}

// doseGrid expands a half-open [min, max) dose-rate range on the step grid.
// Decimal steps keep the grid exact; a float loop would drift and change
// the trial count.
func doseGrid(min, max, step decimal.Decimal) []decimal.Decimal {
	var grid []decimal.Decimal
	for v := min; v.LessThan(max); v = v.Add(step) {
		grid = append(grid, v)
	}
	return grid
}

// axes builds, per person, the dose-rate grid and frequency list to iterate.
type axis struct {
	rates []decimal.Decimal
	freqs []int
}

func (s *Sweep) axes() []axis {
	out := make([]axis, len(s.people))
	for i, p := range s.people {
		out[i] = axis{rates: doseGrid(p.DoseMin, p.DoseMax, s.cfg.Step), freqs: p.Frequencies}
	}
	return out
}

// Run enumerates the Cartesian product of every person's dose grid and
// frequency list, simulates each combination, and returns the deduplicated
// outcomes sorted by waste ascending. It fails with ErrNoUsableSchedule
// when no combination survives validation.
func (s *Sweep) Run() (*SweepSummary, error) {
	// A non-positive step would never advance the dose grid toward its
	// upper bound, so reject it before expanding any axis.
	if !s.cfg.Step.IsPositive() {
		return nil, fmt.Errorf("sweep step must be positive, got %s", s.cfg.Step)
	}
	if len(s.people) == 0 {
		return nil, ErrNoUsableSchedule
	}
	axes := s.axes()
	for _, a := range axes {
		if len(a.rates) == 0 || len(a.freqs) == 0 {
			return nil, ErrNoUsableSchedule
		}
	}

	combos := make(chan []PersonSpec, s.cfg.Workers)
	go func() {
		defer close(combos)
		s.enumerate(axes, combos)
	}()

	type trialOutcome struct {
		result *Result
		err    error
	}
	outcomes := make(chan trialOutcome, s.cfg.Workers)
	var wg sync.WaitGroup
	for w := 0; w < s.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for specs := range combos {
				res, err := Simulate(specs, s.cfg.NumVials, s.cfg.VialVolume)
				outcomes <- trialOutcome{result: res, err: err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	summary := &SweepSummary{}
	unique := make(map[string]*Result)
	for out := range outcomes {
		summary.Trials++
		if out.err != nil {
			summary.Aborted++
			continue
		}
		unique[out.result.Key()] = out.result
	}
	logrus.Infof("sweep finished: %d trials, %d aborted, %d unique outcomes",
		summary.Trials, summary.Aborted, len(unique))

	if len(unique) == 0 {
		return nil, ErrNoUsableSchedule
	}

	for _, res := range unique {
		summary.Outcomes = append(summary.Outcomes, res)
	}
	// Waste ascending; key order breaks ties so worker scheduling cannot
	// reorder the report.
	sort.Slice(summary.Outcomes, func(i, j int) bool {
		if c := summary.Outcomes[i].Waste.Cmp(summary.Outcomes[j].Waste); c != 0 {
			return c < 0
		}
		return summary.Outcomes[i].Key() < summary.Outcomes[j].Key()
	})
	return summary, nil
}

// enumerate walks the product space odometer-style, emitting one spec slice
// per combination. Each emitted slice is freshly allocated because trials
// may run concurrently.
func (s *Sweep) enumerate(axes []axis, combos chan<- []PersonSpec) {
	// Per person two counters: dose-rate index and frequency index.
	rateIdx := make([]int, len(axes))
	freqIdx := make([]int, len(axes))
	for {
		specs := make([]PersonSpec, len(axes))
		for i, a := range axes {
			specs[i] = PersonSpec{
				Name:     s.people[i].Name,
				DoseRate: a.rates[rateIdx[i]],
				Interval: a.freqs[freqIdx[i]],
			}
		}
		combos <- specs

		// Advance the odometer: frequency is the fast digit within a
		// person, dose rate the slow one.
		i := len(axes) - 1
		for i >= 0 {
			freqIdx[i]++
			if freqIdx[i] < len(axes[i].freqs) {
				break
			}
			freqIdx[i] = 0
			rateIdx[i]++
			if rateIdx[i] < len(axes[i].rates) {
				break
			}
			rateIdx[i] = 0
			i--
		}
		if i < 0 {
			return
		}
	}
}
