// sim/simulator.go
package sim

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Simulator runs one trial: a fixed roster consuming vials day by day until
// the target vial count has been opened. Trials share no state, so callers
// may run many simulators concurrently.
type Simulator struct {
	// people in the caller's order; daily injections are attempted in this
	// order.
	people []PersonDosage
	// roster sorted largest dosage first; the replacement policy reads its
	// extremes and results report it.
	roster    []PersonDosage
	minDosage decimal.Decimal
	maxDosage decimal.Decimal

	numVials int
	state    *VialState
}

// NewSimulator resolves and validates a roster for one trial. It returns
// ErrInvalidDosage when the roster cannot be simulated: an expected outcome
// when sweeping a parameter grid, so callers count it rather than abort.
func NewSimulator(specs []PersonSpec, numVials int, vialVolume decimal.Decimal) (*Simulator, error) {
	if numVials < 1 || !vialVolume.IsPositive() {
		return nil, ErrInvalidDosage
	}
	people := NewRoster(specs)
	roster := sortedByDosage(people)
	if err := validateRoster(roster, vialVolume); err != nil {
		return nil, err
	}
	return &Simulator{
		people:    people,
		roster:    roster,
		minDosage: roster[len(roster)-1].Dosage,
		maxDosage: roster[0].Dosage,
		numVials:  numVials,
		state:     newVialState(vialVolume),
	}, nil
}

// Simulate runs a single trial end to end. It is a pure function of its
// arguments: identical inputs always produce identical results.
func Simulate(specs []PersonSpec, numVials int, vialVolume decimal.Decimal) (*Result, error) {
	s, err := NewSimulator(specs, numVials, vialVolume)
	if err != nil {
		return nil, err
	}
	return s.Run(), nil
}

// Run advances the trial one day at a time. Each day is processed in full
// before the vial target is checked, so the returned day is the first day
// whose processing saw VialsUsed reach the target. The first vial opened at
// construction counts toward the target.
func (s *Simulator) Run() *Result {
	day := 1
	for {
		s.stepDay(day)
		if s.state.VialsUsed >= s.numVials {
			break
		}
		day++
	}
	logrus.Debugf("[day %04d] trial done: vials=%d waste=%s", day, s.state.VialsUsed, s.state.Waste)
	return &Result{
		Waste:  s.state.Waste,
		Days:   day,
		Vials:  s.state.VialsUsed,
		Roster: s.roster,
	}
}

// stepDay serves every person due on the given day. A person is due when
// the day is a multiple of their injection frequency. Injections that fail
// for lack of volume trigger one vial replacement per pass, then retry.
//
// The retry loop is bounded: a pass with failures retires the active vial,
// and the fresh vial covers the roster's largest dosage, so every pass
// after a replacement serves at least one more person. len(people)+1 passes
// therefore always suffice for a validated roster.
func (s *Simulator) stepDay(day int) {
	handled := make([]bool, len(s.people))
	due := 0
	for i, p := range s.people {
		if day%p.Frequency != 0 {
			handled[i] = true
		} else {
			due++
		}
	}
	if due == 0 {
		return
	}

	for pass := 0; pass <= len(s.people); pass++ {
		pending := 0
		for i, p := range s.people {
			if handled[i] {
				continue
			}
			if s.state.inject(p.Dosage, s.minDosage) {
				logrus.Tracef("[day %04d] %s injected %s mL", day, p.Name, p.Dosage)
				handled[i] = true
			} else {
				pending++
			}
		}
		if pending == 0 {
			return
		}
		logrus.Tracef("[day %04d] %d injections short, replacing vial (remaining %s mL)",
			day, pending, s.state.ActiveRemaining)
		s.state.replace(s.minDosage, s.maxDosage)
	}
}
