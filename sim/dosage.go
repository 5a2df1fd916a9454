package sim

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrInvalidDosage marks a trial whose resolved roster cannot be simulated:
// the largest per-injection dosage exceeds the vial volume, or the smallest
// is not strictly positive. Sweeps over a parameter grid hit this constantly,
// so it is a sentinel checked with errors.Is, never a panic.
var ErrInvalidDosage = errors.New("invalid dosage roster")

// dosagePlaces is the precision cutoff for per-injection dosages (mL).
// Dose rates finer than this do not produce distinct schedules.
const dosagePlaces = 2

// PersonSpec is one participant's raw trial parameters: an average daily
// dose rate and the interval between injections.
type PersonSpec struct {
	Name     string
	DoseRate decimal.Decimal // mL per day
	Interval int             // days between injections (>= 1)
}

// PersonDosage is one participant's resolved schedule: the volume drawn per
// injection event and how often the event occurs.
type PersonDosage struct {
	Name      string          `json:"name"`
	Dosage    decimal.Decimal `json:"dosage"`    // mL per injection
	Frequency int             `json:"frequency"` // days between injections
}

// NewRoster resolves raw specs into per-injection dosages, preserving the
// caller's order. Dosage is rate x interval rounded to two decimal places.
func NewRoster(specs []PersonSpec) []PersonDosage {
	roster := make([]PersonDosage, 0, len(specs))
	for _, spec := range specs {
		roster = append(roster, PersonDosage{
			Name:      spec.Name,
			Dosage:    spec.DoseRate.Mul(decimal.NewFromInt(int64(spec.Interval))).Round(dosagePlaces),
			Frequency: spec.Interval,
		})
	}
	return roster
}

// sortedByDosage returns a copy of the roster ordered largest dosage first.
// The vial-replacement policy reads the extremes of this ordering, and trial
// results report it.
func sortedByDosage(roster []PersonDosage) []PersonDosage {
	sorted := make([]PersonDosage, len(roster))
	copy(sorted, roster)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Dosage.GreaterThan(sorted[j].Dosage)
	})
	return sorted
}

// validateRoster gates a resolved roster against the vial volume. sorted
// must be in descending dosage order.
func validateRoster(sorted []PersonDosage, vialVolume decimal.Decimal) error {
	if len(sorted) == 0 {
		return ErrInvalidDosage
	}
	if sorted[0].Dosage.GreaterThan(vialVolume) {
		return ErrInvalidDosage
	}
	if !sorted[len(sorted)-1].Dosage.IsPositive() {
		return ErrInvalidDosage
	}
	return nil
}
