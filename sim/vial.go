package sim

import (
	"github.com/shopspring/decimal"
)

// Leftover is the retained remainder of a retired vial. It can serve people
// whose dosage fits within Amount; once the remainder drops below the
// smallest dosage in the roster it is wasted and the fragment deactivates.
// The model keeps at most one fragment at a time.
type Leftover struct {
	Amount decimal.Decimal
	Active bool
}

// VialState is the mutable depletion state of one trial. It is created
// fresh per trial, mutated only by the simulator's day loop, and read once
// at completion. VialsUsed counts every vial opened so far, including the
// one currently active, so a fresh state starts at 1.
type VialState struct {
	ActiveRemaining decimal.Decimal // mL left in the open primary vial
	Leftover        Leftover
	VialsUsed       int
	Waste           decimal.Decimal // cumulative, never decreases

	vialVolume decimal.Decimal
}

// newVialState opens the first vial of a trial.
func newVialState(vialVolume decimal.Decimal) *VialState {
	return &VialState{
		ActiveRemaining: vialVolume,
		VialsUsed:       1,
		vialVolume:      vialVolume,
	}
}

// inject attempts to draw dose from the leftover fragment first, then from
// the active vial. minDosage is the smallest dosage in the roster: a
// leftover remainder below it can never serve anyone again and is wasted on
// the spot. Returns false when neither source covers the dose; the caller
// must replace the vial before retrying.
func (v *VialState) inject(dose, minDosage decimal.Decimal) bool {
	if v.Leftover.Active && v.Leftover.Amount.GreaterThanOrEqual(dose) {
		v.Leftover.Amount = v.Leftover.Amount.Sub(dose)
		if v.Leftover.Amount.LessThan(minDosage) {
			v.Waste = v.Waste.Add(v.Leftover.Amount)
			v.Leftover = Leftover{}
		}
		return true
	}
	if v.ActiveRemaining.GreaterThanOrEqual(dose) {
		v.ActiveRemaining = v.ActiveRemaining.Sub(dose)
		return true
	}
	return false
}

// replace retires the active vial when it can no longer serve everyone.
// Below minDosage the remainder is pure waste; between minDosage and
// maxDosage it becomes the leftover fragment. At or above maxDosage the
// vial still serves every dose and the call is a no-op.
//
// The single leftover slot means a still-active fragment can be displaced
// here; its remaining volume is counted as waste so that no medication ever
// leaves the books unaccounted.
func (v *VialState) replace(minDosage, maxDosage decimal.Decimal) {
	switch {
	case v.ActiveRemaining.LessThan(minDosage):
		v.Waste = v.Waste.Add(v.ActiveRemaining)
	case v.ActiveRemaining.LessThan(maxDosage):
		if v.Leftover.Active {
			v.Waste = v.Waste.Add(v.Leftover.Amount)
		}
		v.Leftover = Leftover{Amount: v.ActiveRemaining, Active: true}
	default:
		return
	}
	v.VialsUsed++
	v.ActiveRemaining = v.vialVolume
}
