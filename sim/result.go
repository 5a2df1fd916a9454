package sim

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Result is the outcome of one completed trial. Roster is sorted largest
// dosage first. Days is the day on which the vial target was reached, with
// that day's injections fully processed; Vials is the number of vials
// actually opened by then (it can exceed the target when several vials
// retire on the final day).
type Result struct {
	Waste  decimal.Decimal `json:"waste"`
	Days   int             `json:"days"`
	Vials  int             `json:"vials"`
	Roster []PersonDosage  `json:"roster"`
}

// Key identifies a result for deduplication: the rounded waste and day pair
// plus the ordered roster. Two parameter combinations that land on the same
// schedule collapse to one outcome.
func (r *Result) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d", r.Waste.StringFixed(dosagePlaces), r.Days)
	for _, p := range r.Roster {
		fmt.Fprintf(&b, "|%s=%s/%d", p.Name, p.Dosage.StringFixed(dosagePlaces), p.Frequency)
	}
	return b.String()
}

// Person returns the roster entry for name, for callers that report people
// in their own order.
func (r *Result) Person(name string) (PersonDosage, bool) {
	for _, p := range r.Roster {
		if p.Name == name {
			return p, true
		}
	}
	return PersonDosage{}, false
}
