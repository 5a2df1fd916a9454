// Formats the sweep summary for the console and for JSON export.

package sim

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Print displays the top outcomes of a finished sweep. names gives the
// people in their configured order, so the per-person lines read the way
// the roster was written rather than in dosage order.
func (sum *SweepSummary) Print(names []string, topK int) {
	if sum.Aborted > 0 {
		fmt.Printf("%d trials were aborted.\n", sum.Aborted)
		fmt.Println("This is likely a result of having a dose larger than the vial volume or a negative dose.")
		fmt.Println()
	}

	fmt.Println("The least wasteful dosage schedules are:")
	for i, res := range sum.Outcomes {
		if i >= topK {
			break
		}
		fmt.Printf("Optimal outcome: %d\n", i+1)
		fmt.Printf("Total wasted medicine:  %s mL\n", res.Waste.StringFixed(dosagePlaces))
		fmt.Printf("In %d days, you will have used %d vials\n", res.Days, res.Vials)
		for _, name := range names {
			if p, ok := res.Person(name); ok {
				fmt.Printf("%s's dosage: %s mL every %d days\n", p.Name, p.Dosage.StringFixed(dosagePlaces), p.Frequency)
			}
		}
		fmt.Println()
	}
}

// WriteJSON exports the summary, truncated to the top outcomes, to path.
func (sum *SweepSummary) WriteJSON(path string, topK int) error {
	export := *sum
	if topK < len(export.Outcomes) {
		export.Outcomes = export.Outcomes[:topK]
	}
	data, err := json.MarshalIndent(&export, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sweep summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing sweep summary: %w", err)
	}
	return nil
}
