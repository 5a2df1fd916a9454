package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepSummary_WriteJSONTruncatesToTopOutcomes(t *testing.T) {
	cfg := SweepConfig{NumVials: 2, VialVolume: dec("5"), Step: dec("0.5"), Outcomes: 5}
	people := []PersonRange{
		{Name: "solo", DoseMin: dec("2"), DoseMax: dec("3"), Frequencies: []int{1}},
	}
	sum, err := NewSweep(cfg, people).Run()
	require.NoError(t, err)
	require.Len(t, sum.Outcomes, 2)

	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, sum.WriteJSON(path, 1))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded SweepSummary
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Len(t, decoded.Outcomes, 1)
	assert.Equal(t, sum.Trials, decoded.Trials)
	assert.True(t, decoded.Outcomes[0].Waste.Equal(sum.Outcomes[0].Waste))
	// Truncation must not shrink the caller's summary.
	assert.Len(t, sum.Outcomes, 2)
}

func TestResult_PersonLookup(t *testing.T) {
	res, err := Simulate([]PersonSpec{
		{Name: "low", DoseRate: dec("1"), Interval: 1},
		{Name: "high", DoseRate: dec("3"), Interval: 1},
	}, 2, dec("5"))
	require.NoError(t, err)

	p, ok := res.Person("low")
	require.True(t, ok)
	assert.True(t, p.Dosage.Equal(dec("1")))

	_, ok = res.Person("nobody")
	assert.False(t, ok)
}
