package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestGetSweepFile_ParsesFullConfig(t *testing.T) {
	path := writeConfig(t, `
vials: 20
vial_volume: 5.0
step: 0.001
outcomes: 5
people:
  - name: Alice
    dose_min: 0.038
    dose_max: 0.042
    frequencies: [7, 8]
  - name: Bob
    dose_min: 0.06
    dose_max: 0.063
    frequencies: [4, 5]
`)

	cfg, err := GetSweepFile(path)

	require.NoError(t, err)
	require.NotNil(t, cfg.Vials)
	assert.Equal(t, 20, *cfg.Vials)
	assert.Equal(t, 5.0, cfg.VialVolume)
	assert.Equal(t, 0.001, cfg.Step)
	assert.Equal(t, 5, cfg.Outcomes)
	require.Len(t, cfg.People, 2)
	assert.Equal(t, []int{7, 8}, cfg.People[0].Frequencies)
	assert.Equal(t, []string{"Alice", "Bob"}, cfg.Names())

	ranges := cfg.Ranges()
	require.Len(t, ranges, 2)
	assert.Equal(t, "Alice", ranges[0].Name)
	assert.Equal(t, "0.038", ranges[0].DoseMin.String())
	assert.Equal(t, "0.042", ranges[0].DoseMax.String())
}

func TestGetSweepFile_MissingFile(t *testing.T) {
	_, err := GetSweepFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetSweepFile_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "people: [unclosed")
	_, err := GetSweepFile(path)
	assert.Error(t, err)
}

func TestGetSweepFile_NoPeople(t *testing.T) {
	path := writeConfig(t, "vials: 20\npeople: []\n")
	_, err := GetSweepFile(path)
	assert.Error(t, err)
}

func TestGetSweepFile_PersonWithoutFrequencies(t *testing.T) {
	path := writeConfig(t, `
people:
  - name: Alice
    dose_min: 0.038
    dose_max: 0.042
    frequencies: []
`)
	_, err := GetSweepFile(path)
	assert.Error(t, err)
}

func TestGetSweepFile_RejectsNonPositiveFrequencies(t *testing.T) {
	// A zero frequency would only be caught later by the dosage gate, and a
	// negative one would reach the day-modulo check; both are config errors.
	for _, freqs := range []string{"[0]", "[7, -3]"} {
		path := writeConfig(t, `
people:
  - name: Alice
    dose_min: 0.038
    dose_max: 0.042
    frequencies: `+freqs+`
`)
		_, err := GetSweepFile(path)
		assert.ErrorContains(t, err, "frequency", "frequencies %s must be rejected", freqs)
	}
}

func TestGetSweepFile_RejectsNonPositiveVials(t *testing.T) {
	// An explicit `vials: 0` is a config error, not "use the flag default".
	for _, vials := range []string{"0", "-5"} {
		path := writeConfig(t, `
vials: `+vials+`
people:
  - name: Alice
    dose_min: 0.038
    dose_max: 0.042
    frequencies: [7]
`)
		_, err := GetSweepFile(path)
		assert.ErrorContains(t, err, "vials", "vials %s must be rejected", vials)
	}
}

func TestGetSweepFile_OmittedVialsStaysUnset(t *testing.T) {
	path := writeConfig(t, `
people:
  - name: Alice
    dose_min: 0.038
    dose_max: 0.042
    frequencies: [7]
`)

	cfg, err := GetSweepFile(path)

	require.NoError(t, err)
	assert.Nil(t, cfg.Vials)
}
