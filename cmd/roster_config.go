package cmd

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	sim "github.com/vialsim/vialsim/sim"
)

// Define structs for YAML
type SweepFile struct {
	// Vials is a pointer so an explicit `vials: 0` is rejected instead of
	// being mistaken for "not set" and papered over by the flag default.
	Vials      *int         `yaml:"vials"`
	VialVolume float64      `yaml:"vial_volume"`
	Step       float64      `yaml:"step"`
	Outcomes   int          `yaml:"outcomes"`
	People     []PersonFile `yaml:"people"`
}

type PersonFile struct {
	Name        string  `yaml:"name"`
	DoseMin     float64 `yaml:"dose_min"`
	DoseMax     float64 `yaml:"dose_max"`
	Frequencies []int   `yaml:"frequencies"`
}

// GetSweepFile reads and parses the sweep configuration YAML.
func GetSweepFile(path string) (*SweepFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep config: %w", err)
	}

	var cfg SweepFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sweep config: %w", err)
	}
	if cfg.Vials != nil && *cfg.Vials < 1 {
		return nil, fmt.Errorf("sweep config %s: vials must be at least 1, got %d", path, *cfg.Vials)
	}
	if len(cfg.People) == 0 {
		return nil, fmt.Errorf("sweep config %s lists no people", path)
	}
	for _, p := range cfg.People {
		if p.Name == "" || len(p.Frequencies) == 0 {
			return nil, fmt.Errorf("sweep config %s: every person needs a name and at least one frequency", path)
		}
		for _, freq := range p.Frequencies {
			if freq < 1 {
				return nil, fmt.Errorf("sweep config %s: %s has frequency %d, every frequency must be at least 1 day", path, p.Name, freq)
			}
		}
	}
	return &cfg, nil
}

// Ranges converts the file's people into the simulator's parameter ranges.
func (f *SweepFile) Ranges() []sim.PersonRange {
	ranges := make([]sim.PersonRange, 0, len(f.People))
	for _, p := range f.People {
		ranges = append(ranges, sim.PersonRange{
			Name:        p.Name,
			DoseMin:     decimal.NewFromFloat(p.DoseMin),
			DoseMax:     decimal.NewFromFloat(p.DoseMax),
			Frequencies: p.Frequencies,
		})
	}
	return ranges
}

// Names returns the people in configured order, for report formatting.
func (f *SweepFile) Names() []string {
	names := make([]string, 0, len(f.People))
	for _, p := range f.People {
		names = append(names, p.Name)
	}
	return names
}
