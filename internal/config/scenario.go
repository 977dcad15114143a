package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a batch of studies run back to back from one file.
type Scenario struct {
	Name    string
	Studies []Study
}

// Study is one entry of a scenario: which study to run and its
// configuration, already completed with defaults.
type Study struct {
	Kind   string
	Label  string
	Config *Config
}

// LoadScenario parses a scenario file. Each study's config block is
// decoded over a fresh default configuration, the same merge rule Load
// applies to single files.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Name    string `yaml:"name"`
		Studies []struct {
			Kind   string    `yaml:"kind"`
			Label  string    `yaml:"label"`
			Config yaml.Node `yaml:"config"`
		} `yaml:"studies"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Studies) == 0 {
		return nil, fmt.Errorf("%w: scenario %q lists no studies", ErrInvalid, path)
	}

	sc := &Scenario{Name: doc.Name}
	for i, sd := range doc.Studies {
		if sd.Kind == "" {
			return nil, fmt.Errorf("%w: study %d has no kind", ErrInvalid, i)
		}
		cfg := DefaultConfig()
		if sd.Config.Kind != 0 {
			if err := sd.Config.Decode(cfg); err != nil {
				return nil, fmt.Errorf("study %d (%s): %w", i, sd.Kind, err)
			}
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("study %d (%s): %w", i, sd.Kind, err)
		}
		label := sd.Label
		if label == "" {
			label = sd.Kind
		}
		sc.Studies = append(sc.Studies, Study{Kind: sd.Kind, Label: label, Config: cfg})
	}
	return sc, nil
}
