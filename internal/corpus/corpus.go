// Package corpus bundles a small set of real-world-shaped OCR samples,
// graded by degradation level, for demos and end-to-end testing of the
// receipt pipeline. The corpus carries no logic of its own.
package corpus

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
)

//go:embed examples.yaml
var examplesYAML []byte

// Example is one bundled OCR sample.
type Example struct {
	Name        string `yaml:"name"`
	Difficulty  string `yaml:"difficulty"`
	Description string `yaml:"description"`
	Text        string `yaml:"text"`
}

// Load returns all bundled examples in difficulty order.
func Load() ([]Example, error) {
	var examples []Example
	if err := yaml.Unmarshal(examplesYAML, &examples); err != nil {
		return nil, fmt.Errorf("decoding embedded examples: %w", err)
	}
	return examples, nil
}

// Find returns the example with the given name.
func Find(name string) (Example, error) {
	examples, err := Load()
	if err != nil {
		return Example{}, err
	}
	for _, example := range examples {
		if example.Name == name {
			return example, nil
		}
	}
	return Example{}, fmt.Errorf("unknown example %q", name)
}
