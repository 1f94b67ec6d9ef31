package ml

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

const numClasses = 4

// Label is one class of the 4-class learning style taxonomy with its fixed
// display content.
type Label struct {
	Name        string   `yaml:"name"`
	Motivation  string   `yaml:"motivation"`
	Suggestions []string `yaml:"suggestions"`
}

// Calibration holds the per-feature min-max parameters the normalizer
// applies before inference. Both arrays are indexed in feature vector order.
type Calibration struct {
	Min   []float64 `yaml:"min"`
	Scale []float64 `yaml:"scale"`
}

// Catalog is the immutable label and calibration table, parsed once at
// startup and injected into the classifier.
type Catalog struct {
	Labels      []Label     `yaml:"labels"`
	Calibration Calibration `yaml:"calibration"`
}

func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Labels) != numClasses {
		return nil, fmt.Errorf("catalog: expected %d labels, got %d", numClasses, len(c.Labels))
	}
	for i, l := range c.Labels {
		if l.Name == "" {
			return nil, fmt.Errorf("catalog: label %d has no name", i)
		}
		if len(l.Suggestions) != 3 {
			return nil, fmt.Errorf("catalog: label %q needs 3 suggestions, got %d", l.Name, len(l.Suggestions))
		}
	}
	if len(c.Calibration.Min) != numFeatures || len(c.Calibration.Scale) != numFeatures {
		return nil, fmt.Errorf("catalog: calibration arrays must have %d entries", numFeatures)
	}
	return &c, nil
}

// LabelAt returns the label for a model class index.
func (c *Catalog) LabelAt(index int) (Label, error) {
	if index < 0 || index >= len(c.Labels) {
		return Label{}, fmt.Errorf("label index %d out of range", index)
	}
	return c.Labels[index], nil
}

// IndexOf returns the class index for a label name, or -1 when unknown.
func (c *Catalog) IndexOf(name string) int {
	for i, l := range c.Labels {
		if l.Name == name {
			return i
		}
	}
	return -1
}
