// Package scenario loads market scenarios: the market settings, the demand
// curve and the firms that compete in it. Firm parameters are written as
// partial overrides on top of a shared firm_defaults bundle.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/talgya/market-sim/internal/economy"
	"github.com/talgya/market-sim/internal/engine"
)

// ErrInvalidScenario is returned when a scenario document cannot be used at all.
// Problems confined to a single firm are reported per firm instead.
var ErrInvalidScenario = errors.New("invalid scenario")

// Document is a scenario file.
type Document struct {
	Market       engine.Config        `yaml:"market"`
	Demand       economy.DemandParams `yaml:"demand"`
	FirmDefaults map[string]any       `yaml:"firm_defaults,omitempty"`
	Firms        []FirmSpec           `yaml:"firms"`
}

// FirmSpec names a firm and the parameters it overrides.
type FirmSpec struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params,omitempty"`
}

// Load reads and checks a scenario file.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	doc, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML scenario and checks the market and demand sections.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the market-wide sections. Firm bundles are checked when
// they are resolved.
func (d *Document) Validate() error {
	v := validator.New()
	if err := v.Struct(d.Market); err != nil {
		return fmt.Errorf("%w: market: %s", ErrInvalidScenario, describe(err))
	}
	if err := v.Struct(d.Demand); err != nil {
		return fmt.Errorf("%w: demand: %s", ErrInvalidScenario, describe(err))
	}
	return nil
}

// Save writes the document as YAML.
func Save(path string, doc *Document) error {
	b, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Namespace(), e.Tag()))
	}
	return strings.Join(msgs, "; ")
}
