package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/casadoconstrutor/storefront-acceptance/internal/evidence"
)

// Journey is the file form of a scenario
type Journey struct {
	Name     string        `yaml:"name"`
	Title    string        `yaml:"title"`
	Evidence string        `yaml:"evidence"`
	Steps    []JourneyStep `yaml:"steps"`
}

// JourneyStep names a page operation and its argument
type JourneyStep struct {
	Action string `yaml:"action"`
	Value  string `yaml:"value"`
}

type action struct {
	needsValue bool
	build      func(value string) Step
}

var actions = map[string]action{
	"open":                          {build: func(string) Step { return Open() }},
	"searchStore":                   {needsValue: true, build: SearchStore},
	"selectStore":                   {needsValue: true, build: SelectStore},
	"clickSearchButton":             {build: func(string) Step { return ClickSearchButton() }},
	"searchProduct":                 {needsValue: true, build: SearchProduct},
	"searchProductAndPressEnter":    {needsValue: true, build: SearchProductAndPressEnter},
	"selectProductFromAutocomplete": {build: SelectProductFromAutocomplete},
	"verifyProductResults":          {needsValue: true, build: VerifyProductResults},
	"verifyProductResultsBlock2":    {needsValue: true, build: VerifyProductResultsBlock2},
	"clearSearchInput":              {build: func(string) Step { return ClearSearchInput() }},
	"verifyNoResultsMessage":        {build: func(string) Step { return VerifyNoResultsMessage() }},
}

// Actions lists the step actions a journey may use
func Actions() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadJourney reads a journey file
func LoadJourney(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read journey: %w", err)
	}
	sc, err := ParseJourney(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ParseJourney decodes a journey and builds its scenario
func ParseJourney(data []byte) (Scenario, error) {
	var j Journey
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&j); err != nil {
		if errors.Is(err, io.EOF) {
			return Scenario{}, fmt.Errorf("empty journey")
		}
		return Scenario{}, fmt.Errorf("invalid journey: %w", err)
	}
	return j.Scenario()
}

// Scenario validates the journey and converts it
func (j Journey) Scenario() (Scenario, error) {
	if j.Name == "" {
		return Scenario{}, fmt.Errorf("journey name is required")
	}
	if len(j.Steps) == 0 {
		return Scenario{}, fmt.Errorf("journey %q has no steps", j.Name)
	}

	sc := Scenario{
		Name:          j.Name,
		Title:         j.Title,
		EvidenceLabel: j.Evidence,
	}
	if sc.Title == "" {
		sc.Title = j.Name
	}
	if sc.EvidenceLabel == "" {
		sc.EvidenceLabel = j.Name + "-sucesso"
	}
	if err := evidence.ValidLabel(sc.EvidenceLabel); err != nil {
		return Scenario{}, fmt.Errorf("journey %q: %w", j.Name, err)
	}

	for i, s := range j.Steps {
		a, ok := actions[s.Action]
		if !ok {
			return Scenario{}, fmt.Errorf("step %d: unknown action %q", i+1, s.Action)
		}
		if a.needsValue && s.Value == "" {
			return Scenario{}, fmt.Errorf("step %d: action %s requires a value", i+1, s.Action)
		}
		sc.Steps = append(sc.Steps, a.build(s.Value))
	}

	return sc, nil
}
