package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/casadoconstrutor/storefront-acceptance/internal/scenario"
)

// ErrScenariosFailed is returned when at least one scenario did not pass
var ErrScenariosFailed = errors.New("one or more scenarios failed")

// SelectScenarios returns the named catalog scenarios followed by the
// journeys loaded from journeyFiles. With neither it returns the catalog.
func SelectScenarios(names, journeyFiles []string) ([]scenario.Scenario, error) {
	if len(names) == 0 && len(journeyFiles) == 0 {
		return scenario.Catalog(), nil
	}

	seen := make(map[string]bool)
	var selected []scenario.Scenario
	for _, name := range names {
		if seen[name] {
			continue
		}
		sc, err := scenario.Lookup(name)
		if err != nil {
			return nil, err
		}
		seen[name] = true
		selected = append(selected, sc)
	}

	for _, path := range journeyFiles {
		sc, err := scenario.LoadJourney(path)
		if err != nil {
			return nil, err
		}
		if seen[sc.Name] {
			return nil, fmt.Errorf("journey %s: scenario %q selected twice", path, sc.Name)
		}
		seen[sc.Name] = true
		selected = append(selected, sc)
	}

	return selected, nil
}

// RunScenarios executes scenarios through runner and writes a summary to out
func RunScenarios(ctx context.Context, runner *scenario.Runner, scenarios []scenario.Scenario, parallel int, out io.Writer) error {
	results := runner.RunAll(ctx, scenarios, parallel)

	failed := 0
	for _, result := range results {
		if result.Passed() {
			fmt.Fprintf(out, "✅ %s (%s)\n", result.Title, result.Duration.Round(time.Millisecond))
			fmt.Fprintf(out, "   evidência: %s\n", result.EvidencePath)
			fmt.Fprintf(out, "   log: %s\n", result.LogPath)
			continue
		}
		failed++
		fmt.Fprintf(out, "❌ %s: %v\n", result.Title, result.Err)
	}
	fmt.Fprintf(out, "%d scenarios, %d passed, %d failed\n", len(results), len(results)-failed, failed)

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrScenariosFailed, failed, len(results))
	}
	return nil
}

// ListScenarios writes the name and title of every catalog scenario
func ListScenarios(out io.Writer) {
	for _, sc := range scenario.Catalog() {
		fmt.Fprintf(out, "%-20s %s\n", sc.Name, sc.Title)
	}
}
