// Package scenario encodes storefront user journeys and runs them.
package scenario

import (
	"fmt"

	"github.com/casadoconstrutor/storefront-acceptance/internal/pages"
)

// Step is one page operation of a journey
type Step struct {
	Name string
	Do   func(p *pages.StorefrontPage) error
}

// Scenario is a fixed, linear sequence of steps
type Scenario struct {
	Name          string
	Title         string
	EvidenceLabel string
	Steps         []Step
}

// Execute runs the steps in order and stops at the first failure
func (s Scenario) Execute(p *pages.StorefrontPage) error {
	for i, step := range s.Steps {
		if err := step.Do(p); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}
	}
	return nil
}

// Open navigates to the storefront
func Open() Step {
	return Step{Name: "open", Do: (*pages.StorefrontPage).Open}
}

// SearchStore types city into the store search
func SearchStore(city string) Step {
	return Step{
		Name: fmt.Sprintf("searchStore %q", city),
		Do:   func(p *pages.StorefrontPage) error { return p.SearchStore(city) },
	}
}

// SelectStore picks the store named name
func SelectStore(name string) Step {
	return Step{
		Name: fmt.Sprintf("selectStore %q", name),
		Do:   func(p *pages.StorefrontPage) error { return p.SelectStore(name) },
	}
}

// ClickSearchButton submits the search with the search control
func ClickSearchButton() Step {
	return Step{Name: "clickSearchButton", Do: (*pages.StorefrontPage).ClickSearchButton}
}

// SearchProduct types name into the product search
func SearchProduct(name string) Step {
	return Step{
		Name: fmt.Sprintf("searchProduct %q", name),
		Do:   func(p *pages.StorefrontPage) error { return p.SearchProduct(name) },
	}
}

// SearchProductAndPressEnter types name and submits with Enter
func SearchProductAndPressEnter(name string) Step {
	return Step{
		Name: fmt.Sprintf("searchProductAndPressEnter %q", name),
		Do:   func(p *pages.StorefrontPage) error { return p.SearchProductAndPressEnter(name) },
	}
}

// SelectProductFromAutocomplete clicks the suggestion containing match
func SelectProductFromAutocomplete(match string) Step {
	return Step{
		Name: fmt.Sprintf("selectProductFromAutocomplete %q", match),
		Do:   func(p *pages.StorefrontPage) error { return p.SelectProductFromAutocomplete(match) },
	}
}

// VerifyProductResults checks the results block contains text
func VerifyProductResults(text string) Step {
	return Step{
		Name: fmt.Sprintf("verifyProductResults %q", text),
		Do:   func(p *pages.StorefrontPage) error { return p.VerifyProductResults(text) },
	}
}

// VerifyProductResultsBlock2 checks the second results block contains text
func VerifyProductResultsBlock2(text string) Step {
	return Step{
		Name: fmt.Sprintf("verifyProductResultsBlock2 %q", text),
		Do:   func(p *pages.StorefrontPage) error { return p.VerifyProductResultsBlock2(text) },
	}
}

// ClearSearchInput empties the product search
func ClearSearchInput() Step {
	return Step{Name: "clearSearchInput", Do: (*pages.StorefrontPage).ClearSearchInput}
}

// VerifyNoResultsMessage checks the empty-result message
func VerifyNoResultsMessage() Step {
	return Step{Name: "verifyNoResultsMessage", Do: (*pages.StorefrontPage).VerifyNoResultsMessage}
}
