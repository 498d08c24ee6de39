//go:build e2e

package e2e

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/casadoconstrutor/storefront-acceptance/internal/evidence"
	"github.com/casadoconstrutor/storefront-acceptance/internal/pages"
	"github.com/casadoconstrutor/storefront-acceptance/internal/runlog"
	"github.com/casadoconstrutor/storefront-acceptance/internal/scenario"
)

func newPage(t *testing.T) *pages.StorefrontPage {
	t.Helper()

	session, err := engine.NewSession()
	if err != nil {
		t.Fatalf("Failed to open session: %v", err)
	}
	t.Cleanup(func() { session.Close() })

	return pages.NewStorefrontPage(session, evidence.NewStore(t.TempDir()),
		pages.WithURL(cfg.URL),
		pages.WithTimeouts(cfg.WaitTimeout, cfg.ScreenshotTimeout),
	)
}

// TestBuscaBetoneira covers searching a product at a selected store
// Feature: Product search
//
//	As a customer
//	I want to search products at my nearest store
//	So that I can see what that store sells
func TestBuscaBetoneira(t *testing.T) {
	// Scenario: Search concrete mixers in Rio Claro
	//   Given I am on the storefront
	//   And I selected the store "Rio Claro - SP (Rua 09)"
	//   When I search "betoneira" and pick it from the suggestions
	//   Then the results show "Betoneira"
	//   And a screenshot is saved as evidence

	sc := scenario.BuscaBetoneira()
	page := newPage(t)

	// Given / When / Then, step by step from the catalog
	if err := sc.Execute(page); err != nil {
		t.Fatalf("Scenario failed: %v", err)
	}

	// And a screenshot is saved as evidence
	path, err := page.CaptureEvidence(sc.EvidenceLabel)
	if err != nil {
		t.Fatalf("Failed to capture evidence: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("Expected non-empty evidence at %s", path)
	}
}

// TestBuscaLimpeza covers a category search followed by searches with no match
// Feature: Search field reuse
//
//	As a customer
//	I want to clear the search field and search again
//	So that I am told when nothing matches
func TestBuscaLimpeza(t *testing.T) {
	// Scenario: Cleaning products in Taquara, then an unknown product
	//   Given I am on the storefront with the store "Rio de Janeiro - RJ (Taquara)"
	//   When I search "Limpeza" and pick it from the suggestions
	//   Then the second results block shows "Limpeza"
	//   When I clear the field and search "produtoteste12345"
	//   Then I am told no products were found, by button and by Enter

	sc := scenario.BuscaLimpeza()
	page := newPage(t)

	// Given / When / Then, step by step
	if err := sc.Execute(page); err != nil {
		t.Fatalf("Scenario failed: %v", err)
	}

	path, err := page.CaptureEvidence(sc.EvidenceLabel)
	if err != nil {
		t.Fatalf("Failed to capture evidence: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "busca-limpeza-sucesso-") {
		t.Errorf("Unexpected evidence name %s", path)
	}
}

// TestRunner_Catalog runs the whole catalog the way storecheck run does
func TestRunner_Catalog(t *testing.T) {
	// Given a runner writing into temporary directories
	runCfg := *cfg
	runCfg.EvidenceDir = filepath.Join(t.TempDir(), "evidencias")
	runCfg.LogDir = filepath.Join(t.TempDir(), "logs")
	runner := scenario.NewRunner(engine, &runCfg)

	// When every scenario runs
	for _, sc := range scenario.Catalog() {
		result := runner.Run(sc)

		// Then each one leaves evidence and a run log
		if !result.Passed() {
			t.Errorf("%s failed: %v", sc.Name, result.Err)
			continue
		}
		data, err := os.ReadFile(result.LogPath)
		if err != nil {
			t.Errorf("Failed to read run log: %v", err)
			continue
		}
		if !strings.Contains(string(data), "Status: "+runlog.StatusPassed) {
			t.Errorf("Run log does not report success:\n%s", data)
		}
	}
}
