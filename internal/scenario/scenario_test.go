package scenario

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadoconstrutor/storefront-acceptance/internal/browser/browsertest"
	"github.com/casadoconstrutor/storefront-acceptance/internal/evidence"
	"github.com/casadoconstrutor/storefront-acceptance/internal/pages"
	"github.com/casadoconstrutor/storefront-acceptance/internal/pages/pagestest"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestScenario_ExecuteStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	var ran []string
	step := func(name string, err error) Step {
		return Step{Name: name, Do: func(*pages.StorefrontPage) error {
			ran = append(ran, name)
			return err
		}}
	}

	sc := Scenario{Name: "linear", Steps: []Step{
		step("first", nil),
		step("second", boom),
		step("third", nil),
	}}

	err := sc.Execute(nil)
	require.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "step 2 (second): boom")
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestCatalog_ScenariosPassAgainstStorefront(t *testing.T) {
	for _, sc := range Catalog() {
		t.Run(sc.Name, func(t *testing.T) {
			session := pagestest.NewStorefront()
			page := pages.NewStorefrontPage(session, evidence.NewStore(t.TempDir()), pages.WithLogger(quietLogger()))

			require.NoError(t, sc.Execute(page))
		})
	}
}

func TestBuscaBetoneira_SelectsRioClaro(t *testing.T) {
	session := pagestest.NewStorefront()
	page := pages.NewStorefrontPage(session, evidence.NewStore(t.TempDir()), pages.WithLogger(quietLogger()))

	require.NoError(t, BuscaBetoneira().Execute(page))
	assert.Equal(t, "Rio Claro - SP (Rua 09)", session.Elements[pagestest.ActiveStore])
	assert.Equal(t, "betoneira", session.Value(pagestest.ProductField))
}

func TestBuscaLimpeza_SubmissionPaths(t *testing.T) {
	session := pagestest.NewStorefront()
	page := pages.NewStorefrontPage(session, evidence.NewStore(t.TempDir()), pages.WithLogger(quietLogger()))

	require.NoError(t, BuscaLimpeza().Execute(page))
	assert.Equal(t, "Rio de Janeiro - RJ (Taquara)", session.Elements[pagestest.ActiveStore])

	var clicks, enters, checks int
	for _, call := range session.CallLog() {
		switch call {
		case "click " + pagestest.SearchButton:
			clicks++
		case "press " + pagestest.ProductField + " Enter":
			enters++
		case "wait " + pagestest.NoResults + " >> nth=0 attached 10s":
			checks++
		}
	}
	assert.Equal(t, 4, clicks)
	assert.Equal(t, 1, enters)
	assert.Equal(t, 3, checks)
}

func TestBuscaLimpeza_FailsWhenSearchFindsProducts(t *testing.T) {
	session := pagestest.NewStorefront()
	// the unknown product suddenly exists
	session.OnPress[pagestest.ProductField] = func(s *browsertest.Session, key string) {
		s.Remove(pagestest.NoResults)
	}
	page := pages.NewStorefrontPage(session, evidence.NewStore(t.TempDir()), pages.WithLogger(quietLogger()))

	err := BuscaLimpeza().Execute(page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 17 (verifyNoResultsMessage)")
}

func TestLookup(t *testing.T) {
	sc, err := Lookup("busca-limpeza")
	require.NoError(t, err)
	assert.Equal(t, "busca-limpeza-sucesso", sc.EvidenceLabel)

	_, err = Lookup("busca-furadeira")
	assert.ErrorContains(t, err, "unknown scenario")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"busca-betoneira", "busca-limpeza"}, Names())
}
