// Package pagestest simulates the storefront home page on top of a
// browsertest.Session.
package pagestest

import (
	"strings"

	"github.com/casadoconstrutor/storefront-acceptance/internal/browser"
	"github.com/casadoconstrutor/storefront-acceptance/internal/browser/browsertest"
)

const noResultsMessage = "Nenhum resultado foi encontrado na busca"

// Locator descriptions of the simulated page
var (
	StoreField    = browsertest.RoleDescription(browser.RoleTextbox, "Pesquise a loja pela cidade", false)
	ProductField  = browsertest.RoleDescription(browser.RoleTextbox, "Do que você precisa?", false)
	SearchButton  = browsertest.RoleDescription(browser.RoleButton, "search", false)
	ResultsBlock  = browsertest.SelectorDescription("#block-cdc-theme-views-block-produtos-taxonomia-pagina-block-1", "")
	ResultsBlock2 = browsertest.SelectorDescription("#block-cdc-theme-views-block-produtos-taxonomia-pagina-block-2", "")
	NoResults     = browsertest.SelectorDescription("li.item-no-result", noResultsMessage)
	FixedSlot     = browsertest.SelectorDescription("#ui-id-3", "")

	// ActiveStore holds the name of the selected store
	ActiveStore = browsertest.SelectorDescription(".store-selected", "")
)

// Stores listed by the simulated store search
var Stores = []string{
	"Rio Claro - SP (Rua 09)",
	"Rio de Janeiro - RJ (Taquara)",
}

// catalog maps a searchable term to the rendered results text and the block it lands in
var catalog = map[string]struct {
	block string
	text  string
}{
	"betoneira": {block: ResultsBlock, text: "Betoneira 400L Menegotti"},
	"limpeza":   {block: ResultsBlock2, text: "Produtos de Limpeza Pesada"},
}

// Suggestion returns the description of the autocomplete entry matching term
func Suggestion(term string) string {
	return browsertest.SelectorDescription("ul.ui-autocomplete li", term)
}

// StoreLink returns the description of a store link
func StoreLink(name string) string {
	return browsertest.RoleDescription(browser.RoleLink, name, true)
}

// NewStorefront returns a session behaving like the storefront home page.
// Searching a catalog term renders its results block; any other term renders
// the no-results entry, attached but hidden.
func NewStorefront() *browsertest.Session {
	s := browsertest.NewSession()
	s.Set(StoreField, "")
	s.Set(ProductField, "")
	s.Set(SearchButton, "")
	s.Hidden[NoResults] = true

	for _, name := range Stores {
		name := name
		s.Set(StoreLink(name), name)
		s.OnClick[StoreLink(name)] = func(s *browsertest.Session) {
			s.Set(ActiveStore, name)
		}
	}

	for _, term := range []string{"betoneira", "Limpeza"} {
		entry := catalog[strings.ToLower(term)]
		s.Set(Suggestion(term), entry.text)
		s.OnClick[Suggestion(term)] = func(s *browsertest.Session) {
			s.Set(entry.block, entry.text)
		}
	}

	submit := func(s *browsertest.Session) {
		term := strings.ToLower(strings.TrimSpace(s.Value(ProductField)))
		if term == "" {
			return
		}
		if entry, ok := catalog[term]; ok {
			s.Remove(NoResults)
			s.Set(entry.block, entry.text)
			return
		}
		s.Remove(ResultsBlock)
		s.Remove(ResultsBlock2)
		s.Set(NoResults, noResultsMessage)
	}
	s.OnClick[SearchButton] = submit
	s.OnPress[ProductField] = func(s *browsertest.Session, key string) {
		if key == "Enter" {
			submit(s)
		}
	}

	return s
}
