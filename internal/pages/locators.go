package pages

import (
	"github.com/casadoconstrutor/storefront-acceptance/internal/browser"
)

// NoResultsMessage is the storefront copy shown when a search matches nothing
const NoResultsMessage = "Nenhum resultado foi encontrado na busca"

// Target describes how to find an element. Role and accessible name take
// precedence; Selector with an optional text filter is the fallback.
// Exact requires the whole accessible name to match, otherwise any
// case-insensitive substring does.
type Target struct {
	Role     browser.Role
	Name     string
	Exact    bool
	Selector string
	HasText  string
}

// Resolve builds a fresh locator for the target on session
func (t Target) Resolve(session browser.Session) browser.Locator {
	if t.Role != "" {
		return session.ByRole(t.Role, t.Name, t.Exact)
	}
	return session.BySelector(t.Selector, t.HasText)
}

// StorefrontLocators is the locator table of the storefront home page
type StorefrontLocators struct {
	StoreSearch   Target
	ProductSearch Target
	SearchButton  Target
	ResultsBlock  Target
	ResultsBlock2 Target
	NoResults     Target

	// StoreLink is the role of the store entries listed under the store search.
	// Store names are matched exactly.
	StoreLink browser.Role

	// AutocompleteItem selects suggestion entries; AutocompleteSlot is the
	// positional fallback used when no suggestion text is given
	AutocompleteItem string
	AutocompleteSlot string
}

// DefaultStorefrontLocators returns the locators of casadoconstrutor.com.br
func DefaultStorefrontLocators() StorefrontLocators {
	return StorefrontLocators{
		StoreSearch:   Target{Role: browser.RoleTextbox, Name: "Pesquise a loja pela cidade"},
		ProductSearch: Target{Role: browser.RoleTextbox, Name: "Do que você precisa?"},
		SearchButton:  Target{Role: browser.RoleButton, Name: "search"},
		ResultsBlock:  Target{Selector: "#block-cdc-theme-views-block-produtos-taxonomia-pagina-block-1"},
		ResultsBlock2: Target{Selector: "#block-cdc-theme-views-block-produtos-taxonomia-pagina-block-2"},
		NoResults:     Target{Selector: "li.item-no-result", HasText: NoResultsMessage},

		StoreLink:        browser.RoleLink,
		AutocompleteItem: "ul.ui-autocomplete li",
		AutocompleteSlot: "#ui-id-3",
	}
}
