package scenario

import (
	"fmt"
	"sort"
)

// Product term that matches nothing in the storefront catalog
const missingProduct = "produtoteste12345"

// BuscaBetoneira searches a concrete mixer at the Rio Claro store
func BuscaBetoneira() Scenario {
	return Scenario{
		Name:          "busca-betoneira",
		Title:         "Busca de produto betoneira na loja de Rio Claro",
		EvidenceLabel: "busca-betoneira-sucesso",
		Steps: []Step{
			Open(),
			SearchStore("rio claro"),
			SelectStore("Rio Claro - SP (Rua 09)"),
			ClickSearchButton(),
			SearchProduct("betoneira"),
			SelectProductFromAutocomplete("betoneira"),
			VerifyProductResults("Betoneira"),
		},
	}
}

// BuscaLimpeza searches a category at the Taquara store, then checks that a
// cleared search for an unknown product reports no results through the
// button twice and through the Enter key
func BuscaLimpeza() Scenario {
	return Scenario{
		Name:          "busca-limpeza",
		Title:         "Busca e limpeza de campo de pesquisa",
		EvidenceLabel: "busca-limpeza-sucesso",
		Steps: []Step{
			Open(),
			SearchStore("rio de janei"),
			SelectStore("Rio de Janeiro - RJ (Taquara)"),
			ClickSearchButton(),
			SearchProduct("Limpeza"),
			SelectProductFromAutocomplete("Limpeza"),
			VerifyProductResultsBlock2("Limpeza"),

			ClickSearchButton(),
			ClearSearchInput(),
			SearchProduct(missingProduct),
			ClickSearchButton(),
			VerifyNoResultsMessage(),

			SearchProduct(missingProduct),
			ClickSearchButton(),
			VerifyNoResultsMessage(),

			SearchProductAndPressEnter(missingProduct),
			VerifyNoResultsMessage(),
		},
	}
}

// Catalog returns the built-in scenarios
func Catalog() []Scenario {
	return []Scenario{BuscaBetoneira(), BuscaLimpeza()}
}

// Names returns the built-in scenario names, sorted
func Names() []string {
	var names []string
	for _, sc := range Catalog() {
		names = append(names, sc.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the built-in scenario called name
func Lookup(name string) (Scenario, error) {
	for _, sc := range Catalog() {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q (available: %v)", name, Names())
}
