package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadoconstrutor/storefront-acceptance/internal/evidence"
	"github.com/casadoconstrutor/storefront-acceptance/internal/pages"
	"github.com/casadoconstrutor/storefront-acceptance/internal/pages/pagestest"
)

const betoneiraJourney = `
name: busca-betoneira-yaml
title: Busca de betoneira descrita em arquivo
evidence: betoneira-yaml
steps:
  - action: open
  - action: searchStore
    value: rio claro
  - action: selectStore
    value: Rio Claro - SP (Rua 09)
  - action: clickSearchButton
  - action: searchProduct
    value: betoneira
  - action: selectProductFromAutocomplete
    value: betoneira
  - action: verifyProductResults
    value: Betoneira
`

func TestParseJourney(t *testing.T) {
	sc, err := ParseJourney([]byte(betoneiraJourney))
	require.NoError(t, err)

	assert.Equal(t, "busca-betoneira-yaml", sc.Name)
	assert.Equal(t, "Busca de betoneira descrita em arquivo", sc.Title)
	assert.Equal(t, "betoneira-yaml", sc.EvidenceLabel)
	require.Len(t, sc.Steps, 7)
	assert.Equal(t, `selectStore "Rio Claro - SP (Rua 09)"`, sc.Steps[2].Name)

	page := pages.NewStorefrontPage(pagestest.NewStorefront(), evidence.NewStore(t.TempDir()), pages.WithLogger(quietLogger()))
	assert.NoError(t, sc.Execute(page))
}

func TestParseJourney_Defaults(t *testing.T) {
	sc, err := ParseJourney([]byte("name: abrir\nsteps:\n  - action: open\n"))
	require.NoError(t, err)

	assert.Equal(t, "abrir", sc.Title)
	assert.Equal(t, "abrir-sucesso", sc.EvidenceLabel)
}

func TestParseJourney_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "empty", data: "", wantErr: "empty journey"},
		{name: "missing name", data: "steps:\n  - action: open\n", wantErr: "journey name is required"},
		{name: "no steps", data: "name: vazio\n", wantErr: `journey "vazio" has no steps`},
		{name: "unknown action", data: "name: x\nsteps:\n  - action: checkout\n", wantErr: `step 1: unknown action "checkout"`},
		{name: "missing value", data: "name: x\nsteps:\n  - action: open\n  - action: searchProduct\n", wantErr: "step 2: action searchProduct requires a value"},
		{name: "evidence outside the store", data: "name: x\nevidence: ../fora\nsteps:\n  - action: open\n", wantErr: "evidence label must be a non-empty file name"},
		{name: "name with separator", data: "name: a/b\nsteps:\n  - action: open\n", wantErr: `journey "a/b"`},
		{name: "unknown field", data: "name: x\nretries: 3\nsteps:\n  - action: open\n", wantErr: "invalid journey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJourney([]byte(tt.data))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadJourney(t *testing.T) {
	path := filepath.Join(t.TempDir(), "betoneira.yaml")
	require.NoError(t, os.WriteFile(path, []byte(betoneiraJourney), 0644))

	sc, err := LoadJourney(path)
	require.NoError(t, err)
	assert.Equal(t, "busca-betoneira-yaml", sc.Name)

	_, err = LoadJourney(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestActions(t *testing.T) {
	assert.Len(t, Actions(), 11)
	assert.Contains(t, Actions(), "verifyNoResultsMessage")
}
