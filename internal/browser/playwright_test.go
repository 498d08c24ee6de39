package browser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantTimeout bool
	}{
		{name: "nil", err: nil},
		{name: "playwright timeout", err: fmt.Errorf("locator.click: %w", playwright.ErrTimeout), wantTimeout: true},
		{name: "other error", err: errors.New("target closed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tt.wantTimeout, errors.Is(got, ErrTimeout))
			assert.Contains(t, got.Error(), tt.err.Error())
		})
	}
}

func TestWaitState(t *testing.T) {
	assert.Equal(t, playwright.WaitForSelectorStateAttached, waitState(StateAttached))
	assert.Equal(t, playwright.WaitForSelectorStateVisible, waitState(StateVisible))
}

func TestSelectBrowserType_Unsupported(t *testing.T) {
	_, err := selectBrowserType(&playwright.Playwright{}, "netscape")
	assert.EqualError(t, err, `unsupported browser "netscape"`)
}

func TestDefaultLaunchOptions(t *testing.T) {
	opts := DefaultLaunchOptions()
	assert.Equal(t, "chromium", opts.Browser)
	assert.True(t, opts.Headless)
	assert.Equal(t, "pt-BR", opts.Locale)
}

func TestDescribeRole(t *testing.T) {
	assert.Equal(t, `role=button[name="search"i]`, DescribeRole(RoleButton, "search", false))
	assert.Equal(t, `role=link[name="Rio Claro - SP (Rua 09)"s]`, DescribeRole(RoleLink, "Rio Claro - SP (Rua 09)", true))
}
