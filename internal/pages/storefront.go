// Package pages holds page objects for the storefront.
package pages

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/casadoconstrutor/storefront-acceptance/internal/browser"
	"github.com/casadoconstrutor/storefront-acceptance/internal/config"
	"github.com/casadoconstrutor/storefront-acceptance/internal/evidence"
)

// Default bounds for element waits and screenshots
const (
	DefaultWaitTimeout       = 10 * time.Second
	DefaultScreenshotTimeout = 15 * time.Second
)

// StorefrontPage drives the storefront home page: store selection,
// product search and result checks
type StorefrontPage struct {
	session           browser.Session
	evidence          *evidence.Store
	locators          StorefrontLocators
	url               string
	waitTimeout       time.Duration
	screenshotTimeout time.Duration
	logger            logrus.FieldLogger
}

// Option configures a StorefrontPage
type Option func(*StorefrontPage)

// WithLocators replaces the default locator table
func WithLocators(locators StorefrontLocators) Option {
	return func(p *StorefrontPage) {
		p.locators = locators
	}
}

// WithTimeouts sets the element wait and screenshot bounds
func WithTimeouts(wait, screenshot time.Duration) Option {
	return func(p *StorefrontPage) {
		if wait > 0 {
			p.waitTimeout = wait
		}
		if screenshot > 0 {
			p.screenshotTimeout = screenshot
		}
	}
}

// WithURL overrides the entry URL
func WithURL(url string) Option {
	return func(p *StorefrontPage) {
		if url != "" {
			p.url = url
		}
	}
}

// WithLogger sets the logger used for step tracing
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *StorefrontPage) {
		p.logger = logger
	}
}

// NewStorefrontPage creates a page object bound to session. Every locator
// the page uses is created from this session.
func NewStorefrontPage(session browser.Session, store *evidence.Store, opts ...Option) *StorefrontPage {
	p := &StorefrontPage{
		session:           session,
		evidence:          store,
		locators:          DefaultStorefrontLocators(),
		url:               config.DefaultStorefrontURL,
		waitTimeout:       DefaultWaitTimeout,
		screenshotTimeout: DefaultScreenshotTimeout,
		logger:            logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Open navigates to the storefront entry page
func (p *StorefrontPage) Open() error {
	p.logger.WithField("url", p.url).Debug("opening storefront")
	return p.session.Goto(p.url)
}

// SearchStore types city into the store search field without submitting
func (p *StorefrontPage) SearchStore(city string) error {
	p.logger.WithField("city", city).Debug("searching store")
	field := p.locators.StoreSearch.Resolve(p.session)
	if err := field.Click(); err != nil {
		return err
	}
	return field.Fill(city)
}

// SelectStore clicks the store link whose accessible name is exactly name
func (p *StorefrontPage) SelectStore(name string) error {
	p.logger.WithField("store", name).Debug("selecting store")
	return p.session.ByRole(p.locators.StoreLink, name, true).Click()
}

// ClickSearchButton waits for the search control to be visible and clicks it
func (p *StorefrontPage) ClickSearchButton() error {
	p.logger.Debug("clicking search button")
	button := p.locators.SearchButton.Resolve(p.session)
	if err := button.WaitFor(browser.StateVisible, p.waitTimeout); err != nil {
		return err
	}
	return button.Click()
}

// SearchProduct types name into the product search field without submitting
func (p *StorefrontPage) SearchProduct(name string) error {
	p.logger.WithField("product", name).Debug("searching product")
	return p.locators.ProductSearch.Resolve(p.session).Fill(name)
}

// SearchProductAndPressEnter types name and submits with the Enter key
func (p *StorefrontPage) SearchProductAndPressEnter(name string) error {
	p.logger.WithField("product", name).Debug("searching product with enter")
	field := p.locators.ProductSearch.Resolve(p.session)
	if err := field.Fill(name); err != nil {
		return err
	}
	return field.Press("Enter")
}

// SelectProductFromAutocomplete clicks the first suggestion containing match.
// An empty match clicks the fixed suggestion slot instead.
func (p *StorefrontPage) SelectProductFromAutocomplete(match string) error {
	p.logger.WithField("match", match).Debug("selecting autocomplete suggestion")
	if match == "" {
		return p.session.BySelector(p.locators.AutocompleteSlot, "").Click()
	}
	suggestion := p.session.BySelector(p.locators.AutocompleteItem, match).First()
	if err := suggestion.WaitFor(browser.StateVisible, p.waitTimeout); err != nil {
		return err
	}
	return suggestion.Click()
}

// VerifyProductResults asserts the results block contains text
func (p *StorefrontPage) VerifyProductResults(text string) error {
	return p.locators.ResultsBlock.Resolve(p.session).ContainsText(text)
}

// VerifyProductResultsBlock2 waits for the second results block to be
// attached, then asserts it contains text
func (p *StorefrontPage) VerifyProductResultsBlock2(text string) error {
	block := p.locators.ResultsBlock2.Resolve(p.session)
	if err := block.WaitFor(browser.StateAttached, p.waitTimeout); err != nil {
		return err
	}
	return block.ContainsText(text)
}

// ClearSearchInput empties the product search field regardless of its content
func (p *StorefrontPage) ClearSearchInput() error {
	p.logger.Debug("clearing product search")
	field := p.locators.ProductSearch.Resolve(p.session)
	if err := field.WaitFor(browser.StateVisible, p.waitTimeout); err != nil {
		return err
	}
	if err := field.Click(); err != nil {
		return err
	}
	return field.Fill("")
}

// VerifyNoResultsMessage checks the empty-result message is in the document.
// The message may be hidden by styling, so only attachment is awaited.
func (p *StorefrontPage) VerifyNoResultsMessage() error {
	message := p.locators.NoResults.Resolve(p.session).First()
	if err := message.WaitFor(browser.StateAttached, p.waitTimeout); err != nil {
		return err
	}
	expected := p.locators.NoResults.HasText
	if expected == "" {
		expected = NoResultsMessage
	}
	return message.ContainsText(expected)
}

// CaptureEvidence writes a full-page screenshot labelled label and returns
// its path. Network quiescence is awaited on a best-effort basis only.
func (p *StorefrontPage) CaptureEvidence(label string) (string, error) {
	if p.evidence == nil {
		return "", fmt.Errorf("no evidence store configured")
	}
	path, err := p.evidence.Capture(label, func(path string) error {
		bestEffort(p.logger, "wait for network idle", func() error {
			return p.session.WaitForNetworkIdle(p.waitTimeout)
		})
		return p.session.Screenshot(path, true, p.screenshotTimeout)
	})
	if err != nil {
		return "", fmt.Errorf("failed to capture evidence %q: %w", label, err)
	}
	p.logger.WithField("path", path).Info("evidence captured")
	return path, nil
}

// bestEffort runs fn and only logs its failure
func bestEffort(logger logrus.FieldLogger, what string, fn func() error) {
	if err := fn(); err != nil {
		logger.WithError(err).Debugf("%s failed, continuing", what)
	}
}
