package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// LaunchOptions configures the browser launched by an Engine
type LaunchOptions struct {
	Browser          string
	Headless         bool
	SlowMo           time.Duration
	AssertionTimeout time.Duration
	Locale           string
	ViewportWidth    int
	ViewportHeight   int
}

// DefaultLaunchOptions returns headless chromium with a desktop viewport
func DefaultLaunchOptions() LaunchOptions {
	return LaunchOptions{
		Browser:          "chromium",
		Headless:         true,
		AssertionTimeout: 5 * time.Second,
		Locale:           "pt-BR",
		ViewportWidth:    1280,
		ViewportHeight:   720,
	}
}

// Engine owns the playwright driver and one launched browser.
// Each NewSession call opens a fresh browser context.
type Engine struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    LaunchOptions
}

// Install downloads the driver and the given browsers
func Install(browsers ...string) error {
	if err := playwright.Install(&playwright.RunOptions{Browsers: browsers}); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}
	return nil
}

// Launch starts playwright and launches the configured browser
func Launch(opts LaunchOptions) (*Engine, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, err := selectBrowserType(pw, opts.Browser)
	if err != nil {
		pw.Stop()
		return nil, err
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", opts.Browser, err)
	}

	return &Engine{pw: pw, browser: browser, opts: opts}, nil
}

func selectBrowserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case "", "chromium":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", name)
	}
}

// NewSession opens an isolated browser context with a single page
func (e *Engine) NewSession() (Session, error) {
	contextOptions := playwright.BrowserNewContextOptions{}
	if e.opts.Locale != "" {
		contextOptions.Locale = playwright.String(e.opts.Locale)
	}
	if e.opts.ViewportWidth > 0 && e.opts.ViewportHeight > 0 {
		contextOptions.Viewport = &playwright.Size{
			Width:  e.opts.ViewportWidth,
			Height: e.opts.ViewportHeight,
		}
	}

	bctx, err := e.browser.NewContext(contextOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &pageSession{
		context: bctx,
		page:    page,
		expect:  playwright.NewPlaywrightAssertions(float64(e.opts.AssertionTimeout.Milliseconds())),
	}, nil
}

// Close closes the browser and stops the driver
func (e *Engine) Close() error {
	var closeErr error
	if e.browser != nil {
		if err := e.browser.Close(); err != nil {
			closeErr = fmt.Errorf("failed to close browser: %w", err)
		}
		e.browser = nil
	}
	if e.pw != nil {
		if err := e.pw.Stop(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		e.pw = nil
	}
	return closeErr
}

type pageSession struct {
	context playwright.BrowserContext
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
}

func (s *pageSession) Goto(url string) error {
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, translate(err))
	}
	return nil
}

func (s *pageSession) ByRole(role Role, name string, exact bool) Locator {
	return &pageLocator{
		session: s,
		loc: s.page.GetByRole(playwright.AriaRole(role), playwright.PageGetByRoleOptions{
			Name:  name,
			Exact: playwright.Bool(exact),
		}),
		desc: DescribeRole(role, name, exact),
	}
}

func (s *pageSession) BySelector(selector, hasText string) Locator {
	desc := selector
	var loc playwright.Locator
	if hasText == "" {
		loc = s.page.Locator(selector)
	} else {
		loc = s.page.Locator(selector, playwright.PageLocatorOptions{HasText: hasText})
		desc = fmt.Sprintf("%s:has-text(%q)", selector, hasText)
	}
	return &pageLocator{session: s, loc: loc, desc: desc}
}

func (s *pageSession) WaitForNetworkIdle(timeout time.Duration) error {
	err := s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: milliseconds(timeout),
	})
	return translate(err)
}

func (s *pageSession) Screenshot(path string, fullPage bool, timeout time.Duration) error {
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(fullPage),
		Timeout:  milliseconds(timeout),
	})
	if err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", translate(err))
	}
	return nil
}

func (s *pageSession) Close() error {
	if err := s.context.Close(); err != nil {
		return fmt.Errorf("failed to close context: %w", err)
	}
	return nil
}

type pageLocator struct {
	session *pageSession
	loc     playwright.Locator
	desc    string
}

func (l *pageLocator) WaitFor(state WaitState, timeout time.Duration) error {
	err := l.loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   waitState(state),
		Timeout: milliseconds(timeout),
	})
	if err != nil {
		return fmt.Errorf("%s not %s after %s: %w", l.desc, state, timeout, translate(err))
	}
	return nil
}

func (l *pageLocator) Click() error {
	if err := l.loc.Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", l.desc, translate(err))
	}
	return nil
}

func (l *pageLocator) Fill(text string) error {
	if err := l.loc.Fill(text); err != nil {
		return fmt.Errorf("failed to fill %s: %w", l.desc, translate(err))
	}
	return nil
}

func (l *pageLocator) Press(key string) error {
	if err := l.loc.Press(key); err != nil {
		return fmt.Errorf("failed to press %s on %s: %w", key, l.desc, translate(err))
	}
	return nil
}

func (l *pageLocator) ContainsText(expected string) error {
	if err := l.session.expect.Locator(l.loc).ToContainText(expected); err != nil {
		return fmt.Errorf("%w: %s does not contain %q: %v", ErrAssertion, l.desc, expected, err)
	}
	return nil
}

func (l *pageLocator) First() Locator {
	return &pageLocator{session: l.session, loc: l.loc.First(), desc: l.desc + " >> nth=0"}
}

func (l *pageLocator) Description() string {
	return l.desc
}

func waitState(state WaitState) *playwright.WaitForSelectorState {
	if state == StateAttached {
		return playwright.WaitForSelectorStateAttached
	}
	return playwright.WaitForSelectorStateVisible
}

func milliseconds(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

// translate tags playwright timeouts with ErrTimeout
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
