// Package browsertest provides an in-memory browser.Session for unit tests.
package browsertest

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/casadoconstrutor/storefront-acceptance/internal/browser"
)

// PNG is the payload written by Screenshot
var PNG = []byte("\x89PNG\r\n\x1a\n")

// Session records every interaction and resolves locators against
// in-memory element state keyed by locator description.
type Session struct {
	mu sync.Mutex

	// Elements maps a locator description to the element's rendered text.
	// A locator whose description is absent behaves as missing from the page.
	Elements map[string]string

	// Hidden lists elements attached to the page but not visible
	Hidden map[string]bool

	// OnClick runs after a successful click, keyed by locator description
	OnClick map[string]func(s *Session)

	// OnPress runs after a successful key press, keyed by locator description
	OnPress map[string]func(s *Session, key string)

	GotoErr        error
	NetworkIdleErr error
	ScreenshotErr  error

	URL         string
	Values      map[string]string
	Calls       []string
	Screenshots []string
	Closed      bool
}

// NewSession returns an empty Session
func NewSession() *Session {
	return &Session{
		Elements: make(map[string]string),
		Hidden:   make(map[string]bool),
		OnClick:  make(map[string]func(*Session)),
		OnPress:  make(map[string]func(*Session, string)),
		Values:   make(map[string]string),
	}
}

// Set attaches an element with the given text
func (s *Session) Set(desc, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Elements[desc] = text
}

// Remove detaches an element
func (s *Session) Remove(desc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Elements, desc)
}

// Value returns the last text filled into desc
func (s *Session) Value(desc string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Values[desc]
}

// CallLog returns a copy of the recorded calls
func (s *Session) CallLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Calls...)
}

func (s *Session) record(format string, args ...any) {
	s.Calls = append(s.Calls, fmt.Sprintf(format, args...))
}

func (s *Session) Goto(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("goto %s", url)
	if s.GotoErr != nil {
		return s.GotoErr
	}
	s.URL = url
	return nil
}

func (s *Session) ByRole(role browser.Role, name string, exact bool) browser.Locator {
	return &Locator{session: s, desc: RoleDescription(role, name, exact)}
}

func (s *Session) BySelector(selector, hasText string) browser.Locator {
	return &Locator{session: s, desc: SelectorDescription(selector, hasText)}
}

func (s *Session) WaitForNetworkIdle(timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("networkidle %s", timeout)
	return s.NetworkIdleErr
}

func (s *Session) Screenshot(path string, fullPage bool, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("screenshot fullPage=%t timeout=%s", fullPage, timeout)
	if s.ScreenshotErr != nil {
		return s.ScreenshotErr
	}
	if err := os.WriteFile(path, PNG, 0644); err != nil {
		return err
	}
	s.Screenshots = append(s.Screenshots, path)
	return nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("close")
	s.Closed = true
	return nil
}

// RoleDescription is the description of a locator created with ByRole
func RoleDescription(role browser.Role, name string, exact bool) string {
	return browser.DescribeRole(role, name, exact)
}

// SelectorDescription is the description of a locator created with BySelector
func SelectorDescription(selector, hasText string) string {
	if hasText == "" {
		return selector
	}
	return fmt.Sprintf("%s:has-text(%q)", selector, hasText)
}

// Locator resolves against its Session's element table
type Locator struct {
	session *Session
	desc    string
	first   bool
}

func (l *Locator) lookup() (string, bool) {
	text, ok := l.session.Elements[l.desc]
	return text, ok
}

func (l *Locator) WaitFor(state browser.WaitState, timeout time.Duration) error {
	s := l.session
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("wait %s %s %s", l.Description(), state, timeout)
	if _, ok := l.lookup(); !ok {
		return fmt.Errorf("%s not %s after %s: %w", l.Description(), state, timeout, browser.ErrTimeout)
	}
	if state == browser.StateVisible && s.Hidden[l.desc] {
		return fmt.Errorf("%s not %s after %s: %w", l.Description(), state, timeout, browser.ErrTimeout)
	}
	return nil
}

func (l *Locator) Click() error {
	s := l.session
	s.mu.Lock()
	s.record("click %s", l.Description())
	if _, ok := l.lookup(); !ok {
		s.mu.Unlock()
		return fmt.Errorf("failed to click %s: %w", l.Description(), browser.ErrTimeout)
	}
	hook := s.OnClick[l.desc]
	s.mu.Unlock()

	if hook != nil {
		hook(s)
	}
	return nil
}

func (l *Locator) Fill(text string) error {
	s := l.session
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("fill %s %q", l.Description(), text)
	if _, ok := l.lookup(); !ok {
		return fmt.Errorf("failed to fill %s: %w", l.Description(), browser.ErrTimeout)
	}
	s.Values[l.desc] = text
	return nil
}

func (l *Locator) Press(key string) error {
	s := l.session
	s.mu.Lock()
	s.record("press %s %s", l.Description(), key)
	if _, ok := l.lookup(); !ok {
		s.mu.Unlock()
		return fmt.Errorf("failed to press %s on %s: %w", key, l.Description(), browser.ErrTimeout)
	}
	hook := s.OnPress[l.desc]
	s.mu.Unlock()

	if hook != nil {
		hook(s, key)
	}
	return nil
}

func (l *Locator) ContainsText(expected string) error {
	s := l.session
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("expect %s contains %q", l.Description(), expected)
	text, ok := l.lookup()
	if !ok {
		return fmt.Errorf("%w: %s not found", browser.ErrAssertion, l.Description())
	}
	if !strings.Contains(text, expected) {
		return fmt.Errorf("%w: %s does not contain %q", browser.ErrAssertion, l.Description(), expected)
	}
	return nil
}

func (l *Locator) First() browser.Locator {
	return &Locator{session: l.session, desc: l.desc, first: true}
}

func (l *Locator) Description() string {
	if l.first {
		return l.desc + " >> nth=0"
	}
	return l.desc
}

// Factory hands out prepared sessions in order, or builds them with New
type Factory struct {
	mu       sync.Mutex
	Sessions []*Session
	New      func() *Session
	Opened   int
	Err      error
}

// ErrNoSession is returned when the Factory has no more sessions
var ErrNoSession = errors.New("browsertest: no session available")

func (f *Factory) NewSession() (browser.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if f.New != nil {
		s := f.New()
		f.Sessions = append(f.Sessions, s)
		f.Opened++
		return s, nil
	}
	if f.Opened >= len(f.Sessions) {
		return nil, ErrNoSession
	}
	s := f.Sessions[f.Opened]
	f.Opened++
	return s, nil
}
