package browser

import (
	"errors"
	"fmt"
	"time"
)

// Role is an ARIA role used to locate elements by accessible name
type Role string

// Roles used by the storefront pages
const (
	RoleTextbox Role = "textbox"
	RoleButton  Role = "button"
	RoleLink    Role = "link"
)

// WaitState is the element state a Locator can wait for
type WaitState string

// Wait states
const (
	StateVisible  WaitState = "visible"
	StateAttached WaitState = "attached"
)

// Engine errors
var (
	ErrTimeout   = errors.New("browser: timeout")
	ErrAssertion = errors.New("browser: assertion failed")
)

// Session is one browser tab owned by a single scenario.
// Locators returned by a Session are only valid on that Session.
type Session interface {
	// Goto navigates to url using the engine's default navigation timeout
	Goto(url string) error

	// ByRole locates elements by ARIA role and accessible name. Without exact
	// the name matches case-insensitively as a substring.
	ByRole(role Role, name string, exact bool) Locator

	// BySelector locates elements by CSS selector, optionally filtered by text
	BySelector(selector, hasText string) Locator

	// WaitForNetworkIdle waits until the page has no network activity
	WaitForNetworkIdle(timeout time.Duration) error

	// Screenshot writes a PNG screenshot of the page to path
	Screenshot(path string, fullPage bool, timeout time.Duration) error

	// Close releases the tab and its browser context
	Close() error
}

// Locator is a lazily resolved reference to zero or more elements.
// It is re-resolved on every call.
type Locator interface {
	WaitFor(state WaitState, timeout time.Duration) error
	Click() error
	Fill(text string) error
	Press(key string) error

	// ContainsText asserts the element text contains expected
	ContainsText(expected string) error

	// First narrows the locator to its first match
	First() Locator

	// Description is a human readable form used in error messages
	Description() string
}

// SessionFactory opens independent sessions
type SessionFactory interface {
	NewSession() (Session, error)
}

// DescribeRole renders a role lookup the way playwright prints it:
// a trailing s marks an exact name, a trailing i a substring match
func DescribeRole(role Role, name string, exact bool) string {
	mode := "i"
	if exact {
		mode = "s"
	}
	return fmt.Sprintf("role=%s[name=%q%s]", role, name, mode)
}
