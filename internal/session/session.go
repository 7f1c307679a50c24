// Package session tracks whether the current run is authenticated against
// the backend and drives the OAuth redirect flow: redirect-out to the 42
// authorization page and redirect-in through the local callback listener.
package session

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/browser"

	"github.com/projects42/projects42-cli/internal/api"
)

// State is the authentication state of this process.
type State int

const (
	// Authenticating is the transient state during the initial check or
	// while a callback is being resolved.
	Authenticating State = iota
	Authenticated
	Unauthenticated
	// CallbackError is terminal for the attempt: the provider or backend
	// rejected the flow. The only way out is back to Unauthenticated.
	CallbackError
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	case CallbackError:
		return "callback_error"
	default:
		return "unknown"
	}
}

// Machine is the session state machine. It is not safe for concurrent use;
// all transitions happen on the caller's goroutine.
type Machine struct {
	client *api.Client

	state   State
	user    *api.User
	failure string

	// resolved guards the one-shot callback resolution: even if the
	// callback trigger fires twice, the side effects run at most once.
	resolved bool
	outcome  Outcome
}

// New creates a machine in the Authenticating state.
func New(client *api.Client) *Machine {
	return &Machine{client: client, state: Authenticating}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// User returns the authenticated user, or nil.
func (m *Machine) User() *api.User { return m.user }

// Failure returns the human-readable callback failure message, if any.
func (m *Machine) Failure() string { return m.failure }

// Check performs the passive entry check: a valid ambient session credential
// moves the machine to Authenticated, anything else to Unauthenticated.
// Failures are swallowed into the unauthenticated state, never surfaced as
// errors.
func (m *Machine) Check(ctx context.Context) State {
	user, err := m.client.GetCurrentUser(ctx)
	if err != nil {
		m.state = Unauthenticated
		m.user = nil
		return m.state
	}

	m.state = Authenticated
	m.user = user
	return m.state
}

// BeginLogin fetches the authorization URL from the backend. The caller
// performs the actual redirect-out (opening the browser), which leaves this
// state machine until the callback arrives.
func (m *Machine) BeginLogin(ctx context.Context) (string, error) {
	authURL, err := m.client.GetAuthURL(ctx)
	if err != nil {
		return "", fmt.Errorf("could not start login: %w", err)
	}
	return authURL, nil
}

// OpenBrowser opens the authorization URL in the user's browser.
func OpenBrowser(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("cannot open browser: empty URL provided")
	}
	if err := browser.OpenURL(urlStr); err != nil {
		return fmt.Errorf("failed to open browser automatically, please open this URL manually:\n%s\nError: %w", urlStr, err)
	}
	return nil
}

// CallbackResult is the one-shot signal carried by the redirect-in request.
type CallbackResult struct {
	Success   bool
	ErrorCode string
}

// ParseCallback extracts the callback signal from redirect query parameters.
// A request with neither signal is itself a callback error.
func ParseCallback(values url.Values) CallbackResult {
	if code := values.Get("error"); code != "" {
		return CallbackResult{ErrorCode: code}
	}
	if values.Get("success") == "true" {
		return CallbackResult{Success: true}
	}
	return CallbackResult{ErrorCode: CodeInvalidParams}
}

// Outcome is the terminal result of resolving a callback.
type Outcome struct {
	State   State
	Message string
}

// ResolveCallback applies the callback signal to the machine exactly once.
// A second invocation returns the first outcome without transitioning again.
func (m *Machine) ResolveCallback(result CallbackResult) Outcome {
	if m.resolved {
		return m.outcome
	}
	m.resolved = true

	if result.Success {
		m.state = Authenticated
		m.outcome = Outcome{State: Authenticated}
		return m.outcome
	}

	m.state = CallbackError
	m.failure = MessageForCode(result.ErrorCode)
	m.outcome = Outcome{State: CallbackError, Message: m.failure}
	return m.outcome
}

// Reset moves a failed machine back to Unauthenticated so a new attempt can
// start.
func (m *Machine) Reset() {
	m.state = Unauthenticated
	m.user = nil
	m.failure = ""
	m.resolved = false
	m.outcome = Outcome{}
}

// Logout invalidates the server session and unconditionally drops local
// state. Even when the server call fails the machine ends up
// Unauthenticated: logout must never leave an ambiguous
// authenticated-looking state. The returned error is informational.
func (m *Machine) Logout(ctx context.Context) error {
	err := m.client.Logout(ctx)

	m.state = Unauthenticated
	m.user = nil

	if dropErr := m.client.DropSession(); dropErr != nil && err == nil {
		err = dropErr
	}

	return err
}
