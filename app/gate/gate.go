package gate

import (
	"sync"

	"postify/app/models"
	"postify/app/session"
)

// State is the active screen flow.
type State int

const (
	// Checking means the persisted session has not been inspected yet.
	Checking State = iota
	// Unauthenticated routes to the phone-entry flow.
	Unauthenticated
	// Authenticated routes to the main content flow.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// event drives the single transition function.
type event int

const (
	eventSessionActive event = iota
	eventSessionAbsent
	eventLogin
	eventLogout
)

// Gate derives which flow is active from session store state. It starts
// in Checking and moves exactly through the transition table below;
// events that do not apply to the current state are ignored.
type Gate struct {
	mu        sync.Mutex
	state     State
	sessions  *session.Store
	listeners []func(State)
}

// New creates a Gate over the session store, in the Checking state.
func New(sessions *session.Store) *Gate {
	return &Gate{state: Checking, sessions: sessions}
}

// Start loads the persisted session and resolves Checking into one of
// the two flows. It returns the resulting state.
func (g *Gate) Start() State {
	s := g.sessions.Load()
	if s.IsAuthenticated {
		return g.apply(eventSessionActive)
	}
	return g.apply(eventSessionAbsent)
}

// Login persists the session and, on success, switches to the main flow.
// A persistence failure leaves the gate (and the session store) in the
// unauthenticated flow.
func (g *Gate) Login(phone, token string) error {
	if err := g.sessions.Login(phone, token); err != nil {
		return err
	}
	g.apply(eventLogin)
	return nil
}

// Logout clears the session and switches to the phone-entry flow even if
// clearing persisted state failed.
func (g *Gate) Logout() error {
	err := g.sessions.Logout()
	g.apply(eventLogout)
	return err
}

// State returns the current flow.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Session returns the session backing the current flow.
func (g *Gate) Session() models.Session {
	return g.sessions.Current()
}

// Subscribe registers a listener invoked after every state change.
func (g *Gate) Subscribe(fn func(State)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// apply is the one transition function.
func (g *Gate) apply(ev event) State {
	g.mu.Lock()
	next := g.state
	switch g.state {
	case Checking:
		switch ev {
		case eventSessionActive, eventLogin:
			next = Authenticated
		case eventSessionAbsent:
			next = Unauthenticated
		}
	case Unauthenticated:
		if ev == eventLogin {
			next = Authenticated
		}
	case Authenticated:
		if ev == eventLogout {
			next = Unauthenticated
		}
	}
	changed := next != g.state
	g.state = next
	listeners := make([]func(State), len(g.listeners))
	copy(listeners, g.listeners)
	g.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(next)
		}
	}
	return next
}
