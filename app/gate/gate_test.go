package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postify/app/session"
)

func newGate(t *testing.T) (*Gate, *session.Store) {
	t.Helper()
	store := session.NewStore(session.NewMemoryStorage())
	return New(store), store
}

func TestGateStartsChecking(t *testing.T) {
	g, _ := newGate(t)
	assert.Equal(t, Checking, g.State())
}

func TestGateResolvesFromSession(t *testing.T) {
	t.Run("no persisted session", func(t *testing.T) {
		g, _ := newGate(t)
		assert.Equal(t, Unauthenticated, g.Start())
		assert.Equal(t, Unauthenticated, g.State())
	})

	t.Run("persisted session", func(t *testing.T) {
		g, store := newGate(t)
		require.NoError(t, store.Login("+919876543210", "tok_abc"))

		assert.Equal(t, Authenticated, g.Start())
		assert.Equal(t, "+919876543210", g.Session().PhoneNumber)
	})
}

func TestGateLoginLogout(t *testing.T) {
	g, _ := newGate(t)
	g.Start()

	require.NoError(t, g.Login("+919876543210", "tok_abc"))
	assert.Equal(t, Authenticated, g.State())
	assert.True(t, g.Session().IsAuthenticated)

	require.NoError(t, g.Logout())
	assert.Equal(t, Unauthenticated, g.State())
	assert.False(t, g.Session().IsAuthenticated)
}

func TestGateLoginResolvesChecking(t *testing.T) {
	// A login that lands before the session check still switches flows.
	g, _ := newGate(t)
	require.Equal(t, Checking, g.State())

	require.NoError(t, g.Login("+919876543210", "tok_abc"))
	assert.Equal(t, Authenticated, g.State())
	assert.True(t, g.Session().IsAuthenticated)
}

func TestGateIgnoresInapplicableEvents(t *testing.T) {
	g, _ := newGate(t)
	g.Start()
	require.NoError(t, g.Login("+919876543210", "tok_abc"))

	// A second login while already authenticated changes nothing.
	require.NoError(t, g.Login("+919876543210", "tok_def"))
	assert.Equal(t, Authenticated, g.State())

	require.NoError(t, g.Logout())
	require.NoError(t, g.Logout())
	assert.Equal(t, Unauthenticated, g.State())
}

func TestGateNotifiesListeners(t *testing.T) {
	g, _ := newGate(t)

	var seen []State
	g.Subscribe(func(s State) { seen = append(seen, s) })

	g.Start()
	require.NoError(t, g.Login("+919876543210", "tok_abc"))
	require.NoError(t, g.Logout())

	assert.Equal(t, []State{Unauthenticated, Authenticated, Unauthenticated}, seen)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "checking", Checking.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "authenticated", Authenticated.String())
}
