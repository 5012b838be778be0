package keybind

import "runtime"

// Manager resolves key events against an ordered sequence of providers.
// The first listed provider has the highest precedence; within one
// provider, list order decides. Resolution is a pure query: no state is
// read beyond the provider sequence and no side effects occur.
//
// The provider sequence is mutated only by SetProviders/Prepend, which
// are expected to run outside an in-flight resolution (single-threaded
// UI loop). Build the manager at startup and inject it into consumers.
type Manager struct {
	providers []Provider
	mac       bool
}

// NewManager creates a Manager using the given platform convention.
func NewManager(mac bool, providers ...Provider) *Manager {
	return &Manager{providers: providers, mac: mac}
}

// IsMacPlatform reports whether the running environment uses the Mac
// modifier convention (Command as the primary modifier).
func IsMacPlatform() bool {
	return runtime.GOOS == "darwin"
}

// Mac reports the platform convention the manager resolves with.
func (m *Manager) Mac() bool { return m.mac }

// Providers returns the provider sequence in precedence order.
func (m *Manager) Providers() []Provider {
	return m.providers
}

// SetProviders replaces the provider sequence.
func (m *Manager) SetProviders(providers ...Provider) {
	m.providers = providers
}

// Prepend inserts p ahead of the existing providers, giving it the
// highest precedence. Bindings p does not define fall through to the
// providers behind it.
func (m *Manager) Prepend(p Provider) {
	m.providers = append([]Provider{p}, m.providers...)
}

// Resolve returns the action of the first binding matching ev for ctx,
// scanning providers in precedence order and each provider's list in
// order. Returns ActionNone when nothing matches; that is a normal
// outcome meaning the caller should let the event fall through to
// default handling.
func (m *Manager) Resolve(ctx Context, ev Event) Action {
	for _, p := range m.providers {
		for _, b := range BindingsFor(p, ctx) {
			if Matches(ev, b.Combo, m.mac) {
				return b.Action
			}
		}
	}
	return ActionNone
}
