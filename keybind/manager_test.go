package keybind

import "testing"

// listProvider serves fixed lists, empty for contexts not configured.
type listProvider struct {
	lists map[Context][]Binding
}

func (p *listProvider) ComposerBindings() []Binding     { return p.lists[ContextComposer] }
func (p *listProvider) AutocompleteBindings() []Binding { return p.lists[ContextAutocomplete] }
func (p *listProvider) RoomListBindings() []Binding     { return p.lists[ContextRoomList] }
func (p *listProvider) RoomBindings() []Binding         { return p.lists[ContextRoom] }
func (p *listProvider) NavigationBindings() []Binding   { return p.lists[ContextNavigation] }

func provider(ctx Context, bindings ...Binding) *listProvider {
	return &listProvider{lists: map[Context][]Binding{ctx: bindings}}
}

func TestResolveFirstProviderWins(t *testing.T) {
	ev := Event{Key: "enter"}
	p1 := provider(ContextComposer, Binding{ComposerNewLine, Combo{Key: "enter"}})
	p2 := provider(ContextComposer, Binding{ComposerSend, Combo{Key: "enter"}})

	m := NewManager(false, p1, p2)
	if got := m.Resolve(ContextComposer, ev); got != ComposerNewLine {
		t.Errorf("Resolve = %q, want %q from higher-precedence provider", got, ComposerNewLine)
	}
}

func TestResolveWithinProviderListOrder(t *testing.T) {
	ev := Event{Key: "esc"}
	p := provider(ContextComposer,
		Binding{ComposerCancelEditing, Combo{Key: "esc"}},
		Binding{ComposerSend, Combo{Key: "esc"}},
	)

	m := NewManager(false, p)
	if got := m.Resolve(ContextComposer, ev); got != ComposerCancelEditing {
		t.Errorf("Resolve = %q, want first-listed %q", got, ComposerCancelEditing)
	}
}

func TestResolveFallsThroughProviders(t *testing.T) {
	p1 := provider(ContextComposer, Binding{ComposerNewLine, Combo{Key: "enter", ShiftKey: true}})
	p2 := provider(ContextComposer, Binding{ComposerSend, Combo{Key: "enter"}})

	m := NewManager(false, p1, p2)
	if got := m.Resolve(ContextComposer, Event{Key: "enter"}); got != ComposerSend {
		t.Errorf("Resolve = %q, want fall-through to %q", got, ComposerSend)
	}
}

func TestResolveNoMatch(t *testing.T) {
	p := provider(ContextComposer, Binding{ComposerSend, Combo{Key: "enter"}})
	m := NewManager(false, p)

	if got := m.Resolve(ContextComposer, Event{Key: "q", CtrlKey: true}); got != ActionNone {
		t.Errorf("Resolve = %q, want ActionNone", got)
	}
	// A context no provider configures resolves to nothing as well.
	if got := m.Resolve(ContextRoom, Event{Key: "enter"}); got != ActionNone {
		t.Errorf("Resolve = %q, want ActionNone for unconfigured context", got)
	}
}

func TestResolveContextsAreIsolated(t *testing.T) {
	p := provider(ContextRoom, Binding{RoomScrollUp, Combo{Key: "pgup"}})
	m := NewManager(false, p)

	if got := m.Resolve(ContextRoom, Event{Key: "pgup"}); got != RoomScrollUp {
		t.Errorf("Resolve = %q, want %q", got, RoomScrollUp)
	}
	if got := m.Resolve(ContextComposer, Event{Key: "pgup"}); got != ActionNone {
		t.Errorf("room binding leaked into composer context: %q", got)
	}
}

func TestPrependGivesHighestPrecedence(t *testing.T) {
	defaults := provider(ContextComposer, Binding{ComposerSend, Combo{Key: "enter"}})
	m := NewManager(false, defaults)

	custom := provider(ContextComposer, Binding{ComposerNewLine, Combo{Key: "enter"}})
	m.Prepend(custom)

	if got := m.Resolve(ContextComposer, Event{Key: "enter"}); got != ComposerNewLine {
		t.Errorf("Resolve = %q, want prepended provider's %q", got, ComposerNewLine)
	}
	if len(m.Providers()) != 2 {
		t.Errorf("Providers() length = %d, want 2", len(m.Providers()))
	}
}

func TestResolveDeterministic(t *testing.T) {
	p := provider(ContextNavigation,
		Binding{NavPrevRoom, Combo{Key: "up", AltKey: true}},
		Binding{NavNextRoom, Combo{Key: "down", AltKey: true}},
	)
	m := NewManager(true, p)
	ev := Event{Key: "up", AltKey: true}

	first := m.Resolve(ContextNavigation, ev)
	for i := 0; i < 10; i++ {
		if got := m.Resolve(ContextNavigation, ev); got != first {
			t.Fatalf("Resolve not deterministic: %q then %q", first, got)
		}
	}
}

func TestResolveMacConvention(t *testing.T) {
	p := provider(ContextRoom, Binding{RoomJumpToLatest, Combo{Key: "end", CtrlOrCmd: true}})

	mac := NewManager(true, p)
	pc := NewManager(false, p)

	metaEv := Event{Key: "end", MetaKey: true}
	ctrlEv := Event{Key: "end", CtrlKey: true}

	if got := mac.Resolve(ContextRoom, metaEv); got != RoomJumpToLatest {
		t.Errorf("Mac meta event: Resolve = %q, want %q", got, RoomJumpToLatest)
	}
	if got := mac.Resolve(ContextRoom, ctrlEv); got != ActionNone {
		t.Errorf("Mac ctrl event: Resolve = %q, want ActionNone", got)
	}
	if got := pc.Resolve(ContextRoom, ctrlEv); got != RoomJumpToLatest {
		t.Errorf("PC ctrl event: Resolve = %q, want %q", got, RoomJumpToLatest)
	}
	if got := pc.Resolve(ContextRoom, metaEv); got != ActionNone {
		t.Errorf("PC meta event: Resolve = %q, want ActionNone", got)
	}
}
