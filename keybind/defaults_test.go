package keybind

import "testing"

func TestDefaultProviderResolution(t *testing.T) {
	m := NewManager(false, DefaultProvider{})

	tests := []struct {
		ctx  Context
		ev   Event
		want Action
	}{
		{ContextComposer, Event{Key: "enter"}, ComposerSend},
		{ContextComposer, Event{Key: "enter", ShiftKey: true}, ComposerNewLine},
		{ContextComposer, Event{Key: "b", CtrlKey: true}, ComposerToggleBold},
		{ContextAutocomplete, Event{Key: "tab"}, AutocompleteAccept},
		{ContextAutocomplete, Event{Key: "tab", ShiftKey: true}, AutocompletePrev},
		{ContextRoomList, Event{Key: "enter"}, RoomListSelectRoom},
		{ContextRoom, Event{Key: "pgup"}, RoomScrollUp},
		{ContextRoom, Event{Key: "pgup", ShiftKey: true}, RoomJumpToOldestUnread},
		{ContextNavigation, Event{Key: "down", AltKey: true}, NavNextRoom},
		{ContextNavigation, Event{Key: "down", AltKey: true, ShiftKey: true}, NavNextUnreadRoom},
		{ContextNavigation, Event{Key: "q", CtrlKey: true}, ActionNone},
	}

	for _, tt := range tests {
		if got := m.Resolve(tt.ctx, tt.ev); got != tt.want {
			t.Errorf("Resolve(%s, %+v) = %q, want %q", tt.ctx, tt.ev, got, tt.want)
		}
	}
}

func TestDefaultProviderListsAreFresh(t *testing.T) {
	p := DefaultProvider{}
	a := p.ComposerBindings()
	b := p.ComposerBindings()
	if len(a) == 0 || len(b) == 0 {
		t.Fatal("composer defaults empty")
	}
	// Each query returns a new slice, so callers can't corrupt shared state.
	a[0].Action = ActionNone
	if b2 := p.ComposerBindings(); b2[0].Action == ActionNone {
		t.Error("mutating a returned list leaked into later queries")
	}
}

func TestDefaultProviderActionsAreKnown(t *testing.T) {
	p := DefaultProvider{}
	for _, ctx := range Contexts() {
		known := make(map[Action]bool)
		for _, a := range ctx.Actions() {
			known[a] = true
		}
		for _, b := range BindingsFor(p, ctx) {
			if !known[b.Action] {
				t.Errorf("%s default binds unknown action %q", ctx, b.Action)
			}
		}
	}
}

func TestLookupAction(t *testing.T) {
	if a, ok := LookupAction(ContextComposer, "send"); !ok || a != ComposerSend {
		t.Errorf("LookupAction(composer, send) = %q, %v", a, ok)
	}
	if _, ok := LookupAction(ContextComposer, "scroll_up"); ok {
		t.Error("room action must not resolve in composer context")
	}
	if _, ok := LookupAction(ContextRoom, "nonsense"); ok {
		t.Error("unknown short name must not resolve")
	}
	if got := ComposerSend.ShortName(); got != "send" {
		t.Errorf("ShortName = %q, want send", got)
	}
}
