package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"nebula/keybind"
)

// roomOverride is a parsed RoomOverride: glob plus ready bindings.
type roomOverride struct {
	pattern  string
	bindings []keybind.Binding
}

// bindingSnapshot is an immutable parse result. The provider swaps whole
// snapshots on reload so an in-flight resolution never sees a partial
// list.
type bindingSnapshot struct {
	lists     map[keybind.Context][]keybind.Binding
	overrides []roomOverride
}

// BindingProvider adapts user-declared bindings from the config file
// into a keybind.Provider. It is prepended ahead of the defaults
// provider so user bindings win while everything else falls through.
type BindingProvider struct {
	mu         sync.RWMutex
	snap       *bindingSnapshot
	activeRoom string
}

// NewBindingProvider parses kb into a provider. Malformed combo specs
// and unknown action names are configuration errors: they are skipped
// and reported as warnings, never a runtime fault.
func NewBindingProvider(kb Keybindings) (*BindingProvider, []string) {
	p := &BindingProvider{}
	warnings := p.Reload(kb)
	return p, warnings
}

// Reload re-parses kb and atomically swaps the provider's snapshot.
// Safe to call from the config watcher goroutine.
func (p *BindingProvider) Reload(kb Keybindings) []string {
	snap := &bindingSnapshot{lists: make(map[keybind.Context][]keybind.Binding)}
	var warnings []string

	parse := func(ctx keybind.Context, specs []BindingSpec, where string) []keybind.Binding {
		var out []keybind.Binding
		for i, spec := range specs {
			b, err := parseBindingSpec(ctx, spec)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("%s[%d]: %v", where, i, err))
				continue
			}
			out = append(out, b)
		}
		return out
	}

	snap.lists[keybind.ContextComposer] = parse(keybind.ContextComposer, kb.Composer, "keybindings.composer")
	snap.lists[keybind.ContextAutocomplete] = parse(keybind.ContextAutocomplete, kb.Autocomplete, "keybindings.autocomplete")
	snap.lists[keybind.ContextRoomList] = parse(keybind.ContextRoomList, kb.RoomList, "keybindings.room_list")
	snap.lists[keybind.ContextRoom] = parse(keybind.ContextRoom, kb.Room, "keybindings.room")
	snap.lists[keybind.ContextNavigation] = parse(keybind.ContextNavigation, kb.Navigation, "keybindings.navigation")

	for i, ov := range kb.RoomOverrides {
		where := fmt.Sprintf("keybindings.room_overrides[%d]", i)
		if ov.Match == "" {
			warnings = append(warnings, where+": missing match pattern")
			continue
		}
		if !doublestar.ValidatePattern(ov.Match) {
			warnings = append(warnings, fmt.Sprintf("%s: invalid pattern %q", where, ov.Match))
			continue
		}
		bindings := parse(keybind.ContextRoom, ov.Bindings, where+".bindings")
		if len(bindings) == 0 {
			continue
		}
		snap.overrides = append(snap.overrides, roomOverride{pattern: ov.Match, bindings: bindings})
	}

	p.mu.Lock()
	p.snap = snap
	p.mu.Unlock()

	return warnings
}

// parseBindingSpec resolves one BindingSpec against ctx's closed action
// set. Both short ("send") and fully qualified ("composer.send") action
// names are accepted; qualified names must belong to ctx.
func parseBindingSpec(ctx keybind.Context, spec BindingSpec) (keybind.Binding, error) {
	combo, err := keybind.ParseCombo(spec.Keys)
	if err != nil {
		return keybind.Binding{}, err
	}

	short := spec.Action
	if i := strings.IndexByte(short, '.'); i >= 0 {
		if short[:i] != string(ctx) {
			return keybind.Binding{}, fmt.Errorf("action %q does not belong to context %s", spec.Action, ctx)
		}
		short = short[i+1:]
	}
	action, ok := keybind.LookupAction(ctx, short)
	if !ok {
		return keybind.Binding{}, fmt.Errorf("unknown action %q for context %s", spec.Action, ctx)
	}

	return keybind.Binding{Action: action, Combo: combo}, nil
}

// SetActiveRoom records the room name that room_overrides globs are
// matched against.
func (p *BindingProvider) SetActiveRoom(name string) {
	p.mu.Lock()
	p.activeRoom = name
	p.mu.Unlock()
}

// listFor returns a fresh copy of the current list for ctx, so callers
// never alias the snapshot.
func (p *BindingProvider) listFor(ctx keybind.Context) []keybind.Binding {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.snap == nil {
		return nil
	}
	return append([]keybind.Binding(nil), p.snap.lists[ctx]...)
}

func (p *BindingProvider) ComposerBindings() []keybind.Binding {
	return p.listFor(keybind.ContextComposer)
}

func (p *BindingProvider) AutocompleteBindings() []keybind.Binding {
	return p.listFor(keybind.ContextAutocomplete)
}

func (p *BindingProvider) RoomListBindings() []keybind.Binding {
	return p.listFor(keybind.ContextRoomList)
}

// RoomBindings prepends the bindings of every room override whose glob
// matches the active room, in declaration order, ahead of the plain
// room list.
func (p *BindingProvider) RoomBindings() []keybind.Binding {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.snap == nil {
		return nil
	}

	var out []keybind.Binding
	for _, ov := range p.snap.overrides {
		if ok, _ := doublestar.Match(ov.pattern, p.activeRoom); ok {
			out = append(out, ov.bindings...)
		}
	}
	return append(out, p.snap.lists[keybind.ContextRoom]...)
}

func (p *BindingProvider) NavigationBindings() []keybind.Binding {
	return p.listFor(keybind.ContextNavigation)
}
