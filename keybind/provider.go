package keybind

// Binding associates one Combo with one Action inside a context.
type Binding struct {
	Action Action
	Combo  Combo
}

// Provider is a source of binding lists, one query method per UI
// context. Implementations must return a freshly computed list on every
// call so that lists can reflect live configuration; callers never cache
// the result across key events.
type Provider interface {
	ComposerBindings() []Binding
	AutocompleteBindings() []Binding
	RoomListBindings() []Binding
	RoomBindings() []Binding
	NavigationBindings() []Binding
}

// BindingsFor queries p for the binding list of ctx.
func BindingsFor(p Provider, ctx Context) []Binding {
	switch ctx {
	case ContextComposer:
		return p.ComposerBindings()
	case ContextAutocomplete:
		return p.AutocompleteBindings()
	case ContextRoomList:
		return p.RoomListBindings()
	case ContextRoom:
		return p.RoomBindings()
	case ContextNavigation:
		return p.NavigationBindings()
	}
	return nil
}
