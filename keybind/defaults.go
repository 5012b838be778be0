package keybind

// DefaultProvider supplies the built-in binding lists. Lists are
// rebuilt on every query per the Provider contract.
type DefaultProvider struct{}

func (DefaultProvider) ComposerBindings() []Binding {
	return []Binding{
		{ComposerSend, MustCombo("enter")},
		{ComposerNewLine, MustCombo("shift+enter")},
		{ComposerNewLine, MustCombo("alt+enter")},
		{ComposerPrevSendHistory, MustCombo("mod+up")},
		{ComposerNextSendHistory, MustCombo("mod+down")},
		{ComposerEditPrevMessage, MustCombo("up")},
		{ComposerEditNextMessage, MustCombo("down")},
		{ComposerCancelEditing, MustCombo("esc")},
		{ComposerCursorToStart, MustCombo("mod+home")},
		{ComposerCursorToEnd, MustCombo("mod+end")},
		{ComposerToggleBold, MustCombo("mod+b")},
		{ComposerToggleItalics, MustCombo("mod+i")},
		{ComposerToggleQuote, MustCombo("mod+q")},
	}
}

func (DefaultProvider) AutocompleteBindings() []Binding {
	return []Binding{
		{AutocompleteAccept, MustCombo("tab")},
		{AutocompleteAccept, MustCombo("enter")},
		{AutocompleteForce, MustCombo("ctrl+tab")},
		{AutocompletePrev, MustCombo("up")},
		{AutocompletePrev, MustCombo("shift+tab")},
		{AutocompleteNext, MustCombo("down")},
		{AutocompleteCancel, MustCombo("esc")},
	}
}

func (DefaultProvider) RoomListBindings() []Binding {
	return []Binding{
		{RoomListPrevRoom, MustCombo("up")},
		{RoomListNextRoom, MustCombo("down")},
		{RoomListSelectRoom, MustCombo("enter")},
		{RoomListClearFilter, MustCombo("esc")},
		{RoomListCollapseSection, MustCombo("left")},
		{RoomListExpandSection, MustCombo("right")},
	}
}

func (DefaultProvider) RoomBindings() []Binding {
	return []Binding{
		{RoomScrollUp, MustCombo("pgup")},
		{RoomScrollDown, MustCombo("pgdown")},
		{RoomJumpToFirst, MustCombo("mod+home")},
		{RoomJumpToLatest, MustCombo("mod+end")},
		{RoomJumpToOldestUnread, MustCombo("shift+pgup")},
		{RoomDismissReadMarker, MustCombo("esc")},
	}
}

func (DefaultProvider) NavigationBindings() []Binding {
	return []Binding{
		{NavToggleRoomList, MustCombo("ctrl+l")},
		{NavToggleShortcuts, MustCombo("ctrl+g")},
		{NavSwitchPane, MustCombo("tab")},
		{NavPrevRoom, MustCombo("alt+up")},
		{NavNextRoom, MustCombo("alt+down")},
		{NavPrevUnreadRoom, MustCombo("alt+shift+up")},
		{NavNextUnreadRoom, MustCombo("alt+shift+down")},
	}
}
