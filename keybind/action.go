package keybind

// Context identifies a UI surface with its own closed action set.
type Context string

const (
	ContextComposer     Context = "composer"
	ContextAutocomplete Context = "autocomplete"
	ContextRoomList     Context = "room_list"
	ContextRoom         Context = "room"
	ContextNavigation   Context = "navigation"
)

// Contexts lists every context in display order.
func Contexts() []Context {
	return []Context{
		ContextComposer,
		ContextAutocomplete,
		ContextRoomList,
		ContextRoom,
		ContextNavigation,
	}
}

// Action identifies what a matched binding should do. Actions are
// disjoint per context; the token before the dot names the context.
type Action string

// ActionNone is the no-match sentinel, distinct from every real action.
const ActionNone Action = ""

// Composer actions.
const (
	ComposerSend            Action = "composer.send"
	ComposerNewLine         Action = "composer.new_line"
	ComposerPrevSendHistory Action = "composer.prev_send_history"
	ComposerNextSendHistory Action = "composer.next_send_history"
	ComposerEditPrevMessage Action = "composer.edit_prev_message"
	ComposerEditNextMessage Action = "composer.edit_next_message"
	ComposerCancelEditing   Action = "composer.cancel_editing"
	ComposerCursorToStart   Action = "composer.cursor_to_start"
	ComposerCursorToEnd     Action = "composer.cursor_to_end"
	ComposerToggleBold      Action = "composer.toggle_bold"
	ComposerToggleItalics   Action = "composer.toggle_italics"
	ComposerToggleQuote     Action = "composer.toggle_quote"
)

// Autocomplete actions.
const (
	AutocompleteAccept Action = "autocomplete.accept"
	AutocompleteForce  Action = "autocomplete.force"
	AutocompletePrev   Action = "autocomplete.prev"
	AutocompleteNext   Action = "autocomplete.next"
	AutocompleteCancel Action = "autocomplete.cancel"
)

// Room list actions.
const (
	RoomListPrevRoom        Action = "room_list.prev_room"
	RoomListNextRoom        Action = "room_list.next_room"
	RoomListSelectRoom      Action = "room_list.select_room"
	RoomListClearFilter     Action = "room_list.clear_filter"
	RoomListCollapseSection Action = "room_list.collapse_section"
	RoomListExpandSection   Action = "room_list.expand_section"
)

// Room (timeline) actions.
const (
	RoomScrollUp           Action = "room.scroll_up"
	RoomScrollDown         Action = "room.scroll_down"
	RoomJumpToFirst        Action = "room.jump_to_first"
	RoomJumpToLatest       Action = "room.jump_to_latest"
	RoomJumpToOldestUnread Action = "room.jump_to_oldest_unread"
	RoomDismissReadMarker  Action = "room.dismiss_read_marker"
)

// Navigation actions.
const (
	NavToggleRoomList   Action = "navigation.toggle_room_list"
	NavToggleShortcuts  Action = "navigation.toggle_shortcuts"
	NavSwitchPane       Action = "navigation.switch_pane"
	NavPrevRoom         Action = "navigation.prev_room"
	NavNextRoom         Action = "navigation.next_room"
	NavPrevUnreadRoom   Action = "navigation.prev_unread_room"
	NavNextUnreadRoom   Action = "navigation.next_unread_room"
)

// actionsByContext maps each context to its closed action set, in a
// stable order used for validation and cheatsheet display.
var actionsByContext = map[Context][]Action{
	ContextComposer: {
		ComposerSend, ComposerNewLine,
		ComposerPrevSendHistory, ComposerNextSendHistory,
		ComposerEditPrevMessage, ComposerEditNextMessage,
		ComposerCancelEditing,
		ComposerCursorToStart, ComposerCursorToEnd,
		ComposerToggleBold, ComposerToggleItalics, ComposerToggleQuote,
	},
	ContextAutocomplete: {
		AutocompleteAccept, AutocompleteForce,
		AutocompletePrev, AutocompleteNext, AutocompleteCancel,
	},
	ContextRoomList: {
		RoomListPrevRoom, RoomListNextRoom, RoomListSelectRoom,
		RoomListClearFilter,
		RoomListCollapseSection, RoomListExpandSection,
	},
	ContextRoom: {
		RoomScrollUp, RoomScrollDown,
		RoomJumpToFirst, RoomJumpToLatest, RoomJumpToOldestUnread,
		RoomDismissReadMarker,
	},
	ContextNavigation: {
		NavToggleRoomList, NavToggleShortcuts, NavSwitchPane,
		NavPrevRoom, NavNextRoom,
		NavPrevUnreadRoom, NavNextUnreadRoom,
	},
}

// Actions returns the closed action set for ctx.
func (c Context) Actions() []Action {
	return actionsByContext[c]
}

// LookupAction resolves a short, context-scoped action name (the part
// after the dot, e.g. "send" in composer) to its Action. Returns
// ActionNone and false for unknown names.
func LookupAction(ctx Context, short string) (Action, bool) {
	full := Action(string(ctx) + "." + short)
	for _, a := range actionsByContext[ctx] {
		if a == full {
			return a, true
		}
	}
	return ActionNone, false
}

// ShortName returns the context-scoped part of an action token.
func (a Action) ShortName() string {
	s := string(a)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return s[i+1:]
		}
	}
	return s
}
