package core

// Core-level events emitted by the session. These are framework-agnostic
// counterparts to the UI message types in ui/messages.go. The adapter in
// app/ translates them into Bubble Tea messages for the TUI.

// Notifier delivers core events to the UI layer. Implemented by the ui
// notifier via the app adapter; core never imports ui.
type Notifier interface {
	Send(msg any)
}

// MessageEvent signals a message appended to a room timeline.
type MessageEvent struct {
	RoomID  string
	Message Message
}

// MessageEditedEvent signals an in-place edit of an existing message.
type MessageEditedEvent struct {
	RoomID  string
	Message Message
}

// UnreadEvent reports a room's updated unread count.
type UnreadEvent struct {
	RoomID string
	Unread int
}

// TypingEvent signals a peer starting or stopping typing in a room.
type TypingEvent struct {
	RoomID string
	Sender string
	Active bool
}
