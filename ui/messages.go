package ui

import "time"

// Message is the UI-side view of a timeline entry. The app adapter
// converts core messages into this type so that ui never imports core.
type Message struct {
	ID     string
	Sender string
	Body   string
	SentAt time.Time
	Edited bool
	Own    bool
}

// MessageMsg carries a message appended to a room timeline.
type MessageMsg struct {
	RoomID  string
	Message Message
}

// MessageEditedMsg carries an in-place edit of an existing message.
type MessageEditedMsg struct {
	RoomID  string
	Message Message
}

// UnreadMsg reports a room's updated unread count.
type UnreadMsg struct {
	RoomID string
	Unread int
}

// TypingMsg signals a peer starting or stopping typing in a room.
type TypingMsg struct {
	RoomID string
	Sender string
	Active bool
}

// RoomSelectedMsg is sent by the room list when the user selects a room.
// Internal UI message, not sent from core.
type RoomSelectedMsg struct {
	RoomID string
}
