package app

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"nebula/core"
	"nebula/ui"
)

// coreNotifierAdapter translates core-level events into UI-specific
// Bubble Tea messages, bridging the gap between the framework-agnostic
// core and the TUI.
type coreNotifierAdapter struct {
	ui interface{ Send(tea.Msg) }
}

func (a *coreNotifierAdapter) Send(msg any) {
	if a.ui == nil {
		return
	}

	switch e := msg.(type) {
	case core.MessageEvent:
		a.ui.Send(ui.MessageMsg{RoomID: e.RoomID, Message: toUIMessage(e.Message)})
	case core.MessageEditedEvent:
		a.ui.Send(ui.MessageEditedMsg{RoomID: e.RoomID, Message: toUIMessage(e.Message)})
	case core.UnreadEvent:
		a.ui.Send(ui.UnreadMsg{RoomID: e.RoomID, Unread: e.Unread})
	case core.TypingEvent:
		a.ui.Send(ui.TypingMsg{RoomID: e.RoomID, Sender: e.Sender, Active: e.Active})
	default:
		// Log unhandled events to detect integration mistakes during refactors.
		fmt.Fprintf(os.Stderr, "nebula: warning: unhandled core event type: %T\n", msg)
	}
}

// sessionStore adapts the core session to the shell's Store interface,
// converting core types into their UI counterparts so ui never imports
// core.
type sessionStore struct {
	session *core.Session
}

func (s *sessionStore) Rooms() []ui.RoomInfo {
	rooms := s.session.Rooms()
	out := make([]ui.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toUIRoom(r))
	}
	return out
}

func (s *sessionStore) ActiveRoom() (ui.RoomInfo, bool) {
	r, ok := s.session.ActiveRoom()
	if !ok {
		return ui.RoomInfo{}, false
	}
	return toUIRoom(r), true
}

func (s *sessionStore) Timeline(roomID string) []ui.Message {
	msgs := s.session.Timeline(roomID)
	out := make([]ui.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toUIMessage(m))
	}
	return out
}

func (s *sessionStore) OwnMessages(roomID string) []ui.Message {
	msgs := s.session.OwnMessages(roomID)
	out := make([]ui.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toUIMessage(m))
	}
	return out
}

func (s *sessionStore) SetActiveRoom(roomID string) { s.session.SetActiveRoom(roomID) }
func (s *sessionStore) TotalUnread() int            { return s.session.TotalUnread() }
func (s *sessionStore) ReadMarker(roomID string) string {
	return s.session.ReadMarker(roomID)
}
func (s *sessionStore) MarkRead(roomID string)     { s.session.MarkRead(roomID) }
func (s *sessionStore) SubmitMessage(text string)  { s.session.SubmitMessage(text) }
func (s *sessionStore) SendHistory(roomID string) []string {
	return s.session.SendHistory(roomID)
}
func (s *sessionStore) Completions(prefix string) []string {
	return s.session.Completions(prefix)
}

func (s *sessionStore) EditMessage(roomID, messageID, body string) error {
	return s.session.EditMessage(roomID, messageID, body)
}

func toUIMessage(m core.Message) ui.Message {
	return ui.Message{
		ID:     m.ID,
		Sender: m.Sender,
		Body:   m.Body,
		SentAt: m.SentAt,
		Edited: m.Edited,
		Own:    m.Own,
	}
}

func toUIRoom(r core.RoomInfo) ui.RoomInfo {
	return ui.RoomInfo{
		ID:      r.ID,
		Name:    r.Name,
		Topic:   r.Topic,
		Section: r.Section,
		Unread:  r.Unread,
	}
}
