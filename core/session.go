package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Slash commands offered by composer completion.
var slashCommands = []string{"/me", "/shrug", "/topic"}

// Session holds the chat state: rooms, timelines, unread accounting and
// per-room send history. All methods are safe for concurrent use; the
// feed delivers peer messages from its own goroutine.
type Session struct {
	mu sync.Mutex

	user     string
	rooms    []*room
	byID     map[string]*room
	activeID string

	sendHistory map[string][]string

	notifier Notifier
	feed     Feed
}

// NewSession creates an empty session for the given display name.
// Events are delivered through notifier; pass nil to discard them
// (tests).
func NewSession(user string, notifier Notifier) *Session {
	return &Session{
		user:        user,
		byID:        make(map[string]*room),
		sendHistory: make(map[string][]string),
		notifier:    notifier,
	}
}

// User returns the local display name.
func (s *Session) User() string { return s.user }

// AttachFeed connects the message feed and subscribes to incoming peer
// messages. Call once during bootstrap.
func (s *Session) AttachFeed(f Feed) {
	s.mu.Lock()
	s.feed = f
	s.mu.Unlock()
	f.Subscribe(s.receive)

	// Feeds that report peer typing state are forwarded as events.
	if tf, ok := f.(interface {
		SubscribeTyping(fn func(roomID, sender string, active bool))
	}); ok {
		tf.SubscribeTyping(func(roomID, sender string, active bool) {
			if s.notifier != nil {
				s.notifier.Send(TypingEvent{RoomID: roomID, Sender: sender, Active: active})
			}
		})
	}
}

// AddRoom registers a room and returns its snapshot. The first room
// added becomes the active room.
func (s *Session) AddRoom(name, topic, section string) RoomInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := newRoom(name, topic, section)
	r.members = []string{s.user, "echo"}
	s.rooms = append(s.rooms, r)
	s.byID[r.id] = r
	if s.activeID == "" {
		s.activeID = r.id
	}
	return r.info()
}

// Rooms returns snapshots of every room in registration order.
func (s *Session) Rooms() []RoomInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]RoomInfo, 0, len(s.rooms))
	for _, r := range s.rooms {
		infos = append(infos, r.info())
	}
	return infos
}

// ActiveRoom returns the active room snapshot and false when no rooms
// exist yet.
func (s *Session) ActiveRoom() (RoomInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[s.activeID]
	if !ok {
		return RoomInfo{}, false
	}
	return r.info(), true
}

// SetActiveRoom switches the active room. Unknown IDs are ignored.
func (s *Session) SetActiveRoom(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; ok {
		s.activeID = id
	}
}

// Timeline returns a copy of a room's timeline.
func (s *Session) Timeline(roomID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[roomID]
	if !ok {
		return nil
	}
	return append([]Message(nil), r.timeline...)
}

// ReadMarker returns the ID of the first unread message in a room, or
// empty when everything is read.
func (s *Session) ReadMarker(roomID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.byID[roomID]; ok {
		return r.readMarker
	}
	return ""
}

// SubmitMessage appends the user's message to the active room, records
// it in the send history and publishes it to the feed. Empty input is a
// no-op.
func (s *Session) SubmitMessage(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	s.mu.Lock()
	r, ok := s.byID[s.activeID]
	if !ok {
		s.mu.Unlock()
		return
	}
	msg := NewMessage(s.user, text, true)
	r.timeline = append(r.timeline, msg)
	s.sendHistory[r.id] = append(s.sendHistory[r.id], text)
	roomID := r.id
	feed := s.feed
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		notifier.Send(MessageEvent{RoomID: roomID, Message: msg})
	}
	if feed != nil {
		feed.Publish(roomID, msg)
	}
}

// EditMessage replaces the body of one of the user's own messages.
func (s *Session) EditMessage(roomID, messageID, body string) error {
	s.mu.Lock()
	r, ok := s.byID[roomID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("unknown room %s", roomID)
	}

	for i := range r.timeline {
		if r.timeline[i].ID != messageID {
			continue
		}
		if !r.timeline[i].Own {
			s.mu.Unlock()
			return fmt.Errorf("cannot edit message from %s", r.timeline[i].Sender)
		}
		r.timeline[i].Body = body
		r.timeline[i].Edited = true
		edited := r.timeline[i]
		notifier := s.notifier
		s.mu.Unlock()

		if notifier != nil {
			notifier.Send(MessageEditedEvent{RoomID: roomID, Message: edited})
		}
		return nil
	}
	s.mu.Unlock()
	return fmt.Errorf("unknown message %s", messageID)
}

// OwnMessages returns copies of the user's messages in a room, oldest
// first. Used by the composer's edit-previous navigation.
func (s *Session) OwnMessages(roomID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[roomID]
	if !ok {
		return nil
	}
	var own []Message
	for _, m := range r.timeline {
		if m.Own {
			own = append(own, m)
		}
	}
	return own
}

// SendHistory returns the texts the user has sent in a room, oldest
// first.
func (s *Session) SendHistory(roomID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sendHistory[roomID]...)
}

// MarkRead clears a room's unread count and read marker.
func (s *Session) MarkRead(roomID string) {
	s.mu.Lock()
	r, ok := s.byID[roomID]
	if !ok || (r.unread == 0 && r.readMarker == "") {
		s.mu.Unlock()
		return
	}
	r.unread = 0
	r.readMarker = ""
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		notifier.Send(UnreadEvent{RoomID: roomID, Unread: 0})
	}
}

// TotalUnread sums unread counts across all rooms.
func (s *Session) TotalUnread() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, r := range s.rooms {
		total += r.unread
	}
	return total
}

// receive handles a peer message delivered by the feed.
func (s *Session) receive(roomID string, msg Message) {
	s.mu.Lock()
	r, ok := s.byID[roomID]
	if !ok {
		s.mu.Unlock()
		return
	}
	r.timeline = append(r.timeline, msg)
	if !r.hasMember(msg.Sender) {
		r.members = append(r.members, msg.Sender)
	}
	if r.id != s.activeID {
		r.unread++
		if r.readMarker == "" {
			r.readMarker = msg.ID
		}
	}
	unread := r.unread
	notifier := s.notifier
	s.mu.Unlock()

	if notifier == nil {
		return
	}
	notifier.Send(MessageEvent{RoomID: roomID, Message: msg})
	if unread > 0 {
		notifier.Send(UnreadEvent{RoomID: roomID, Unread: unread})
	}
}

// Completions returns completion candidates for the given input prefix:
// slash commands for "/" prefixes and active-room member mentions for
// "@" prefixes. Results are sorted and deduplicated.
func (s *Session) Completions(prefix string) []string {
	if prefix == "" {
		return nil
	}

	var candidates []string
	switch prefix[0] {
	case '/':
		candidates = slashCommands
	case '@':
		s.mu.Lock()
		if r, ok := s.byID[s.activeID]; ok {
			for _, m := range r.members {
				candidates = append(candidates, "@"+m)
			}
		}
		s.mu.Unlock()
	default:
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
