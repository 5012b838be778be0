package core

import (
	"time"

	"github.com/google/uuid"
)

// Room sections, in display order.
const (
	SectionFavorites = "favorites"
	SectionRooms     = "rooms"
	SectionPeople    = "people"
)

// Message is one timeline entry.
type Message struct {
	ID     string
	Sender string
	Body   string
	SentAt time.Time
	Edited bool
	Own    bool
}

// NewMessage creates a message with a fresh ID and the current time.
func NewMessage(sender, body string, own bool) Message {
	return Message{
		ID:     uuid.NewString(),
		Sender: sender,
		Body:   body,
		SentAt: time.Now(),
		Own:    own,
	}
}

// RoomInfo is a read-only snapshot of a room's metadata, safe to hold
// across session mutations.
type RoomInfo struct {
	ID      string
	Name    string
	Topic   string
	Section string
	Unread  int
}

// room is the session-internal room state, guarded by the session mutex.
type room struct {
	id      string
	name    string
	topic   string
	section string

	timeline []Message
	members  []string

	unread     int
	readMarker string // ID of the first unread message, "" when read
}

func newRoom(name, topic, section string) *room {
	if section == "" {
		section = SectionRooms
	}
	return &room{
		id:      uuid.NewString(),
		name:    name,
		topic:   topic,
		section: section,
	}
}

func (r *room) info() RoomInfo {
	return RoomInfo{
		ID:      r.id,
		Name:    r.name,
		Topic:   r.topic,
		Section: r.section,
		Unread:  r.unread,
	}
}

func (r *room) hasMember(name string) bool {
	for _, m := range r.members {
		if m == name {
			return true
		}
	}
	return false
}
