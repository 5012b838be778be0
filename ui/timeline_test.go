package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"nebula/keybind"
)

func ownMessages(n int) []Message {
	msgs := make([]Message, 0, n)
	for i := 0; i < n; i++ {
		msgs = append(msgs, Message{
			ID:     fmt.Sprintf("m%d", i),
			Sender: "me",
			Body:   fmt.Sprintf("message %d", i),
			SentAt: time.Now(),
			Own:    true,
		})
	}
	return msgs
}

func TestTimelineScrolling(t *testing.T) {
	store := newFakeStore()
	tl := NewTimeline(store)
	tl.SetSize(80, 6)
	tl.SetRoom("r1", ownMessages(20))

	if !tl.Apply(keybind.RoomScrollUp) {
		t.Fatal("scroll up should be handled")
	}
	if tl.scrollOffset == 0 {
		t.Error("scroll up should move away from the bottom")
	}

	tl.Apply(keybind.RoomJumpToLatest)
	if tl.scrollOffset != 0 {
		t.Error("jump to latest should pin to the bottom")
	}

	tl.Apply(keybind.RoomJumpToFirst)
	if tl.scrollOffset != tl.maxScroll() {
		t.Error("jump to first should scroll all the way up")
	}

	tl.Apply(keybind.RoomScrollDown)
	if tl.scrollOffset == tl.maxScroll() {
		t.Error("scroll down should move toward the bottom")
	}
}

func TestTimelineScrollClamps(t *testing.T) {
	store := newFakeStore()
	tl := NewTimeline(store)
	tl.SetSize(80, 10)
	tl.SetRoom("r1", ownMessages(2))

	tl.Apply(keybind.RoomScrollUp)
	if tl.scrollOffset != 0 {
		t.Error("short timelines should not scroll")
	}

	tl.Apply(keybind.RoomScrollDown)
	if tl.scrollOffset != 0 {
		t.Error("offset should never go negative")
	}
}

func TestTimelineReadMarkerActions(t *testing.T) {
	store := newFakeStore()
	tl := NewTimeline(store)
	tl.SetSize(80, 6)
	tl.SetRoom("r1", ownMessages(5))

	// No marker set: both actions fall through.
	if tl.Apply(keybind.RoomJumpToOldestUnread) {
		t.Error("jump to oldest unread without a marker should fall through")
	}
	if tl.Apply(keybind.RoomDismissReadMarker) {
		t.Error("dismiss without a marker should fall through")
	}

	tl.readMarker = "m2"
	if !tl.Apply(keybind.RoomDismissReadMarker) {
		t.Fatal("dismiss with a marker should be handled")
	}
	if tl.readMarker != "" {
		t.Error("dismiss should clear the marker")
	}
	if len(store.markedRead) != 1 || store.markedRead[0] != "r1" {
		t.Errorf("dismiss should mark the room read, got %v", store.markedRead)
	}
}

func TestTimelineAppendsMessages(t *testing.T) {
	store := newFakeStore()
	tl := NewTimeline(store)
	tl.SetSize(80, 10)
	tl.SetRoom("r1", nil)

	tl.Update(MessageMsg{RoomID: "r1", Message: Message{ID: "a", Sender: "me", Body: "hi", Own: true}})
	tl.Update(MessageMsg{RoomID: "r2", Message: Message{ID: "b", Sender: "me", Body: "other room", Own: true}})

	if len(tl.entries) != 1 {
		t.Fatalf("entries = %d, want 1 (other-room message ignored)", len(tl.entries))
	}

	view := tl.View()
	if !strings.Contains(view, "hi") {
		t.Errorf("view should contain the message body:\n%s", view)
	}
	if strings.Contains(view, "other room") {
		t.Error("view should not contain another room's message")
	}
}

func TestTimelineEditReplacesEntry(t *testing.T) {
	store := newFakeStore()
	tl := NewTimeline(store)
	tl.SetSize(80, 10)
	tl.SetRoom("r1", []Message{{ID: "a", Sender: "me", Body: "tpyo", Own: true}})

	tl.Update(MessageEditedMsg{RoomID: "r1", Message: Message{ID: "a", Sender: "me", Body: "typo", Edited: true, Own: true}})

	if tl.entries[0].msg.Body != "typo" || !tl.entries[0].msg.Edited {
		t.Fatalf("entry not replaced: %+v", tl.entries[0].msg)
	}
	if !strings.Contains(tl.View(), "(edited)") {
		t.Error("edited messages should be labeled")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range lines {
		if len([]rune(line)) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}

	lines = wrapText("one\n\ntwo", 80)
	if len(lines) != 3 || lines[1] != "" {
		t.Errorf("blank lines should be preserved: %q", lines)
	}

	lines = wrapText("aaaaaaaaaaaaaaa", 5)
	if len(lines) != 3 {
		t.Errorf("long words should be broken into chunks: %q", lines)
	}
}

func TestTrimEmptyLines(t *testing.T) {
	got := trimEmptyLines([]string{"", " ", "a", "", "b", "", ""})
	want := []string{"a", "", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}
