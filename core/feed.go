package core

import (
	"strings"
	"sync"
	"time"
)

// Feed delivers peer messages for rooms. The session publishes the
// user's messages into the feed and subscribes for incoming ones; a
// transport would implement this interface. The default loopback feed
// lives entirely in-process.
type Feed interface {
	// Publish hands the user's message to the feed.
	Publish(roomID string, msg Message)
	// Subscribe registers the handler for incoming peer messages. The
	// handler is invoked from the feed's own goroutine.
	Subscribe(fn func(roomID string, msg Message))
	Close() error
}

// LoopbackFeed echoes published messages back from a synthetic "echo"
// peer after a short delay. It drives the UI and tests without any
// transport.
type LoopbackFeed struct {
	mu       sync.Mutex
	handler  func(roomID string, msg Message)
	onTyping func(roomID, sender string, active bool)
	delay    time.Duration
	wg       sync.WaitGroup
	closed   bool
}

// NewLoopbackFeed creates a loopback feed with the given echo delay.
func NewLoopbackFeed(delay time.Duration) *LoopbackFeed {
	return &LoopbackFeed{delay: delay}
}

func (f *LoopbackFeed) Subscribe(fn func(roomID string, msg Message)) {
	f.mu.Lock()
	f.handler = fn
	f.mu.Unlock()
}

// SubscribeTyping registers a handler for peer typing notifications.
// The loopback peer "types" while its echo reply is pending.
func (f *LoopbackFeed) SubscribeTyping(fn func(roomID, sender string, active bool)) {
	f.mu.Lock()
	f.onTyping = fn
	f.mu.Unlock()
}

func (f *LoopbackFeed) Publish(roomID string, msg Message) {
	f.mu.Lock()
	if f.closed || f.handler == nil {
		f.mu.Unlock()
		return
	}
	handler := f.handler
	onTyping := f.onTyping
	f.wg.Add(1)
	f.mu.Unlock()

	if onTyping != nil {
		onTyping(roomID, "echo", true)
	}

	go func() {
		defer f.wg.Done()
		time.Sleep(f.delay)

		f.mu.Lock()
		closed := f.closed
		f.mu.Unlock()
		if closed {
			return
		}

		if onTyping != nil {
			onTyping(roomID, "echo", false)
		}
		reply := NewMessage("echo", echoBody(msg.Body), false)
		handler(roomID, reply)
	}()
}

// Close stops deliveries and waits for in-flight echoes to finish.
func (f *LoopbackFeed) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.wg.Wait()
	return nil
}

func echoBody(body string) string {
	trimmed := strings.TrimSpace(body)
	if strings.HasPrefix(trimmed, "/me ") {
		return "*echo " + strings.TrimPrefix(trimmed, "/me ") + "*"
	}
	if trimmed == "/shrug" {
		return `¯\_(ツ)_/¯`
	}
	return trimmed
}
