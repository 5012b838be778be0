package ui

import (
	"log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// UpdateMsg signals that the shell should re-render.
type UpdateMsg struct{}

// Notifier bridges goroutines outside the Bubble Tea loop (the message
// feed, the config watcher) into it.
//
// Two delivery modes:
//   - Notify(): idempotent re-render signal via a buffered channel;
//     drops are harmless since the next render reads current state.
//   - Send(msg): data-carrying message via tea.Program.Send(), which is
//     goroutine-safe and unbounded. Blocks until SetProgram() has been
//     called so nothing is dropped during initialization.
type Notifier struct {
	rcv       chan any
	listening bool
	mu        sync.Mutex
	program   *tea.Program
	initWg    sync.WaitGroup
}

func newNotifier() *Notifier {
	n := &Notifier{
		rcv: make(chan any, 256),
	}
	n.initWg.Add(1)
	return n
}

// SetProgram stores the running tea.Program, enabling goroutine-safe
// delivery via Send(). Call once after tea.NewProgram() and before Run().
func (n *Notifier) SetProgram(p *tea.Program) {
	n.program = p
	n.initWg.Done()
}

// Listen returns a tea.Cmd that blocks until a notification arrives.
func (n *Notifier) Listen() tea.Cmd {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.listening {
		return nil
	}
	n.listening = true

	return func() tea.Msg {
		msg := <-n.rcv
		n.mu.Lock()
		n.listening = false
		n.mu.Unlock()
		return msg
	}
}

// Notify queues an UpdateMsg; safe to call from any goroutine.
func (n *Notifier) Notify() {
	select {
	case n.rcv <- UpdateMsg{}:
	default:
	}
}

// Send delivers a data-carrying message to the Bubble Tea runtime.
func (n *Notifier) Send(msg tea.Msg) {
	n.initWg.Wait()
	if n.program != nil {
		n.program.Send(msg)
		return
	}
	select {
	case n.rcv <- msg:
	default:
		log.Printf("notifier: dropped message %T (channel full)", msg)
	}
}
