package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nebula/keybind"
)

const (
	headerHeight   = 1
	footerHeight   = 1
	composerHeight = 3
	sidebarWidth   = 26
)

// focusArea identifies which pane receives typed input.
type focusArea int

const (
	focusRoom focusArea = iota
	focusRoomList
)

// Store is the session surface the shell needs. The app layer adapts
// the core session to it so that ui never imports core.
type Store interface {
	TimelineStore
	ComposerStore

	Rooms() []RoomInfo
	ActiveRoom() (RoomInfo, bool)
	Timeline(roomID string) []Message
	SetActiveRoom(roomID string)
	TotalUnread() int
}

// Shell is the root model: a room list sidebar, a timeline with a
// composer under it, a status bar, and a shortcuts overlay. Every key
// press resolves through the keybind manager before any pane sees it.
type Shell struct {
	termReady bool
	width     int
	height    int

	store   Store
	manager *keybind.Manager

	timeline  *Timeline
	composer  *Composer
	roomList  *RoomList
	shortcuts *ShortcutsModal
	splash    *Splash
	statusBar *statusBar
	KeyMap    *KeyMap

	notifier *Notifier

	focus         focusArea
	sidebarHidden bool

	// roomScope informs the binding layer of the active room name so
	// per-room overrides apply. Optional.
	roomScope func(roomName string)
}

// NewShell wires the panes around a session store and a key manager.
func NewShell(store Store, manager *keybind.Manager) *Shell {
	s := &Shell{
		width:     80,
		height:    24,
		store:     store,
		manager:   manager,
		timeline:  NewTimeline(store),
		composer:  NewComposer(store),
		roomList:  NewRoomList(),
		shortcuts: NewShortcutsModal(manager),
		splash:    NewSplash(),
		statusBar: newStatusBar(),
		KeyMap:    newKeyMap(),
		notifier:  newNotifier(),
	}
	s.statusBar.SetBorderColor("135")
	return s
}

// GetNotifier returns the shell's Notifier, allowing external code
// (the feed adapter, the config watcher) to send goroutine-safe
// messages via Send().
func (s *Shell) GetNotifier() *Notifier {
	return s.notifier
}

// SetRoomScope registers a callback invoked with the active room's
// name on every room switch. Setup-only.
func (s *Shell) SetRoomScope(fn func(roomName string)) {
	s.roomScope = fn
}

// SetAccentColor sets the footer border color. Setup-only.
func (s *Shell) SetAccentColor(color string) {
	s.statusBar.SetBorderColor(color)
}

// AddStatusItem adds a status bar item. Setup-only; for runtime
// updates send a StatusItemUpdateMsg via the notifier.
func (s *Shell) AddStatusItem(key, value string) {
	s.statusBar.addItem(key, value)
}

func (s *Shell) Init() tea.Cmd {
	if active, ok := s.store.ActiveRoom(); ok {
		s.enterRoom(active.ID)
	}
	return tea.Batch(s.composer.Init(), s.notifier.Listen())
}

func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !s.termReady && msg.Width > 0 && msg.Height > 0 {
			s.termReady = true
		}
		s.width = msg.Width
		s.height = msg.Height
		s.layout()
		return s, tea.Batch(s.updateChildren(msg)...)

	case tea.KeyMsg:
		return s.handleKey(msg)

	case RoomSelectedMsg:
		s.enterRoom(msg.RoomID)
		s.focus = focusRoom
		s.roomList.Blur()
		return s, s.composer.Focus()

	case MessageMsg, MessageEditedMsg, TypingMsg:
		cmds := s.updateChildren(msg)
		cmds = append(cmds, s.notifier.Listen())
		return s, tea.Batch(cmds...)

	case UnreadMsg:
		cmds := s.updateChildren(msg)
		s.refreshUnreadItem()
		cmds = append(cmds, s.notifier.Listen())
		return s, tea.Batch(cmds...)

	case StatusItemUpdateMsg:
		s.statusBar.setItem(msg.Key, msg.Value)
		return s, s.notifier.Listen()

	case UpdateMsg:
		// External state changed (config reload, room membership).
		s.refreshRooms()
		cmds := s.updateChildren(msg)
		cmds = append(cmds, s.notifier.Listen())
		return s, tea.Batch(cmds...)

	default:
		cmds := s.updateChildren(msg)
		cmds = append(cmds, s.notifier.Listen())
		return s, tea.Batch(cmds...)
	}
}

// handleKey resolves a key press through the binding contexts in
// precedence order for the focused pane, falling through to raw text
// input when nothing matched.
func (s *Shell) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit works regardless of bindings and focus traps.
	if key.Matches(msg, s.KeyMap.Quit) {
		return s, tea.Quit
	}

	ev := EventFromKeyMsg(msg)

	if s.shortcuts.IsVisible() {
		action := s.manager.Resolve(keybind.ContextNavigation, ev)
		if action == keybind.NavToggleShortcuts || ev.Key == "esc" {
			s.shortcuts.Hide()
		}
		// Focus trap: the modal consumes everything else.
		return s, nil
	}

	if s.focus == focusRoomList {
		return s.handleRoomListKey(msg, ev)
	}
	return s.handleRoomKey(msg, ev)
}

func (s *Shell) handleRoomKey(msg tea.KeyMsg, ev keybind.Event) (tea.Model, tea.Cmd) {
	if s.composer.PopupOpen() {
		if action := s.manager.Resolve(keybind.ContextAutocomplete, ev); action != keybind.ActionNone {
			if s.composer.ApplyAutocomplete(action) {
				return s, nil
			}
		}
	}

	if action := s.manager.Resolve(keybind.ContextComposer, ev); action != keybind.ActionNone {
		if s.composer.Apply(action) {
			return s, nil
		}
	}

	// Bare printable runes are text input: skip the room and
	// navigation contexts so bindings can never shadow typing.
	if !isBareRune(ev) {
		if action := s.manager.Resolve(keybind.ContextRoom, ev); action != keybind.ActionNone {
			if s.timeline.Apply(action) {
				return s, nil
			}
		}
		if action := s.manager.Resolve(keybind.ContextNavigation, ev); action != keybind.ActionNone {
			if handled, cmd := s.applyNavigation(action); handled {
				return s, cmd
			}
		}
	}

	return s, s.composer.HandleKey(msg)
}

func (s *Shell) handleRoomListKey(msg tea.KeyMsg, ev keybind.Event) (tea.Model, tea.Cmd) {
	if action := s.manager.Resolve(keybind.ContextRoomList, ev); action != keybind.ActionNone {
		if handled, cmd := s.roomList.Apply(action); handled {
			return s, cmd
		}
	}

	if !isBareRune(ev) {
		if action := s.manager.Resolve(keybind.ContextNavigation, ev); action != keybind.ActionNone {
			if handled, cmd := s.applyNavigation(action); handled {
				return s, cmd
			}
		}
	}

	return s, s.roomList.HandleKey(msg)
}

// applyNavigation executes a navigation action. Returns false when the
// action cannot apply (no unread room to jump to).
func (s *Shell) applyNavigation(action keybind.Action) (bool, tea.Cmd) {
	switch action {
	case keybind.NavToggleRoomList:
		s.sidebarHidden = !s.sidebarHidden
		if s.sidebarHidden && s.focus == focusRoomList {
			return true, s.switchPane()
		}
	case keybind.NavToggleShortcuts:
		s.shortcuts.Show()
	case keybind.NavSwitchPane:
		return true, s.switchPane()
	case keybind.NavPrevRoom:
		return s.stepRoom(-1, false), nil
	case keybind.NavNextRoom:
		return s.stepRoom(1, false), nil
	case keybind.NavPrevUnreadRoom:
		return s.stepRoom(-1, true), nil
	case keybind.NavNextUnreadRoom:
		return s.stepRoom(1, true), nil
	default:
		return false, nil
	}
	return true, nil
}

func (s *Shell) switchPane() tea.Cmd {
	if s.focus == focusRoom {
		if s.sidebarHidden {
			s.sidebarHidden = false
		}
		s.focus = focusRoomList
		s.composer.Blur()
		return s.roomList.Focus()
	}
	s.focus = focusRoom
	s.roomList.Blur()
	return s.composer.Focus()
}

// stepRoom moves the active room by dir through the room list order,
// restricted to rooms with unread messages when unreadOnly is set.
func (s *Shell) stepRoom(dir int, unreadOnly bool) bool {
	rooms := s.store.Rooms()
	if len(rooms) == 0 {
		return false
	}

	current := -1
	if active, ok := s.store.ActiveRoom(); ok {
		for i, room := range rooms {
			if room.ID == active.ID {
				current = i
				break
			}
		}
	}

	for step := 1; step <= len(rooms); step++ {
		idx := (current + dir*step + len(rooms)*step) % len(rooms)
		room := rooms[idx]
		if idx == current {
			return false
		}
		if unreadOnly && room.Unread == 0 {
			continue
		}
		s.enterRoom(room.ID)
		return true
	}
	return false
}

// enterRoom makes roomID active everywhere: the session, the panes,
// the binding scope and the status bar.
func (s *Shell) enterRoom(roomID string) {
	s.store.SetActiveRoom(roomID)
	s.timeline.SetRoom(roomID, s.store.Timeline(roomID))
	s.composer.SetRoom(roomID)

	var name string
	if active, ok := s.store.ActiveRoom(); ok {
		name = active.Name
	}
	s.roomList.SetRooms(s.store.Rooms(), roomID)
	s.store.MarkRead(roomID)
	if name != "" {
		s.statusBar.setItem("room", "#"+name)
	}
	s.refreshUnreadItem()

	if s.roomScope != nil {
		s.roomScope(name)
	}
	s.layout()
}

func (s *Shell) refreshRooms() {
	activeID := ""
	if active, ok := s.store.ActiveRoom(); ok {
		activeID = active.ID
	}
	s.roomList.SetRooms(s.store.Rooms(), activeID)
	s.refreshUnreadItem()
}

func (s *Shell) refreshUnreadItem() {
	if unread := s.store.TotalUnread(); unread > 0 {
		s.statusBar.setItem("unread", fmt.Sprintf("%d unread", unread))
	} else {
		s.statusBar.removeItem("unread")
	}
}

func (s *Shell) layout() {
	timelineWidth := s.width
	if !s.sidebarHidden {
		timelineWidth -= sidebarWidth + 1
	}
	if timelineWidth < 20 {
		timelineWidth = 20
	}

	bodyHeight := s.height - headerHeight - footerHeight - composerHeight - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	s.timeline.SetSize(timelineWidth, bodyHeight)
	s.composer.SetWidth(timelineWidth)
	s.roomList.SetSize(sidebarWidth, bodyHeight)
	s.shortcuts.SetSize(s.width, s.height)
}

func (s *Shell) updateChildren(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd

	if cmd := s.shortcuts.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := s.statusBar.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := s.timeline.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := s.composer.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := s.roomList.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return cmds
}

func (s *Shell) View() string {
	if !s.termReady {
		return "setting up terminal..."
	}

	if s.shortcuts.IsVisible() {
		return s.shortcuts.View()
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	topicStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var header string
	if active, ok := s.store.ActiveRoom(); ok {
		header = headerStyle.Render("#"+active.Name)
		if active.Topic != "" {
			header += "  " + topicStyle.Render(active.Topic)
		}
	}

	bodyHeight := s.height - headerHeight - footerHeight - composerHeight - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	timelineView := s.timeline.View()
	if timelineView == "" {
		timelineView = s.splash.View()
	}
	if h := lipgloss.Height(timelineView); h < bodyHeight {
		timelineView += strings.Repeat("\n", bodyHeight-h)
	}

	timelineWidth := s.width
	if !s.sidebarHidden {
		timelineWidth -= sidebarWidth + 1
	}

	column := lipgloss.NewStyle().
		Width(timelineWidth).
		MaxHeight(bodyHeight).
		Render(timelineView)
	column = lipgloss.JoinVertical(lipgloss.Left, column, s.composer.View())

	var body string
	if s.sidebarHidden {
		body = column
	} else {
		sidebar := lipgloss.NewStyle().
			Width(sidebarWidth).
			MaxHeight(bodyHeight+composerHeight).
			Render(s.roomList.View())
		divider := lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Render(strings.TrimRight(strings.Repeat("│\n", bodyHeight+composerHeight), "\n"))
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, divider, column)
	}

	return lipgloss.JoinVertical(lipgloss.Top, header, body, s.statusBar.View())
}
