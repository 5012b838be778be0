package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nebula/keybind"
)

// RoomInfo is the UI-side view of a room, converted by the app adapter.
type RoomInfo struct {
	ID      string
	Name    string
	Topic   string
	Section string
	Unread  int
}

// sectionOrder fixes the display order of room list sections.
var sectionOrder = []string{"favorites", "rooms", "people"}

// RoomList is the sidebar pane: rooms grouped into collapsible
// sections, with unread badges and an incremental name filter.
type RoomList struct {
	rooms    []RoomInfo
	activeID string

	cursor    int
	collapsed map[string]bool

	filter textinput.Model

	width   int
	height  int
	focused bool
}

// NewRoomList creates an empty, unfocused room list.
func NewRoomList() *RoomList {
	ti := textinput.New()
	ti.Placeholder = "filter rooms"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return &RoomList{
		collapsed: make(map[string]bool),
		filter:    ti,
	}
}

// SetRooms replaces the room set, keeping the cursor on the same room
// when it survives the update.
func (r *RoomList) SetRooms(rooms []RoomInfo, activeID string) {
	var cursorID string
	if items := r.visible(); r.cursor < len(items) {
		cursorID = items[r.cursor].ID
	}

	r.rooms = rooms
	r.activeID = activeID

	if cursorID != "" {
		for i, item := range r.visible() {
			if item.ID == cursorID {
				r.cursor = i
				return
			}
		}
	}
	r.cursor = 0
}

// SetSize updates the pane dimensions.
func (r *RoomList) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.filter.Width = width - 4
}

// Focus directs typed keys into the filter input.
func (r *RoomList) Focus() tea.Cmd {
	r.focused = true
	return r.filter.Focus()
}

// Blur releases focus and clears the filter.
func (r *RoomList) Blur() {
	r.focused = false
	r.filter.Blur()
	r.filter.Reset()
	r.clampCursor()
}

// Focused reports whether the pane has input focus.
func (r *RoomList) Focused() bool { return r.focused }

// Filtering reports whether a filter string is active.
func (r *RoomList) Filtering() bool { return r.filter.Value() != "" }

// HandleKey feeds an unbound key to the filter input.
func (r *RoomList) HandleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	r.filter, cmd = r.filter.Update(msg)
	r.clampCursor()
	return cmd
}

// Update handles non-key messages: unread updates and blink ticks.
func (r *RoomList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case UnreadMsg:
		for i := range r.rooms {
			if r.rooms[i].ID == msg.RoomID {
				r.rooms[i].Unread = msg.Unread
				break
			}
		}
		return nil
	case tea.KeyMsg:
		return nil
	}
	var cmd tea.Cmd
	r.filter, cmd = r.filter.Update(msg)
	return cmd
}

// Apply executes a room-list action. Selection is reported through a
// RoomSelectedMsg command so the shell owns the actual switch.
func (r *RoomList) Apply(action keybind.Action) (bool, tea.Cmd) {
	items := r.visible()

	switch action {
	case keybind.RoomListPrevRoom:
		if r.cursor > 0 {
			r.cursor--
		}
	case keybind.RoomListNextRoom:
		if r.cursor < len(items)-1 {
			r.cursor++
		}
	case keybind.RoomListSelectRoom:
		if r.cursor >= len(items) {
			return false, nil
		}
		id := items[r.cursor].ID
		r.filter.Reset()
		r.clampCursor()
		return true, func() tea.Msg { return RoomSelectedMsg{RoomID: id} }
	case keybind.RoomListClearFilter:
		if r.filter.Value() == "" {
			return false, nil
		}
		r.filter.Reset()
		r.clampCursor()
	case keybind.RoomListCollapseSection:
		section := r.cursorSection()
		if section == "" || r.collapsed[section] {
			return false, nil
		}
		r.collapsed[section] = true
		r.clampCursor()
	case keybind.RoomListExpandSection:
		section := r.cursorSection()
		if section == "" || !r.collapsed[section] {
			return false, nil
		}
		delete(r.collapsed, section)
	default:
		return false, nil
	}
	return true, nil
}

// visible returns the rooms shown under the current filter and
// collapse state, in section order.
func (r *RoomList) visible() []RoomInfo {
	filter := strings.ToLower(r.filter.Value())

	var items []RoomInfo
	for _, section := range sectionOrder {
		// Collapsed sections still show when a filter is active so
		// matches are never hidden.
		if r.collapsed[section] && filter == "" {
			continue
		}
		for _, room := range r.rooms {
			if room.Section != section {
				continue
			}
			if filter != "" && !strings.Contains(strings.ToLower(room.Name), filter) {
				continue
			}
			items = append(items, room)
		}
	}
	return items
}

func (r *RoomList) cursorSection() string {
	items := r.visible()
	if r.cursor < len(items) {
		return items[r.cursor].Section
	}
	return ""
}

func (r *RoomList) clampCursor() {
	if n := len(r.visible()); r.cursor >= n {
		r.cursor = n - 1
	}
	if r.cursor < 0 {
		r.cursor = 0
	}
}

func (r *RoomList) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	badgeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	items := r.visible()
	filter := r.filter.Value()

	var b strings.Builder
	index := 0
	for _, section := range sectionOrder {
		var sectionItems []RoomInfo
		for _, item := range items {
			if item.Section == section {
				sectionItems = append(sectionItems, item)
			}
		}

		hasRooms := false
		for _, room := range r.rooms {
			if room.Section == section {
				hasRooms = true
				break
			}
		}
		if !hasRooms {
			continue
		}

		title := strings.ToUpper(section)
		if r.collapsed[section] && filter == "" {
			title += " ▸"
		}
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")

		for _, item := range sectionItems {
			line := "  " + item.Name
			if item.Unread > 0 {
				line += " " + badgeStyle.Render(fmt.Sprintf("(%d)", item.Unread))
			}

			switch {
			case r.focused && index == r.cursor:
				line = cursorStyle.Render(line)
			case item.ID == r.activeID:
				line = activeStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
			index++
		}
	}

	if r.focused {
		b.WriteString("\n")
		b.WriteString(r.filter.View())
	}
	return b.String()
}
