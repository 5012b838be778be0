package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"nebula/keybind"
)

func newGlamourRenderer(width int) (*glamour.TermRenderer, error) {
	// A fresh renderer per width keeps wrapping correct across resizes.
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating glamour renderer: %w", err)
	}
	return renderer, nil
}

// entry is one timeline row: a message plus its cached rendering.
type entry struct {
	msg Message

	// Markdown rendering cache, invalidated on resize and edits.
	renderedLines []string
	renderedWidth int
}

// TimelineStore is the read surface the timeline needs from the chat
// session. Implemented by core.Session without a ui→core import.
type TimelineStore interface {
	ReadMarker(roomID string) string
	MarkRead(roomID string)
}

// Timeline renders a room's message history with scrollback, a
// new-messages marker and a typing indicator.
type Timeline struct {
	store  TimelineStore
	roomID string

	entries    []entry
	readMarker string // message ID the "new messages" rule precedes

	typingSender string
	spinner      spinner.Model
	spinnerOn    bool

	width  int
	height int

	// scrollOffset counts lines hidden below the viewport; 0 is pinned
	// to the latest message.
	scrollOffset int
}

// NewTimeline creates an empty timeline pane.
func NewTimeline(store TimelineStore) *Timeline {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	return &Timeline{
		store:   store,
		spinner: sp,
	}
}

// SetRoom switches the pane to a room, replacing its entries.
func (t *Timeline) SetRoom(roomID string, history []Message) {
	t.roomID = roomID
	t.entries = make([]entry, 0, len(history))
	for _, m := range history {
		t.entries = append(t.entries, entry{msg: m})
	}
	if t.store != nil {
		t.readMarker = t.store.ReadMarker(roomID)
	} else {
		t.readMarker = ""
	}
	t.typingSender = ""
	t.scrollOffset = 0
}

// RoomID returns the room currently shown.
func (t *Timeline) RoomID() string { return t.roomID }

// SetSize updates the pane dimensions.
func (t *Timeline) SetSize(width, height int) {
	t.width = width
	t.height = height
}

func (t *Timeline) Init() tea.Cmd {
	return nil
}

func (t *Timeline) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if t.typingSender == "" {
			t.spinnerOn = false
			return nil
		}
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return cmd

	case MessageMsg:
		if msg.RoomID != t.roomID {
			return nil
		}
		t.entries = append(t.entries, entry{msg: msg.Message})
		if !msg.Message.Own {
			t.typingSender = ""
		}
		return nil

	case MessageEditedMsg:
		if msg.RoomID != t.roomID {
			return nil
		}
		for i := range t.entries {
			if t.entries[i].msg.ID == msg.Message.ID {
				t.entries[i] = entry{msg: msg.Message}
				break
			}
		}
		return nil

	case TypingMsg:
		if msg.RoomID != t.roomID {
			return nil
		}
		if !msg.Active {
			t.typingSender = ""
			return nil
		}
		t.typingSender = msg.Sender
		if !t.spinnerOn {
			t.spinnerOn = true
			return t.spinner.Tick
		}
		return nil
	}
	return nil
}

// Apply executes a room-context action. Returns false when the action
// does not apply right now so the caller can fall through.
func (t *Timeline) Apply(action keybind.Action) bool {
	page := t.height - 1
	if page < 1 {
		page = 1
	}

	switch action {
	case keybind.RoomScrollUp:
		t.scrollBy(page)
	case keybind.RoomScrollDown:
		t.scrollBy(-page)
	case keybind.RoomJumpToFirst:
		t.scrollOffset = t.maxScroll()
	case keybind.RoomJumpToLatest:
		t.scrollOffset = 0
	case keybind.RoomJumpToOldestUnread:
		if t.readMarker == "" {
			return false
		}
		t.scrollToMarker()
	case keybind.RoomDismissReadMarker:
		if t.readMarker == "" {
			return false
		}
		t.readMarker = ""
		if t.store != nil {
			t.store.MarkRead(t.roomID)
		}
	default:
		return false
	}
	return true
}

func (t *Timeline) scrollBy(delta int) {
	t.scrollOffset += delta
	if t.scrollOffset < 0 {
		t.scrollOffset = 0
	}
	if max := t.maxScroll(); t.scrollOffset > max {
		t.scrollOffset = max
	}
}

func (t *Timeline) maxScroll() int {
	total := len(t.buildLines())
	if total <= t.height {
		return 0
	}
	return total - t.height
}

// scrollToMarker positions the new-messages rule at the top of the
// viewport.
func (t *Timeline) scrollToMarker() {
	lines := t.buildLines()
	markerLine := -1
	rule := t.markerRule()
	for i, l := range lines {
		if l == rule {
			markerLine = i
			break
		}
	}
	if markerLine < 0 {
		return
	}
	t.scrollOffset = len(lines) - markerLine - t.height
	if t.scrollOffset < 0 {
		t.scrollOffset = 0
	}
	if max := t.maxScroll(); t.scrollOffset > max {
		t.scrollOffset = max
	}
}

func (t *Timeline) availableWidth() int {
	// Account for the "▌ " bar prefix.
	w := t.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (t *Timeline) markerRule() string {
	w := t.availableWidth()
	label := " new messages "
	pad := w - len(label)
	if pad < 2 {
		pad = 2
	}
	rule := strings.Repeat("─", pad/2) + label + strings.Repeat("─", pad-pad/2)
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(rule)
}

// renderBody renders a message body to lines, markdown for peer
// messages (cached per width), plain wrapping for own ones.
func (t *Timeline) renderBody(e *entry) []string {
	w := t.availableWidth()
	if e.msg.Own {
		return wrapText(e.msg.Body, w)
	}
	if e.renderedLines != nil && e.renderedWidth == w {
		return e.renderedLines
	}

	renderer, err := newGlamourRenderer(w)
	if err == nil {
		var rendered string
		if rendered, err = renderer.Render(e.msg.Body); err == nil {
			lines := trimEmptyLines(strings.Split(strings.TrimRight(rendered, "\n"), "\n"))
			e.renderedLines = lines
			e.renderedWidth = w
			return lines
		}
	}
	// Markdown rendering failure falls back to plain wrapping.
	return wrapText(e.msg.Body, w)
}

// buildLines renders the full timeline as terminal lines.
func (t *Timeline) buildLines() []string {
	ownBar := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("93")).Render("▌")
	peerBar := lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Render("▌")
	senderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var lines []string
	for i := range t.entries {
		e := &t.entries[i]

		if t.readMarker != "" && e.msg.ID == t.readMarker {
			lines = append(lines, t.markerRule())
		}

		bar := peerBar
		if e.msg.Own {
			bar = ownBar
		}

		header := e.msg.Sender + " " + e.msg.SentAt.Format("15:04")
		if e.msg.Edited {
			header += " (edited)"
		}
		lines = append(lines, bar+" "+senderStyle.Render(header))

		for _, l := range t.renderBody(e) {
			lines = append(lines, "  "+l)
		}
		lines = append(lines, "")
	}

	if t.typingSender != "" {
		lines = append(lines, t.spinner.View()+" "+senderStyle.Render(t.typingSender+" is typing…"))
	}

	return lines
}

func (t *Timeline) View() string {
	if len(t.entries) == 0 && t.typingSender == "" {
		return ""
	}

	lines := t.buildLines()
	// Drop the trailing blank separator when pinned to the bottom.
	for t.scrollOffset == 0 && len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if t.height > 0 && len(lines) > t.height {
		end := len(lines) - t.scrollOffset
		if end > len(lines) {
			end = len(lines)
		}
		start := end - t.height
		if start < 0 {
			start = 0
			end = t.height
		}
		lines = lines[start:end]
	}
	return strings.Join(lines, "\n")
}

// wrapText wraps text to fit within width, preserving newlines. Each
// input line wraps independently; empty lines are preserved.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	inputLines := strings.Split(text, "\n")
	var result []string

	for _, line := range inputLines {
		if strings.TrimSpace(line) == "" {
			result = append(result, "")
			continue
		}
		result = append(result, wrapLine(line, width)...)
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// wrapLine wraps a single line (no newlines) to fit within width.
func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range words {
		// Words longer than the width are broken into chunks.
		if len([]rune(word)) > width {
			if currentLine.Len() > 0 {
				lines = append(lines, currentLine.String())
				currentLine.Reset()
			}
			runes := []rune(word)
			for len(runes) > width {
				lines = append(lines, string(runes[:width]))
				runes = runes[width:]
			}
			if len(runes) > 0 {
				currentLine.WriteString(string(runes))
			}
			continue
		}

		testLine := word
		if currentLine.Len() > 0 {
			testLine = currentLine.String() + " " + word
		}

		if len([]rune(testLine)) <= width {
			if currentLine.Len() > 0 {
				currentLine.WriteString(" ")
			}
			currentLine.WriteString(word)
		} else {
			if currentLine.Len() > 0 {
				lines = append(lines, currentLine.String())
				currentLine.Reset()
			}
			currentLine.WriteString(word)
		}
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func trimEmptyLines(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}

	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	if start >= end {
		return []string{""}
	}
	return lines[start:end]
}
