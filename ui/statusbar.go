package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusItem is one keyed slot on the status bar.
type StatusItem struct {
	Key   string
	Value string
}

// StatusItemUpdateMsg replaces the value of a status bar slot.
type StatusItemUpdateMsg struct {
	Key   string
	Value string
}

type statusBar struct {
	termReady bool
	width     int
	items     []*StatusItem

	borderColor     string
	itemBorderColor string
	leftPadding     int
	rightPadding    int
	itemStyle       lipgloss.Style

	itemsLength int
}

func newStatusBar() *statusBar {
	lp := 2
	rp := 2
	return &statusBar{
		borderColor:     "39",
		itemBorderColor: "49",
		leftPadding:     lp,
		rightPadding:    rp,
		itemStyle:       lipgloss.NewStyle().PaddingLeft(lp).PaddingRight(rp),
	}
}

func (sb *statusBar) addItem(key, value string) {
	for _, item := range sb.items {
		if item.Key == key {
			return
		}
	}
	sb.items = append(sb.items, &StatusItem{Key: key, Value: value})
	sb.recalc()
}

func (sb *statusBar) setItem(key, value string) {
	for _, item := range sb.items {
		if item.Key == key {
			item.Value = value
			sb.recalc()
			return
		}
	}
	sb.addItem(key, value)
}

func (sb *statusBar) removeItem(key string) {
	for i, item := range sb.items {
		if item.Key == key {
			sb.items = append(sb.items[:i], sb.items[i+1:]...)
			sb.recalc()
			return
		}
	}
}

func (sb *statusBar) recalc() {
	var totalLen int
	for _, item := range sb.items {
		totalLen += len([]rune(item.Value))
		totalLen += sb.leftPadding + sb.rightPadding
	}
	// Add border characters: opening ┤ + closing ├ = 2
	if len(sb.items) > 0 {
		totalLen += 2
	}
	sb.itemsLength = totalLen
}

func (sb *statusBar) SetBorderColor(color string) {
	sb.borderColor = color
}

func (sb *statusBar) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !sb.termReady && msg.Width > 0 && msg.Height > 0 {
			sb.termReady = true
		}
		sb.width = msg.Width
	case StatusItemUpdateMsg:
		sb.setItem(msg.Key, msg.Value)
	}
	return nil
}

func (sb *statusBar) View() string {
	if !sb.termReady {
		return "setting up terminal..."
	}

	items, itemsLen := sb.renderItems()
	remaining := sb.width - (itemsLen + 2)
	if remaining < 0 {
		return ""
	}

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(sb.borderColor))

	var b strings.Builder
	b.WriteString(borderStyle.Render("╭"))
	b.WriteString(borderStyle.Render(strings.Repeat("─", remaining)))
	b.WriteString(items)
	b.WriteString(borderStyle.Render("╮"))

	return b.String()
}

func (sb *statusBar) renderItems() (string, int) {
	ibStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(sb.itemBorderColor))

	var b strings.Builder
	b.WriteString(ibStyle.Render("┤"))
	for _, item := range sb.items {
		b.WriteString(sb.itemStyle.Render(item.Value))
	}
	b.WriteString(ibStyle.Render("├"))

	return b.String(), sb.itemsLength
}
