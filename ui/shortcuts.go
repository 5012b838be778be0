package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nebula/keybind"
)

// ShortcutsModal is a centered overlay listing the effective key
// bindings per context, resolved through the same manager that
// dispatches them.
type ShortcutsModal struct {
	manager *keybind.Manager

	visible bool
	width   int
	height  int
}

func NewShortcutsModal(manager *keybind.Manager) *ShortcutsModal {
	return &ShortcutsModal{manager: manager}
}

func (sm *ShortcutsModal) Show() {
	sm.visible = true
}

func (sm *ShortcutsModal) Hide() {
	sm.visible = false
}

func (sm *ShortcutsModal) IsVisible() bool {
	return sm.visible
}

func (sm *ShortcutsModal) SetSize(width, height int) {
	sm.width = width
	sm.height = height
}

func (sm *ShortcutsModal) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm.SetSize(msg.Width, msg.Height)
	}
	return nil
}

// effectiveBindings returns, per action of ctx, the combos that reach
// it under the manager's precedence: the first provider that binds an
// action at all supplies its combos.
func (sm *ShortcutsModal) effectiveBindings(ctx keybind.Context) map[keybind.Action][]keybind.Combo {
	combos := make(map[keybind.Action][]keybind.Combo)
	for _, provider := range sm.manager.Providers() {
		for _, binding := range keybind.BindingsFor(provider, ctx) {
			if _, seen := combos[binding.Action]; seen {
				continue
			}
			combos[binding.Action] = collectCombos(provider, ctx, binding.Action)
		}
	}
	return combos
}

func collectCombos(p keybind.Provider, ctx keybind.Context, action keybind.Action) []keybind.Combo {
	var out []keybind.Combo
	for _, binding := range keybind.BindingsFor(p, ctx) {
		if binding.Action == action {
			out = append(out, binding.Combo)
		}
	}
	return out
}

func (sm *ShortcutsModal) View() string {
	if !sm.visible {
		return ""
	}

	orangeColor := lipgloss.Color("208")
	grayColor := lipgloss.Color("245")

	titleStyle := lipgloss.NewStyle().
		Foreground(orangeColor).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(orangeColor)

	labelStyle := lipgloss.NewStyle().
		Foreground(grayColor)

	comboStyle := lipgloss.NewStyle().
		Bold(true)

	helpStyle := lipgloss.NewStyle().
		Foreground(grayColor).
		Italic(true)

	mac := sm.manager.Mac()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, ctx := range keybind.Contexts() {
		combos := sm.effectiveBindings(ctx)
		if len(combos) == 0 {
			continue
		}

		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(strings.ReplaceAll(string(ctx), "_", " ")))
		b.WriteString("\n")

		for _, action := range ctx.Actions() {
			bound, ok := combos[action]
			if !ok {
				continue
			}

			labels := make([]string, 0, len(bound))
			for _, combo := range bound {
				labels = append(labels, combo.Label(mac))
			}

			name := strings.ReplaceAll(action.ShortName(), "_", " ")
			b.WriteString(labelStyle.Render("  " + padRight(name, 26)))
			b.WriteString(comboStyle.Render(strings.Join(labels, ", ")))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Press Esc to close"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(orangeColor).
		Padding(1, 2).
		Width(60)

	boxed := boxStyle.Render(b.String())

	return lipgloss.Place(
		sm.width,
		sm.height,
		lipgloss.Center,
		lipgloss.Center,
		boxed,
	)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
