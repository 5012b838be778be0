package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nebula/keybind"
)

// ComposerStore is the session surface the composer needs: sending,
// editing and completion data for the active room.
type ComposerStore interface {
	SubmitMessage(text string)
	EditMessage(roomID, messageID, body string) error
	SendHistory(roomID string) []string
	OwnMessages(roomID string) []Message
	Completions(prefix string) []string
}

// Composer is the message input pane: a multi-line textarea with
// send-history recall, in-place editing of own messages and a
// completion popup for slash commands and mentions.
type Composer struct {
	store  ComposerStore
	roomID string

	input textarea.Model

	// Editing an own message; nil while composing a new one.
	editing   *Message
	editIndex int

	// Send-history recall. -1 means the live draft is showing.
	historyIndex int
	draft        string

	// Completion popup.
	popupOpen   bool
	popupItems  []string
	popupCursor int

	width int
}

// NewComposer creates a focused, single-room composer.
func NewComposer(store ComposerStore) *Composer {
	ta := textarea.New()
	ta.Placeholder = "Type a message…"
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	return &Composer{
		store:        store,
		input:        ta,
		historyIndex: -1,
	}
}

func (c *Composer) Init() tea.Cmd {
	return textarea.Blink
}

// SetRoom retargets the composer, discarding draft and edit state.
func (c *Composer) SetRoom(roomID string) {
	c.roomID = roomID
	c.input.Reset()
	c.editing = nil
	c.historyIndex = -1
	c.draft = ""
	c.closePopup()
}

// SetWidth resizes the input area.
func (c *Composer) SetWidth(width int) {
	c.width = width
	c.input.SetWidth(width)
}

// Focus gives the textarea input focus.
func (c *Composer) Focus() tea.Cmd {
	return c.input.Focus()
}

// Blur removes input focus.
func (c *Composer) Blur() {
	c.input.Blur()
	c.closePopup()
}

// Focused reports whether the textarea has input focus.
func (c *Composer) Focused() bool {
	return c.input.Focused()
}

// Editing reports whether an own message is being edited.
func (c *Composer) Editing() bool {
	return c.editing != nil
}

// PopupOpen reports whether the completion popup is showing. The
// autocomplete context only applies while it is.
func (c *Composer) PopupOpen() bool {
	return c.popupOpen
}

// Empty reports whether the draft is blank.
func (c *Composer) Empty() bool {
	return strings.TrimSpace(c.input.Value()) == ""
}

// HandleKey feeds an unbound key to the textarea and refreshes the
// completion popup from the draft.
func (c *Composer) HandleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.refreshPopup(false)
	return cmd
}

// Update handles non-key messages for the inner textarea (blink ticks).
func (c *Composer) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		return nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// Apply executes a composer-context action. Returns false when the
// action does not apply in the current state.
func (c *Composer) Apply(action keybind.Action) bool {
	switch action {
	case keybind.ComposerSend:
		c.send()
	case keybind.ComposerNewLine:
		c.input.InsertString("\n")
	case keybind.ComposerPrevSendHistory:
		return c.recallHistory(-1)
	case keybind.ComposerNextSendHistory:
		return c.recallHistory(1)
	case keybind.ComposerEditPrevMessage:
		return c.cycleEdit(-1)
	case keybind.ComposerEditNextMessage:
		return c.cycleEdit(1)
	case keybind.ComposerCancelEditing:
		if c.editing == nil {
			return false
		}
		c.editing = nil
		c.input.Reset()
	case keybind.ComposerCursorToStart:
		for c.input.Line() > 0 {
			c.input.CursorUp()
		}
		c.input.CursorStart()
	case keybind.ComposerCursorToEnd:
		for c.input.Line() < c.input.LineCount()-1 {
			c.input.CursorDown()
		}
		c.input.CursorEnd()
	case keybind.ComposerToggleBold:
		c.wrapSelection("**")
	case keybind.ComposerToggleItalics:
		c.wrapSelection("_")
	case keybind.ComposerToggleQuote:
		c.input.InsertString("> ")
	default:
		return false
	}
	return true
}

// ApplyAutocomplete executes an autocomplete-context action. Only
// meaningful while the popup is open, except force-complete which may
// open it.
func (c *Composer) ApplyAutocomplete(action keybind.Action) bool {
	switch action {
	case keybind.AutocompleteForce:
		c.refreshPopup(true)
		return true
	case keybind.AutocompleteAccept:
		if !c.popupOpen {
			return false
		}
		c.acceptCompletion()
	case keybind.AutocompletePrev:
		if !c.popupOpen {
			return false
		}
		c.popupCursor--
		if c.popupCursor < 0 {
			c.popupCursor = len(c.popupItems) - 1
		}
	case keybind.AutocompleteNext:
		if !c.popupOpen {
			return false
		}
		c.popupCursor = (c.popupCursor + 1) % len(c.popupItems)
	case keybind.AutocompleteCancel:
		if !c.popupOpen {
			return false
		}
		c.closePopup()
	default:
		return false
	}
	return true
}

func (c *Composer) send() {
	text := c.input.Value()
	if strings.TrimSpace(text) == "" {
		return
	}

	if c.editing != nil {
		// Ignoring the error keeps a stale edit from wedging the
		// composer; the timeline simply stays unchanged.
		_ = c.store.EditMessage(c.roomID, c.editing.ID, text)
		c.editing = nil
	} else {
		c.store.SubmitMessage(text)
	}

	c.input.Reset()
	c.historyIndex = -1
	c.draft = ""
	c.closePopup()
}

// recallHistory steps through previously sent messages. dir -1 recalls
// older entries, +1 newer ones; stepping past the newest restores the
// saved draft.
func (c *Composer) recallHistory(dir int) bool {
	history := c.store.SendHistory(c.roomID)
	if len(history) == 0 {
		return false
	}

	if c.historyIndex == -1 {
		if dir > 0 {
			return false
		}
		c.draft = c.input.Value()
		c.historyIndex = len(history)
	}

	c.historyIndex += dir
	if c.historyIndex >= len(history) {
		c.historyIndex = -1
		c.setValue(c.draft)
		return true
	}
	if c.historyIndex < 0 {
		c.historyIndex = 0
	}
	c.setValue(history[c.historyIndex])
	return true
}

// cycleEdit steps through the user's own messages for editing. Only
// engages from an empty composer; stepping past the newest message
// leaves editing mode.
func (c *Composer) cycleEdit(dir int) bool {
	if c.editing == nil && !c.Empty() {
		return false
	}

	own := c.store.OwnMessages(c.roomID)
	if len(own) == 0 {
		return false
	}

	if c.editing == nil {
		if dir > 0 {
			return false
		}
		c.editIndex = len(own) - 1
	} else {
		c.editIndex += dir
		if c.editIndex >= len(own) {
			c.editing = nil
			c.input.Reset()
			return true
		}
		if c.editIndex < 0 {
			c.editIndex = 0
		}
	}

	msg := own[c.editIndex]
	c.editing = &msg
	c.setValue(msg.Body)
	return true
}

func (c *Composer) setValue(text string) {
	c.input.SetValue(text)
	for c.input.Line() < c.input.LineCount()-1 {
		c.input.CursorDown()
	}
	c.input.CursorEnd()
	c.closePopup()
}

// wrapSelection inserts a marker pair and leaves the cursor between
// them.
func (c *Composer) wrapSelection(marker string) {
	c.input.InsertString(marker + marker)
	col := c.input.LineInfo().ColumnOffset - len(marker)
	if col >= 0 {
		c.input.SetCursor(col)
	}
}

// currentToken returns the trailing word of the draft, the part a
// completion would replace.
func (c *Composer) currentToken() (prefix, token string) {
	value := c.input.Value()
	if value == "" || strings.HasSuffix(value, " ") || strings.HasSuffix(value, "\n") {
		return value, ""
	}
	idx := strings.LastIndexAny(value, " \n")
	return value[:idx+1], value[idx+1:]
}

// refreshPopup recomputes completion candidates from the trailing
// token. Without force, only slash-command and mention tokens trigger
// the popup.
func (c *Composer) refreshPopup(force bool) {
	_, token := c.currentToken()
	if token == "" {
		c.closePopup()
		return
	}
	if !force && !strings.HasPrefix(token, "/") && !strings.HasPrefix(token, "@") {
		c.closePopup()
		return
	}

	items := c.store.Completions(token)
	if len(items) == 0 {
		c.closePopup()
		return
	}

	if c.popupCursor >= len(items) {
		c.popupCursor = 0
	}
	c.popupOpen = true
	c.popupItems = items
}

func (c *Composer) acceptCompletion() {
	prefix, _ := c.currentToken()
	item := c.popupItems[c.popupCursor]
	c.setValue(prefix + item + " ")
	c.closePopup()
}

func (c *Composer) closePopup() {
	c.popupOpen = false
	c.popupItems = nil
	c.popupCursor = 0
}

func (c *Composer) View() string {
	var b strings.Builder

	if c.popupOpen {
		selStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		for i, item := range c.popupItems {
			if i == c.popupCursor {
				b.WriteString(selStyle.Render("▸ " + item))
			} else {
				b.WriteString(dimStyle.Render("  " + item))
			}
			b.WriteString("\n")
		}
	}

	if c.editing != nil {
		editStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
		b.WriteString(editStyle.Render("editing message (esc to cancel)"))
		b.WriteString("\n")
	}

	b.WriteString(c.input.View())
	return b.String()
}
