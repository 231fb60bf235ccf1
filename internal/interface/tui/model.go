package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/message"

	"user-manager-form/internal/application/ports"
	"user-manager-form/internal/domain/form"
	"user-manager-form/internal/domain/user"
)

type (
	listedMsg  struct{ err error }
	mutatedMsg struct{ err error }

	// RefreshMsg asks the view to redraw after the list changed outside the
	// UI loop, e.g. a refetch triggered by another client's event.
	RefreshMsg struct{}
)

// Model is the form presenter. Focus walks the inputs, then the submit
// button, then the list.
type Model struct {
	ctx      context.Context
	sync     ports.Synchronizer
	p        *message.Printer
	inputs   []textinput.Model
	focus    int
	cursor   int
	err      error
	quitting bool
}

func New(ctx context.Context, sync ports.Synchronizer, p *message.Printer) Model {
	inputs := make([]textinput.Model, len(user.AllFields))
	for i, f := range user.AllFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = p.Sprintf(fieldLabels[f])
		ti.Width = 40
		switch f {
		case user.TaxID:
			ti.CharLimit = 12
		case user.CheckDigit:
			ti.CharLimit = 1
		case user.BirthDate:
			ti.CharLimit = 10
		case user.Password:
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}
	inputs[0].Focus()

	return Model{
		ctx:    ctx,
		sync:   sync,
		p:      p,
		inputs: inputs,
	}
}

func (m Model) buttonIdx() int { return len(m.inputs) }
func (m Model) listIdx() int   { return len(m.inputs) + 1 }

// Init fetches the list once, on mount.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listAll())
}

func (m Model) listAll() tea.Cmd {
	return func() tea.Msg {
		return listedMsg{err: m.sync.ListAll(m.ctx)}
	}
}

// submit picks Create or Update from the mode at the time of the key press.
func (m Model) submit() tea.Cmd {
	if _, editing := m.sync.Snapshot().Mode.(form.Editing); editing {
		return func() tea.Msg { return mutatedMsg{err: m.sync.Update(m.ctx)} }
	}
	return func() tea.Msg { return mutatedMsg{err: m.sync.Create(m.ctx)} }
}

func (m Model) remove(id user.ID) tea.Cmd {
	return func() tea.Msg { return mutatedMsg{err: m.sync.Delete(m.ctx, id)} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			cmd := m.setFocus((m.focus + 1) % (m.listIdx() + 1))
			return m, cmd
		case "shift+tab":
			cmd := m.setFocus((m.focus + m.listIdx()) % (m.listIdx() + 1))
			return m, cmd
		}

		switch {
		case m.focus < m.buttonIdx():
			return m.updateInput(msg)
		case m.focus == m.buttonIdx():
			if msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace {
				return m, m.submit()
			}
		default:
			return m.updateList(msg)
		}

	case listedMsg:
		m.err = msg.err
		m.clampCursor()

	case mutatedMsg:
		m.err = msg.err
		if msg.err == nil {
			// the draft was reset or the edit slot cleared
			m.loadInputs()
		}
		m.clampCursor()

	case RefreshMsg:
		m.clampCursor()
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		cmd := m.setFocus(m.focus + 1)
		return m, cmd
	}

	f := user.AllFields[m.focus]
	if f == user.TaxID && (msg.Type == tea.KeySpace || msg.Type == tea.KeyRunes && !allDigits(msg.Runes)) {
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if v := m.inputs[m.focus].Value(); v != before {
		if err := m.sync.SetField(f, v); err != nil {
			m.err = err
		}
	}

	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	users := m.sync.Snapshot().Users
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(users)-1 {
			m.cursor++
		}
	case "e", "enter":
		if m.cursor < len(users) {
			if err := m.sync.Edit(users[m.cursor].ID); err != nil {
				m.err = err
				return m, nil
			}
			m.loadInputs()
			cmd := m.setFocus(0)
			return m, cmd
		}
	case "d", "delete":
		if m.cursor < len(users) {
			return m, m.remove(users[m.cursor].ID)
		}
	}

	return m, nil
}

func (m *Model) setFocus(idx int) tea.Cmd {
	m.focus = idx
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == idx {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

// loadInputs shows the bound record (edit slot or draft) in the inputs.
func (m *Model) loadInputs() {
	snap := m.sync.Snapshot()
	for i, f := range user.AllFields {
		m.inputs[i].SetValue(snap.Value(f))
		m.inputs[i].CursorEnd()
	}
}

func (m *Model) clampCursor() {
	n := len(m.sync.Snapshot().Users)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.sync.Snapshot()

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.p.Sprintf(msgTitle)) + "\n")

	var formView strings.Builder
	for i, f := range user.AllFields {
		formView.WriteString(labelStyle.Render(m.p.Sprintf(fieldLabels[f])))
		formView.WriteString(m.inputs[i].View() + "\n")
	}

	label := m.p.Sprintf(msgCreate)
	if _, editing := snap.Mode.(form.Editing); editing {
		label = m.p.Sprintf(msgUpdate)
	}
	button := buttonStyle.Render("[ " + label + " ]")
	if m.focus == m.buttonIdx() {
		button = activeButtonStyle.Render("[ " + label + " ]")
	}
	formView.WriteString("\n" + button)
	b.WriteString(cardStyle.Render(formView.String()) + "\n\n")

	var list strings.Builder
	if len(snap.Users) == 0 {
		list.WriteString(mutedStyle.Render(m.p.Sprintf(msgEmptyList)))
	}
	actions := mutedStyle.Render(fmt.Sprintf("[%s] [%s]", m.p.Sprintf(msgEdit), m.p.Sprintf(msgDelete)))
	for i, u := range snap.Users {
		row := fmt.Sprintf("%s %s - %s", u.FirstNames, u.LastNames, u.Email)
		if m.focus == m.listIdx() && i == m.cursor {
			row = selectedStyle.Render("▸ "+row) + " " + actions
		} else {
			row = "  " + row
		}
		list.WriteString(row + "\n")
	}
	b.WriteString(cardStyle.Render(strings.TrimRight(list.String(), "\n")))

	if m.err != nil {
		b.WriteString("\n\n" + errorTextStyle.Render("✘ "+m.p.Sprintf(msgFailed)))
	}

	help := msgHelpForm
	if m.focus == m.listIdx() {
		help = msgHelpList
	}
	b.WriteString("\n" + footerStyle.Render("▸ "+m.p.Sprintf(help)))

	return b.String() + "\n"
}

func allDigits(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
