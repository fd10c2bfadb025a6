package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/jardin/internal/cli/formatter"
	"github.com/alexanderramin/jardin/internal/dispatch"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type sheetKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	Note   key.Binding
	Close  key.Binding
	Quit   key.Binding
}

func defaultSheetKeys() sheetKeyMap {
	return sheetKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "mark done")),
		All:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mark all")),
		Note:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "observation")),
		Close:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "close visit")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// sheetModel is the crew's interactive checklist for one visit. Marks stay
// in the sheet until the operator closes; the caller persists the result.
type sheetModel struct {
	sheet *dispatch.Sheet
	keys  sheetKeyMap

	cursor  int
	editing bool
	note    textinput.Model
	status  string

	submitted bool
	quitting  bool
}

func newSheetModel(sheet *dispatch.Sheet) sheetModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "What did the crew notice?"
	ti.CharLimit = 500

	return sheetModel{sheet: sheet, keys: defaultSheetKeys(), note: ti}
}

func (m sheetModel) Init() tea.Cmd {
	return nil
}

func (m sheetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.note.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateNote(msg)
		}
		return m.updateList(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m sheetModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.sheet.Tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.sheet.Toggle(m.cursor)
	case key.Matches(msg, m.keys.All):
		m.sheet.MarkAll()
	case key.Matches(msg, m.keys.Note):
		m.editing = true
		m.note.SetValue(m.sheet.Observation)
		m.note.CursorEnd()
		return m, m.note.Focus()
	case key.Matches(msg, m.keys.Close):
		if !m.sheet.Visit.IsOpen() {
			m.status = fmt.Sprintf("Visit is %s and cannot be closed.", m.sheet.Visit.Status)
			return m, nil
		}
		if !m.sheet.CanClose() {
			m.status = "Mark at least one task done before closing."
			return m, nil
		}
		m.submitted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m sheetModel) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.sheet.SetObservation(m.note.Value())
		m.editing = false
		m.note.Blur()
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.note.Blur()
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

func (m sheetModel) View() string {
	if m.submitted {
		return formatter.Dim("Closing visit...") + "\n"
	}
	if m.quitting {
		return formatter.Dim("Sheet closed without saving.") + "\n"
	}

	s := m.sheet
	var b strings.Builder
	b.WriteString(formatter.Bold(s.ClientName) + "  " + formatter.Status(string(s.Visit.Status)) + "\n")
	b.WriteString(formatter.Dim(joinLine(formatter.Date(s.Visit.Date), s.Address, s.TeamName)) + "\n\n")

	if len(s.Tasks) == 0 {
		b.WriteString(formatter.Dim("No tasks visible to crews.") + "\n")
	}
	for i, t := range s.Tasks {
		cursor := "  "
		name := t.Name
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("› ")
			name = formatter.Bold(name)
		}
		fmt.Fprintf(&b, "%s%s %s %s\n", cursor, formatter.Check(t.Done), name, formatter.Dim(t.PlanName))
		if t.Note != "" {
			b.WriteString("      " + formatter.StyleYellow.Render(t.Note) + "\n")
		}
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(formatter.StyleHeader.Render("Observation") + "\n" + m.note.View() + "\n")
		b.WriteString(formatter.Dim("enter save · esc cancel") + "\n")
	} else {
		if s.Observation != "" {
			b.WriteString(formatter.Field("Observation", s.Observation) + "\n")
		}
		b.WriteString(formatter.RenderProgress(s.DoneCount(), len(s.Tasks), 12) + "\n")
		b.WriteString(m.helpLine() + "\n")
	}
	if m.status != "" {
		b.WriteString(formatter.StyleRed.Render(m.status) + "\n")
	}
	return b.String()
}

func (m sheetModel) helpLine() string {
	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.All, m.keys.Note, m.keys.Close, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return formatter.Dim(strings.Join(parts, " · "))
}

func joinLine(parts ...string) string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " · ")
}
