package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/runr/pkg"
	"github.com/ardnew/runr/project"
)

// maxPickerRows limits how many matches the picker renders at once.
const maxPickerRows = 10

// pickItem is a selectable task or installed script.
type pickItem struct {
	name string
	help string
}

// pickTask prompts for a task interactively when run is invoked without a
// task name. It returns the empty string when the picker is dismissed.
func pickTask(p *project.Project) (string, error) {
	names := p.TaskNames()
	items := make([]pickItem, 0, len(names))

	for _, name := range names {
		item := pickItem{name: name}
		if task, err := p.Task(name); err == nil {
			item.help = task.Help
		}
		items = append(items, item)
	}

	for _, script := range project.ExternalScripts(p.VenvBinPath()) {
		if slices.Contains(names, script) {
			continue
		}
		items = append(items, pickItem{name: script, help: "installed script"})
	}

	if len(items) == 0 {
		return "", pkg.ErrTaskNotFound.Wrapf("no tasks defined in %s", p.Name)
	}

	// The picker draws on stderr so redirected stdout stays clean.
	prog := tea.NewProgram(newPicker(items), tea.WithOutput(os.Stderr))

	final, err := prog.Run()
	if err != nil {
		return "", err
	}

	model, ok := final.(pickerModel)
	if !ok || model.aborted {
		return "", nil
	}

	return model.choice, nil
}

// pickerModel is the bubbletea model for the interactive task picker.
type pickerModel struct {
	input   textinput.Model
	items   []pickItem
	names   []string
	matches []int
	cursor  int
	choice  string
	aborted bool
}

func newPicker(items []pickItem) pickerModel {
	input := textinput.New()
	input.Prompt = "run> "
	input.Focus()

	m := pickerModel{
		input: input,
		items: items,
		names: make([]string, len(items)),
	}
	for i, item := range items {
		m.names[i] = item.name
	}
	m.filter()

	return m
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true

			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.matches) > 0 {
				m.choice = m.items[m.matches[m.cursor]].name
			}

			return m, tea.Quit

		case tea.KeyUp, tea.KeyCtrlP:
			if m.cursor > 0 {
				m.cursor--
			}

			return m, nil

		case tea.KeyDown, tea.KeyCtrlN:
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter()

	return m, cmd
}

// filter recomputes the matches for the current query.
func (m *pickerModel) filter() {
	query := strings.TrimSpace(m.input.Value())

	if query == "" {
		m.matches = make([]int, len(m.items))
		for i := range m.items {
			m.matches[i] = i
		}
	} else {
		found := fuzzy.Find(query, m.names)
		m.matches = make([]int, len(found))
		for i, match := range found {
			m.matches[i] = match.Index
		}
	}

	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}
}

func (m pickerModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.input.View())
	sb.WriteByte('\n')

	for row, idx := range m.matches {
		if row == maxPickerRows {
			sb.WriteString(styleDim.Render("  ..."))
			sb.WriteByte('\n')

			break
		}

		marker := "  "
		name := m.items[idx].name
		if row == m.cursor {
			marker = "> "
			name = styleName.Render(name)
		}

		sb.WriteString(marker)
		sb.WriteString(name)

		if help := m.items[idx].help; help != "" {
			sb.WriteString("  ")
			sb.WriteString(styleDim.Render(help))
		}

		sb.WriteByte('\n')
	}

	if len(m.matches) == 0 {
		sb.WriteString(styleDim.Render("  no matching tasks"))
		sb.WriteByte('\n')
	}

	return sb.String()
}
