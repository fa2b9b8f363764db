package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/runr/project"
)

// Styles shared by the listing commands.
var (
	styleName   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// List prints the tasks defined in the project file.
type List struct {
	External bool `help:"Include scripts installed in the virtual environment." negatable:"" default:"true"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) error {
	p, err := loadProject(ctx)
	if err != nil {
		return err
	}

	out := stdout(ctx)
	names := p.TaskNames()

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	for _, name := range names {
		line := styleName.Render(name)

		if task, terr := p.Task(name); terr != nil {
			line += strings.Repeat(" ", width-len(name)+2) +
				styleError.Render(terr.Error())
		} else if task.Help != "" {
			line += strings.Repeat(" ", width-len(name)+2) +
				styleDim.Render(task.Help)
		}

		fmt.Fprintln(out, line)
	}

	if !l.External {
		return nil
	}

	scripts := project.ExternalScripts(p.VenvBinPath())
	scripts = slices.DeleteFunc(scripts, func(s string) bool {
		// Tasks shadow installed scripts of the same name.
		return slices.Contains(names, s)
	})
	if len(scripts) == 0 {
		return nil
	}

	if len(names) > 0 {
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, styleHeader.Render("scripts"))

	for _, script := range scripts {
		fmt.Fprintln(out, script)
	}

	return nil
}
