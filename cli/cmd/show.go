package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/ardnew/runr/envfile"
	"github.com/ardnew/runr/pkg"
	"github.com/ardnew/runr/project"
)

// Show prints project details and task definitions.
type Show struct {
	Tasks []string `arg:"" optional:"" name:"task" help:"Show only the named tasks"`
}

// Run executes the show command.
func (s *Show) Run(ctx context.Context) error {
	p, err := loadProject(ctx)
	if err != nil {
		return err
	}

	out := stdout(ctx)

	fmt.Fprintln(out, styleHeader.Render(p.Name))
	field(out, "root", p.Root)
	field(out, "venv", p.VenvPath())
	field(out, "managed", fmt.Sprintf("%t", p.Managed()))

	if ws := p.Workspace(); ws != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, styleHeader.Render("workspace"))
		field(out, "name", ws.Name)
		field(out, "root", ws.Root)

		for _, member := range ws.Members {
			field(out, "member", member)
		}
	}

	names := s.Tasks
	if len(names) == 0 {
		names = p.TaskNames()
	}

	for _, name := range names {
		fmt.Fprintln(out)
		fmt.Fprintln(out, styleHeader.Render(name))

		task, terr := p.Task(name)
		if terr != nil {
			fmt.Fprintln(out, styleError.Render(terr.Error()))

			continue
		}

		s.task(out, p, task)
	}

	return nil
}

// task prints a single task definition, validating its environment sources.
func (s *Show) task(out io.Writer, p *project.Project, task *project.Task) {
	if task.Help != "" {
		field(out, "help", task.Help)
	}
	if task.Executable != "" {
		field(out, "script", task.Executable)
	}
	if len(task.Cmd) > 0 {
		field(out, "cmd", strings.Join(task.Cmd, " "))
	}
	if task.Cwd != "" {
		field(out, "cwd", pkg.RootedPath(task.Cwd, p.Root))
	}
	if len(task.Pre) > 0 {
		field(out, "pre", strings.Join(task.Pre, ", "))
	}
	if len(task.Post) > 0 {
		field(out, "post", strings.Join(task.Post, ", "))
	}

	for name := range slices.Values(task.Pre) {
		if _, err := p.Task(name); err != nil {
			fmt.Fprintln(out, styleError.Render(err.Error()))
		}
	}
	for name := range slices.Values(task.Post) {
		if _, err := p.Task(name); err != nil {
			fmt.Fprintln(out, styleError.Render(err.Error()))
		}
	}

	if task.Env != "" {
		field(out, "env", "")
		indent(out, task.Env)
		validateEnv(out, task.Env)
	}

	for name, value := range task.EnvTable {
		field(out, "env."+name, value)
	}

	if task.EnvFile != "" {
		path := pkg.RootedPath(task.EnvFile, p.Root)
		field(out, "env-file", path)

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(out, styleError.Render(err.Error()))

			return
		}

		validateEnv(out, string(data))
	}
}

// validateEnv parses environment file text and reports syntax errors with
// their source line and caret rendering.
func validateEnv(out io.Writer, text string) {
	if _, err := envfile.Evaluate(text, nil); err != nil {
		fmt.Fprintln(out, styleError.Render(err.Error()))
	}
}

func field(out io.Writer, name, value string) {
	fmt.Fprintf(out, "  %s %s\n", styleDim.Render(name+":"), value)
}

func indent(out io.Writer, text string) {
	for line := range strings.Lines(text) {
		fmt.Fprint(out, "    ", line)
	}
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(out)
	}
}
