package project

import (
	"context"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/ardnew/mung"
	"github.com/google/shlex"

	"github.com/ardnew/runr/envfile"
	"github.com/ardnew/runr/pkg"
)

// Task is a runnable command from the project file, or an installed script
// from the virtual environment.
type Task struct {
	// Cmd is the command and its baked-in arguments. An empty Cmd is valid
	// for tasks that only chain Pre and Post tasks.
	Cmd []string

	// Cwd is the working directory for the command. A !-rooted path
	// resolves relative to the project root.
	Cwd string

	// Env is inline environment file text applied over the base
	// environment.
	Env string

	// EnvTable is the table form of env, applied verbatim.
	EnvTable map[string]string

	// EnvFile names an environment file applied after Env. A !-rooted path
	// resolves relative to the project root.
	EnvFile string

	// Help is the task description shown in listings.
	Help string

	// Executable is the resolved binary path of an installed script. It is
	// empty for tasks defined in the project file.
	Executable string

	// Pre and Post name tasks run before and after Cmd.
	Pre  []string
	Post []string
}

// parseTask interprets a task table entry. An entry is a command string, a
// list of command arguments, or a table of options.
func parseTask(entry any) (*Task, error) {
	switch v := entry.(type) {
	case string:
		cmd, err := splitCmd(v)
		if err != nil {
			return nil, err
		}

		return &Task{Cmd: cmd}, nil

	case []any:
		cmd, ok := stringSlice(v)
		if !ok || len(cmd) == 0 {
			return nil, pkg.ErrTaskInvalid.Wrapf("command list must be strings")
		}
		cmd[0] = strings.TrimSpace(cmd[0])
		if cmd[0] == "" {
			return nil, pkg.ErrTaskInvalid.Wrapf("empty command name")
		}

		return &Task{Cmd: cmd}, nil

	case map[string]any:
		return parseTaskTable(v)
	}

	return nil, pkg.ErrTaskInvalid.Wrapf("unsupported entry type %T", entry)
}

func parseTaskTable(table map[string]any) (*Task, error) {
	t := &Task{}

	switch cmd := table["cmd"].(type) {
	case string:
		split, err := splitCmd(cmd)
		if err != nil {
			return nil, err
		}
		t.Cmd = split

	case []any:
		split, ok := stringSlice(cmd)
		if !ok || len(split) == 0 {
			return nil, pkg.ErrTaskInvalid.Wrapf("cmd list must be strings")
		}
		split[0] = strings.TrimSpace(split[0])
		if split[0] == "" {
			return nil, pkg.ErrTaskInvalid.Wrapf("empty command name")
		}
		t.Cmd = split
	}

	// Options that only apply to a command
	if len(t.Cmd) > 0 {
		if cwd, ok := table["cwd"].(string); ok {
			t.Cwd = strings.TrimSpace(cwd)
		}

		switch env := table["env"].(type) {
		case string:
			t.Env = strings.TrimSpace(env)
		case map[string]any:
			t.EnvTable = make(map[string]string, len(env))
			for k, v := range env {
				if s, ok := v.(string); ok {
					t.EnvTable[k] = s
				}
			}
		}

		if file, ok := table["env-file"].(string); ok {
			t.EnvFile = strings.TrimSpace(file)
		}
	}

	if help, ok := table["help"].(string); ok {
		t.Help = strings.TrimSpace(help)
	}

	if pre, ok := stringSlice(sliceOrNil(table["pre"])); ok {
		t.Pre = pre
	}
	if post, ok := stringSlice(sliceOrNil(table["post"])); ok {
		t.Post = post
	}

	if len(t.Cmd) == 0 && len(t.Pre) == 0 && len(t.Post) == 0 {
		return nil, pkg.ErrTaskInvalid.Wrapf("task has no command and no pre or post tasks")
	}

	return t, nil
}

func splitCmd(cmd string) ([]string, error) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil, pkg.ErrTaskInvalid.Wrapf("empty command")
	}

	split, err := shlex.Split(cmd)
	if err != nil {
		return nil, pkg.ErrTaskInvalid.Wrapf("malformed command %q", cmd).Wrap(err)
	}

	return split, nil
}

func stringSlice(v []any) ([]string, bool) {
	if v == nil {
		return nil, false
	}

	out := make([]string, len(v))
	for i, item := range v {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}

	return out, true
}

func sliceOrNil(v any) []any {
	s, _ := v.([]any)

	return s
}

// Environ composes the task's environment over the current process
// environment.
//
// The runner variables VIRTUAL_ENV, VIRTUAL_ENV_BIN, INITIAL_DIR,
// PROJECT_DIR, and WORKSPACE_DIR are set first and PATH is prefixed with
// the virtual environment's executable directory, so inline env text and
// the env file can reference them. PYTHONHOME is always removed because it
// overrides the virtual environment's interpreter configuration.
func (t *Task) Environ(project *Project) (map[string]string, error) {
	env := environMap(os.Environ())

	env["VIRTUAL_ENV"] = project.VenvPath()
	env["VIRTUAL_ENV_BIN"] = project.VenvBinPath()
	env["PROJECT_DIR"] = project.Root
	if cwd, err := os.Getwd(); err == nil {
		env["INITIAL_DIR"] = cwd
	}
	if ws := project.Workspace(); ws != nil {
		env["WORKSPACE_DIR"] = ws.Root
	} else {
		delete(env, "WORKSPACE_DIR")
	}

	if path := env["PATH"]; path == "" {
		env["PATH"] = project.VenvBinPath()
	} else {
		env["PATH"] = mung.Make(
			mung.WithSubjectItems(path),
			mung.WithDelim(string(os.PathListSeparator)),
			mung.WithPrefixItems(project.VenvBinPath()),
		).String()
	}

	if t.Env != "" {
		expanded, err := envfile.Expand(t.Env, env)
		if err != nil {
			return nil, pkg.ErrTaskEnvironment.Wrapf("env").Wrap(err)
		}
		env = expanded
	} else if len(t.EnvTable) > 0 {
		maps.Copy(env, t.EnvTable)
	}

	if path := pkg.RootedPath(t.EnvFile, project.Root); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, pkg.ErrTaskEnvironment.Wrap(err)
		}
		expanded, eerr := envfile.Expand(string(data), env)
		if eerr != nil {
			return nil, pkg.ErrTaskEnvironment.Wrapf("%s", path).Wrap(eerr)
		}
		env = expanded
	}

	delete(env, "PYTHONHOME")

	return env, nil
}

// Run executes the task's pre tasks, its command with the extra args, then
// its post tasks, stopping at the first failure. All named tasks are
// resolved before anything runs.
func (t *Task) Run(ctx context.Context, project *Project, args []string) error {
	pre, err := resolveTasks(project, t.Pre)
	if err != nil {
		return err
	}
	post, err := resolveTasks(project, t.Post)
	if err != nil {
		return err
	}

	for _, task := range pre {
		if err := task.Run(ctx, project, nil); err != nil {
			return err
		}
	}

	if len(t.Cmd) > 0 {
		if err := t.exec(ctx, project, args); err != nil {
			return err
		}
	}

	for _, task := range post {
		if err := task.Run(ctx, project, nil); err != nil {
			return err
		}
	}

	return nil
}

func resolveTasks(project *Project, names []string) ([]*Task, error) {
	tasks := make([]*Task, 0, len(names))
	for _, name := range names {
		task, err := project.Task(name)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (t *Task) exec(ctx context.Context, project *Project, args []string) error {
	env, err := t.Environ(project)
	if err != nil {
		return err
	}

	argv := append(slices.Clone(t.Cmd), args...)

	name := t.Executable
	if name == "" {
		name = pkg.RootedPath(argv[0], project.Root)
		// Bare command names resolve against the composed PATH, which has
		// the virtual environment's executables first.
		if !strings.ContainsAny(name, `/\`) {
			if found := lookPath(name, env["PATH"]); found != "" {
				name = found
			}
		}
	}

	cmd := exec.CommandContext(ctx, name, argv[1:]...)
	cmd.Dir = pkg.RootedPath(t.Cwd, project.Root)
	cmd.Env = environList(env)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// environMap converts KEY=VALUE pairs to a map.
func environMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		if k, v, ok := strings.Cut(entry, "="); ok {
			env[k] = v
		}
	}

	return env
}

// environList converts an environment map to sorted KEY=VALUE pairs.
func environList(env map[string]string) []string {
	list := make([]string, 0, len(env))
	for k, v := range env {
		list = append(list, k+"="+v)
	}
	slices.Sort(list)

	return list
}
