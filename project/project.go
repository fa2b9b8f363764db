// Package project locates and models pyproject.toml projects, their
// workspaces, and the tasks they define.
package project

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/ardnew/runr/pkg"
)

// File is the name of the project definition file.
const File = "pyproject.toml"

// document is the subset of pyproject.toml that the runner reads.
//
// Task entries are kept untyped because a task may be written as a command
// string, an argument list, or a table of options.
type document struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		UV *struct {
			Managed   *bool           `toml:"managed"`
			Workspace *workspaceTable `toml:"workspace"`
		} `toml:"uv"`
		Runr struct {
			Tasks map[string]any `toml:"tasks"`
		} `toml:"runr"`
	} `toml:"tool"`
}

type workspaceTable struct {
	Members []string `toml:"members"`
	Exclude []string `toml:"exclude"`
}

// Project is a loaded pyproject.toml file.
type Project struct {
	// Name is the declared project name.
	Name string

	// Root is the absolute path of the directory containing the project
	// file.
	Root string

	doc document

	ws      *Workspace
	wsKnown bool
}

// Load reads and parses the project file at path.
func Load(path string) (*Project, error) {
	p, err := load(path)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, pkg.ErrProjectInvalid.Wrapf("%s: missing project name", path)
	}

	return p, nil
}

// load parses path, returning nil without error when the file does not
// declare a project name. Discovery uses this to keep walking past
// tool-only pyproject.toml files.
func load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, pkg.ErrProjectInvalid.Wrapf("%s", path).Wrap(err)
	}

	if doc.Project.Name == "" {
		return nil, nil
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, pkg.ErrProjectInvalid.Wrap(err)
	}

	return &Project{Name: doc.Project.Name, Root: root, doc: doc}, nil
}

// Discover walks from dir toward the filesystem root and loads the nearest
// project file that declares a project name.
func Discover(dir string) (*Project, error) {
	path, err := filepath.Abs(dir)
	if err != nil {
		return nil, pkg.ErrProjectNotFound.Wrap(err)
	}

	for {
		file := filepath.Join(path, File)
		if info, serr := os.Stat(file); serr == nil && info.Mode().IsRegular() {
			p, lerr := load(file)
			if lerr != nil {
				return nil, lerr
			}
			if p != nil {
				return p, nil
			}
		}

		parent := filepath.Dir(path)
		if parent == path {
			return nil, pkg.ErrProjectNotFound.Wrapf(
				"no %s in %s or any parent directory", File, dir)
		}
		path = parent
	}
}

// Managed reports whether the project's environment is managed by uv.
// A [tool.uv] table without an explicit managed key counts as managed.
func (p *Project) Managed() bool {
	uv := p.doc.Tool.UV
	if uv == nil {
		return false
	}
	if uv.Managed != nil {
		return *uv.Managed
	}

	return true
}

// Sync brings the project's managed environment up to date.
func (p *Project) Sync(ctx context.Context) error {
	cmd := exec.CommandContext(ctx,
		"uv", "sync", "--directory", p.Root, "--frozen", "--inexact")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// venvBin is the executable directory inside a virtual environment.
func venvBin() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}

	return "bin"
}

// VenvPath returns the project's virtual environment directory. The
// UV_PROJECT_ENVIRONMENT variable overrides the default of .venv under the
// workspace root, or under the project root outside a workspace.
func (p *Project) VenvPath() string {
	if env := os.Getenv("UV_PROJECT_ENVIRONMENT"); env != "" {
		return env
	}

	root := p.Root
	if ws := p.Workspace(); ws != nil {
		root = ws.Root
	}

	return filepath.Join(root, ".venv")
}

// VenvBinPath returns the executable directory of the project's virtual
// environment.
func (p *Project) VenvBinPath() string {
	return filepath.Join(p.VenvPath(), venvBin())
}

// TaskNames returns the names of the tasks defined in the project file,
// sorted.
func (p *Project) TaskNames() []string {
	names := make([]string, 0, len(p.doc.Tool.Runr.Tasks))
	for name := range p.doc.Tool.Runr.Tasks {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Task returns the named task from the project file. A name with no task
// entry falls back to an installed script of the same name in the virtual
// environment's executable directory.
func (p *Project) Task(name string) (*Task, error) {
	entry, ok := p.doc.Tool.Runr.Tasks[name]
	if !ok {
		if exe := findScript(p.VenvBinPath(), name); exe != "" && !isUnsafeScript(exe) {
			return &Task{Cmd: []string{name}, Executable: exe}, nil
		}

		return nil, pkg.ErrTaskNotFound.Wrapf("%q", name)
	}

	t, err := parseTask(entry)
	if err != nil {
		return nil, pkg.ErrTaskInvalid.Wrapf("%q", name).Wrap(err)
	}

	return t, nil
}
