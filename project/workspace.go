package project

import (
	"os"
	"path/filepath"
	"slices"
)

// Workspace is a project whose [tool.uv.workspace] table groups member
// projects under a shared root and virtual environment.
type Workspace struct {
	// Name is the workspace project's declared name.
	Name string

	// Root is the workspace project's root directory.
	Root string

	// Members are the resolved member directories.
	Members []string
}

// Workspace returns the workspace containing the project, or nil. The
// workspace is read from the project's own file, or discovered by walking
// parent directories for a project whose workspace lists this project as a
// member. The result is cached.
func (p *Project) Workspace() *Workspace {
	if !p.wsKnown {
		p.ws = workspaceOf(p)
		if p.ws == nil {
			p.ws = p.discoverWorkspace()
		}
		p.wsKnown = true
	}

	return p.ws
}

// workspaceOf builds a Workspace from the project's own [tool.uv.workspace]
// table, or returns nil when the project does not define one. Member and
// exclude entries are glob patterns relative to the project root.
func workspaceOf(p *Project) *Workspace {
	uv := p.doc.Tool.UV
	if uv == nil || uv.Workspace == nil {
		return nil
	}

	var exclude []string
	for _, pattern := range uv.Workspace.Exclude {
		if paths, err := filepath.Glob(filepath.Join(p.Root, pattern)); err == nil {
			exclude = append(exclude, paths...)
		}
	}

	var members []string
	for _, pattern := range uv.Workspace.Members {
		paths, err := filepath.Glob(filepath.Join(p.Root, pattern))
		if err != nil {
			continue
		}
		for _, path := range paths {
			if !slices.Contains(exclude, path) {
				members = append(members, path)
			}
		}
	}

	return &Workspace{Name: p.Name, Root: p.Root, Members: members}
}

// discoverWorkspace walks parent directories for a project whose workspace
// includes this project as a member.
func (p *Project) discoverWorkspace() *Workspace {
	path := p.Root
	for {
		parent := filepath.Dir(path)
		if parent == path {
			return nil
		}

		owner, err := Discover(parent)
		if err != nil {
			return nil
		}
		path = owner.Root

		ws := workspaceOf(owner)
		if ws == nil {
			continue
		}
		for _, member := range ws.Members {
			if sameFile(p.Root, member) {
				return ws
			}
		}
	}
}

// sameFile reports whether the two paths name the same file.
func sameFile(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}

	return os.SameFile(ia, ib)
}
