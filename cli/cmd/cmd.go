// Package cmd implements the runr subcommands.
package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/runr/pkg"
	"github.com/ardnew/runr/project"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the output writer configured on the parser, falling back to
// [os.Stdout].
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// projectPathKey is used to store the --project flag value in
// [context.Context].
type projectPathKey struct{}

// WithProjectPath returns a new context.Context carrying the path given with
// the --project flag. An empty path means the project is discovered from the
// working directory.
func WithProjectPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, projectPathKey{}, path)
}

func projectPathFrom(ctx context.Context) string {
	path, _ := ctx.Value(projectPathKey{}).(string)

	return path
}

// loadProject resolves the project a command operates on. The --project flag
// may name a project file or a directory containing one; without the flag,
// discovery walks upward from the working directory.
func loadProject(ctx context.Context) (*project.Project, error) {
	path := projectPathFrom(ctx)
	if path == "" {
		dir, err := os.Getwd()
		if err != nil {
			return nil, pkg.ErrProjectNotFound.Wrap(err)
		}

		return project.Discover(dir)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, pkg.ErrProjectNotFound.Wrap(err)
	}
	if info.IsDir() {
		path = filepath.Join(path, project.File)
	}

	return project.Load(path)
}

// environMap converts KEY=VALUE pairs as returned by [os.Environ] into a map.
func environMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, pair := range environ {
		if name, value, ok := strings.Cut(pair, "="); ok {
			env[name] = value
		}
	}

	return env
}
