package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/runr/envfile"
	"github.com/ardnew/runr/pkg"
)

// Env evaluates environment files against the inherited environment and
// prints the result.
type Env struct {
	Files  []string `arg:"" optional:"" name:"file" help:"Environment file(s) or '-' for stdin"`
	Format string   `default:"text" enum:"text,json,yaml" help:"Output format" short:"F"`
	All    bool     `help:"Include the inherited environment in the output" negatable:""`
}

// Run executes the env command.
func (e *Env) Run(ctx context.Context) error {
	base := environMap(os.Environ())
	updated := map[string]string{}

	sources := e.Files
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	for _, src := range sources {
		var (
			data []byte
			err  error
		)

		if src == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(src)
		}
		if err != nil {
			return pkg.ErrReadInput.Wrap(err)
		}

		// Later files see the assignments of earlier ones.
		values, err := envfile.Evaluate(string(data), base)
		if err != nil {
			return err
		}

		for name, value := range values {
			if value.Unset {
				delete(base, name)
				delete(updated, name)

				continue
			}

			base[name] = value.Text
			updated[name] = value.Text
		}
	}

	env := updated
	if e.All {
		env = base
	}

	return render(stdout(ctx), e.Format, env)
}

// render writes env to w in the named output format.
func render(w io.Writer, format string, env map[string]string) error {
	switch format {
	case "text":
		for _, name := range slices.Sorted(maps.Keys(env)) {
			fmt.Fprintf(w, "%s=%s\n", name, env[name])
		}

		return nil

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(env)

	case "yaml":
		return yaml.NewEncoder(w).Encode(env)

	default:
		return pkg.ErrInvalidFormat.Wrapf("%q (expected text, json, or yaml)", format)
	}
}
