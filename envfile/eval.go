package envfile

import (
	"runtime"
	"strings"
)

// Value is the evaluated result of an assignment.
type Value struct {
	// Text is the expanded value. It is empty when Unset is true.
	Text string

	// Unset reports that the variable should be removed from the
	// environment rather than assigned.
	Unset bool
}

// config holds the evaluation settings.
type config struct {
	// uppercase normalizes variable names to upper case, matching the
	// case-insensitive environment semantics of Windows.
	uppercase bool
}

// makeConfig returns the evaluation settings with opts applied over the
// platform defaults.
func makeConfig(opts ...Option) config {
	cfg := config{uppercase: runtime.GOOS == "windows"}
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// Option configures evaluation.
type Option func(config) config

// WithUppercaseNames sets whether variable names are normalized to upper
// case during evaluation and lookup. The default follows the platform:
// enabled on Windows, disabled elsewhere.
func WithUppercaseNames(enable bool) Option {
	return func(cfg config) config {
		cfg.uppercase = enable

		return cfg
	}
}

// name returns s normalized per the evaluation settings.
func (c config) name(s string) string {
	if c.uppercase {
		return strings.ToUpper(s)
	}

	return s
}

// Evaluate parses text and expands each assignment against base and the
// assignments preceding it.
//
// Substitutions resolve first against earlier assignments in text, then
// against base. A variable that was unset earlier in text resolves to the
// empty string even when base defines it, as does any name found in neither.
// The returned map records every assignment, including unset ones, so the
// caller can distinguish removal from assignment to the empty string.
func Evaluate(text string, base map[string]string, opts ...Option) (map[string]Value, error) {
	cfg := makeConfig(opts...)

	updates := make(map[string]Value)

	resolve := func(name string) string {
		name = cfg.name(name)
		if v, ok := updates[name]; ok {
			return v.Text
		}

		return base[name]
	}

	for a, err := range Parse(text) {
		if err != nil {
			return nil, err
		}

		name := cfg.name(a.Name)
		if a.Fragments == nil {
			updates[name] = Value{Unset: true}

			continue
		}

		var buf strings.Builder
		for _, f := range a.Fragments {
			buf.WriteString(f.Expand(resolve))
		}

		updates[name] = Value{Text: buf.String()}
	}

	return updates, nil
}

// Expand parses text and returns a copy of base with its assignments
// applied. Assigned variables are added or replaced and unset variables are
// removed. The base map is not modified.
func Expand(text string, base map[string]string, opts ...Option) (map[string]string, error) {
	updates, err := Evaluate(text, base, opts...)
	if err != nil {
		return nil, err
	}

	env := make(map[string]string, len(base)+len(updates))
	for k, v := range base {
		env[k] = v
	}
	for k, v := range updates {
		if v.Unset {
			delete(env, k)
		} else {
			env[k] = v.Text
		}
	}

	return env, nil
}
