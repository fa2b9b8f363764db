package envfile

import (
	"regexp"
	"strings"
)

// Fragment is a piece of an assignment's value.
//
// Concatenating the text of an assignment's fragments, after expansion,
// yields the assignment's value.
type Fragment struct {
	// Text is the fragment's literal text.
	Text string

	// Expandable reports whether $name and ${name} substitutions apply to
	// this fragment during evaluation.
	Expandable bool

	// Whitespace marks insignificant white space, which is trimmed from
	// the beginning and end of a value.
	Whitespace bool
}

// expandRE matches $name and ${name} substitutions. A brace-opened
// substitution without its closing brace does not match and is left as
// literal text.
var expandRE = regexp.MustCompile(
	`\$(?:\{[A-Za-z_][A-Za-z0-9_]*\}|[A-Za-z_][A-Za-z0-9_]*)`,
)

// Expand applies $name and ${name} substitutions to the fragment using
// resolve and returns the result. Fragments that are not expandable are
// returned verbatim. Unknown names resolve to whatever resolve returns,
// typically the empty string.
func (f Fragment) Expand(resolve func(name string) string) string {
	if !f.Expandable {
		return f.Text
	}

	return expandRE.ReplaceAllStringFunc(f.Text, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if strings.HasPrefix(name, "{") {
			name = name[1 : len(name)-1]
		}

		return resolve(name)
	})
}
