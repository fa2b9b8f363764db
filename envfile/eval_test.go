package envfile

import (
	"maps"
	"strings"
	"testing"
)

func TestFragmentExpand(t *testing.T) {
	env := map[string]string{
		"foo":  "bar",
		"path": "/a/b/file.txt",
		"user": "John Doe",
	}
	resolve := func(name string) string { return env[name] }

	tests := []struct {
		text string
		want string
	}{
		{"This $variable is ${unknown}.", "This  is ."},
		{"Some $foo is ${path}.", "Some bar is /a/b/file.txt."},
		{"$user", "John Doe"},
		{"${user}s", "John Does"},
		{`Some \$foo is $\{path}.`, `Some \bar is $\{path}.`},
		{"${incomplete", "${incomplete"},
		{`${escaped\}`, `${escaped\}`},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			expandable := Fragment{Text: tt.text, Expandable: true}
			if got := expandable.Expand(resolve); got != tt.want {
				t.Errorf("expandable: got %q, want %q", got, tt.want)
			}

			literal := Fragment{Text: tt.text}
			if got := literal.Expand(resolve); got != tt.text {
				t.Errorf("literal: got %q, want %q", got, tt.text)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	base := map[string]string{"A": "1", "B": "2"}

	got, err := Evaluate("C=$A\nA=\nD=$A$B\nE=$C\n", base, WithUppercaseNames(false))
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	want := map[string]Value{
		"C": {Text: "1"},
		"A": {Unset: true},
		"D": {Text: "2"}, // A was unset above, so only B contributes
		"E": {Text: "1"},
	}
	if !maps.Equal(got, want) {
		t.Errorf("Evaluate:\n got %+v\nwant %+v", got, want)
	}

	if len(base) != 2 || base["A"] != "1" {
		t.Errorf("base modified: %+v", base)
	}
}

func TestEvaluateUppercaseNames(t *testing.T) {
	base := map[string]string{"PATH": "/bin"}

	got, err := Evaluate("path=$path:/sbin\n", base, WithUppercaseNames(true))
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	want := map[string]Value{"PATH": {Text: "/bin:/sbin"}}
	if !maps.Equal(got, want) {
		t.Errorf("Evaluate:\n got %+v\nwant %+v", got, want)
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	_, err := Evaluate("a=1\n= nope\n", nil)
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if !strings.Contains(err.Error(), "Expected a variable assignment or comment") {
		t.Errorf("unexpected error: %v", err)
	}
}

// expandInput exercises most of the grammar in one pass: comments, quoting
// of every flavor, escapes, unsets, multi-line values, and substitution.
const expandInput = `
# comment
first=1st
# another comment

  # and here too
second="2"nd
empty=
empty =
empty = # with comment
 multiline = "one
 two =
    three
    " # with a comment
bad_comment = this is some stuff# with a bad comment
good_comment=this is some stuff # with a good comment
unterminated_quote=this isn't complete

until=it's terminated here

escaped_dquote="this \" is escaped"
escaped_squote='this \' does not work
mixed="this is quoted" in 'multiple ways'
blah="one
two
three
"
trailer =  some text here  # trailer

triple_dquote="""
this has "triple" 'quotes'
"""
empty_string=""
foo=\
bar=43
some=this is the $PATH
none=this $does not ${exist}
quoted_comment = " # this is not a comment" # but this is
  # newlines end comments, even if escaped \
not_set = # here too \

escaped = \$do $\{not} ${expand\}
triple_squote=''' #
# keep this
ignore ', ", and \ in here
also ignore $PATH expansion
'''
     `

func TestExpand(t *testing.T) {
	input := map[string]string{
		"PATH":  "/usr/bin:/bin",
		"empty": "some",
	}
	want := map[string]string{
		"PATH":               "/usr/bin:/bin",
		"bad_comment":        "this is some stuff# with a bad comment",
		"blah":               "one\ntwo\nthree\n",
		"empty_string":       "",
		"escaped":            "$do ${not} ${expand}",
		"escaped_dquote":     `this " is escaped`,
		"escaped_squote":     `this \ does not work`,
		"first":              "1st",
		"foo":                "\nbar=43",
		"good_comment":       "this is some stuff",
		"mixed":              "this is quoted in multiple ways",
		"multiline":          "one\n two =\n    three\n    ",
		"none":               "this  not ",
		"quoted_comment":     " # this is not a comment",
		"second":             "2nd",
		"some":               "this is the /usr/bin:/bin",
		"trailer":            "some text here",
		"triple_dquote":      "\nthis has \"triple\" 'quotes'\n",
		"triple_squote":      " #\n# keep this\nignore ', \", and \\ in here\nalso ignore $PATH expansion\n",
		"unterminated_quote": "this isnt complete\n\nuntil=its terminated here",
	}

	upper := func(env map[string]string) map[string]string {
		out := make(map[string]string, len(env))
		for k, v := range env {
			out[strings.ToUpper(k)] = v
		}

		return out
	}

	t.Run("case sensitive", func(t *testing.T) {
		got, err := Expand(expandInput, input, WithUppercaseNames(false))
		if err != nil {
			t.Fatalf("expand error: %v", err)
		}

		diffEnv(t, got, want)
	})

	t.Run("uppercase", func(t *testing.T) {
		got, err := Expand(expandInput, upper(input), WithUppercaseNames(true))
		if err != nil {
			t.Fatalf("expand error: %v", err)
		}

		diffEnv(t, got, upper(want))
	})
}

// diffEnv reports per-key differences so a failure names the variables that
// diverge instead of dumping both maps.
func diffEnv(t *testing.T, got, want map[string]string) {
	t.Helper()

	for k, w := range want {
		g, ok := got[k]
		if !ok {
			t.Errorf("missing %q (want %q)", k, w)
		} else if g != w {
			t.Errorf("%s:\n got %q\nwant %q", k, g, w)
		}
	}
	for k, g := range got {
		if _, ok := want[k]; !ok {
			t.Errorf("unexpected %q = %q", k, g)
		}
	}
}

func TestExpandDoesNotModifyBase(t *testing.T) {
	base := map[string]string{"KEEP": "1", "DROP": "2"}

	got, err := Expand("DROP=\nADD=3\n", base, WithUppercaseNames(false))
	if err != nil {
		t.Fatalf("expand error: %v", err)
	}

	if _, ok := got["DROP"]; ok {
		t.Error("DROP not removed from result")
	}
	if base["DROP"] != "2" || len(base) != 2 {
		t.Errorf("base modified: %+v", base)
	}
}
