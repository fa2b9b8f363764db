package envfile

import (
	"errors"
	"strings"
	"testing"
)

// collect gathers all assignments from text, failing the test on error.
func collect(t *testing.T, text string) []Assignment {
	t.Helper()

	var got []Assignment
	for a, err := range Parse(text) {
		if err != nil {
			t.Fatalf("parse error: %v", err)
		}
		got = append(got, a)
	}

	return got
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Assignment
	}{
		{
			name:  "bare assignment",
			input: "foo=bar",
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "bar", Expandable: true},
				}},
			},
		},
		{
			name:  "whitespace around name and equal",
			input: "  foo \t=  bar  \n",
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "bar", Expandable: true},
				}},
			},
		},
		{
			name:  "empty value unsets",
			input: "foo=\n",
			want:  []Assignment{{Name: "foo"}},
		},
		{
			name:  "comment-only value unsets",
			input: "foo= # gone\n",
			want:  []Assignment{{Name: "foo"}},
		},
		{
			name:  "quoted empty string assigns",
			input: `foo=""`,
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{{}}},
			},
		},
		{
			name:  "interior whitespace is kept",
			input: "foo=a b\n",
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "a", Expandable: true},
					{Text: " ", Whitespace: true},
					{Text: "b", Expandable: true},
				}},
			},
		},
		{
			name:  "hash without preceding whitespace is literal",
			input: "foo=bar#baz\n",
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "bar", Expandable: true},
					{Text: "#", Expandable: true},
					{Text: "baz", Expandable: true},
				}},
			},
		},
		{
			name:  "hash at start of value is literal",
			input: "foo=#bar\n",
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "#", Expandable: true},
					{Text: "bar", Expandable: true},
				}},
			},
		},
		{
			name:  "hash after whitespace starts a comment",
			input: "foo=bar # baz\n",
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "bar", Expandable: true},
				}},
			},
		},
		{
			name:  "single quotes disable expansion",
			input: "foo='$HOME'\n",
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "$HOME"},
				}},
			},
		},
		{
			name:  "double quotes keep expansion",
			input: `foo="$HOME"`,
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "$HOME", Expandable: true},
				}},
			},
		},
		{
			name:  "escape yields the escaped character",
			input: `foo=\$HOME`,
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "$"},
					{Text: "HOME", Expandable: true},
				}},
			},
		},
		{
			name:  "escaped quote in double quotes",
			input: `foo="a\"b"`,
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "a", Expandable: true},
					{Text: `"`},
					{Text: "b", Expandable: true},
				}},
			},
		},
		{
			name:  "backslash before closing single quote",
			input: `foo='a\'`,
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "a"},
					{Text: `\`},
				}},
			},
		},
		{
			name:  "escaped newline joins lines",
			input: "foo=a\\\nb=2\n",
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "a", Expandable: true},
					{Text: "\n"},
					{Text: "b", Expandable: true},
					{Text: "=", Expandable: true},
					{Text: "2", Expandable: true},
				}},
			},
		},
		{
			name:  "quotes span lines",
			input: "foo='a\nb=2\nc' d\n",
			want: []Assignment{
				{Name: "foo", Fragments: []Fragment{
					{Text: "a"},
					{Text: "\n"},
					{Text: "b"},
					{Text: "="},
					{Text: "2"},
					{Text: "\n"},
					{Text: "c"},
					{Text: " ", Whitespace: true},
					{Text: "d", Expandable: true},
				}},
			},
		},
		{
			name:  "comments and blank lines",
			input: "# leading\n\n  # indented\na=1\n",
			want: []Assignment{
				{Name: "a", Fragments: []Fragment{
					{Text: "1", Expandable: true},
				}},
			},
		},
		{
			name:  "escaped newline ends a comment",
			input: "# comment \\\na=1\n",
			want: []Assignment{
				{Name: "a", Fragments: []Fragment{
					{Text: "1", Expandable: true},
				}},
			},
		},
		{
			name:  "escaped newline ends a trailing comment",
			input: "a= # unset \\\n",
			want:  []Assignment{{Name: "a"}},
		},
		{
			name:  "multiple assignments in order",
			input: "a=1\nb=2\na=3\n",
			want: []Assignment{
				{Name: "a", Fragments: []Fragment{{Text: "1", Expandable: true}}},
				{Name: "b", Fragments: []Fragment{{Text: "2", Expandable: true}}},
				{Name: "a", Fragments: []Fragment{{Text: "3", Expandable: true}}},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: " \t \n \n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.input)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d assignments, want %d:\n got %+v\nwant %+v",
					len(got), len(tt.want), got, tt.want)
			}

			for i := range got {
				if got[i].Name != tt.want[i].Name {
					t.Errorf("assignment %d: got name %q, want %q",
						i, got[i].Name, tt.want[i].Name)
				}
				if !fragmentsEqual(got[i].Fragments, tt.want[i].Fragments) {
					t.Errorf("assignment %d (%s):\n got %+v\nwant %+v",
						i, got[i].Name, got[i].Fragments, tt.want[i].Fragments)
				}
			}
		})
	}
}

func fragmentsEqual(a, b []Fragment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		input  string
		msg    string
		line   int
		column int
	}{
		{"ABC", "Expected '=' after variable name", 1, 4},
		{"= XYZ", "Expected a variable assignment or comment", 1, 1},
		{"ABC XYZ", "Expected '=' after variable name", 1, 5},
		{`ABC="123`, "Expected a matching end quote", 1, 5},
		{`ABC=123"`, "Expected a matching end quote", 1, 8},
		{"A.B=1", "Expected a variable assignment or comment", 1, 1},
		{"1AB=1", "Expected a variable assignment or comment", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got error
			for _, err := range Parse(tt.input) {
				if err != nil {
					got = err

					break
				}
			}

			if got == nil {
				t.Fatalf("Parse(%q): expected error, got none", tt.input)
			}

			var serr *SyntaxError
			if !errors.As(got, &serr) {
				t.Fatalf("Parse(%q): error is %T, want *SyntaxError", tt.input, got)
			}

			if serr.Msg != tt.msg {
				t.Errorf("Parse(%q): got message %q, want %q", tt.input, serr.Msg, tt.msg)
			}
			if serr.Line != tt.line || serr.Column != tt.column {
				t.Errorf("Parse(%q): got position %d:%d, want %d:%d",
					tt.input, serr.Line, serr.Column, tt.line, tt.column)
			}
		})
	}
}

func TestParseErrorKeepsEarlierAssignments(t *testing.T) {
	var (
		names  []string
		gotErr error
	)
	for a, err := range Parse("a=1\nb=2\n= broken\n") {
		if err != nil {
			gotErr = err

			break
		}
		names = append(names, a.Name)
	}

	if gotErr == nil {
		t.Fatal("expected error, got none")
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("got assignments %v before error, want [a b]", names)
	}

	var serr *SyntaxError
	if !errors.As(gotErr, &serr) {
		t.Fatalf("error is %T, want *SyntaxError", gotErr)
	}
	if serr.Line != 3 {
		t.Errorf("got error on line %d, want 3", serr.Line)
	}
}

func TestSyntaxErrorFormat(t *testing.T) {
	var gotErr error
	for _, err := range Parse("GOOD=1\nBAD XYZ\n") {
		if err != nil {
			gotErr = err

			break
		}
	}

	if gotErr == nil {
		t.Fatal("expected error, got none")
	}

	msg := gotErr.Error()
	for _, want := range []string{
		"Expected '=' after variable name",
		"line 2",
		"2 | BAD XYZ",
		"^",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q:\n%s", want, msg)
		}
	}

	// The caret must sit under the offending token.
	lines := strings.Split(msg, "\n")
	caret := lines[len(lines)-1]
	source := lines[len(lines)-2]
	if strings.Index(caret, "^") != strings.Index(source, "X") {
		t.Errorf("caret misaligned:\n%s\n%s", source, caret)
	}
}
