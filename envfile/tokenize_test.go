package envfile

import (
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "simple assignment",
			input: "foo=bar\n",
			want: []Token{
				{TokenText, "foo", 1, 0},
				{TokenAssign, "=", 1, 3},
				{TokenText, "bar", 1, 4},
				{TokenNewline, "\n", 1, 7},
			},
		},
		{
			name:  "columns restart after newline",
			input: "a=1\nb=2",
			want: []Token{
				{TokenText, "a", 1, 0},
				{TokenAssign, "=", 1, 1},
				{TokenText, "1", 1, 2},
				{TokenNewline, "\n", 1, 3},
				{TokenText, "b", 2, 0},
				{TokenAssign, "=", 2, 1},
				{TokenText, "2", 2, 2},
			},
		},
		{
			name:  "whitespace runs are single tokens",
			input: " \t x",
			want: []Token{
				{TokenWhitespace, " \t ", 1, 0},
				{TokenText, "x", 1, 3},
			},
		},
		{
			name:  "escape pairs with the next character",
			input: `a\=b`,
			want: []Token{
				{TokenText, "a", 1, 0},
				{TokenEscape, `\=`, 1, 1},
				{TokenText, "b", 1, 3},
			},
		},
		{
			name:  "escaped newline does not advance the line",
			input: "a\\\nb",
			want: []Token{
				{TokenText, "a", 1, 0},
				{TokenEscape, "\\\n", 1, 1},
				{TokenText, "b", 1, 3},
			},
		},
		{
			name:  "trailing backslash is text",
			input: `abc\`,
			want: []Token{
				{TokenText, `abc\`, 1, 0},
			},
		},
		{
			name:  "triple quotes win over single marks",
			input: `x="""y"""`,
			want: []Token{
				{TokenText, "x", 1, 0},
				{TokenAssign, "=", 1, 1},
				{TokenDQuote, `"""`, 1, 2},
				{TokenText, "y", 1, 5},
				{TokenDQuote, `"""`, 1, 6},
			},
		},
		{
			name:  "quote pairs split into single marks",
			input: `''x''`,
			want: []Token{
				{TokenSQuote, "'", 1, 0},
				{TokenSQuote, "'", 1, 1},
				{TokenText, "x", 1, 2},
				{TokenSQuote, "'", 1, 3},
				{TokenSQuote, "'", 1, 4},
			},
		},
		{
			name:  "hash and equal are their own tokens",
			input: "# a=b",
			want: []Token{
				{TokenComment, "#", 1, 0},
				{TokenWhitespace, " ", 1, 1},
				{TokenText, "a", 1, 2},
				{TokenAssign, "=", 1, 3},
				{TokenText, "b", 1, 4},
			},
		},
		{
			name:  "multibyte text",
			input: "α=β\nγ=δ",
			want: []Token{
				{TokenText, "α", 1, 0},
				{TokenAssign, "=", 1, 1},
				{TokenText, "β", 1, 2},
				{TokenNewline, "\n", 1, 3},
				{TokenText, "γ", 2, 0},
				{TokenAssign, "=", 2, 1},
				{TokenText, "δ", 2, 2},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Tokenize(tt.input))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q):\n got %+v\nwant %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeRestartable(t *testing.T) {
	seq := Tokenize("a=1\nb=2\n")

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	if !slices.Equal(first, second) {
		t.Errorf("second pass differs:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"foo=bar\nbaz='quoted value' # comment\n",
		"a=\\\nb=2\n",
		`x="""multi` + "\n" + `line"""`,
		"  \t mixed \f\v whitespace \r\n",
	}

	for _, input := range inputs {
		var joined string
		for tok := range Tokenize(input) {
			joined += tok.Value
		}

		if joined != input {
			t.Errorf("token values do not reassemble input:\n got %q\nwant %q", joined, input)
		}
	}
}
