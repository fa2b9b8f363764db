package envfile

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// SyntaxError describes a grammar violation found while parsing.
//
// It is the only error kind produced by this package. It is raised for a
// malformed top-level line (anything that is not a comment, an assignment,
// or blank) and for an unterminated quoted span; everything else parses
// permissively.
type SyntaxError struct {
	// Msg is the human-readable description of the violation.
	Msg string

	// Line is the 1-based line number of the offending token.
	Line int

	// Column is the 1-based column offset of the offending token.
	Column int

	// EndColumn is the 1-based column offset just past the offending token.
	EndColumn int

	// Text is the offending source line.
	Text string
}

// newSyntaxError builds a SyntaxError for the given token, extracting the
// offending line from source.
func newSyntaxError(msg string, tok Token, source string) *SyntaxError {
	lines := strings.Split(source, "\n")

	var text string
	if tok.Line > 0 && tok.Line <= len(lines) {
		text = lines[tok.Line-1]
	}

	col := tok.Column + 1

	return &SyntaxError{
		Msg:       msg,
		Line:      tok.Line,
		Column:    col,
		EndColumn: col + utf8.RuneCountInString(tok.Value),
		Text:      text,
	}
}

// Error implements the error interface. The message includes the offending
// source line with a caret marking the error position.
func (e *SyntaxError) Error() string {
	var buf strings.Builder

	buf.WriteString(e.Msg)
	buf.WriteString(" at line ")
	buf.WriteString(strconv.Itoa(e.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Column))
	buf.WriteString(":\n")

	// Print the line with line number
	buf.WriteString("  ")
	buf.WriteString(strconv.Itoa(e.Line))
	buf.WriteString(" | ")
	buf.WriteString(e.Text)
	buf.WriteRune('\n')

	// Print marker pointing to the column
	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(strconv.Itoa(e.Line))+5)
	if e.Column > 0 {
		padding += strings.Repeat(" ", e.Column-1)
	}

	buf.WriteString(padding + "^")

	return buf.String()
}
