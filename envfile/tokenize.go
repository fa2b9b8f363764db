package envfile

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Tokenize returns an iterator over the tokens in text.
//
// The sequence is a pure function of text: it is finite, restartable, and
// never fails. Characters that do not begin one of the special tokens are
// folded into Text runs.
func Tokenize(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		var (
			line      = 1
			col       = 0  // column of the current position
			textStart = -1 // byte offset of a pending text run, -1 when none
			textCol   = 0  // column where the pending text run began
			textLine  = 0  // line where the pending text run began
		)

		flush := func(end int) bool {
			if textStart < 0 {
				return true
			}

			tok := Token{
				Type:   TokenText,
				Value:  text[textStart:end],
				Line:   textLine,
				Column: textCol,
			}
			textStart = -1

			return yield(tok)
		}

		pos := 0
		for pos < len(text) {
			typ, size := matchSpecial(text, pos)
			if size == 0 {
				if textStart < 0 {
					textStart, textCol, textLine = pos, col, line
				}

				_, n := utf8.DecodeRuneInString(text[pos:])
				pos += n
				col++

				continue
			}

			if !flush(pos) {
				return
			}

			tok := Token{
				Type:   typ,
				Value:  text[pos : pos+size],
				Line:   line,
				Column: col,
			}
			if !yield(tok) {
				return
			}

			col += utf8.RuneCountInString(tok.Value)

			if typ == TokenNewline {
				line++
				col = 0
			}

			pos += size
		}

		flush(len(text))
	}
}

// matchSpecial attempts to match one of the special tokens at pos.
// The alternatives are ordered: escapes are matched first, and triple
// quote marks are matched before single marks so the longest form wins.
// It returns size 0 when pos does not begin a special token, in which
// case the character belongs to a Text run.
func matchSpecial(text string, pos int) (TokenType, int) {
	switch text[pos] {
	case '\\':
		if pos+1 < len(text) {
			_, n := utf8.DecodeRuneInString(text[pos+1:])

			return TokenEscape, 1 + n
		}
		// A trailing backslash escapes nothing and folds into a text run.
		return TokenText, 0

	case '=':
		return TokenAssign, 1

	case '#':
		return TokenComment, 1

	case '"':
		if strings.HasPrefix(text[pos:], `"""`) {
			return TokenDQuote, 3
		}

		return TokenDQuote, 1

	case '\n':
		return TokenNewline, 1

	case '\'':
		if strings.HasPrefix(text[pos:], "'''") {
			return TokenSQuote, 3
		}

		return TokenSQuote, 1

	case ' ', '\t', '\r', '\f', '\v':
		end := pos + 1
		for end < len(text) && isSpace(text[end]) {
			end++
		}

		return TokenWhitespace, end - pos
	}

	return TokenText, 0
}

// isSpace reports whether c is white space excluding newline.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\f', '\v':
		return true
	}

	return false
}
