package envfile

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	// TokenText is the fallback class for any run of characters that does
	// not begin one of the special tokens.
	TokenText TokenType = iota

	// TokenEscape is a backslash followed by exactly one character,
	// including a newline.
	TokenEscape

	// TokenAssign is a single equal sign.
	TokenAssign

	// TokenComment is a single hash. Whether it starts a comment or is
	// literal text is decided by the parser, not the tokenizer.
	TokenComment

	// TokenDQuote is a double-quote mark, either single (") or triple (""").
	TokenDQuote

	// TokenNewline is a single line feed.
	TokenNewline

	// TokenSQuote is a single-quote mark, either single (') or triple (''').
	TokenSQuote

	// TokenWhitespace is a run of white space excluding newlines.
	TokenWhitespace
)

// String returns a string representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "Text"
	case TokenEscape:
		return "Escape"
	case TokenAssign:
		return "Assign"
	case TokenComment:
		return "Comment"
	case TokenDQuote:
		return "DQuote"
	case TokenNewline:
		return "Newline"
	case TokenSQuote:
		return "SQuote"
	case TokenWhitespace:
		return "Whitespace"
	default:
		return "Unknown"
	}
}

// Token represents a token scanned from source text.
//
// Line is the 1-based line number. Column is the 0-based character offset
// within the line. An escaped newline does not start a new line.
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
}
