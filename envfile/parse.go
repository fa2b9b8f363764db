package envfile

import (
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Assignment is a single parsed variable assignment.
//
// A nil Fragments slice means the variable is unset. An empty value that was
// written with quotes is preserved as a single empty fragment, so quoting an
// empty string assigns it rather than unsetting the variable.
type Assignment struct {
	// Name is the variable name as written, before any case normalization.
	Name string

	// Fragments are the pieces of the value in source order.
	Fragments []Fragment
}

// nameRE matches a valid variable name.
var nameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parse returns an iterator over the variable assignments in text.
//
// Assignments are yielded in source order as they are recognized. On a syntax
// error the iterator yields a zero Assignment with a *SyntaxError and stops;
// assignments yielded before the error remain valid.
func Parse(text string) iter.Seq2[Assignment, error] {
	return func(yield func(Assignment, error) bool) {
		next, stop := iter.Pull(Tokenize(text))
		defer stop()

		p := &parser{text: text, next: next}

		comment := false
		for {
			tok, ok := next()
			if !ok {
				return
			}

			switch {
			case tok.Type == TokenNewline:
				comment = false

			case comment:
				// A backslash cannot escape the newline that ends a comment.
				if tok.Type == TokenEscape && strings.HasSuffix(tok.Value, "\n") {
					comment = false
				}

			case tok.Type == TokenComment:
				comment = true

			case tok.Type == TokenWhitespace:

			case tok.Type == TokenText && nameRE.MatchString(tok.Value):
				a, err := p.assignment(tok)
				if err != nil {
					yield(Assignment{}, err)

					return
				}
				if !yield(a, nil) {
					return
				}

			default:
				yield(Assignment{}, newSyntaxError(
					"Expected a variable assignment or comment", tok, text))

				return
			}
		}
	}
}

// parser holds the token stream and source text while assembling assignments.
type parser struct {
	text string
	next func() (Token, bool)
}

// assignment parses the remainder of an assignment after its name.
func (p *parser) assignment(name Token) (Assignment, error) {
	// When the stream ends before the equal sign, report the error at the
	// position immediately after the name.
	fallback := Token{
		Line:   name.Line,
		Column: name.Column + utf8.RuneCountInString(name.Value),
	}

	for {
		tok, ok := p.next()
		if !ok {
			return Assignment{}, newSyntaxError(
				"Expected '=' after variable name", fallback, p.text)
		}

		switch tok.Type {
		case TokenWhitespace:
			continue

		case TokenAssign:
			frags, err := p.value()
			if err != nil {
				return Assignment{}, err
			}

			return Assignment{Name: name.Value, Fragments: frags}, nil

		default:
			return Assignment{}, newSyntaxError(
				"Expected '=' after variable name", tok, p.text)
		}
	}
}

// value parses the fragments of a value up to the end of the line.
//
// Interior white space is kept as whitespace fragments so that the value can
// be reassembled faithfully; leading and trailing white space is trimmed. A
// hash begins a comment only at the start of the line or after white space,
// otherwise it is literal text.
func (p *parser) value() ([]Fragment, error) {
	var frags []Fragment

	comment := false
	for {
		tok, ok := p.next()
		if !ok || tok.Type == TokenNewline {
			break
		}

		if comment {
			// A backslash cannot escape the newline that ends a comment.
			if tok.Type == TokenEscape && strings.HasSuffix(tok.Value, "\n") {
				break
			}

			continue
		}

		switch tok.Type {
		case TokenComment:
			if n := len(frags); n > 0 && frags[n-1].Whitespace {
				comment = true
			} else {
				frags = append(frags, Fragment{Text: tok.Value, Expandable: true})
			}

		case TokenWhitespace:
			frags = append(frags, Fragment{Text: tok.Value, Whitespace: true})

		case TokenEscape:
			frags = append(frags, Fragment{Text: tok.Value[1:]})

		case TokenDQuote, TokenSQuote:
			quoted, err := p.quoted(tok)
			if err != nil {
				return nil, err
			}
			frags = append(frags, quoted...)

		default:
			frags = append(frags, Fragment{Text: tok.Value, Expandable: true})
		}
	}

	// Trim insignificant white space from both ends.
	start, end := 0, len(frags)
	for start < end && frags[start].Whitespace {
		start++
	}
	for end > start && frags[end-1].Whitespace {
		end--
	}
	if start == end {
		return nil, nil
	}

	return frags[start:end], nil
}

// quoted parses the fragments of a quoted span opened by open. The span is
// closed only by a quote mark of the same type and length. Newlines inside
// quotes are literal.
func (p *parser) quoted(open Token) ([]Fragment, error) {
	expand := open.Type == TokenDQuote

	var frags []Fragment
	for {
		tok, ok := p.next()
		if !ok {
			return nil, newSyntaxError("Expected a matching end quote", open, p.text)
		}

		if tok.Type == open.Type && tok.Value == open.Value {
			if len(frags) == 0 {
				// An empty quoted span still assigns the empty string.
				frags = append(frags, Fragment{})
			}

			return frags, nil
		}

		switch tok.Type {
		case TokenEscape:
			if expand {
				frags = append(frags, Fragment{Text: tok.Value[1:]})
			} else if tok.Value[1:] == open.Value {
				// Backslashes are literal in single quotes, so the quote
				// mark the tokenizer paired with this one closes the span.
				frags = append(frags, Fragment{Text: tok.Value[:1]})

				return frags, nil
			} else {
				frags = append(frags, Fragment{Text: tok.Value})
			}

		default:
			frags = append(frags, Fragment{Text: tok.Value, Expandable: expand})
		}
	}
}
