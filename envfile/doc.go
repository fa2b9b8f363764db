// Package envfile parses environment files or strings and expands the
// variables they reference.
//
// The syntax is similar to bash syntax, but simplified and relaxed. Each
// variable assignment must start on a new line and include a variable name
// followed by an equal (=) and then an optional value. White space before
// and after the name and equal and at the end of the line is ignored.
// Values may be optionally quoted to preserve leading and trailing spaces.
// Variables may be unset by excluding the value.
//
// Values may include other variables using bash-like variable substitution:
// $name or ${name}. Unless escaped, variable expansion occurs in unquoted,
// double-quoted ("), and triple double-quoted (""") values. Any character,
// including quotes and newlines, may be escaped using a backslash (\).
//
// Like bash, variable substitutions in single-quoted (') and triple
// single-quoted (''') values are not expanded, and backslash escapes are
// ignored.
//
// Line comments begin at an unquoted and unescaped hash (#) at the
// beginning of a line or after white space and continue to the end of the
// line. Comments are discarded by the parser.
//
// Syntax:
//
//	expression    ::=  (assignment | comment | ws*) "\n"
//	assignment    ::=  ws* name ws* "=" ws* value (ws+ comment)?
//	name          ::=  (letter | "_") (letter | digit | "_")*
//	comment       ::=  "#" not-newline*
//	value         ::=  (double-quoted | single-quoted | unquoted)*
//	double-quoted ::=  dq (not-dq | escaped)* dq
//	single-quoted ::=  sq not-sq* sq
//	unquoted      ::=  (not-quote | escaped)+
//	escaped       ::=  "\" any-character
//	dq            ::=  '"' | '"""'
//	sq            ::=  "'" | "'''"
//	ws            ::=  " " | "\t" | "\r" | "\f" | "\v"
package envfile
