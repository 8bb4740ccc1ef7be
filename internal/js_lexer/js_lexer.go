// Package js_lexer tokenizes JavaScript/TypeScript/JSX source text.
//
// Structured after esbuild's internal/js_lexer: a single forward-scanning
// Lexer that produces one Token at a time, tracks whether a newline
// preceded the current token (for automatic semicolon insertion), and
// leaves string/template/regex literal bodies as raw slices for the parser
// to interpret. This lexer covers the ECMAScript + JSX + lightweight-TS
// subset the route-chunking analyzer needs; it does not attempt full
// TypeScript grammar (decorators, enums, namespaces are not lexed
// specially — they tokenize as ordinary identifiers/punctuation and the
// parser treats the resulting statement as opaque).
package js_lexer

import (
	"fmt"
	"strings"
)

type T uint8

const (
	TEndOfFile T = iota
	TIdentifier
	TNumericLiteral
	TStringLiteral
	TNoSubstitutionTemplateLiteral
	TTemplateHead
	TTemplateMiddle
	TTemplateTail
	TRegExpLiteral
	TPunctuation
)

type Token struct {
	Type             T
	Raw              string
	HasNewlineBefore bool
	Start            int32
}

type Lexer struct {
	Source         string
	current        int
	start          int
	Token          Token
	prevSignificant T // used for regex-vs-divide disambiguation
}

func NewLexer(source string) *Lexer {
	l := &Lexer{Source: source}
	l.Next()
	return l
}

func (l *Lexer) Loc() int32 { return int32(l.Token.Start) }

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8Lead
}

const utf8Lead = 0x80

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Next scans the next token, skipping whitespace and comments.
func (l *Lexer) Next() {
	hadNewline := false
	for l.current < len(l.Source) {
		c := l.Source[l.current]
		switch c {
		case ' ', '\t', '\r':
			l.current++
			continue
		case '\n':
			hadNewline = true
			l.current++
			continue
		case '/':
			if l.current+1 < len(l.Source) && l.Source[l.current+1] == '/' {
				for l.current < len(l.Source) && l.Source[l.current] != '\n' {
					l.current++
				}
				continue
			}
			if l.current+1 < len(l.Source) && l.Source[l.current+1] == '*' {
				l.current += 2
				for l.current < len(l.Source) {
					if l.Source[l.current] == '\n' {
						hadNewline = true
					}
					if l.Source[l.current] == '*' && l.current+1 < len(l.Source) && l.Source[l.current+1] == '/' {
						l.current += 2
						break
					}
					l.current++
				}
				continue
			}
		}
		break
	}

	l.start = l.current
	if l.current >= len(l.Source) {
		l.setToken(TEndOfFile, hadNewline)
		return
	}

	c := l.Source[l.current]
	switch {
	case isIdentStart(c):
		l.current++
		for l.current < len(l.Source) && isIdentPart(l.Source[l.current]) {
			l.current++
		}
		l.setToken(TIdentifier, hadNewline)

	case isDigit(c) || (c == '.' && l.current+1 < len(l.Source) && isDigit(l.Source[l.current+1])):
		l.scanNumber()
		l.setToken(TNumericLiteral, hadNewline)

	case c == '"' || c == '\'':
		l.scanString(c)
		l.setToken(TStringLiteral, hadNewline)

	case c == '`':
		l.current++
		l.scanTemplatePart()
		l.setToken(l.templateTokenType(true), hadNewline)

	case c == '/' && l.regexAllowedHere():
		l.scanRegExp()
		l.setToken(TRegExpLiteral, hadNewline)

	default:
		l.scanPunctuation()
		l.setToken(TPunctuation, hadNewline)
	}
}

func (l *Lexer) setToken(t T, hadNewline bool) {
	l.Token = Token{Type: t, Raw: l.Source[l.start:l.current], HasNewlineBefore: hadNewline, Start: int32(l.start)}
	if t != TEndOfFile {
		l.prevSignificant = t
	}
}

func (l *Lexer) scanNumber() {
	for l.current < len(l.Source) && (isIdentPart(l.Source[l.current]) || l.Source[l.current] == '.') {
		l.current++
	}
}

func (l *Lexer) scanString(quote byte) {
	l.current++
	for l.current < len(l.Source) {
		c := l.Source[l.current]
		if c == '\\' {
			l.current += 2
			continue
		}
		if c == quote {
			l.current++
			return
		}
		l.current++
	}
}

// scanTemplatePart scans from just after a "`" or "}" up to the next "`" or
// unescaped "${", leaving the cursor positioned after that delimiter.
func (l *Lexer) scanTemplatePart() {
	for l.current < len(l.Source) {
		c := l.Source[l.current]
		if c == '\\' {
			l.current += 2
			continue
		}
		if c == '`' {
			l.current++
			return
		}
		if c == '$' && l.current+1 < len(l.Source) && l.Source[l.current+1] == '{' {
			l.current += 2
			return
		}
		l.current++
	}
}

func (l *Lexer) templateTokenType(head bool) T {
	closer := l.Source[l.current-1]
	if closer == '`' {
		if head {
			return TNoSubstitutionTemplateLiteral
		}
		return TTemplateTail
	}
	if head {
		return TTemplateHead
	}
	return TTemplateMiddle
}

// NextTemplatePart is called by the parser after it has fully parsed the
// "${ expr }" that followed a TTemplateHead/TTemplateMiddle, with the lexer
// currently sitting just after the matching "}".
func (l *Lexer) NextTemplatePart() {
	l.start = l.current
	l.scanTemplatePart()
	l.setToken(l.templateTokenType(false), false)
}

func (l *Lexer) regexAllowedHere() bool {
	switch l.prevSignificant {
	case TIdentifier, TNumericLiteral, TStringLiteral, TRegExpLiteral,
		TNoSubstitutionTemplateLiteral, TTemplateTail:
		return false
	}
	if l.prevSignificant == TPunctuation {
		// A regex cannot immediately follow ")", "]", "}" (these usually close
		// a value-producing construct). This is the same heuristic esbuild's
		// lexer notes as the classic ambiguity between division and regex.
		switch l.Token.Raw {
		case ")", "]", "}":
			return false
		}
		return true
	}
	return true
}

func (l *Lexer) scanRegExp() {
	l.current++ // consume leading '/'
	inClass := false
	for l.current < len(l.Source) {
		c := l.Source[l.current]
		if c == '\\' {
			l.current += 2
			continue
		}
		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			l.current++
			break
		}
		l.current++
	}
	for l.current < len(l.Source) && isIdentPart(l.Source[l.current]) {
		l.current++
	}
}

var punctuators = []string{
	">>>=", "...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>", "**",
	"{", "}", "(", ")", "[", "]", ".", ";", ",", "<", ">", "+", "-",
	"*", "%", "&", "|", "^", "!", "~", "?", ":", "=", "/", "@",
}

func (l *Lexer) scanPunctuation() {
	rest := l.Source[l.current:]
	for _, p := range punctuators {
		if strings.HasPrefix(rest, p) {
			l.current += len(p)
			return
		}
	}
	// Unknown byte: consume it as a single-byte punctuation token so the
	// parser can report a precise error instead of the lexer looping.
	l.current++
}

func (l *Lexer) Raw() string { return l.Token.Raw }

func (l *Lexer) IsPunct(s string) bool {
	return l.Token.Type == TPunctuation && l.Token.Raw == s
}

func (l *Lexer) IsIdentifier(name string) bool {
	return l.Token.Type == TIdentifier && l.Token.Raw == name
}

func (l *Lexer) Expect(t T, what string) error {
	if l.Token.Type != t {
		return fmt.Errorf("expected %s but found %q", what, l.Token.Raw)
	}
	return nil
}

// Slice returns the literal bytes between two lexer positions, for capturing
// opaque spans (type annotations, regex literals, unparsed statements).
func (l *Lexer) Slice(start, end int32) string {
	return l.Source[start:end]
}

// Pos returns the current byte offset of the lexer head (after the current
// token), used to capture opaque spans that run to a balanced delimiter.
func (l *Lexer) Pos() int32 { return int32(l.current) }

func (l *Lexer) RestoreTo(pos int32) {
	l.current = int(pos)
	l.Next()
}
