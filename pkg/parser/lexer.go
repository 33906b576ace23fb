package parser

import (
	"strings"

	"github.com/leapstack-labs/leapview/pkg/token"
)

// Lexer tokenizes .lsx input.
//
// Script tokens come from Next. Inside element children the parser calls
// NextText instead, which treats the input as raw markup text delimited
// by '<' and '{'. The parser, not the lexer, decides which mode applies;
// the lexer itself is stateless about markup nesting, which is what makes
// snapshot/restore backtracking a plain struct copy.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// peekChar2 returns the character after next without advancing.
func (l *Lexer) peekChar2() byte {
	if l.readPos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.readPos+1]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// Next returns the next script-mode token.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Pos: pos}
	case isIdentStart(l.ch):
		lit := l.readIdent()
		return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos}
	case isDigit(l.ch):
		return l.readNumber(pos)
	case l.ch == '"' || l.ch == '\'':
		return l.readString(pos, l.ch)
	case l.ch == '`':
		return l.readTemplate(pos)
	}

	return l.readOperator(pos)
}

// NextText returns the next markup-children token: raw TEXT up to the
// next delimiter, or the delimiter itself (TAGLT, LTSLASH, LBRACE).
// Text that trims to the empty string is swallowed.
func (l *Lexer) NextText() token.Token {
	for {
		pos := l.currentPos()

		switch l.ch {
		case 0:
			return token.Token{Type: token.EOF, Pos: pos}
		case '<':
			if l.peekChar() == '/' {
				l.readChar()
				l.readChar()
				return token.Token{Type: token.LTSLASH, Literal: "</", Pos: pos}
			}
			l.readChar()
			return token.Token{Type: token.TAGLT, Literal: "<", Pos: pos}
		case '{':
			l.readChar()
			return token.Token{Type: token.LBRACE, Literal: "{", Pos: pos}
		}

		start := l.pos
		for l.ch != 0 && l.ch != '<' && l.ch != '{' {
			l.readChar()
		}
		text := strings.TrimSpace(l.input[start:l.pos])
		if text != "" {
			return token.Token{Type: token.TEXT, Literal: text, Pos: pos}
		}
		// Pure whitespace between tags: loop and emit the delimiter.
	}
}

// skipWhitespaceAndComments consumes whitespace, // line comments and
// /* block comments */.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != 0 && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
		default:
			return
		}
	}
}

// readIdent reads an identifier or keyword.
func (l *Lexer) readIdent() string {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads an integer or floating-point literal.
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return token.Token{Type: token.NUMBER, Literal: l.input[start:l.pos], Pos: pos}
}

// readString reads a quoted string literal, resolving escapes.
func (l *Lexer) readString(pos token.Position, quote byte) token.Token {
	var sb strings.Builder
	l.readChar() // consume opening quote
	for l.ch != 0 && l.ch != quote {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\', '"', '\'', '`':
				sb.WriteByte(l.ch)
			default:
				sb.WriteByte('\\')
				sb.WriteByte(l.ch)
			}
			l.readChar()
			continue
		}
		if l.ch == '\n' {
			// Unterminated: report at the opening quote.
			return token.Token{Type: token.ILLEGAL, Literal: "unterminated string literal", Pos: pos}
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	if l.ch == 0 {
		return token.Token{Type: token.ILLEGAL, Literal: "unterminated string literal", Pos: pos}
	}
	l.readChar() // consume closing quote
	return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos}
}

// readTemplate reads a backtick template literal. The contents are kept
// raw; templates parse but are rejected by the handler serializer.
func (l *Lexer) readTemplate(pos token.Position) token.Token {
	start := l.pos
	l.readChar()
	for l.ch != 0 && l.ch != '`' {
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	if l.ch == 0 {
		return token.Token{Type: token.ILLEGAL, Literal: "unterminated template literal", Pos: pos}
	}
	l.readChar()
	return token.Token{Type: token.TEMPLATE, Literal: l.input[start:l.pos], Pos: pos}
}

// readOperator reads a punctuation token, longest match first.
func (l *Lexer) readOperator(pos token.Position) token.Token {
	mk := func(t token.Type, lit string) token.Token {
		for range lit {
			l.readChar()
		}
		return token.Token{Type: t, Literal: lit, Pos: pos}
	}

	switch l.ch {
	case '+':
		switch l.peekChar() {
		case '+':
			return mk(token.INC, "++")
		case '=':
			return mk(token.PLUSEQ, "+=")
		}
		return mk(token.PLUS, "+")
	case '-':
		switch l.peekChar() {
		case '-':
			return mk(token.DEC, "--")
		case '=':
			return mk(token.MINUSEQ, "-=")
		}
		return mk(token.MINUS, "-")
	case '*':
		return mk(token.STAR, "*")
	case '/':
		return mk(token.SLASH, "/")
	case '%':
		return mk(token.PERCENT, "%")
	case '=':
		if l.peekChar() == '=' {
			if l.peekChar2() == '=' {
				return mk(token.SEQ, "===")
			}
			return mk(token.EQ, "==")
		}
		if l.peekChar() == '>' {
			return mk(token.ARROW, "=>")
		}
		return mk(token.ASSIGN, "=")
	case '!':
		if l.peekChar() == '=' {
			if l.peekChar2() == '=' {
				return mk(token.SNE, "!==")
			}
			return mk(token.NE, "!=")
		}
		return mk(token.BANG, "!")
	case '<':
		if l.peekChar() == '=' {
			return mk(token.LE, "<=")
		}
		return mk(token.LT, "<")
	case '>':
		if l.peekChar() == '=' {
			return mk(token.GE, ">=")
		}
		return mk(token.GT, ">")
	case '&':
		if l.peekChar() == '&' {
			return mk(token.AND, "&&")
		}
	case '|':
		if l.peekChar() == '|' {
			return mk(token.OR, "||")
		}
	case '?':
		if l.peekChar() == '?' {
			return mk(token.COALESCE, "??")
		}
		return mk(token.QUESTION, "?")
	case '~':
		return mk(token.TILDE, "~")
	case ':':
		return mk(token.COLON, ":")
	case '.':
		if l.peekChar() == '.' && l.peekChar2() == '.' {
			return mk(token.ELLIPSIS, "...")
		}
		return mk(token.DOT, ".")
	case ',':
		return mk(token.COMMA, ",")
	case ';':
		return mk(token.SEMI, ";")
	case '(':
		return mk(token.LPAREN, "(")
	case ')':
		return mk(token.RPAREN, ")")
	case '{':
		return mk(token.LBRACE, "{")
	case '}':
		return mk(token.RBRACE, "}")
	case '[':
		return mk(token.LBRACKET, "[")
	case ']':
		return mk(token.RBRACKET, "]")
	}

	lit := string(l.ch)
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: lit, Pos: pos}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
