// Package token defines the token types for Leap Screen (.lsx) parsing.
//
// The lexer operates in two modes: script mode (host-language expressions
// and statements) and markup mode (tags, attributes, text). Mode switching
// is driven by the parser, not the lexer; the token set below covers both.
package token

import "fmt"

// Type represents the type of a lexical token.
type Type int32

const (
	// Special tokens
	EOF Type = iota
	ILLEGAL

	// Literals
	IDENT    // identifier
	NUMBER   // 123, 45.67, 1e10
	STRING   // "hello" or 'hello'
	TEMPLATE // `hello ${name}`
	TEXT     // raw markup text between tags

	// Operators
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	ASSIGN   // =
	PLUSEQ   // +=
	MINUSEQ  // -=
	EQ       // ==
	SEQ      // ===
	NE       // !=
	SNE      // !==
	LT       // <
	GT       // >
	LE       // <=
	GE       // >=
	AND      // &&
	OR       // ||
	COALESCE // ??
	BANG     // !
	TILDE    // ~
	INC      // ++
	DEC      // --
	QUESTION // ?
	COLON    // :
	ARROW    // =>
	DOT      // .
	ELLIPSIS // ...
	COMMA    // ,
	SEMI     // ;
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]

	// Markup-only compounds
	LTSLASH // </
	TAGLT   // < opening a tag (disambiguated by the lexer's markup mode)

	// Keywords
	BREAK
	CASE
	CATCH
	CONST
	CONTINUE
	DEFAULT
	ELSE
	EXPORT
	FALSE
	FINALLY
	FOR
	FUNCTION
	IF
	IMPORT
	LET
	NULL
	RETURN
	SWITCH
	TRUE
	TRY
	VAR
	WHILE
)

// String returns a human-readable representation of the token type.
func (t Type) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[Type]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	STRING:   "STRING",
	TEMPLATE: "TEMPLATE",
	TEXT:     "TEXT",

	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	SLASH:    "/",
	PERCENT:  "%",
	ASSIGN:   "=",
	PLUSEQ:   "+=",
	MINUSEQ:  "-=",
	EQ:       "==",
	SEQ:      "===",
	NE:       "!=",
	SNE:      "!==",
	LT:       "<",
	GT:       ">",
	LE:       "<=",
	GE:       ">=",
	AND:      "&&",
	OR:       "||",
	COALESCE: "??",
	BANG:     "!",
	TILDE:    "~",
	INC:      "++",
	DEC:      "--",
	QUESTION: "?",
	COLON:    ":",
	ARROW:    "=>",
	DOT:      ".",
	ELLIPSIS: "...",
	COMMA:    ",",
	SEMI:     ";",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACE:   "{",
	RBRACE:   "}",
	LBRACKET: "[",
	RBRACKET: "]",

	LTSLASH: "</",
	TAGLT:   "<",

	BREAK:    "break",
	CASE:     "case",
	CATCH:    "catch",
	CONST:    "const",
	CONTINUE: "continue",
	DEFAULT:  "default",
	ELSE:     "else",
	EXPORT:   "export",
	FALSE:    "false",
	FINALLY:  "finally",
	FOR:      "for",
	FUNCTION: "function",
	IF:       "if",
	IMPORT:   "import",
	LET:      "let",
	NULL:     "null",
	RETURN:   "return",
	SWITCH:   "switch",
	TRUE:     "true",
	TRY:      "try",
	VAR:      "var",
	WHILE:    "while",
}

// keywords maps keyword strings to their token types.
var keywords = map[string]Type{
	"break":    BREAK,
	"case":     CASE,
	"catch":    CATCH,
	"const":    CONST,
	"continue": CONTINUE,
	"default":  DEFAULT,
	"else":     ELSE,
	"export":   EXPORT,
	"false":    FALSE,
	"finally":  FINALLY,
	"for":      FOR,
	"function": FUNCTION,
	"if":       IF,
	"import":   IMPORT,
	"let":      LET,
	"null":     NULL,
	"return":   RETURN,
	"switch":   SWITCH,
	"true":     TRUE,
	"try":      TRY,
	"var":      VAR,
	"while":    WHILE,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t Type) bool {
	return t >= BREAK && t <= WHILE
}

// IsLiteral returns true if the token type is a literal.
func IsLiteral(t Type) bool {
	switch t {
	case NUMBER, STRING, TEMPLATE, TRUE, FALSE, NULL:
		return true
	}
	return false
}

// Token represents a lexical token with position information.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}
