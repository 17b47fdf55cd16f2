package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type TokenType int

// The list of token types
const (
	EOF TokenType = iota
	ERROR

	// Keywords
	CLASS
	INHERITS
	ISVOID
	IF
	ELSE
	FI
	THEN
	LET
	IN
	WHILE
	CASE
	ESAC
	LOOP
	POOL
	NEW
	OF
	NOT

	// Constants
	STR_CONST
	BOOL_CONST
	INT_CONST

	// Identifiers
	TYPEID
	OBJECTID

	// Operators
	ASSIGN // <-
	DARROW // =>
	LT     // <
	LE     // <=
	EQ     // =
	PLUS   // +
	MINUS  // -
	TIMES  // *
	DIVIDE // /
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	SEMI   // ;
	COLON  // :
	COMMA  // ,
	DOT    // .
	AT     // @
	NEG    // ~
)

var tokenNames = [...]string{
	"EOF", "ERROR",
	"CLASS", "INHERITS", "ISVOID", "IF", "ELSE", "FI", "THEN",
	"LET", "IN", "WHILE", "CASE", "ESAC", "LOOP", "POOL",
	"NEW", "OF", "NOT",
	"STR_CONST", "BOOL_CONST", "INT_CONST",
	"TYPEID", "OBJECTID",
	"ASSIGN", "DARROW", "LT", "LE", "EQ", "PLUS", "MINUS",
	"TIMES", "DIVIDE", "LPAREN", "RPAREN", "LBRACE", "RBRACE",
	"SEMI", "COLON", "COMMA", "DOT", "AT", "NEG",
}

func (tt TokenType) String() string {
	if int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return "TokenType(" + strconv.Itoa(int(tt)) + ")"
}

// keywords are matched case-insensitively.
var keywords = map[string]TokenType{
	"class":    CLASS,
	"inherits": INHERITS,
	"isvoid":   ISVOID,
	"if":       IF,
	"fi":       FI,
	"else":     ELSE,
	"then":     THEN,
	"case":     CASE,
	"esac":     ESAC,
	"while":    WHILE,
	"loop":     LOOP,
	"pool":     POOL,
	"of":       OF,
	"let":      LET,
	"in":       IN,
	"new":      NEW,
	"not":      NOT,
}

// single maps one-character tokens that never start a longer token.
var single = map[rune]TokenType{
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	';': SEMI,
	':': COLON,
	',': COMMA,
	'+': PLUS,
	'*': TIMES,
	'/': DIVIDE,
	'~': NEG,
	'.': DOT,
	'@': AT,
}

// MaxStringLength is the longest string constant the scanner accepts.
const MaxStringLength = 1024

// Token represents a lexical token with its type, value, and position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) %d:%d", t.Type, t.Literal, t.Line, t.Column)
}

// Lexer is the lexical analyzer.
type Lexer struct {
	reader *bufio.Reader
	line   int
	column int
	char   rune
}

// NewLexer creates a new lexer from an io.Reader
func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		line:   1,
		column: 0,
		char:   ' ',
	}
}

// readChar reads the next character from the input.
func (l *Lexer) readChar() {
	if l.char == '\n' {
		l.line++
		l.column = 0
	}

	var err error
	l.char, _, err = l.reader.ReadRune()
	if err != nil {
		l.char = 0 // EOF
		return
	}
	l.column++
}

// peekChar returns the next character without advancing the stream.
func (l *Lexer) peekChar() rune {
	char, _, err := l.reader.ReadRune()
	if err != nil {
		return 0
	}
	l.reader.UnreadRune()
	return char
}

func (l *Lexer) skipWhiteSpace() {
	for l.char != 0 && unicode.IsSpace(l.char) {
		l.readChar()
	}
}

func (l *Lexer) readWhile(pred func(rune) bool) string {
	var sb strings.Builder
	for l.char != 0 && pred(l.char) {
		sb.WriteRune(l.char)
		l.readChar()
	}
	return sb.String()
}

func isIdentifierPart(char rune) bool {
	return unicode.IsLetter(char) || unicode.IsDigit(char) || char == '_'
}

func (l *Lexer) readString() (string, error) {
	var sb strings.Builder
	startLine := l.line

	l.readChar() // opening quote
	for l.char != '"' {
		switch l.char {
		case 0:
			return "", fmt.Errorf("EOF in string constant starting at line %d", startLine)
		case '\n':
			l.readChar()
			return "", fmt.Errorf("unterminated string constant at line %d", startLine)
		case '\\':
			l.readChar()
			switch l.char {
			case 'b':
				sb.WriteRune('\b')
			case 't':
				sb.WriteRune('\t')
			case 'n':
				sb.WriteRune('\n')
			case 'f':
				sb.WriteRune('\f')
			case 0:
				return "", fmt.Errorf("EOF in string constant starting at line %d", startLine)
			default:
				// includes an escaped newline, which continues the string
				sb.WriteRune(l.char)
			}
		default:
			sb.WriteRune(l.char)
		}
		l.readChar()
	}
	l.readChar() // closing quote

	if sb.Len() > MaxStringLength {
		return "", fmt.Errorf("string constant too long at line %d", startLine)
	}
	return sb.String(), nil
}

// skipLineComment consumes a -- comment up to the end of the line.
func (l *Lexer) skipLineComment() {
	for l.char != '\n' && l.char != 0 {
		l.readChar()
	}
}

// skipBlockComment consumes a possibly nested (* ... *) comment. It reports
// false when the input ends inside the comment.
func (l *Lexer) skipBlockComment() bool {
	l.readChar() // (
	l.readChar() // *
	nesting := 1

	for nesting > 0 {
		switch {
		case l.char == 0:
			return false
		case l.char == '(' && l.peekChar() == '*':
			l.readChar()
			nesting++
		case l.char == '*' && l.peekChar() == ')':
			l.readChar()
			nesting--
		}
		l.readChar()
	}
	return true
}

func (l *Lexer) NextToken() Token {
	for {
		l.skipWhiteSpace()
		if l.char == '-' && l.peekChar() == '-' {
			l.skipLineComment()
			continue
		}
		if l.char == '(' && l.peekChar() == '*' {
			line := l.line
			if !l.skipBlockComment() {
				return Token{Type: ERROR, Literal: "EOF in comment", Line: line, Column: l.column}
			}
			continue
		}
		if l.char == '*' && l.peekChar() == ')' {
			tok := Token{Type: ERROR, Literal: "Unmatched *)", Line: l.line, Column: l.column}
			l.readChar()
			l.readChar()
			return tok
		}
		break
	}

	tok := Token{Line: l.line, Column: l.column}

	if tt, ok := single[l.char]; ok {
		tok.Type = tt
		tok.Literal = string(l.char)
		l.readChar()
		return tok
	}

	switch {
	case l.char == 0:
		tok.Type = EOF
	case l.char == '(':
		tok.Type = LPAREN
		tok.Literal = "("
		l.readChar()
	case l.char == '-':
		tok.Type = MINUS
		tok.Literal = "-"
		l.readChar()
	case l.char == '=':
		l.readChar()
		if l.char == '>' {
			l.readChar()
			tok.Type, tok.Literal = DARROW, "=>"
		} else {
			tok.Type, tok.Literal = EQ, "="
		}
	case l.char == '<':
		l.readChar()
		switch l.char {
		case '-':
			l.readChar()
			tok.Type, tok.Literal = ASSIGN, "<-"
		case '=':
			l.readChar()
			tok.Type, tok.Literal = LE, "<="
		default:
			tok.Type, tok.Literal = LT, "<"
		}
	case l.char == '"':
		str, err := l.readString()
		if err != nil {
			tok.Type = ERROR
			tok.Literal = err.Error()
		} else {
			tok.Type = STR_CONST
			tok.Literal = str
		}
	case unicode.IsDigit(l.char):
		tok.Literal = l.readWhile(unicode.IsDigit)
		tok.Type = INT_CONST
		if _, err := strconv.ParseInt(tok.Literal, 10, 32); err != nil {
			tok.Type = ERROR
			tok.Literal = "integer constant out of range: " + tok.Literal
		}
	case unicode.IsLetter(l.char):
		tok.Literal = l.readWhile(isIdentifierPart)
		tok.Type = identifierType(tok.Literal)
	default:
		tok.Type = ERROR
		tok.Literal = fmt.Sprintf("unexpected character: %q", l.char)
		l.readChar()
	}

	return tok
}

// identifierType classifies a word: keywords ignore case, true and false must
// start with a lower-case letter, and the case of the first letter separates
// type names from object names.
func identifierType(word string) TokenType {
	lower := strings.ToLower(word)
	if tt, ok := keywords[lower]; ok {
		return tt
	}
	first := rune(word[0])
	if (lower == "true" || lower == "false") && unicode.IsLower(first) {
		return BOOL_CONST
	}
	if unicode.IsUpper(first) {
		return TYPEID
	}
	return OBJECTID
}
