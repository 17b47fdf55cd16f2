package lexer

import (
	"strings"
	"testing"
)

type lexerTest struct {
	input             string
	expectedTokenType []TokenType
	expectedLiteral   []string
}

func runLexerTest(t *testing.T, test lexerTest) {
	t.Helper()
	l := NewLexer(strings.NewReader(test.input))
	for i, expTType := range test.expectedTokenType {
		tok := l.NextToken()
		if tok.Type != expTType {
			t.Fatalf("[%q]: wrong type for token %d. expected=%s, got=%s", test.input, i, expTType, tok.Type)
		}
		if test.expectedLiteral != nil && tok.Literal != test.expectedLiteral[i] {
			t.Fatalf("[%q]: wrong literal for token %d. expected=%q, got=%q", test.input, i, test.expectedLiteral[i], tok.Literal)
		}
	}
}

func TestNextToken(t *testing.T) {
	tests := []lexerTest{
		{
			"class Main inherits IO {};",
			[]TokenType{CLASS, TYPEID, INHERITS, TYPEID, LBRACE, RBRACE, SEMI, EOF},
			[]string{"class", "Main", "inherits", "IO", "{", "}", ";", ""},
		},
		{
			"x <- true; -- comment\nx <- false;",
			[]TokenType{OBJECTID, ASSIGN, BOOL_CONST, SEMI, OBJECTID, ASSIGN, BOOL_CONST, SEMI, EOF},
			[]string{"x", "<-", "true", ";", "x", "<-", "false", ";", ""},
		},
		{
			"a <= b < c = d => e",
			[]TokenType{OBJECTID, LE, OBJECTID, LT, OBJECTID, EQ, OBJECTID, DARROW, OBJECTID, EOF},
			[]string{"a", "<=", "b", "<", "c", "=", "d", "=>", "e", ""},
		},
		{
			"e@A.f(~1 + 2 * 3 / 4 - 5)",
			[]TokenType{OBJECTID, AT, TYPEID, DOT, OBJECTID, LPAREN, NEG, INT_CONST, PLUS, INT_CONST,
				TIMES, INT_CONST, DIVIDE, INT_CONST, MINUS, INT_CONST, RPAREN, EOF},
			nil,
		},
		{
			"let a:A in case a of b:B => isvoid b; esac",
			[]TokenType{LET, OBJECTID, COLON, TYPEID, IN, CASE, OBJECTID, OF, OBJECTID, COLON, TYPEID,
				DARROW, ISVOID, OBJECTID, SEMI, ESAC, EOF},
			nil,
		},
		{
			"while not x loop new SELF_TYPE pool",
			[]TokenType{WHILE, NOT, OBJECTID, LOOP, NEW, TYPEID, POOL, EOF},
			[]string{"while", "not", "x", "loop", "new", "SELF_TYPE", "pool", ""},
		},
	}

	for _, tt := range tests {
		runLexerTest(t, tt)
	}
}

func TestCaseRules(t *testing.T) {
	tests := []lexerTest{
		{"CLASS Class cLaSs", []TokenType{CLASS, CLASS, CLASS, EOF}, nil},
		{"IF x THEN y ELSE z FI", []TokenType{IF, OBJECTID, THEN, OBJECTID, ELSE, OBJECTID, FI, EOF}, nil},
		{"tRUE fALSE", []TokenType{BOOL_CONST, BOOL_CONST, EOF}, []string{"tRUE", "fALSE", ""}},
		{"True False", []TokenType{TYPEID, TYPEID, EOF}, nil},
		{"x_1 Y_2", []TokenType{OBJECTID, TYPEID, EOF}, []string{"x_1", "Y_2", ""}},
	}
	for _, tt := range tests {
		runLexerTest(t, tt)
	}
}

func TestComments(t *testing.T) {
	tests := []lexerTest{
		{"(* a (* nested *) comment *) x", []TokenType{OBJECTID, EOF}, []string{"x", ""}},
		{"-- only a comment", []TokenType{EOF}, nil},
		{"x (* unterminated", []TokenType{OBJECTID, ERROR}, []string{"x", "EOF in comment"}},
		{"*) x", []TokenType{ERROR, OBJECTID}, []string{"Unmatched *)", "x"}},
		{"a - b", []TokenType{OBJECTID, MINUS, OBJECTID, EOF}, nil},
	}
	for _, tt := range tests {
		runLexerTest(t, tt)
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []lexerTest{
		{`"hello\tworld\n"`, []TokenType{STR_CONST, EOF}, []string{"hello\tworld\n", ""}},
		{`"say \"hi\""`, []TokenType{STR_CONST, EOF}, []string{`say "hi"`, ""}},
		{`"\c"`, []TokenType{STR_CONST, EOF}, []string{"c", ""}},
		{"\"line\\\ncontinues\"", []TokenType{STR_CONST, EOF}, []string{"line\ncontinues", ""}},
	}
	for _, tt := range tests {
		runLexerTest(t, tt)
	}

	t.Run("unterminated", func(t *testing.T) {
		l := NewLexer(strings.NewReader("\"abc\nx"))
		if tok := l.NextToken(); tok.Type != ERROR {
			t.Fatalf("expected ERROR, got %s", tok)
		}
		if tok := l.NextToken(); tok.Type != OBJECTID || tok.Literal != "x" {
			t.Fatalf("expected lexing to resume at x, got %s", tok)
		}
	})

	t.Run("too long", func(t *testing.T) {
		input := `"` + strings.Repeat("a", MaxStringLength+1) + `"`
		l := NewLexer(strings.NewReader(input))
		if tok := l.NextToken(); tok.Type != ERROR {
			t.Fatalf("expected ERROR, got %s", tok.Type)
		}
	})
}

func TestIntegerRange(t *testing.T) {
	runLexerTest(t, lexerTest{"2147483647", []TokenType{INT_CONST}, []string{"2147483647"}})
	runLexerTest(t, lexerTest{"2147483648", []TokenType{ERROR}, nil})
}

func TestPositions(t *testing.T) {
	l := NewLexer(strings.NewReader("class A {\n  x : Int;\n};"))
	want := []struct {
		typ  TokenType
		line int
		col  int
	}{
		{CLASS, 1, 1}, {TYPEID, 1, 7}, {LBRACE, 1, 9},
		{OBJECTID, 2, 3}, {COLON, 2, 5}, {TYPEID, 2, 7}, {SEMI, 2, 10},
		{RBRACE, 3, 1}, {SEMI, 3, 2},
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.typ || tok.Line != w.line || tok.Column != w.col {
			t.Fatalf("token %d: expected %s at %d:%d, got %s", i, w.typ, w.line, w.col, tok)
		}
	}
}
