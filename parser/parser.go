package parser

import (
	"fmt"
	"io"
	"strconv"

	"cool-checker/ast"
	"cool-checker/lexer"
)

const (
	_ int = iota
	LOWEST
	ASSIGN  // <- (right associative, parsed as a prefix form)
	NOT     // not
	COMPARE // <=, <, =
	SUM     // +, -
	PRODUCT // *, /
	ISVOID  // isvoid
	NEG     // ~
	AT      // @
	DOT     // . (highest precedence)
)

var precedences = map[lexer.TokenType]int{
	lexer.EQ:     COMPARE,
	lexer.LE:     COMPARE,
	lexer.LT:     COMPARE,
	lexer.PLUS:   SUM,
	lexer.MINUS:  SUM,
	lexer.TIMES:  PRODUCT,
	lexer.DIVIDE: PRODUCT,
	lexer.AT:     AT,
	lexer.DOT:    DOT,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Error is a syntax error at a source position.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("line %d col %d: %s", e.Line, e.Column, e.Message)
}

type Parser struct {
	l              *lexer.Lexer
	curToken       lexer.Token
	peekToken      lexer.Token
	errors         []Error
	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: make(map[lexer.TokenType]prefixParseFn),
		infixParseFns:  make(map[lexer.TokenType]infixParseFn),
	}

	p.nextToken()
	p.nextToken()

	p.registerPrefix(lexer.INT_CONST, p.parseIntegerExpression)
	p.registerPrefix(lexer.STR_CONST, p.parseStringExpression)
	p.registerPrefix(lexer.BOOL_CONST, p.parseBoolExpression)
	p.registerPrefix(lexer.OBJECTID, p.parseObjectIdentifier)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(lexer.IF, p.parseIfExpression)
	p.registerPrefix(lexer.WHILE, p.parseWhileExpression)
	p.registerPrefix(lexer.LET, p.parseLetExpression)
	p.registerPrefix(lexer.CASE, p.parseCaseExpression)
	p.registerPrefix(lexer.NEW, p.parseNewExpression)
	p.registerPrefix(lexer.ISVOID, p.parseIsvoidExpression)
	p.registerPrefix(lexer.NOT, p.parseNotExpression)
	p.registerPrefix(lexer.NEG, p.parseNegExpression)
	p.registerPrefix(lexer.LBRACE, p.parseBlockExpression)

	for _, op := range []lexer.TokenType{lexer.PLUS, lexer.MINUS, lexer.TIMES, lexer.DIVIDE, lexer.LT, lexer.LE, lexer.EQ} {
		p.registerInfix(op, p.parseInfixExpression)
	}
	p.registerInfix(lexer.DOT, p.parseMethodCall)
	p.registerInfix(lexer.AT, p.parseStaticMethodCall)

	return p
}

// ParseFile parses one source file and stamps every class with its filename.
func ParseFile(filename string, src io.Reader) (*ast.Program, []Error) {
	p := New(lexer.NewLexer(src))
	prog := p.ParseProgram()
	for _, class := range prog.Classes {
		class.Filename = filename
	}
	return prog, p.Errors()
}

func (p *Parser) Errors() []Error {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	for p.peekToken.Type == lexer.ERROR {
		p.errorAt(p.peekToken, p.peekToken.Literal)
		p.peekToken = p.l.NextToken()
	}
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) errorAt(tok lexer.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, Error{
		Line:    tok.Line,
		Column:  tok.Column,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) peekError(t lexer.TokenType) {
	p.errorAt(p.peekToken, "expected next token to be %v, got %v", t, p.peekToken.Type)
}

func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}

	for !p.curTokenIs(lexer.EOF) {
		class := p.ParseClass()
		if class == nil {
			p.skipPast(lexer.CLASS)
			continue
		}
		prog.Classes = append(prog.Classes, class)

		if !p.expectPeek(lexer.SEMI) {
			p.skipPast(lexer.CLASS)
			continue
		}
		p.nextToken()
	}

	return prog
}

// skipPast advances until the current token is one of tokens or EOF, always
// consuming at least one token.
func (p *Parser) skipPast(tokens ...lexer.TokenType) {
	p.nextToken()
	for !p.curTokenIs(lexer.EOF) {
		for _, t := range tokens {
			if p.curTokenIs(t) {
				return
			}
		}
		p.nextToken()
	}
}

// class TYPE [inherits TYPE] { [[feature;]]* }
func (p *Parser) ParseClass() *ast.Class {
	if !p.curTokenIs(lexer.CLASS) {
		p.errorAt(p.curToken, "expected class, got %s", p.curToken.Type)
		return nil
	}

	c := &ast.Class{Token: p.curToken}

	if !p.expectPeek(lexer.TYPEID) {
		return nil
	}
	c.Name = p.typeIdentifier()

	if p.peekTokenIs(lexer.INHERITS) {
		p.nextToken()
		if !p.expectPeek(lexer.TYPEID) {
			return nil
		}
		c.Parent = p.typeIdentifier()
	} else {
		c.Parent = &ast.TypeIdentifier{
			Token: lexer.Token{Type: lexer.TYPEID, Literal: "Object", Line: c.Token.Line},
			Value: ast.Object,
		}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	p.nextToken()

	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		feature := p.parseFeature()
		if feature == nil {
			return nil
		}
		c.Features = append(c.Features, feature)

		if !p.expectPeek(lexer.SEMI) {
			return nil
		}
		p.nextToken()
	}

	if !p.curTokenIs(lexer.RBRACE) {
		p.errorAt(p.curToken, "expected } at end of class %s", c.Name.Value)
		return nil
	}
	return c
}

func (p *Parser) typeIdentifier() *ast.TypeIdentifier {
	return &ast.TypeIdentifier{Token: p.curToken, Value: ast.Symbol(p.curToken.Literal)}
}

func (p *Parser) objectIdentifier() *ast.ObjectIdentifier {
	return &ast.ObjectIdentifier{Token: p.curToken, Value: ast.Symbol(p.curToken.Literal)}
}

func (p *Parser) parseFeature() ast.Feature {
	if !p.curTokenIs(lexer.OBJECTID) {
		p.errorAt(p.curToken, "expected feature name, got %s", p.curToken.Type)
		return nil
	}
	if p.peekTokenIs(lexer.LPAREN) {
		if m := p.parseMethod(); m != nil {
			return m
		}
		return nil
	}
	if a := p.parseAttribute(); a != nil {
		return a
	}
	return nil
}

// ID( [formal [[, formal]]*] ) : TYPE { expr }
func (p *Parser) parseMethod() *ast.Method {
	m := &ast.Method{Token: p.curToken, Name: p.objectIdentifier()}

	p.nextToken() // (
	if !p.peekTokenIs(lexer.RPAREN) {
		for {
			if !p.expectPeek(lexer.OBJECTID) {
				return nil
			}
			formal := p.parseFormal()
			if formal == nil {
				return nil
			}
			m.Formals = append(m.Formals, formal)
			if !p.peekTokenIs(lexer.COMMA) {
				break
			}
			p.nextToken()
		}
	}
	if !p.expectPeek(lexer.RPAREN) || !p.expectPeek(lexer.COLON) || !p.expectPeek(lexer.TYPEID) {
		return nil
	}
	m.ReturnType = p.typeIdentifier()

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	p.nextToken()

	m.Body = p.parseExpression(LOWEST)
	if m.Body == nil || !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return m
}

// ID : TYPE
func (p *Parser) parseFormal() *ast.Formal {
	f := &ast.Formal{Token: p.curToken, Name: p.objectIdentifier()}
	if !p.expectPeek(lexer.COLON) || !p.expectPeek(lexer.TYPEID) {
		return nil
	}
	f.Type = p.typeIdentifier()
	return f
}

// ID : TYPE [ <- expr ]
func (p *Parser) parseAttribute() *ast.Attribute {
	a := &ast.Attribute{Token: p.curToken, Name: p.objectIdentifier()}

	if !p.expectPeek(lexer.COLON) || !p.expectPeek(lexer.TYPEID) {
		return nil
	}
	a.Type = p.typeIdentifier()

	if p.peekTokenIs(lexer.ASSIGN) {
		p.nextToken()
		p.nextToken()
		a.Init = p.parseExpression(LOWEST)
		if a.Init == nil {
			return nil
		}
	}
	return a
}

// parseExpression is a Pratt loop over the infix operators.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorAt(p.curToken, "unexpected %s in expression", p.curToken.Type)
		return nil
	}

	leftExp := prefix()
	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}
	return leftExp
}

// ( expr )
func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil || !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	exp := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	exp.Right = p.parseExpression(precedence)
	if exp.Right == nil {
		return nil
	}
	return exp
}

// { [[expr;]]+ }
func (p *Parser) parseBlockExpression() ast.Expression {
	be := &ast.BlockExpression{Token: p.curToken}
	p.nextToken()

	for !p.curTokenIs(lexer.RBRACE) {
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		be.Expressions = append(be.Expressions, expr)

		if p.peekTokenIs(lexer.RBRACE) {
			p.nextToken()
			break
		}
		if !p.expectPeek(lexer.SEMI) {
			return nil
		}
		p.nextToken()
	}

	if len(be.Expressions) == 0 {
		p.errorAt(be.Token, "empty block")
		return nil
	}
	return be
}

// if expr then expr else expr fi
func (p *Parser) parseIfExpression() ast.Expression {
	ife := &ast.IfExpression{Token: p.curToken}

	p.nextToken()
	if ife.Condition = p.parseExpression(LOWEST); ife.Condition == nil || !p.expectPeek(lexer.THEN) {
		return nil
	}
	p.nextToken()
	if ife.Consequence = p.parseExpression(LOWEST); ife.Consequence == nil || !p.expectPeek(lexer.ELSE) {
		return nil
	}
	p.nextToken()
	if ife.Alternative = p.parseExpression(LOWEST); ife.Alternative == nil || !p.expectPeek(lexer.FI) {
		return nil
	}
	return ife
}

// while expr loop expr pool
func (p *Parser) parseWhileExpression() ast.Expression {
	we := &ast.WhileExpression{Token: p.curToken}

	p.nextToken()
	if we.Condition = p.parseExpression(LOWEST); we.Condition == nil || !p.expectPeek(lexer.LOOP) {
		return nil
	}
	p.nextToken()
	if we.Body = p.parseExpression(LOWEST); we.Body == nil || !p.expectPeek(lexer.POOL) {
		return nil
	}
	return we
}

// let ID : TYPE [ <- expr ] [[, ID : TYPE [ <- expr ]]]* in expr
//
// Each binding becomes its own LetExpression nested inside the previous one.
func (p *Parser) parseLetExpression() ast.Expression {
	letToken := p.curToken
	var bindings []*ast.LetExpression

	for {
		if !p.expectPeek(lexer.OBJECTID) {
			return nil
		}
		le := &ast.LetExpression{Token: letToken, Name: p.objectIdentifier()}
		if !p.expectPeek(lexer.COLON) || !p.expectPeek(lexer.TYPEID) {
			return nil
		}
		le.Type = p.typeIdentifier()

		if p.peekTokenIs(lexer.ASSIGN) {
			p.nextToken()
			p.nextToken()
			if le.Init = p.parseExpression(LOWEST); le.Init == nil {
				return nil
			}
		}
		bindings = append(bindings, le)

		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(lexer.IN) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}

	for i := len(bindings) - 1; i >= 0; i-- {
		bindings[i].Body = body
		body = bindings[i]
	}
	return body
}

// case expr of [[ID : TYPE => expr;]]+ esac
func (p *Parser) parseCaseExpression() ast.Expression {
	ce := &ast.CaseExpression{Token: p.curToken}

	p.nextToken()
	if ce.Expression = p.parseExpression(LOWEST); ce.Expression == nil || !p.expectPeek(lexer.OF) {
		return nil
	}

	p.nextToken()
	for !p.curTokenIs(lexer.ESAC) && !p.curTokenIs(lexer.EOF) {
		c := p.parseCase()
		if c == nil || !p.expectPeek(lexer.SEMI) {
			return nil
		}
		ce.Cases = append(ce.Cases, c)
		p.nextToken()
	}

	if !p.curTokenIs(lexer.ESAC) {
		p.errorAt(p.curToken, "expected esac, got %s", p.curToken.Type)
		return nil
	}
	if len(ce.Cases) == 0 {
		p.errorAt(ce.Token, "case expression without branches")
		return nil
	}
	return ce
}

func (p *Parser) parseCase() *ast.Case {
	if !p.curTokenIs(lexer.OBJECTID) {
		p.errorAt(p.curToken, "expected identifier in case branch, got %s", p.curToken.Type)
		return nil
	}
	c := &ast.Case{Token: p.curToken, Name: p.objectIdentifier()}

	if !p.expectPeek(lexer.COLON) || !p.expectPeek(lexer.TYPEID) {
		return nil
	}
	c.Type = p.typeIdentifier()

	if !p.expectPeek(lexer.DARROW) {
		return nil
	}
	p.nextToken()
	if c.Expression = p.parseExpression(LOWEST); c.Expression == nil {
		return nil
	}
	return c
}

// new TYPE
func (p *Parser) parseNewExpression() ast.Expression {
	ne := &ast.NewExpression{Token: p.curToken}
	if !p.expectPeek(lexer.TYPEID) {
		return nil
	}
	ne.Type = p.typeIdentifier()
	return ne
}

// isvoid expr
func (p *Parser) parseIsvoidExpression() ast.Expression {
	ie := &ast.IsVoidExpression{Token: p.curToken}
	p.nextToken()
	if ie.Expression = p.parseExpression(ISVOID); ie.Expression == nil {
		return nil
	}
	return ie
}

// not expr
func (p *Parser) parseNotExpression() ast.Expression {
	ne := &ast.NotExpression{Token: p.curToken}
	p.nextToken()
	if ne.Expression = p.parseExpression(NOT); ne.Expression == nil {
		return nil
	}
	return ne
}

// ~ expr
func (p *Parser) parseNegExpression() ast.Expression {
	ne := &ast.NegExpression{Token: p.curToken}
	p.nextToken()
	if ne.Expression = p.parseExpression(NEG); ne.Expression == nil {
		return nil
	}
	return ne
}

func (p *Parser) parseBoolExpression() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curToken.Literal[0] == 't'}
}

func (p *Parser) parseIntegerExpression() ast.Expression {
	value, err := strconv.Atoi(p.curToken.Literal)
	if err != nil {
		p.errorAt(p.curToken, "could not parse integer %q", p.curToken.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringExpression() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

// ID | ID <- expr | ID( args )
func (p *Parser) parseObjectIdentifier() ast.Expression {
	oi := p.objectIdentifier()

	switch {
	case p.peekTokenIs(lexer.ASSIGN):
		p.nextToken()
		a := &ast.Assignment{Token: p.curToken, Name: oi}
		p.nextToken()
		if a.Expression = p.parseExpression(LOWEST); a.Expression == nil {
			return nil
		}
		return a

	case p.peekTokenIs(lexer.LPAREN):
		self := &ast.ObjectIdentifier{
			Token: lexer.Token{Type: lexer.OBJECTID, Literal: "self", Line: oi.Token.Line, Column: oi.Token.Column},
			Value: ast.Self,
		}
		mc := &ast.MethodCall{Token: oi.Token, Object: self, Method: oi}
		p.nextToken()
		args, ok := p.parseExpressionList(lexer.RPAREN)
		if !ok {
			return nil
		}
		mc.Arguments = args
		return mc
	}

	return oi
}

// expr.ID( args )
func (p *Parser) parseMethodCall(object ast.Expression) ast.Expression {
	mc := &ast.MethodCall{Token: p.curToken, Object: object}

	if !p.expectPeek(lexer.OBJECTID) {
		return nil
	}
	mc.Method = p.objectIdentifier()

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	args, ok := p.parseExpressionList(lexer.RPAREN)
	if !ok {
		return nil
	}
	mc.Arguments = args
	return mc
}

// expr@TYPE.ID( args )
func (p *Parser) parseStaticMethodCall(object ast.Expression) ast.Expression {
	sc := &ast.StaticMethodCall{Token: p.curToken, Object: object}

	if !p.expectPeek(lexer.TYPEID) {
		return nil
	}
	sc.Type = p.typeIdentifier()

	if !p.expectPeek(lexer.DOT) || !p.expectPeek(lexer.OBJECTID) {
		return nil
	}
	sc.Method = p.objectIdentifier()

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	args, ok := p.parseExpressionList(lexer.RPAREN)
	if !ok {
		return nil
	}
	sc.Arguments = args
	return sc
}

// parseExpressionList expects the current token to be the opening
// delimiter and leaves the closing one as the current token.
func (p *Parser) parseExpressionList(end lexer.TokenType) ([]ast.Expression, bool) {
	var exps []ast.Expression

	if p.peekTokenIs(end) {
		p.nextToken()
		return exps, true
	}

	for {
		p.nextToken()
		exp := p.parseExpression(LOWEST)
		if exp == nil {
			return nil, false
		}
		exps = append(exps, exp)
		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return exps, true
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}
