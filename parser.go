package depict

import (
	"fmt"
	"strings"

	"github.com/jsavage/depict/internal/ast"
	"github.com/jsavage/depict/internal/lexer"
	"github.com/jsavage/depict/internal/token"
)

// Parser turns Depict DSL source into an ast.Program. It follows the
// classic curToken/peekToken recursive-descent shape: the lexer is consulted
// one token ahead so productions can decide what to parse by peeking.
type Parser struct {
	lex       *lexer.Lexer
	source    string
	curToken  token.Token
	peekToken token.Token
	indents   []int
}

// NewParser creates a Parser over source.
func NewParser(source string) (*Parser, error) {
	lx, err := lexer.New(strings.NewReader(source))
	if err != nil {
		return nil, &ParseError{Kind: UnexpectedChar, Cause: err}
	}
	p := &Parser{lex: lx, source: source, indents: []int{0}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.curToken = p.peekToken
	tok, err := p.lex.Next()
	if err != nil {
		return p.wrapScanErr(err)
	}
	p.peekToken = tok
	return nil
}

func (p *Parser) wrapScanErr(err error) error {
	pos := p.curToken.Start
	return &ParseError{
		Span:    pos,
		Kind:    UnexpectedChar,
		Excerpt: p.excerpt(pos),
		Cause:   err,
	}
}

// Parse consumes the whole source and returns the resulting program, or a
// *ParseError. Parsing is total: on failure no partial AST is returned.
func Parse(source string) (*ast.Program, error) {
	p, err := NewParser(source)
	if err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if err := p.checkIndent(stmt); err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)

		if !p.curTokenIs(token.EOF) && !p.curTokenIs(token.NEWLINE) {
			return nil, &ParseError{
				Span:    p.curToken.Start,
				Kind:    UnexpectedChar,
				Excerpt: p.excerpt(p.curToken.Start),
			}
		}
	}

	return prog, nil
}

func (p *Parser) checkIndent(stmt *ast.Statement) error {
	top := p.indents[len(p.indents)-1]
	switch {
	case stmt.Indent > top:
		p.indents = append(p.indents, stmt.Indent)
	case stmt.Indent < top:
		for len(p.indents) > 1 && p.indents[len(p.indents)-1] > stmt.Indent {
			p.indents = p.indents[:len(p.indents)-1]
		}
		if p.indents[len(p.indents)-1] != stmt.Indent {
			return &ParseError{
				Span:    stmt.Start,
				Kind:    MismatchedIndent,
				Excerpt: p.excerpt(stmt.Start),
			}
		}
	}
	return nil
}

// parseStatement parses `<actor-seq> ':' <action-list>`.
func (p *Parser) parseStatement() (*ast.Statement, error) {
	stmt := &ast.Statement{
		Indent: p.curToken.Start.Indent,
		Start:  p.curToken.Start,
	}

	for {
		if !p.curTokenIs(token.IDENT) {
			if p.curTokenIs(token.Colon) {
				return nil, &ParseError{
					Span:    p.curToken.Start,
					Kind:    DanglingColon,
					Excerpt: p.excerpt(p.curToken.Start),
				}
			}
			return nil, &ParseError{
				Span:    p.curToken.Start,
				Kind:    UnexpectedChar,
				Excerpt: p.excerpt(p.curToken.Start),
			}
		}
		stmt.Actors = append(stmt.Actors, ast.Ident{
			Name: p.curToken.Literal, Start: p.curToken.Start, End: p.curToken.End,
		})

		if p.peekTokenIs(token.Colon) {
			if err := p.advance(); err != nil { // consume last ident, cur becomes Colon
				return nil, err
			}
			break
		}
		if !p.peekTokenIs(token.IDENT) {
			return nil, &ParseError{
				Span:    p.peekToken.Start,
				Kind:    DanglingColon,
				Excerpt: p.excerpt(p.peekToken.Start),
			}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	// cur is Colon now
	if err := p.advance(); err != nil {
		return nil, err
	}

	actions, end, err := p.parseActionList()
	if err != nil {
		return nil, err
	}
	stmt.Actions = actions
	stmt.End = end

	return stmt, nil
}

// parseActionList parses `action { ',' action }`.
func (p *Parser) parseActionList() ([]ast.Action, token.Position, error) {
	var actions []ast.Action
	var end token.Position

	for {
		action, err := p.parseAction()
		if err != nil {
			return nil, end, err
		}
		end = action.End
		actions = append(actions, action)

		if !p.curTokenIs(token.Comma) {
			break
		}
		if err := p.advance(); err != nil {
			return nil, end, err
		}
	}

	if len(actions) == 0 {
		return nil, end, &ParseError{Span: p.curToken.Start, Kind: EmptyLabel, Excerpt: p.excerpt(p.curToken.Start)}
	}

	return actions, end, nil
}

// parseAction parses `label [ '/' label ]`, leaving curToken on the
// delimiter that ended the action (Comma, NEWLINE, or EOF).
func (p *Parser) parseAction() (ast.Action, error) {
	start := p.curToken.Start
	label, end, err := p.parseLabel()
	if err != nil {
		return ast.Action{}, err
	}
	action := ast.Action{Label: label, Start: start, End: end}

	if p.curTokenIs(token.Slash) {
		if err := p.advance(); err != nil {
			return ast.Action{}, err
		}
		resp, respEnd, err := p.parseLabel()
		if err != nil {
			return ast.Action{}, err
		}
		action.Response = resp
		action.End = respEnd
	}

	return action, nil
}

// parseLabel accumulates consecutive IDENT tokens, joined by single spaces,
// into one label. It stops without consuming the delimiter that ends the
// label (Comma, Slash, NEWLINE, or EOF).
func (p *Parser) parseLabel() (string, token.Position, error) {
	if !p.curTokenIs(token.IDENT) {
		return "", p.curToken.Start, &ParseError{
			Span:    p.curToken.Start,
			Kind:    EmptyLabel,
			Excerpt: p.excerpt(p.curToken.Start),
		}
	}

	var words []string
	var end token.Position
	for p.curTokenIs(token.IDENT) {
		words = append(words, p.curToken.Literal)
		end = p.curToken.End
		if err := p.advance(); err != nil {
			return "", end, err
		}
	}

	return strings.Join(words, " "), end, nil
}

func (p *Parser) curTokenIs(t token.Kind) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Kind) bool { return p.peekToken.Type == t }

// excerpt renders the source line containing pos with a caret under the
// offending column, for ParseError diagnostics.
func (p *Parser) excerpt(pos token.Position) string {
	lines := strings.Split(p.source, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}
	line := lines[pos.Line-1]
	col := pos.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	return fmt.Sprintf("%s\n%s", line, caret)
}
