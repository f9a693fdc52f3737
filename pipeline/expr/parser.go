package expr

import (
	"github.com/pipeml/pipeml/pkg/errors"
)

// Parse turns a pipeline expression into an AST. The grammar, lowest
// precedence first:
//
//	seq     := par { "|>" par }
//	par     := primary { "+" primary }
//	primary := IDENT | "(" seq ")"
//
// Chains of the same operator flatten into one n-ary node, so execution
// order is the literal left-to-right reading of the source.
func Parse(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	e, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, errors.NewSyntaxError(src, tok.pos, "unexpected "+tok.kind.String())
	}
	return e, nil
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseSeq() (Expr, error) {
	first, err := p.parsePar()
	if err != nil {
		return nil, err
	}
	parts := []Expr{first}
	for p.peek().kind == tokPipe {
		p.next()
		right, err := p.parsePar()
		if err != nil {
			return nil, err
		}
		parts = append(parts, right)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return &Seq{Parts: parts}, nil
}

func (p *parser) parsePar() (Expr, error) {
	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	parts := []Expr{first}
	for p.peek().kind == tokPlus {
		p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		parts = append(parts, right)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return &Par{Parts: parts}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.next()
	switch tok.kind {
	case tokIdent:
		return &Ident{Name: tok.text, Pos: tok.pos}, nil
	case tokLParen:
		inner, err := p.parseSeq()
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.kind != tokRParen {
			return nil, errors.NewSyntaxError(p.src, closing.pos, "expected ')', got "+closing.kind.String())
		}
		return inner, nil
	default:
		return nil, errors.NewSyntaxError(p.src, tok.pos, "expected identifier or '(', got "+tok.kind.String())
	}
}
