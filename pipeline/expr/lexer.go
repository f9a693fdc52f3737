// Package expr compiles textual pipeline expressions into node trees.
//
// The grammar has identifier leaves, parentheses, and two infix operators:
// `+` combines branches in parallel and `|>` chains stages sequentially.
// `+` binds tighter than `|>`, so `a |> b + c` reads as `a |> (b + c)`.
// Parsing and compilation are separate passes: Parse produces an immutable
// AST, Compile resolves identifiers against a registry and builds the node
// tree. Compilation performs no fitting.
package expr

import (
	"github.com/pipeml/pipeml/pkg/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokPlus   // +
	tokPipe   // |>
	tokLParen // (
	tokRParen // )
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of expression"
	case tokIdent:
		return "identifier"
	case tokPlus:
		return "'+'"
	case tokPipe:
		return "'|>'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return "unknown token"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits src into tokens. The returned slice always ends with tokEOF.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '+':
			toks = append(toks, token{tokPlus, "+", i})
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == '|':
			if i+1 >= len(src) || src[i+1] != '>' {
				return nil, errors.NewSyntaxError(src, i, "expected '|>'")
			}
			toks = append(toks, token{tokPipe, "|>", i})
			i += 2
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			toks = append(toks, token{tokIdent, src[start:i], start})
		default:
			return nil, errors.NewSyntaxError(src, i, "unexpected character "+string(c))
		}
	}
	toks = append(toks, token{tokEOF, "", len(src)})
	return toks, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
