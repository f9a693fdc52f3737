package expr

import (
	"github.com/pipeml/pipeml/pipeline"
	"github.com/pipeml/pipeml/pkg/errors"
)

// Compile parses src and builds the corresponding node tree, resolving each
// identifier against reg. Compilation is purely syntactic, no fitting
// happens, and is all-or-nothing: any error yields no tree.
func Compile(src string, reg *pipeline.Registry) (pipeline.Node, error) {
	ast, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Build(ast, reg)
}

// Build turns an already-parsed AST into a node tree using reg for leaf
// resolution. Each leaf gets a fresh unfitted clone of its registered
// component, so trees built from the same AST never share state.
func Build(e Expr, reg *pipeline.Registry) (pipeline.Node, error) {
	switch x := e.(type) {
	case *Ident:
		return reg.Resolve(x.Name)
	case *Seq:
		children, err := buildParts(x.Parts, reg)
		if err != nil {
			return nil, err
		}
		return pipeline.NewSequential(children...)
	case *Par:
		children, err := buildParts(x.Parts, reg)
		if err != nil {
			return nil, err
		}
		return pipeline.NewParallel(children...)
	default:
		return nil, errors.Newf("expr: unsupported expression node %T", e)
	}
}

func buildParts(parts []Expr, reg *pipeline.Registry) ([]pipeline.Node, error) {
	children := make([]pipeline.Node, len(parts))
	for i, p := range parts {
		child, err := Build(p, reg)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return children, nil
}
