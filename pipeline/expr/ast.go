package expr

import "strings"

// Expr is a parsed pipeline expression. The tree is built once by Parse and
// immutable thereafter; it corresponds one-to-one with the node tree Compile
// produces from it.
//
// String renders the equivalent explicit constructor-call tree, e.g.
// "Seq(catf, Par(ohe, pca))". The rendering is for inspection and has no
// effect on execution.
type Expr interface {
	String() string
	exprNode()
}

// Ident is a leaf referencing a registered component by name.
type Ident struct {
	Name string
	Pos  int
}

// Seq is an ordered sequential chain (`a |> b |> c`), flattened n-ary.
type Seq struct {
	Parts []Expr
}

// Par is an ordered parallel combination (`a + b + c`), flattened n-ary.
type Par struct {
	Parts []Expr
}

func (*Ident) exprNode() {}
func (*Seq) exprNode()   {}
func (*Par) exprNode()   {}

func (e *Ident) String() string { return e.Name }

func (e *Seq) String() string { return renderCall("Seq", e.Parts) }

func (e *Par) String() string { return renderCall("Par", e.Parts) }

func renderCall(name string, parts []Expr) string {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = p.String()
	}
	return name + "(" + strings.Join(strs, ", ") + ")"
}

// Equal reports structural equality: same operator tree shape and same leaf
// names. Compiling the same source twice yields Equal trees.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Ident:
		y, ok := b.(*Ident)
		return ok && x.Name == y.Name
	case *Seq:
		y, ok := b.(*Seq)
		return ok && equalParts(x.Parts, y.Parts)
	case *Par:
		y, ok := b.(*Par)
		return ok && equalParts(x.Parts, y.Parts)
	default:
		return false
	}
}

func equalParts(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
