// Package ensemble provides composite learners that satisfy the same node
// contract as every other pipeline element: Vote (majority), Stack
// (predictions as meta-features), Best (internally validated selection), and
// Bagging (bootstrap resampling). Because ensembles are ordinary nodes they
// nest freely inside expressions and inside each other.
package ensemble

import (
	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/dataset"
	"github.com/pipeml/pipeml/pipeline"
	"github.com/pipeml/pipeml/pkg/errors"
)

// predictions transforms ds through every child and returns each child's
// first output column. Row counts must agree with the input.
func predictions(op string, children []pipeline.Node, ds *dataset.Dataset) ([]*mat.VecDense, error) {
	preds := make([]*mat.VecDense, len(children))
	for i, c := range children {
		out, err := c.Transform(ds)
		if err != nil {
			return nil, err
		}
		if out.Rows() != ds.Rows() {
			return nil, errors.NewDimensionError(op, ds.Rows(), out.Rows(), 0)
		}
		preds[i] = out.ColumnAt(0)
	}
	return preds, nil
}

// majority returns the most voted value. Ties break toward the earliest child
// in registration order whose vote belongs to the tied set.
func majority(votes []float64) float64 {
	counts := make(map[float64]int, len(votes))
	best := 0
	for _, v := range votes {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	for _, v := range votes {
		if counts[v] == best {
			return v
		}
	}
	return votes[0]
}

// majorityColumn reduces per-child prediction vectors to one majority vector.
func majorityColumn(preds []*mat.VecDense) *mat.VecDense {
	rows := preds[0].Len()
	out := mat.NewVecDense(rows, nil)
	votes := make([]float64, len(preds))
	for i := 0; i < rows; i++ {
		for k, p := range preds {
			votes[k] = p.AtVec(i)
		}
		out.SetVec(i, majority(votes))
	}
	return out
}

func cloneChildren(children []pipeline.Node) []pipeline.Node {
	out := make([]pipeline.Node, len(children))
	for i, c := range children {
		out[i] = c.Clone()
	}
	return out
}

func childNames(children []pipeline.Node) []string {
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = c.String()
	}
	return out
}
