// Package pipeml turns symbolic pipeline expressions into executable
// machine-learning computation graphs with a uniform fit/transform protocol.
//
// A workflow is written with two infix operators: `|>` chains stages
// sequentially and `+` runs them in parallel and concatenates their outputs
// column-wise. The expression compiler resolves component names against a
// registry and produces a node tree that can be fit, transformed, and
// cross-validated as a single estimator.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/pipeml/pipeml/dataset"
//	    "github.com/pipeml/pipeml/neighbors"
//	    "github.com/pipeml/pipeml/pipeline"
//	    "github.com/pipeml/pipeml/pipeline/expr"
//	    "github.com/pipeml/pipeml/preprocessing"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    reg := pipeline.NewRegistry()
//	    reg.MustRegister("scale", preprocessing.NewStandardScalerDefault())
//	    reg.MustRegister("clf", neighbors.NewNearestCentroid())
//
//	    node, err := expr.Compile("scale |> clf", reg)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    X := mat.NewDense(4, 2, []float64{1, 1, 1, 2, 8, 8, 8, 9})
//	    y := mat.NewVecDense(4, []float64{0, 0, 1, 1})
//	    ds, _ := dataset.New(X, []string{"a", "b"})
//
//	    preds, err := pipeline.FitTransform(node, ds, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Formatted(preds.Matrix()))
//	}
//
// # Packages
//
//   - pipeline: node tree (atomic, sequential, parallel), registry, executor
//   - pipeline/expr: expression lexer, parser, and node-tree compiler
//   - ensemble: Vote, Stack, Best, and Bagging meta-learners
//   - crossval: k-fold splitters and the fault-tolerant orchestrator
//   - dataset: named-column tabular data over gonum matrices
//   - metrics: classification metrics and the scoring registry
//   - preprocessing, decomposition, dummy, neighbors: reference components
//   - core/model, core/parallel: capability contract and parallel helpers
//   - pkg/errors, pkg/log: structured errors and logging
package pipeml
