// Package rff provides kernel approximation with Random Fourier
// Features and a classification pipeline built on top of it.
//
// The library approximates a Gaussian (RBF) kernel by an explicit
// randomized feature map, so that cheap linear models trained on the
// mapped data behave like kernel machines. It follows a
// scikit-learn-like API: estimators are constructed with functional
// options, trained with Fit, and applied with Transform or Predict.
//
// # Quick Start
//
// Train a nonlinear classifier on raw features:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/kriskrtn/RFF/kernelapprox"
//	    "github.com/kriskrtn/RFF/pipeline"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := loadFeatures() // n×d matrix, n >= 1000
//	    y := loadLabels()   // n×1 matrix of class labels
//
//	    p := pipeline.New(
//	        pipeline.WithFeatureCount(300),
//	        pipeline.WithVariant(kernelapprox.RandomFourier),
//	        pipeline.WithRandomState(0),
//	    )
//	    if err := p.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    labels, err := p.Predict(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Formatted(labels))
//	}
//
// # Packages
//
//   - kernelapprox: feature map variants (identity, random Fourier,
//     orthogonal random Fourier) and the median heuristic bandwidth
//   - pipeline: reducer → feature map → classifier composition
//   - decomposition: PCA reducer backed by gonum
//   - linear_model: logistic regression (binary and one-vs-rest)
//   - metrics: classification metrics (accuracy, log loss)
//   - core/model: shared estimator interfaces and gob persistence
//   - core/parallel: parallel processing utilities
//   - pkg/errors, pkg/log: structured errors and logging
//
// # Determinism
//
// Every source of randomness is an injected seed. Two estimators built
// with the same seed and fitted on the same data produce identical
// models; a negative seed requests nondeterministic behavior.
package rff
