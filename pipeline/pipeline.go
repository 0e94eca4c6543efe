// Package pipeline chains dimensionality reduction, random feature
// mapping, and a linear classifier into a single estimator.
//
// ステージの順序は固定で、reducer（任意）→ feature map → classifier の
// 2〜3段構成のみをサポートする。各ステージの学習状態はFitで確定し、
// Predict時に同じ順序で再生される。
package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/kriskrtn/RFF/core/model"
	"github.com/kriskrtn/RFF/decomposition"
	"github.com/kriskrtn/RFF/kernelapprox"
	"github.com/kriskrtn/RFF/linear_model"
	"github.com/kriskrtn/RFF/metrics"
	"github.com/kriskrtn/RFF/pkg/errors"
)

// Pipeline applies an optional reducer, a random feature map, and a
// classifier in a fixed order.
type Pipeline struct {
	state *model.StateManager

	// Configuration
	featureCount     int
	targetDim        int
	useReduction     bool
	variant          kernelapprox.Variant
	classifierParams map[string]interface{}
	randomState      int64

	// Injected collaborators; nil means build the defaults at Fit time
	reducer            model.Reducer
	reducerInjected    bool
	classifier         model.Classifier
	classifierInjected bool

	// Fitted stages
	featureMap *kernelapprox.FeatureMap
}

// Option is a functional option for Pipeline
type Option func(*Pipeline)

// WithFeatureCount sets the number of random features produced by the
// feature map (default 1000)
func WithFeatureCount(n int) Option {
	return func(p *Pipeline) {
		p.featureCount = n
	}
}

// WithTargetDim sets the dimensionality fed into the feature map
// (default 50). Clamped to the input width at fit time.
func WithTargetDim(d int) Option {
	return func(p *Pipeline) {
		p.targetDim = d
	}
}

// WithReduction enables or disables the reduction stage (default true)
func WithReduction(enabled bool) Option {
	return func(p *Pipeline) {
		p.useReduction = enabled
	}
}

// WithVariant selects the feature map variant (default Identity)
func WithVariant(v kernelapprox.Variant) Option {
	return func(p *Pipeline) {
		p.variant = v
	}
}

// WithClassifierParams overrides hyperparameters of the default
// classifier. Ignored when a classifier is injected with WithClassifier.
func WithClassifierParams(params map[string]interface{}) Option {
	return func(p *Pipeline) {
		for k, v := range params {
			p.classifierParams[k] = v
		}
	}
}

// WithRandomState sets the seed shared by the feature map and the
// default classifier. Negative values (the default) mean
// nondeterministic behavior.
func WithRandomState(seed int64) Option {
	return func(p *Pipeline) {
		p.randomState = seed
	}
}

// WithReducer injects a custom reduction stage. Implies WithReduction(true).
func WithReducer(r model.Reducer) Option {
	return func(p *Pipeline) {
		p.reducer = r
		p.reducerInjected = true
		p.useReduction = true
	}
}

// WithClassifier injects a custom final stage
func WithClassifier(c model.Classifier) Option {
	return func(p *Pipeline) {
		p.classifier = c
		p.classifierInjected = true
	}
}

// New creates a Pipeline with the given options. Each call builds a
// fresh default configuration; configurations are never shared between
// instances.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		state:        model.NewStateManager(),
		featureCount: 1000,
		targetDim:    50,
		useReduction: true,
		variant:      kernelapprox.Identity,
		classifierParams: map[string]interface{}{
			"max_iter": 5000,
		},
		randomState: -1,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Fit trains all stages in order on X and labels y. Refitting discards
// the previous fitted state entirely.
func (p *Pipeline) Fit(X, y mat.Matrix) error {
	nSamples, nCols := X.Dims()
	if nSamples == 0 || nCols == 0 {
		return errors.NewModelError("Pipeline.Fit", "empty data", errors.ErrEmptyData)
	}

	p.state.Reset()
	p.featureMap = nil

	// Stage 1: reduction (optional). The target dimension can never
	// exceed the input width.
	current := X
	mapInputDim := nCols
	if p.useReduction {
		mapInputDim = p.targetDim
		if nCols < mapInputDim {
			mapInputDim = nCols
		}
		// The default reducer is rebuilt per fit so a refit on data of a
		// different width never reuses a stale component count.
		if !p.reducerInjected {
			p.reducer = decomposition.NewPCA(mapInputDim)
		}
		if err := p.reducer.Fit(current); err != nil {
			return err
		}
		reduced, err := p.reducer.Transform(current)
		if err != nil {
			return err
		}
		current = reduced
	}

	// Stage 2: feature map, built per fit so the clamped dimension is
	// always the one the projection matrix is sampled for.
	fm, err := kernelapprox.New(p.variant, p.featureCount, mapInputDim,
		kernelapprox.WithRandomState(p.randomState))
	if err != nil {
		return err
	}
	mapped, err := fm.FitTransform(current)
	if err != nil {
		return err
	}
	p.featureMap = fm

	// Stage 3: classifier. The default is rebuilt per fit so a seeded
	// refit starts from the same RNG state as a fresh pipeline.
	if !p.classifierInjected {
		clf := linear_model.NewLogisticRegression(
			linear_model.WithLRRandomState(p.randomState))
		if err := clf.SetParams(p.classifierParams); err != nil {
			return err
		}
		p.classifier = clf
	}
	if err := p.classifier.Fit(mapped, y); err != nil {
		return err
	}

	p.state.SetDimensions(nCols, nSamples)
	p.state.SetFitted()
	return nil
}

// transform replays the fitted reducer and feature map on X
func (p *Pipeline) transform(X mat.Matrix) (mat.Matrix, error) {
	current := X
	if p.useReduction {
		reduced, err := p.reducer.Transform(current)
		if err != nil {
			return nil, err
		}
		current = reduced
	}
	return p.featureMap.Transform(current)
}

// Predict returns class labels for X as an n×1 matrix.
func (p *Pipeline) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !p.state.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Predict")
	}

	mapped, err := p.transform(X)
	if err != nil {
		return nil, err
	}
	return p.classifier.Predict(mapped)
}

// PredictProba returns class probability estimates for X, one column
// per class. Each row sums to 1.
func (p *Pipeline) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !p.state.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "PredictProba")
	}

	mapped, err := p.transform(X)
	if err != nil {
		return nil, err
	}
	return p.classifier.PredictProba(mapped)
}

// Score returns the mean accuracy of Predict(X) against y.
func (p *Pipeline) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := p.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyScore(y, predictions)
}

// FeatureMap returns the fitted feature map stage, or nil before Fit.
func (p *Pipeline) FeatureMap() *kernelapprox.FeatureMap {
	return p.featureMap
}

// IsFitted returns whether all stages have been trained
func (p *Pipeline) IsFitted() bool {
	return p.state.IsFitted()
}

// GetParams returns the pipeline configuration
func (p *Pipeline) GetParams() map[string]interface{} {
	params := map[string]interface{}{
		"feature_count": p.featureCount,
		"target_dim":    p.targetDim,
		"use_reduction": p.useReduction,
		"variant":       p.variant.String(),
		"random_state":  p.randomState,
	}
	for k, v := range p.classifierParams {
		params["classifier__"+k] = v
	}
	return params
}

// String returns a human-readable description of the pipeline
func (p *Pipeline) String() string {
	return fmt.Sprintf("Pipeline(variant=%s, feature_count=%d, target_dim=%d, use_reduction=%t)",
		p.variant, p.featureCount, p.targetDim, p.useReduction)
}
