// Package model provides the estimator interfaces shared by all packages.
// This file complements the Transformer interface in transformer.go.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is the interface for supervised models that can be trained.
type Fitter interface {
	// Fit trains the model with features X and targets y.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that can make predictions.
type Predictor interface {
	// Predict returns predictions for the input data.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Classifier combines the interfaces of classification models.
// PredictProba returns one column per class; rows sum to 1.
type Classifier interface {
	Fitter
	Predictor

	// PredictProba returns probability estimates for each class.
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// Reducer is the interface for dimensionality-reduction collaborators.
// Unlike Transformer it has no FitTransform convenience; a pipeline always
// fits first and replays Transform at inference time with fit-time state.
type Reducer interface {
	// Fit learns the reduction parameters from X.
	Fit(X mat.Matrix) error

	// Transform projects X using the parameters learned at fit time.
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	// SetParams sets the model's hyperparameters.
	SetParams(params map[string]interface{}) error
}
