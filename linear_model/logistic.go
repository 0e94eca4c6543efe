// Package linear_model provides linear classifiers used as the final
// pipeline stage.
package linear_model

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/kriskrtn/RFF/core/model"
	"github.com/kriskrtn/RFF/core/parallel"
	"github.com/kriskrtn/RFF/pkg/errors"
)

// LogisticRegression implements logistic regression for classification.
// Binary problems use a single weight vector; multiclass problems fall
// back to one-vs-rest.
type LogisticRegression struct {
	state *model.StateManager

	// Hyperparameters
	penalty      string  // Regularization: "l2", "none"
	c            float64 // Inverse regularization strength (1/alpha)
	fitIntercept bool    // Whether to fit intercept
	randomState  int64   // Random seed
	maxIter      int     // Maximum iterations
	tol          float64 // Tolerance for stopping

	// Model parameters
	coef_      [][]float64 // Coefficients (1 x n_features for binary, n_classes x n_features for OVR)
	intercept_ []float64   // Intercept terms
	classes_   []int       // Unique class labels, ascending
	nClasses_  int         // Number of classes
	nFeatures_ int         // Number of features
	nIter_     []int       // Actual iterations per weight vector

	rand *rand.Rand
}

// LogisticRegressionOption is a functional option for LogisticRegression
type LogisticRegressionOption func(*LogisticRegression)

// NewLogisticRegression creates a new LogisticRegression classifier
func NewLogisticRegression(opts ...LogisticRegressionOption) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		penalty:      "l2",
		c:            1.0,
		fitIntercept: true,
		randomState:  -1,
		maxIter:      100,
		tol:          1e-4,
	}

	for _, opt := range opts {
		opt(lr)
	}

	if lr.randomState >= 0 {
		lr.rand = rand.New(rand.NewSource(lr.randomState))
	} else {
		lr.rand = rand.New(rand.NewSource(rand.Int63()))
	}

	return lr
}

// WithLRPenalty sets the regularization type ("l2" or "none")
func WithLRPenalty(penalty string) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.penalty = penalty
	}
}

// WithLRC sets the inverse regularization strength
func WithLRC(c float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.c = c
	}
}

// WithLRFitIntercept sets whether to fit an intercept term
func WithLRFitIntercept(fit bool) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.fitIntercept = fit
	}
}

// WithLRMaxIter sets the maximum number of iterations
func WithLRMaxIter(maxIter int) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithLRTol sets the tolerance for the stopping criteria
func WithLRTol(tol float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.tol = tol
	}
}

// WithLRRandomState sets the random seed
func WithLRRandomState(seed int64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.randomState = seed
		if seed >= 0 {
			lr.rand = rand.New(rand.NewSource(seed))
		}
	}
}

// Fit trains the logistic regression model with gradient descent.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != nSamples {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LogisticRegression.Fit", "y must be a column vector")
	}

	lr.extractClasses(y)
	if lr.nClasses_ < 2 {
		return errors.NewValueError("LogisticRegression.Fit", "y must contain at least two classes")
	}
	lr.nFeatures_ = nFeatures
	lr.initializeWeights(nFeatures)

	if lr.nClasses_ == 2 {
		// Binary classification: single weight vector against classes_[1]
		yBinary := binaryTargets(y, lr.classes_[1])
		if err := lr.fitWeightVector(X, yBinary, 0); err != nil {
			return err
		}
	} else {
		// One-vs-rest
		for classIdx, class := range lr.classes_ {
			yBinary := binaryTargets(y, class)
			if err := lr.fitWeightVector(X, yBinary, classIdx); err != nil {
				return err
			}
		}
	}

	lr.state.SetDimensions(nFeatures, nSamples)
	lr.state.SetFitted()
	return nil
}

// extractClasses identifies the unique class labels in ascending order
func (lr *LogisticRegression) extractClasses(y mat.Matrix) {
	rows, _ := y.Dims()
	classMap := make(map[int]bool)

	for i := 0; i < rows; i++ {
		classMap[int(y.At(i, 0))] = true
	}

	lr.classes_ = make([]int, 0, len(classMap))
	for class := range classMap {
		lr.classes_ = append(lr.classes_, class)
	}
	sort.Ints(lr.classes_)
	lr.nClasses_ = len(lr.classes_)
}

// initializeWeights initializes model weights with small random values
func (lr *LogisticRegression) initializeWeights(nFeatures int) {
	nVectors := 1
	if lr.nClasses_ > 2 {
		nVectors = lr.nClasses_
	}

	lr.coef_ = make([][]float64, nVectors)
	for i := range lr.coef_ {
		lr.coef_[i] = make([]float64, nFeatures)
		for j := range lr.coef_[i] {
			lr.coef_[i][j] = lr.rand.NormFloat64() * 0.01
		}
	}
	lr.intercept_ = make([]float64, nVectors)
	lr.nIter_ = make([]int, nVectors)
}

// binaryTargets converts labels to 0/1 against a positive class
func binaryTargets(y mat.Matrix, positive int) []float64 {
	rows, _ := y.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		if int(y.At(i, 0)) == positive {
			out[i] = 1.0
		}
	}
	return out
}

// fitWeightVector runs gradient descent for one weight vector.
// Emits a ConvergenceWarning when maxIter is exhausted before the
// gradient norm drops below tol. Returns a NumericalInstabilityError
// when the descent diverges into NaN or Inf weights.
func (lr *LogisticRegression) fitWeightVector(X mat.Matrix, yBinary []float64, vecIdx int) error {
	nSamples, nFeatures := X.Dims()
	weights := lr.coef_[vecIdx]
	intercept := &lr.intercept_[vecIdx]

	baseLearningRate := 1.0
	converged := false

	for iter := 0; iter < lr.maxIter; iter++ {
		// Gradients of the log loss
		gradWeights := make([]float64, nFeatures)
		gradIntercept := 0.0

		for i := 0; i < nSamples; i++ {
			z := *intercept
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * weights[j]
			}
			residual := sigmoid(z) - yBinary[i]
			gradIntercept += residual
			for j := 0; j < nFeatures; j++ {
				gradWeights[j] += residual * X.At(i, j)
			}
		}

		for j := range gradWeights {
			gradWeights[j] /= float64(nSamples)
		}
		gradIntercept /= float64(nSamples)

		// L2 regularization gradient
		if lr.penalty == "l2" {
			lambda := 1.0 / lr.c
			for j := range weights {
				gradWeights[j] += lambda * weights[j]
			}
		}

		// Decaying learning rate
		learningRate := baseLearningRate / (1.0 + 0.1*float64(iter))

		for j := range weights {
			weights[j] -= learningRate * gradWeights[j]
		}
		if lr.fitIntercept {
			*intercept -= learningRate * gradIntercept
		}

		lr.nIter_[vecIdx] = iter + 1

		maxGrad := math.Abs(gradIntercept)
		for _, g := range gradWeights {
			if math.Abs(g) > maxGrad {
				maxGrad = math.Abs(g)
			}
		}
		if maxGrad < lr.tol {
			converged = true
			break
		}
	}

	if err := errors.CheckNumericalStability("gradient_descent", weights, lr.nIter_[vecIdx]); err != nil {
		return err
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.maxIter, ""))
	}
	return nil
}

// decision computes the linear score of one sample for one weight vector
func (lr *LogisticRegression) decision(X mat.Matrix, i, vecIdx int) float64 {
	z := lr.intercept_[vecIdx]
	for j := 0; j < lr.nFeatures_; j++ {
		z += X.At(i, j) * lr.coef_[vecIdx][j]
	}
	return z
}

// Predict returns the predicted class labels as an n×1 matrix.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "Predict")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LogisticRegression.Predict", lr.nFeatures_, nFeatures, 1)
	}

	predictions := mat.NewDense(nSamples, 1, nil)

	if lr.nClasses_ == 2 {
		parallel.ParallelizeWithThreshold(nSamples, 1000, func(start, end int) {
			for i := start; i < end; i++ {
				if sigmoid(lr.decision(X, i, 0)) >= 0.5 {
					predictions.Set(i, 0, float64(lr.classes_[1]))
				} else {
					predictions.Set(i, 0, float64(lr.classes_[0]))
				}
			}
		})
	} else {
		parallel.ParallelizeWithThreshold(nSamples, 1000, func(start, end int) {
			for i := start; i < end; i++ {
				best := 0
				bestScore := math.Inf(-1)
				for classIdx := 0; classIdx < lr.nClasses_; classIdx++ {
					if score := lr.decision(X, i, classIdx); score > bestScore {
						bestScore = score
						best = classIdx
					}
				}
				predictions.Set(i, 0, float64(lr.classes_[best]))
			}
		})
	}

	return predictions, nil
}

// PredictProba returns probability estimates for each class.
// The output is n×nClasses; each row sums to 1.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "PredictProba")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", lr.nFeatures_, nFeatures, 1)
	}

	probas := mat.NewDense(nSamples, lr.nClasses_, nil)

	if lr.nClasses_ == 2 {
		parallel.ParallelizeWithThreshold(nSamples, 1000, func(start, end int) {
			for i := start; i < end; i++ {
				p := sigmoid(lr.decision(X, i, 0))
				probas.Set(i, 0, 1.0-p)
				probas.Set(i, 1, p)
			}
		})
	} else {
		// One-vs-rest scores normalized with a stable softmax
		parallel.ParallelizeWithThreshold(nSamples, 1000, func(start, end int) {
			for i := start; i < end; i++ {
				scores := make([]float64, lr.nClasses_)
				for classIdx := range scores {
					scores[classIdx] = lr.decision(X, i, classIdx)
				}
				logZ := errors.LogSumExp(scores)
				for classIdx := range scores {
					probas.Set(i, classIdx, math.Exp(scores[classIdx]-logZ))
				}
			}
		})
	}

	return probas, nil
}

// Score returns the mean accuracy on the given test data and labels.
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	nSamples, _ := X.Dims()
	yRows, _ := y.Dims()
	if yRows != nSamples {
		return 0, errors.NewDimensionError("LogisticRegression.Score", nSamples, yRows, 0)
	}

	correct := 0
	for i := 0; i < nSamples; i++ {
		if predictions.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(nSamples), nil
}

// Classes returns the unique class labels seen during fitting.
func (lr *LogisticRegression) Classes() []int {
	out := make([]int, len(lr.classes_))
	copy(out, lr.classes_)
	return out
}

// NIter returns the number of gradient-descent iterations actually run
// per weight vector.
func (lr *LogisticRegression) NIter() []int {
	out := make([]int, len(lr.nIter_))
	copy(out, lr.nIter_)
	return out
}

// GetParams returns the model hyperparameters
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"penalty":       lr.penalty,
		"C":             lr.c,
		"fit_intercept": lr.fitIntercept,
		"random_state":  lr.randomState,
		"max_iter":      lr.maxIter,
		"tol":           lr.tol,
	}
}

// SetParams sets the model hyperparameters
func (lr *LogisticRegression) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		switch key {
		case "penalty":
			v, ok := value.(string)
			if !ok {
				return errors.NewValidationError(key, "must be a string", value)
			}
			lr.penalty = v
		case "C":
			v, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(key, "must be a float64", value)
			}
			lr.c = v
		case "fit_intercept":
			v, ok := value.(bool)
			if !ok {
				return errors.NewValidationError(key, "must be a bool", value)
			}
			lr.fitIntercept = v
		case "random_state":
			v, ok := value.(int64)
			if !ok {
				return errors.NewValidationError(key, "must be an int64", value)
			}
			lr.randomState = v
			if v >= 0 {
				lr.rand = rand.New(rand.NewSource(v))
			}
		case "max_iter":
			v, ok := value.(int)
			if !ok {
				return errors.NewValidationError(key, "must be an int", value)
			}
			lr.maxIter = v
		case "tol":
			v, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(key, "must be a float64", value)
			}
			lr.tol = v
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	return nil
}

// sigmoid computes the logistic function
func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + errors.StabilizeExp(-z))
}
