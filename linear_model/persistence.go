package linear_model

import (
	"bytes"
	"encoding/gob"
	"math/rand"

	"github.com/kriskrtn/RFF/core/model"
)

// logisticState is the serializable snapshot of a fitted model
type logisticState struct {
	Penalty      string
	C            float64
	FitIntercept bool
	RandomState  int64
	MaxIter      int
	Tol          float64
	Coef         [][]float64
	Intercept    []float64
	Classes      []int
	NClasses     int
	NFeatures    int
	NIter        []int
	Fitted       bool
}

// GobEncode implements the gob.GobEncoder interface
func (lr *LogisticRegression) GobEncode() ([]byte, error) {
	state := logisticState{
		Penalty:      lr.penalty,
		C:            lr.c,
		FitIntercept: lr.fitIntercept,
		RandomState:  lr.randomState,
		MaxIter:      lr.maxIter,
		Tol:          lr.tol,
		Coef:         lr.coef_,
		Intercept:    lr.intercept_,
		Classes:      lr.classes_,
		NClasses:     lr.nClasses_,
		NFeatures:    lr.nFeatures_,
		NIter:        lr.nIter_,
		Fitted:       lr.state.IsFitted(),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (lr *LogisticRegression) GobDecode(data []byte) error {
	var state logisticState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}

	lr.penalty = state.Penalty
	lr.c = state.C
	lr.fitIntercept = state.FitIntercept
	lr.randomState = state.RandomState
	lr.maxIter = state.MaxIter
	lr.tol = state.Tol
	lr.coef_ = state.Coef
	lr.intercept_ = state.Intercept
	lr.classes_ = state.Classes
	lr.nClasses_ = state.NClasses
	lr.nFeatures_ = state.NFeatures
	lr.nIter_ = state.NIter

	if state.RandomState >= 0 {
		lr.rand = rand.New(rand.NewSource(state.RandomState))
	} else {
		lr.rand = rand.New(rand.NewSource(rand.Int63()))
	}

	lr.state = model.NewStateManager()
	if state.Fitted {
		lr.state.SetDimensions(state.NFeatures, 0)
		lr.state.SetFitted()
	}
	return nil
}
