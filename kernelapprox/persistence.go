package kernelapprox

import (
	"bytes"
	"encoding/gob"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/kriskrtn/RFF/core/model"
)

// featureMapState はgobエンコード用の内部表現。
// 非線形関数はシリアライズできないため保存対象外（復元後はコサイン）。
type featureMapState struct {
	Variant     Variant
	NFeatures   int
	NewDim      int
	RandomState int64
	Sigma       float64
	Fitted      bool
	WRows       int
	WCols       int
	WData       []float64
	B           []float64
}

// GobEncode はFeatureMapをgob形式にエンコードする
func (f *FeatureMap) GobEncode() ([]byte, error) {
	state := featureMapState{
		Variant:     f.variant,
		NFeatures:   f.nFeatures,
		NewDim:      f.newDim,
		RandomState: f.randomState,
		Sigma:       f.sigma,
		Fitted:      f.state.IsFitted(),
		B:           f.b,
	}
	if f.w != nil {
		r, c := f.w.Dims()
		state.WRows = r
		state.WCols = c
		state.WData = make([]float64, 0, r*c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				state.WData = append(state.WData, f.w.At(i, j))
			}
		}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode はgob形式からFeatureMapを復元する
func (f *FeatureMap) GobDecode(data []byte) error {
	var state featureMapState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}

	f.variant = state.Variant
	f.nFeatures = state.NFeatures
	f.newDim = state.NewDim
	f.randomState = state.RandomState
	f.sigma = state.Sigma
	f.fn = math.Cos
	f.b = state.B

	if state.WRows > 0 {
		f.w = mat.NewDense(state.WRows, state.WCols, state.WData)
	} else {
		f.w = nil
	}

	if f.randomState >= 0 {
		f.rng = rand.New(rand.NewSource(f.randomState))
	} else {
		f.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	f.state = model.NewStateManager()
	if state.Fitted {
		f.state.SetFitted()
	}
	return nil
}
