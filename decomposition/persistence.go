package decomposition

import (
	"bytes"
	"encoding/gob"

	"gonum.org/v1/gonum/mat"

	"github.com/kriskrtn/RFF/core/model"
)

// pcaState はgobシリアライズ用の学習済み状態
type pcaState struct {
	NComponents int
	Mean        []float64
	CompRows    int
	CompCols    int
	CompData    []float64
	Variances   []float64
	Fitted      bool
}

// GobEncode はgob.GobEncoderインターフェースを実装する
func (p *PCA) GobEncode() ([]byte, error) {
	state := pcaState{
		NComponents: p.NComponents,
		Mean:        p.Mean,
		Variances:   p.variances,
		Fitted:      p.state.IsFitted(),
	}
	if p.components != nil {
		r, c := p.components.Dims()
		state.CompRows = r
		state.CompCols = c
		state.CompData = make([]float64, 0, r*c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				state.CompData = append(state.CompData, p.components.At(i, j))
			}
		}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode はgob.GobDecoderインターフェースを実装する
func (p *PCA) GobDecode(data []byte) error {
	var state pcaState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}

	p.NComponents = state.NComponents
	p.Mean = state.Mean
	p.variances = state.Variances
	if state.CompRows > 0 && state.CompCols > 0 {
		p.components = mat.NewDense(state.CompRows, state.CompCols, state.CompData)
	} else {
		p.components = nil
	}

	p.state = model.NewStateManager()
	if state.Fitted {
		p.state.SetDimensions(state.CompRows, 0)
		p.state.SetFitted()
	}
	return nil
}
