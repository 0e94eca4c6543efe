package pipeline

import (
	"bytes"
	"encoding/gob"

	"github.com/kriskrtn/RFF/core/model"
	"github.com/kriskrtn/RFF/decomposition"
	"github.com/kriskrtn/RFF/kernelapprox"
	"github.com/kriskrtn/RFF/linear_model"
	"github.com/kriskrtn/RFF/pkg/errors"
)

// pipelineState はgobシリアライズ用のパイプライン全体の状態。
// 各ステージは自身のGobEncoderでネストしてエンコードされる。
type pipelineState struct {
	FeatureCount int
	TargetDim    int
	UseReduction bool
	Variant      int
	RandomState  int64
	Fitted       bool

	Reducer    []byte
	FeatureMap []byte
	Classifier []byte
}

// GobEncode はgob.GobEncoderインターフェースを実装する。
// デフォルトのステージ（PCA、LogisticRegression）のみ永続化できる。
// 独自のReducerやClassifierを注入したパイプラインはエラーになる。
func (p *Pipeline) GobEncode() ([]byte, error) {
	state := pipelineState{
		FeatureCount: p.featureCount,
		TargetDim:    p.targetDim,
		UseReduction: p.useReduction,
		Variant:      int(p.variant),
		RandomState:  p.randomState,
		Fitted:       p.state.IsFitted(),
	}

	encode := func(v interface{}) ([]byte, error) {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	if p.reducer != nil {
		pca, ok := p.reducer.(*decomposition.PCA)
		if !ok {
			return nil, errors.NewValueError("Pipeline.GobEncode",
				"only the default PCA reducer can be serialized")
		}
		data, err := encode(pca)
		if err != nil {
			return nil, err
		}
		state.Reducer = data
	}

	if p.featureMap != nil {
		data, err := encode(p.featureMap)
		if err != nil {
			return nil, err
		}
		state.FeatureMap = data
	}

	if p.classifier != nil {
		clf, ok := p.classifier.(*linear_model.LogisticRegression)
		if !ok {
			return nil, errors.NewValueError("Pipeline.GobEncode",
				"only the default LogisticRegression classifier can be serialized")
		}
		data, err := encode(clf)
		if err != nil {
			return nil, err
		}
		state.Classifier = data
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode はgob.GobDecoderインターフェースを実装する
func (p *Pipeline) GobDecode(data []byte) error {
	var state pipelineState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}

	p.featureCount = state.FeatureCount
	p.targetDim = state.TargetDim
	p.useReduction = state.UseReduction
	p.variant = kernelapprox.Variant(state.Variant)
	p.randomState = state.RandomState
	if p.classifierParams == nil {
		p.classifierParams = map[string]interface{}{"max_iter": 5000}
	}

	decode := func(data []byte, v interface{}) error {
		return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
	}

	p.reducer = nil
	if len(state.Reducer) > 0 {
		pca := &decomposition.PCA{}
		if err := decode(state.Reducer, pca); err != nil {
			return err
		}
		p.reducer = pca
	}

	p.featureMap = nil
	if len(state.FeatureMap) > 0 {
		fm := &kernelapprox.FeatureMap{}
		if err := decode(state.FeatureMap, fm); err != nil {
			return err
		}
		p.featureMap = fm
	}

	p.classifier = nil
	if len(state.Classifier) > 0 {
		clf := &linear_model.LogisticRegression{}
		if err := decode(state.Classifier, clf); err != nil {
			return err
		}
		p.classifier = clf
	}

	p.state = model.NewStateManager()
	if state.Fitted {
		p.state.SetFitted()
	}
	return nil
}
