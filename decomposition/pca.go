// Package decomposition は次元削減のTransformerを提供します。
package decomposition

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/kriskrtn/RFF/core/model"
	"github.com/kriskrtn/RFF/pkg/errors"
)

// PCA は主成分分析による次元削減
// 分解自体はgonumのstat.PCに委譲し、本型はfit/transformの
// ライフサイクルと学習済みパラメータの保持を担当する
type PCA struct {
	state *model.StateManager

	// NComponents は削減後の次元数
	NComponents int

	// Mean は各特徴量の平均値（transform時のセンタリングに使用）
	Mean []float64

	// components は主成分ベクトル (n_features × NComponents、列が成分)
	components *mat.Dense

	// variances は各主成分が説明する分散
	variances []float64
}

// NewPCA は新しいPCAを作成する
//
// パラメータ:
//   - nComponents: 削減後の次元数。入力の特徴量数を超える場合はFit時に切り詰められる
func NewPCA(nComponents int) *PCA {
	return &PCA{
		state:       model.NewStateManager(),
		NComponents: nComponents,
	}
}

// Fit は訓練データから主成分を計算する
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features の行列)
//
// 戻り値:
//   - error: エラーが発生した場合
func (p *PCA) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("PCA.Fit", "empty data", errors.ErrEmptyData)
	}
	if p.NComponents <= 0 {
		return errors.NewValidationError("n_components", "must be a positive integer", p.NComponents)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(X, nil); !ok {
		return errors.NewModelError("PCA.Fit", "principal component extraction failed", errors.ErrSingularMatrix)
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)
	p.variances = pc.VarsTo(nil)

	// 利用可能な成分数は min(n_samples, n_features) に制限される
	_, available := vectors.Dims()
	k := p.NComponents
	if k > available {
		k = available
	}
	p.NComponents = k
	p.components = mat.DenseCopyOf(vectors.Slice(0, c, 0, k))
	p.variances = p.variances[:k]

	// transform時のセンタリング用に列平均を保存する
	p.Mean = make([]float64, c)
	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		p.Mean[j] = sum / float64(r)
	}

	p.state.SetDimensions(c, r)
	p.state.SetFitted()
	return nil
}

// Transform は学習済みの主成分でデータを射影する
//
// パラメータ:
//   - X: 変換するデータ
//
// 戻り値:
//   - mat.Matrix: 射影されたデータ (n_samples × NComponents)
//   - error: エラーが発生した場合
func (p *PCA) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.state.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "Transform")
	}

	r, c := X.Dims()
	if c != len(p.Mean) {
		return nil, errors.NewDimensionError("PCA.Transform", len(p.Mean), c, 1)
	}

	// センタリングしてから主成分に射影する
	centered := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			centered.Set(i, j, X.At(i, j)-p.Mean[j])
		}
	}

	out := mat.NewDense(r, p.NComponents, nil)
	out.Mul(centered, p.components)
	return out, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (p *PCA) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// ExplainedVariance は各主成分が説明する分散を返す
func (p *PCA) ExplainedVariance() []float64 {
	if p.variances == nil {
		return nil
	}
	out := make([]float64, len(p.variances))
	copy(out, p.variances)
	return out
}

// IsFitted はFit済みかどうかを返す
func (p *PCA) IsFitted() bool {
	return p.state.IsFitted()
}

// GetParams はパラメータを取得する
func (p *PCA) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_components": p.NComponents,
	}
}

// String はPCAの文字列表現を返す
func (p *PCA) String() string {
	if !p.state.IsFitted() {
		return fmt.Sprintf("PCA(n_components=%d)", p.NComponents)
	}
	return fmt.Sprintf("PCA(n_components=%d, n_features=%d)", p.NComponents, len(p.Mean))
}
