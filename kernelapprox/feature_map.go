package kernelapprox

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/kriskrtn/RFF/core/model"
	"github.com/kriskrtn/RFF/core/parallel"
	"github.com/kriskrtn/RFF/pkg/errors"
)

// Variant は特徴写像の種類を表す閉じた列挙型
type Variant int

const (
	// Identity は特徴展開を行わない恒等写像（ベースライン用のプレースホルダ）
	Identity Variant = iota
	// RandomFourier は標準的なランダムフーリエ特徴写像
	RandomFourier
	// OrthogonalRandomFourier は射影方向を直交化した低分散の変種
	OrthogonalRandomFourier
)

// String はVariantの設定値としての表記を返す
func (v Variant) String() string {
	switch v {
	case Identity:
		return "identity"
	case RandomFourier:
		return "random_fourier"
	case OrthogonalRandomFourier:
		return "orthogonal_random_fourier"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant は設定文字列をVariantに変換する
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "identity":
		return Identity, nil
	case "random_fourier":
		return RandomFourier, nil
	case "orthogonal_random_fourier":
		return OrthogonalRandomFourier, nil
	default:
		return Identity, errors.NewValidationError("feature_map_variant", "unknown variant", s)
	}
}

// modelName はエラーメッセージ用のモデル名を返す
func (v Variant) modelName() string {
	switch v {
	case RandomFourier:
		return "RandomFourierFeatures"
	case OrthogonalRandomFourier:
		return "OrthogonalRandomFourierFeatures"
	default:
		return "IdentityFeatureMap"
	}
}

// FeatureMap はランダムフーリエ特徴写像
//
// Fitで学習する射影パラメータ:
//   - W: [nFeatures × newDim] の射影行列。Fit後は不変
//   - b: 長さnFeaturesの位相オフセット。各ランダム特徴に1つ（入力次元数とは無関係）
//
// Fit後のTransformは (X, W, b) の純関数であり、学習済みインスタンスへの
// 並行なTransform呼び出しは安全。
type FeatureMap struct {
	state *model.StateManager

	variant     Variant
	nFeatures   int
	newDim      int
	fn          func(float64) float64
	randomState int64
	rng         *rand.Rand

	// 学習パラメータ（Fitで設定、以後読み取り専用）
	w     *mat.Dense
	b     []float64
	sigma float64
}

// Option はFeatureMapのオプション設定関数
type Option func(*FeatureMap)

// WithRandomState は乱数シードを設定する。負の値で非決定的なシードを使用する。
func WithRandomState(seed int64) Option {
	return func(f *FeatureMap) {
		f.randomState = seed
	}
}

// WithNonlinearity は非線形関数を設定する。
// プレースホルダ（Identity）が保持する値であり、RFFの具象変種は
// 写像式のコサインを常に使用する。
func WithNonlinearity(fn func(float64) float64) Option {
	return func(f *FeatureMap) {
		f.fn = fn
	}
}

// New は指定した変種のFeatureMapを作成する
//
// パラメータ:
//   - variant: 特徴写像の種類
//   - nFeatures: 生成するランダム特徴の数 (> 0)
//   - newDim: 射影行列が想定する入力次元数 (> 0)
//
// 戻り値:
//   - *FeatureMap: 未学習のFeatureMapインスタンス
//   - error: パラメータが不正な場合は ValidationError
func New(variant Variant, nFeatures, newDim int, opts ...Option) (*FeatureMap, error) {
	if nFeatures <= 0 {
		return nil, errors.NewValidationError("feature_count", "must be a positive integer", nFeatures)
	}
	if newDim <= 0 {
		return nil, errors.NewValidationError("target_dim", "must be a positive integer", newDim)
	}

	f := &FeatureMap{
		state:       model.NewStateManager(),
		variant:     variant,
		nFeatures:   nFeatures,
		newDim:      newDim,
		fn:          math.Cos,
		randomState: -1,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.randomState >= 0 {
		f.rng = rand.New(rand.NewSource(f.randomState))
	} else {
		f.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	return f, nil
}

// Fit は射影パラメータ (W, b) をデータから学習する
//
// Identityでは何も計算せず、学習済み状態に遷移するのみ。
// 再Fitは新規インスタンスのFitと同じ意味を持ち、前回のパラメータを上書きする。
func (f *FeatureMap) Fit(X mat.Matrix) error {
	r, c := X.Dims()

	switch f.variant {
	case Identity:
		// 何も学習しない
	case RandomFourier:
		if err := f.fitRandomFourier(X); err != nil {
			return err
		}
	case OrthogonalRandomFourier:
		if err := f.fitOrthogonal(X); err != nil {
			return err
		}
	default:
		return errors.NewValidationError("feature_map_variant", "unknown variant", int(f.variant))
	}

	f.state.SetDimensions(c, r)
	f.state.SetFitted()
	return nil
}

// fitRandomFourier はガウス分布からのi.i.d.サンプリングでWとbを生成する
func (f *FeatureMap) fitRandomFourier(X mat.Matrix) error {
	sigma, err := MedianHeuristic(X, f.rng)
	if err != nil {
		return err
	}
	f.sigma = sigma

	// W_ij ~ N(0, sqrt(1/(2σ)))
	std := math.Sqrt(1 / (2 * sigma))
	w := mat.NewDense(f.nFeatures, f.newDim, nil)
	for i := 0; i < f.nFeatures; i++ {
		for j := 0; j < f.newDim; j++ {
			w.Set(i, j, f.rng.NormFloat64()*std)
		}
	}

	f.w = w
	f.b = f.sampleOffsets()
	return nil
}

// sampleOffsets は位相オフセット b_i ~ U[-π, π) を生成する
func (f *FeatureMap) sampleOffsets() []float64 {
	b := make([]float64, f.nFeatures)
	for i := range b {
		b[i] = f.rng.Float64()*2*math.Pi - math.Pi
	}
	return b
}

// Transform は学習済みの射影で入力を非線形展開する
//
// Z = cos(X·Wᵀ + b) を計算し、[n_samples × nFeatures] の行列を返す。
// bは行方向にブロードキャストされる。Identityでは入力をそのまま返す。
//
// 戻り値:
//   - mat.Matrix: 変換されたデータ
//   - error: 未学習の場合は NotFittedError、
//     入力の列数がnewDimと異なる場合は DimensionError
func (f *FeatureMap) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !f.state.IsFitted() {
		return nil, errors.NewNotFittedError(f.variant.modelName(), "Transform")
	}

	if f.variant == Identity {
		return X, nil
	}

	r, c := X.Dims()
	if c != f.newDim {
		return nil, errors.NewDimensionError(f.variant.modelName()+".Transform", f.newDim, c, 1)
	}

	// Z = X·Wᵀ を一括計算してから、行ごとにオフセットとコサインを適用する
	out := mat.NewDense(r, f.nFeatures, nil)
	out.Mul(X, f.w.T())

	parallel.ParallelizeWithThreshold(r, 256, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < f.nFeatures; j++ {
				out.Set(i, j, math.Cos(out.At(i, j)+f.b[j]))
			}
		}
	})

	// コサインの値域は[-1,1]なので、NaNの混入は入力の汚染を意味する
	if err := errors.CheckMatrix(f.variant.modelName()+".Transform", out, r, f.nFeatures, 0); err != nil {
		return nil, err
	}

	return out, nil
}

// FitTransform はFitとTransformを同時に実行する
func (f *FeatureMap) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := f.Fit(X); err != nil {
		return nil, err
	}
	return f.Transform(X)
}

// IsFitted はFit済みかどうかを返す
func (f *FeatureMap) IsFitted() bool {
	return f.state.IsFitted()
}

// Sigma はFitで推定した帯域幅を返す（Identityでは常に0）
func (f *FeatureMap) Sigma() float64 {
	return f.sigma
}

// Variant は特徴写像の種類を返す
func (f *FeatureMap) Variant() Variant {
	return f.variant
}

// NFeatures は生成するランダム特徴の数を返す
func (f *FeatureMap) NFeatures() int {
	return f.nFeatures
}

// NewDim は射影行列が想定する入力次元数を返す
func (f *FeatureMap) NewDim() int {
	return f.newDim
}

// Projection は学習済みの射影行列Wを返す（読み取り専用）
func (f *FeatureMap) Projection() mat.Matrix {
	if f.w == nil {
		return nil
	}
	return f.w
}

// Offsets は学習済みの位相オフセットbのコピーを返す
func (f *FeatureMap) Offsets() []float64 {
	if f.b == nil {
		return nil
	}
	out := make([]float64, len(f.b))
	copy(out, f.b)
	return out
}

// GetParams は設定パラメータを取得する
func (f *FeatureMap) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_map_variant": f.variant.String(),
		"feature_count":       f.nFeatures,
		"target_dim":          f.newDim,
		"random_state":        f.randomState,
	}
}

// String はFeatureMapの文字列表現を返す
func (f *FeatureMap) String() string {
	if !f.state.IsFitted() {
		return fmt.Sprintf("FeatureMap(variant=%s, feature_count=%d, target_dim=%d)",
			f.variant, f.nFeatures, f.newDim)
	}
	return fmt.Sprintf("FeatureMap(variant=%s, feature_count=%d, target_dim=%d, sigma=%g)",
		f.variant, f.nFeatures, f.newDim, f.sigma)
}
