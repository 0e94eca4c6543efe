package kernelapprox

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/kriskrtn/RFF/pkg/errors"
)

// fitOrthogonal は直交ランダム特徴 (Orthogonal Random Features) の射影を生成する
//
// ガウス行列 w をQR分解して正規直交な射影方向Qを取り出し、
// 各方向のノルムを chi(newDim) 分布からのスケールで復元する:
//
//	W ← Q_thin · diag(S),  S_j = sqrt(chi²(newDim))
//
// i.i.d.なガウス射影と比べてカーネル近似の分散が小さくなる。
// Qの正規直交列をnewDim本確保するため nFeatures >= newDim が必要。
func (f *FeatureMap) fitOrthogonal(X mat.Matrix) error {
	const op = "OrthogonalRandomFourierFeatures.Fit"

	if f.nFeatures < f.newDim {
		return errors.NewRankError(op, f.nFeatures, f.newDim)
	}

	sigma, err := MedianHeuristic(X, f.rng)
	if err != nil {
		return err
	}
	f.sigma = sigma

	// 生のガウス行列（RandomFourierと同じ分布）
	std := math.Sqrt(1 / (2 * sigma))
	raw := mat.NewDense(f.nFeatures, f.newDim, nil)
	for i := 0; i < f.nFeatures; i++ {
		for j := 0; j < f.newDim; j++ {
			raw.Set(i, j, f.rng.NormFloat64()*std)
		}
	}

	// QR分解で正規直交基底を取り出す
	var q mat.Dense
	err = errors.SafeExecute("qr factorization", func() error {
		var qr mat.QR
		qr.Factorize(raw)
		qr.QTo(&q)
		return nil
	})
	if err != nil {
		return errors.NewModelError(op, "qr factorization failed", err)
	}

	// S_j = sqrt(chi²(newDim)): 自由度newDimのカイ二乗は標準正規の二乗和
	scale := make([]float64, f.newDim)
	for j := range scale {
		var chi2 float64
		for k := 0; k < f.newDim; k++ {
			v := f.rng.NormFloat64()
			chi2 += v * v
		}
		scale[j] = math.Sqrt(chi2)
	}

	// W = Q_thin · diag(S)。Qの先頭newDim列のみ使用する
	w := mat.NewDense(f.nFeatures, f.newDim, nil)
	for i := 0; i < f.nFeatures; i++ {
		for j := 0; j < f.newDim; j++ {
			w.Set(i, j, q.At(i, j)*scale[j])
		}
	}

	f.w = w
	f.b = f.sampleOffsets()
	return nil
}
