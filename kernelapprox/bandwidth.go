package kernelapprox

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/kriskrtn/RFF/pkg/errors"
)

// BandwidthSampleSize はメディアンヒューリスティックが非復元抽出する行数。
// データセットはこれ以上の行数を持つ必要がある。
const BandwidthSampleSize = 1000

// MedianHeuristic はガウスカーネルの帯域幅 sigma をメディアンヒューリスティックで推定する
//
// データから BandwidthSampleSize 行を非復元抽出し、サンプル内の全ペアの
// ユークリッド距離の二乗を計算して、その中央値を返す。
//
// パラメータ:
//   - X: データ行列 (n_samples × n_features、n_samples >= BandwidthSampleSize)
//   - rng: 呼び出し側が注入する乱数生成器（再現性はシードの性質であり、プロセス状態に依存しない）
//
// 戻り値:
//   - float64: 推定された帯域幅 (> 0)
//   - error: 行数不足の場合は InsufficientDataError
func MedianHeuristic(X mat.Matrix, rng *rand.Rand) (float64, error) {
	n, d := X.Dims()
	if n < BandwidthSampleSize {
		return 0, errors.NewInsufficientDataError("MedianHeuristic", BandwidthSampleSize, n)
	}

	// 非復元抽出で相異なる行インデックスを選ぶ
	perm := rng.Perm(n)[:BandwidthSampleSize]

	// 抽出行をコピーしてペア距離計算の局所性を確保する
	sample := make([][]float64, BandwidthSampleSize)
	for i, idx := range perm {
		row := make([]float64, d)
		for j := 0; j < d; j++ {
			row[j] = X.At(idx, j)
		}
		sample[i] = row
	}

	// 全ペアの二乗ユークリッド距離
	nPairs := BandwidthSampleSize * (BandwidthSampleSize - 1) / 2
	dists := make([]float64, 0, nPairs)
	for i := 0; i < BandwidthSampleSize; i++ {
		for j := i + 1; j < BandwidthSampleSize; j++ {
			var sq float64
			for k := 0; k < d; k++ {
				diff := sample[i][k] - sample[j][k]
				sq += diff * diff
			}
			dists = append(dists, sq)
		}
	}

	sigma := median(dists)
	if err := errors.CheckScalar("bandwidth_estimation", sigma, 0); err != nil {
		return 0, err
	}
	if sigma <= 0 {
		// 抽出サンプルの過半数が重複行だと中央値が0になる
		return 0, errors.NewValueError("MedianHeuristic", "estimated bandwidth must be positive; the subsample contains too many duplicate rows")
	}
	return sigma, nil
}

// median は値の中央値を返す（偶数個の場合は中央2値の平均）。入力はソートされる。
func median(values []float64) float64 {
	sort.Float64s(values)
	m := len(values) / 2
	if len(values)%2 == 0 {
		return (values[m-1] + values[m]) / 2
	}
	return values[m]
}
