// Package metrics は分類モデルの評価指標を提供する。
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kriskrtn/RFF/pkg/errors"
)

// AccuracyScore は正解率（Accuracy）を計算する
func AccuracyScore(yTrue, yPred mat.Matrix) (float64, error) {
	// 入力検証
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 {
		return 0, errors.NewValueError("AccuracyScore", "empty matrix")
	}

	if rTrue != rPred {
		return 0, errors.NewDimensionError("AccuracyScore", rTrue, rPred, 0)
	}

	if cTrue != 1 || cPred != 1 {
		return 0, errors.NewValueError("AccuracyScore", "must be a column vector (n×1 matrix)")
	}

	correct := 0
	for i := 0; i < rTrue; i++ {
		if yTrue.At(i, 0) == yPred.At(i, 0) {
			correct++
		}
	}

	return float64(correct) / float64(rTrue), nil
}

// ClassificationError は誤分類率（1 - Accuracy）を計算する
func ClassificationError(yTrue, yPred mat.Matrix) (float64, error) {
	acc, err := AccuracyScore(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1.0 - acc, nil
}

// BinaryLogLoss は二値分類の対数損失（クロスエントロピー）を計算する。
// yProba は正クラスの予測確率（n×1）を受け取る。
func BinaryLogLoss(yTrue, yProba mat.Matrix) (float64, error) {
	// 入力検証
	rTrue, cTrue := yTrue.Dims()
	rProba, cProba := yProba.Dims()

	if rTrue == 0 {
		return 0, errors.NewValueError("BinaryLogLoss", "empty matrix")
	}

	if rTrue != rProba {
		return 0, errors.NewDimensionError("BinaryLogLoss", rTrue, rProba, 0)
	}

	if cTrue != 1 || cProba != 1 {
		return 0, errors.NewValueError("BinaryLogLoss", "must be a column vector (n×1 matrix)")
	}

	// log(0)への保護付きで損失を計算する
	const epsilon = 1e-10
	var sum float64
	clipped := false
	for i := 0; i < rTrue; i++ {
		y := yTrue.At(i, 0)
		p := yProba.At(i, 0)
		if y != 0 && y != 1 {
			return 0, errors.NewValueError("BinaryLogLoss", "labels must be 0 or 1")
		}
		if p < epsilon || p > 1-epsilon {
			clipped = true
		}
		sum += y*errors.StabilizeLog(p) + (1-y)*errors.StabilizeLog(1-p)
	}

	loss := -sum / float64(rTrue)
	if clipped {
		// 0または1に張り付いた確率はepsilonに切り詰めて評価した
		errors.Warn(errors.NewUndefinedMetricWarning("log_loss",
			"predicted probabilities at 0 or 1 (clipped to epsilon)", loss))
	}
	return loss, nil
}
