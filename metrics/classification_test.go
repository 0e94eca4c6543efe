package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/kriskrtn/RFF/pkg/errors"
)

func TestAccuracyScore(t *testing.T) {
	yTrue := mat.NewDense(4, 1, []float64{0, 1, 1, 0})
	yPred := mat.NewDense(4, 1, []float64{0, 1, 0, 0})

	acc, err := AccuracyScore(yTrue, yPred)
	if err != nil {
		t.Fatalf("AccuracyScore failed: %v", err)
	}
	if acc != 0.75 {
		t.Errorf("Expected accuracy 0.75, got %f", acc)
	}

	cerr, err := ClassificationError(yTrue, yPred)
	if err != nil {
		t.Fatalf("ClassificationError failed: %v", err)
	}
	if cerr != 0.25 {
		t.Errorf("Expected error 0.25, got %f", cerr)
	}
}

func TestAccuracyScore_Validation(t *testing.T) {
	var empty mat.Dense
	if _, err := AccuracyScore(&empty, &empty); err == nil {
		t.Error("Expected an error for empty input")
	}

	yTrue := mat.NewDense(4, 1, nil)
	yShort := mat.NewDense(2, 1, nil)
	if _, err := AccuracyScore(yTrue, yShort); err == nil {
		t.Error("Expected an error for mismatched rows")
	}

	yWide := mat.NewDense(4, 2, nil)
	if _, err := AccuracyScore(yTrue, yWide); err == nil {
		t.Error("Expected an error for non-column input")
	}
}

func TestBinaryLogLoss(t *testing.T) {
	yTrue := mat.NewDense(2, 1, []float64{1, 0})
	yProba := mat.NewDense(2, 1, []float64{0.9, 0.1})

	loss, err := BinaryLogLoss(yTrue, yProba)
	if err != nil {
		t.Fatalf("BinaryLogLoss failed: %v", err)
	}
	expected := -math.Log(0.9)
	if math.Abs(loss-expected) > 1e-10 {
		t.Errorf("Expected loss %f, got %f", expected, loss)
	}

	// 確率0でも有限の損失を返し、切り詰めの警告を発する
	var captured []error
	errors.SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer errors.SetWarningHandler(nil)

	yZero := mat.NewDense(2, 1, []float64{0.0, 1.0})
	loss, err = BinaryLogLoss(yTrue, yZero)
	if err != nil {
		t.Fatalf("BinaryLogLoss failed: %v", err)
	}
	if math.IsInf(loss, 0) || math.IsNaN(loss) {
		t.Errorf("Expected a finite loss with extreme probabilities, got %f", loss)
	}
	if len(captured) == 0 {
		t.Fatal("Expected an UndefinedMetricWarning for clipped probabilities")
	}
	var umw *errors.UndefinedMetricWarning
	if !errors.As(captured[0], &umw) {
		t.Errorf("Expected UndefinedMetricWarning, got %v", captured[0])
	}

	// 0/1以外のラベルはエラー
	yBad := mat.NewDense(2, 1, []float64{2, 0})
	if _, err := BinaryLogLoss(yBad, yProba); err == nil {
		t.Error("Expected an error for non-binary labels")
	}
}
