package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "rff: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "rff: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			// ModelError型にキャスト可能か確認
			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Transform", 20, 19, 1)

	// 基本的なエラーメッセージの確認
	want := "rff: Transform: dimension mismatch on axis 1 (features). Expected 20, got 19"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// DimensionError型にキャスト可能か確認
	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("RandomFourierFeatures", "Transform")

	// 基本的なエラーメッセージの確認
	want := "rff: RandomFourierFeatures: this model is not fitted yet. Call Fit() before using Transform()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var nfErr *NotFittedError
	if !As(err, &nfErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewInsufficientDataError(t *testing.T) {
	err := NewInsufficientDataError("MedianHeuristic", 1000, 500)

	want := "rff: MedianHeuristic: insufficient data. At least 1000 samples are required, got 500"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var insErr *InsufficientDataError
	if !As(err, &insErr) {
		t.Error("Error should be castable to *InsufficientDataError")
	}
	if insErr.Required != 1000 || insErr.Actual != 500 {
		t.Errorf("Unexpected fields: required=%d actual=%d", insErr.Required, insErr.Actual)
	}
}

func TestNewRankError(t *testing.T) {
	err := NewRankError("OrthogonalRandomFourierFeatures.Fit", 30, 50)

	want := "rff: OrthogonalRandomFourierFeatures.Fit: rank deficient factorization. 50 orthonormal directions are required, but only 30 are available"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var rankErr *RankError
	if !As(err, &rankErr) {
		t.Error("Error should be castable to *RankError")
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("MedianHeuristic", "bandwidth must be positive")

	want := "rff: MedianHeuristic: bandwidth must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestNewConvergenceWarning(t *testing.T) {
	w := NewConvergenceWarning("LogisticRegression", 5000, "")

	msg := w.Error()
	if !strings.Contains(msg, "LogisticRegression") || !strings.Contains(msg, "5000") {
		t.Errorf("Unexpected warning message: %v", msg)
	}

	// カスタムハンドラで警告を受け取れるか確認
	var captured error
	SetWarningHandler(func(warning error) {
		captured = warning
	})
	defer SetWarningHandler(nil)

	Warn(w)
	if captured == nil {
		t.Fatal("Warning handler was not invoked")
	}
	if captured.Error() != msg {
		t.Errorf("Captured warning = %v, want %v", captured.Error(), msg)
	}
}

func TestWrapAndIs(t *testing.T) {
	base := ErrEmptyData
	wrapped := Wrap(base, "Pipeline.Fit")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Wrapped error should match the sentinel with Is()")
	}
}

func TestErrorChaining(t *testing.T) {
	inner := NewInsufficientDataError("MedianHeuristic", 1000, 10)
	outer := NewModelError("FeatureMap.Fit", "bandwidth estimation failed", inner)

	// 外側のエラーから内側の構造化エラーを取り出せるか確認
	var insErr *InsufficientDataError
	if !As(outer, &insErr) {
		t.Error("Chained error should expose *InsufficientDataError via As()")
	}
	if !strings.Contains(outer.Error(), "bandwidth estimation failed") {
		t.Errorf("Outer message lost: %v", outer.Error())
	}
}
