package decomposition

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/kriskrtn/RFF/core/model"
	"github.com/kriskrtn/RFF/pkg/errors"
)

func TestPCA_FitTransform_Shape(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	data := make([]float64, 200*10)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	X := mat.NewDense(200, 10, data)

	pca := NewPCA(3)
	Z, err := pca.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	r, c := Z.Dims()
	if r != 200 || c != 3 {
		t.Errorf("Expected shape (200, 3), got (%d, %d)", r, c)
	}
}

func TestPCA_FirstComponentCapturesDirection(t *testing.T) {
	// Points lie close to the line y = 2x; the first component should
	// capture almost all the variance.
	rng := rand.New(rand.NewSource(1))
	n := 500
	data := make([]float64, n*2)
	for i := 0; i < n; i++ {
		x := rng.NormFloat64()
		data[2*i] = x
		data[2*i+1] = 2*x + 0.01*rng.NormFloat64()
	}
	X := mat.NewDense(n, 2, data)

	pca := NewPCA(2)
	if err := pca.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	vars := pca.ExplainedVariance()
	if len(vars) != 2 {
		t.Fatalf("Expected 2 variances, got %d", len(vars))
	}
	if vars[0] < vars[1] {
		t.Errorf("Variances must be in decreasing order: %v", vars)
	}
	ratio := vars[0] / (vars[0] + vars[1])
	if ratio < 0.99 {
		t.Errorf("First component should dominate, explained ratio = %v", ratio)
	}
}

func TestPCA_ComponentClamping(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	data := make([]float64, 100*4)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	X := mat.NewDense(100, 4, data)

	// Requesting more components than features clamps to the feature count
	pca := NewPCA(50)
	Z, err := pca.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}
	_, c := Z.Dims()
	if c != 4 {
		t.Errorf("Expected components clamped to 4, got %d", c)
	}
}

func TestPCA_TransformBeforeFit(t *testing.T) {
	pca := NewPCA(2)
	_, err := pca.Transform(mat.NewDense(3, 2, nil))
	if err == nil {
		t.Fatal("Expected an error before Fit")
	}
	var nfErr *errors.NotFittedError
	if !errors.As(err, &nfErr) {
		t.Errorf("Expected NotFittedError, got %T: %v", err, err)
	}
}

func TestPCA_DimensionMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	data := make([]float64, 50*5)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	pca := NewPCA(2)
	if err := pca.Fit(mat.NewDense(50, 5, data)); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	_, err := pca.Transform(mat.NewDense(3, 4, nil))
	if err == nil {
		t.Fatal("Expected an error for mismatched column count")
	}
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Errorf("Expected DimensionError, got %T: %v", err, err)
	}
}

func TestPCA_EmptyData(t *testing.T) {
	pca := NewPCA(2)
	var empty mat.Dense
	err := pca.Fit(&empty)
	if err == nil {
		t.Fatal("Expected an error for an empty matrix")
	}
	if !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("Expected ErrEmptyData, got %v", err)
	}
}

func TestPCA_TransformCentersData(t *testing.T) {
	// A constant offset must not change the projected coordinates' spread
	rng := rand.New(rand.NewSource(4))
	n := 300
	data := make([]float64, n*3)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	X := mat.NewDense(n, 3, data)

	shifted := mat.NewDense(n, 3, nil)
	shifted.Apply(func(_, _ int, v float64) float64 { return v + 100 }, X)

	pca := NewPCA(2)
	Z1, err := pca.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	pca2 := NewPCA(2)
	Z2, err := pca2.FitTransform(shifted)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	// Column means of the projected data must be ~0 in both cases
	for _, Z := range []mat.Matrix{Z1, Z2} {
		r, c := Z.Dims()
		for j := 0; j < c; j++ {
			var sum float64
			for i := 0; i < r; i++ {
				sum += Z.At(i, j)
			}
			if math.Abs(sum/float64(r)) > 1e-8 {
				t.Errorf("Projected column %d is not centered: mean=%v", j, sum/float64(r))
			}
		}
	}
}

func TestPCA_GobRoundtrip(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	X := mat.NewDense(80, 6, nil)
	for i := 0; i < 80; i++ {
		for j := 0; j < 6; j++ {
			X.Set(i, j, r.NormFloat64())
		}
	}

	pca := NewPCA(3)
	if err := pca.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	var buf bytes.Buffer
	if err := model.SaveModelToWriter(pca, &buf); err != nil {
		t.Fatalf("SaveModelToWriter failed: %v", err)
	}

	restored := &PCA{}
	if err := model.LoadModelFromReader(restored, &buf); err != nil {
		t.Fatalf("LoadModelFromReader failed: %v", err)
	}

	want, _ := pca.Transform(X)
	got, err := restored.Transform(X)
	if err != nil {
		t.Fatalf("Transform on restored PCA failed: %v", err)
	}
	if !mat.Equal(want, got) {
		t.Error("Restored PCA must project identically")
	}
}
