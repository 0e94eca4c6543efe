package kernelapprox

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/kriskrtn/RFF/pkg/errors"
)

// randomMatrix creates an r×c matrix of standard-normal samples with a fixed seed.
func randomMatrix(r, c int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(r, c, data)
}

func TestMedianHeuristic_DeterministicAndPositive(t *testing.T) {
	X := randomMatrix(1200, 5, 1)

	sigma1, err := MedianHeuristic(X, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("MedianHeuristic failed: %v", err)
	}
	sigma2, err := MedianHeuristic(X, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("MedianHeuristic failed: %v", err)
	}

	if sigma1 <= 0 {
		t.Errorf("Bandwidth must be positive, got %v", sigma1)
	}
	if sigma1 != sigma2 {
		t.Errorf("Same data and seed must reproduce the same bandwidth: %v != %v", sigma1, sigma2)
	}
}

func TestMedianHeuristic_DifferentSeedsDiffer(t *testing.T) {
	X := randomMatrix(2000, 5, 1)

	sigma1, err := MedianHeuristic(X, rand.New(rand.NewSource(0)))
	if err != nil {
		t.Fatalf("MedianHeuristic failed: %v", err)
	}
	sigma2, err := MedianHeuristic(X, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("MedianHeuristic failed: %v", err)
	}

	// Different subsamples should (almost surely) give different medians
	if sigma1 == sigma2 {
		t.Errorf("Expected different bandwidths for different seeds, both were %v", sigma1)
	}
}

func TestMedianHeuristic_InsufficientData(t *testing.T) {
	X := randomMatrix(500, 5, 1)

	_, err := MedianHeuristic(X, rand.New(rand.NewSource(0)))
	if err == nil {
		t.Fatal("Expected an error for a 500-row dataset")
	}

	var insErr *errors.InsufficientDataError
	if !errors.As(err, &insErr) {
		t.Fatalf("Expected InsufficientDataError, got %T: %v", err, err)
	}
	if insErr.Required != BandwidthSampleSize || insErr.Actual != 500 {
		t.Errorf("Unexpected error fields: required=%d actual=%d", insErr.Required, insErr.Actual)
	}
}

func TestMedianHeuristic_ExactSampleSize(t *testing.T) {
	// Exactly BandwidthSampleSize rows is the smallest valid input
	X := randomMatrix(BandwidthSampleSize, 3, 1)

	sigma, err := MedianHeuristic(X, rand.New(rand.NewSource(0)))
	if err != nil {
		t.Fatalf("MedianHeuristic failed on minimum-size input: %v", err)
	}
	if sigma <= 0 {
		t.Errorf("Bandwidth must be positive, got %v", sigma)
	}
}

func TestMedianHeuristic_ScalesWithData(t *testing.T) {
	X := randomMatrix(1100, 4, 1)

	// Scaling the data by a scales all squared distances by a²,
	// and the same seed picks the same subsample.
	scaled := mat.NewDense(1100, 4, nil)
	scaled.Scale(10, X)

	sigma, err := MedianHeuristic(X, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("MedianHeuristic failed: %v", err)
	}
	sigmaScaled, err := MedianHeuristic(scaled, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("MedianHeuristic failed: %v", err)
	}

	if math.Abs(sigmaScaled-100*sigma) > 1e-8*sigmaScaled {
		t.Errorf("Expected sigma to scale by 100: got %v, want %v", sigmaScaled, 100*sigma)
	}
}
