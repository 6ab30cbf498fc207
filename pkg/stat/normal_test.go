package stat_test

import (
	"math"
	"testing"

	"github.com/wyfcoding/quantanalytics/pkg/stat"
)

const tolerance = 1e-12

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func TestNormPDF(t *testing.T) {
	t.Run("AtZero", func(t *testing.T) {
		// 1/sqrt(2*pi)
		if got := stat.NormPDF(0); !approxEqual(got, 0.3989422804014327, tolerance) {
			t.Errorf("NormPDF(0) = %v", got)
		}
	})

	t.Run("Symmetry", func(t *testing.T) {
		for _, x := range []float64{0.5, 1.0, 2.3, 5.0} {
			if got, want := stat.NormPDF(-x), stat.NormPDF(x); !approxEqual(got, want, tolerance) {
				t.Errorf("NormPDF(-%v) = %v, NormPDF(%v) = %v", x, got, x, want)
			}
		}
	})
}

func TestNormCDF(t *testing.T) {
	t.Run("AtZero", func(t *testing.T) {
		if got := stat.NormCDF(0); !approxEqual(got, 0.5, tolerance) {
			t.Errorf("NormCDF(0) = %v", got)
		}
	})

	t.Run("KnownValues", func(t *testing.T) {
		cases := []struct {
			x, want float64
		}{
			{1.0, 0.8413447460685429},
			{-1.0, 0.15865525393145705},
			{1.959963984540054, 0.975},
		}
		for _, c := range cases {
			if got := stat.NormCDF(c.x); !approxEqual(got, c.want, 1e-9) {
				t.Errorf("NormCDF(%v) = %v, want %v", c.x, got, c.want)
			}
		}
	})

	t.Run("Complement", func(t *testing.T) {
		for _, x := range []float64{0.3, 1.7, 4.2} {
			if got := stat.NormCDF(x) + stat.NormCDF(-x); !approxEqual(got, 1.0, tolerance) {
				t.Errorf("NormCDF(%v) + NormCDF(-%v) = %v, want 1", x, x, got)
			}
		}
	})

	t.Run("DeepTails", func(t *testing.T) {
		if got := stat.NormCDF(-40); got <= 0 {
			t.Errorf("NormCDF(-40) = %v, erfc form should stay positive", got)
		}
		if got := stat.NormCDF(40); got != 1.0 {
			t.Errorf("NormCDF(40) = %v, want 1", got)
		}
	})
}

func TestDeriveSeed(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		if stat.DeriveSeed(42, 0) != stat.DeriveSeed(42, 0) {
			t.Error("same (seed, stream) must derive the same value")
		}
	})

	t.Run("StreamsDiffer", func(t *testing.T) {
		seen := map[int64]bool{}
		for stream := 0; stream < 16; stream++ {
			s := stat.DeriveSeed(42, stream)
			if seen[s] {
				t.Fatalf("stream %d collided", stream)
			}
			seen[s] = true
		}
	})
}

func TestNewRand(t *testing.T) {
	t.Run("ReproducibleStream", func(t *testing.T) {
		a := stat.NewRand(7, 0)
		b := stat.NewRand(7, 0)
		for i := 0; i < 100; i++ {
			if a.NormFloat64() != b.NormFloat64() {
				t.Fatalf("draw %d diverged for identical seeds", i)
			}
		}
	})

	t.Run("RoughlyStandardNormal", func(t *testing.T) {
		rng := stat.NewRand(123, 0)
		n := 100000
		var sum, sqSum float64
		for i := 0; i < n; i++ {
			z := rng.NormFloat64()
			sum += z
			sqSum += z * z
		}
		mean := sum / float64(n)
		variance := sqSum/float64(n) - mean*mean
		if math.Abs(mean) > 0.02 {
			t.Errorf("sample mean = %v, want ~0", mean)
		}
		if math.Abs(variance-1) > 0.02 {
			t.Errorf("sample variance = %v, want ~1", variance)
		}
	})
}
