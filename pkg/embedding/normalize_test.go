package embedding

import (
	"math"
	"testing"
)

func TestNormalizeVector(t *testing.T) {
	vec := []float32{3, 4}
	got := normalizeVector(vec)

	if math.Abs(float64(got[0])-0.6) > 1e-6 || math.Abs(float64(got[1])-0.8) > 1e-6 {
		t.Errorf("normalizeVector(%v) = %v, want [0.6 0.8]", vec, got)
	}

	var magnitude float64
	for _, v := range got {
		magnitude += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(magnitude)-1.0) > 1e-6 {
		t.Errorf("normalized magnitude = %f, want 1.0", math.Sqrt(magnitude))
	}
}

func TestNormalizeVectorZero(t *testing.T) {
	vec := []float32{0, 0, 0}
	got := normalizeVector(vec)
	for i, v := range got {
		if v != 0 {
			t.Errorf("index %d = %f, want 0 (zero vector must pass through)", i, v)
		}
	}
}
