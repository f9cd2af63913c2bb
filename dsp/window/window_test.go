package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	types := []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeKaiser}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}
		})
	}
}

func TestSymmetricWindowsAreSymmetric(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeHamming, TypeBlackman, TypeKaiser} {
		w := Generate(typ, 101)
		for i := range w {
			j := len(w) - 1 - i
			if math.Abs(w[i]-w[j]) > 1e-12 {
				t.Fatalf("%s: w[%d]=%v != w[%d]=%v", typ, i, w[i], j, w[j])
			}
		}
		if math.Abs(w[50]-1) > 1e-9 {
			t.Fatalf("%s: centre = %v, want 1", typ, w[50])
		}
	}
}

func TestHammingEndpoints(t *testing.T) {
	w := Generate(TypeHamming, 5)
	want := []float64{0.08, 0.54, 1, 0.54, 0.08}
	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Fatalf("w[%d]=%v, want %v", i, w[i], want[i])
		}
	}
}

func TestLengthOneIsUnity(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeHamming, TypeBlackman} {
		w := Generate(typ, 1)
		if len(w) != 1 || w[0] != 1 {
			t.Fatalf("%s: Generate(1) = %v, want [1]", typ, w)
		}
	}
}

func TestKaiserAlpha(t *testing.T) {
	w := Generate(TypeKaiser, 16, WithAlpha(0))
	for i, v := range w {
		if v != 1 {
			t.Fatalf("beta 0: w[%d]=%v, want 1", i, v)
		}
	}

	// Negative values keep the default beta.
	def := Generate(TypeKaiser, 16)
	neg := Generate(TypeKaiser, 16, WithAlpha(-1))
	for i := range def {
		if def[i] != neg[i] {
			t.Fatalf("w[%d]=%v, want default %v", i, neg[i], def[i])
		}
	}
	if def[0] >= 0.01 {
		t.Fatalf("default Kaiser edge = %v, want < 0.01", def[0])
	}
}

func TestApplyMatchesGenerate(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2, 2, 2}
	Apply(TypeBlackman, buf)
	w := Generate(TypeBlackman, len(buf))
	for i := range buf {
		if math.Abs(buf[i]-2*w[i]) > 1e-15 {
			t.Fatalf("buf[%d]=%v, want %v", i, buf[i], 2*w[i])
		}
	}

	Apply(TypeHann, nil)
	if Generate(TypeHann, -1) != nil || Generate(TypeHann, 0) != nil {
		t.Fatal("expected nil for non-positive length")
	}
}

func TestParse(t *testing.T) {
	for _, name := range []string{"hamming", " Hann ", "BLACKMAN", "kaiser", "rectangular"} {
		if _, err := Parse(name); err != nil {
			t.Fatalf("Parse(%q) error: %v", name, err)
		}
	}
	typ, err := Parse("hamming")
	if err != nil || typ != TypeHamming {
		t.Fatalf("Parse(hamming) = %v, %v", typ, err)
	}
	if _, err := Parse("triangle"); !errors.Is(err, ErrUnknownWindow) {
		t.Fatalf("Parse(triangle) error = %v, want ErrUnknownWindow", err)
	}
}
