package design

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
	"github.com/cwbudde/algo-ecg/dsp/window"
)

const fs = 360.0

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// magnitudeDB evaluates 20*log10|B/A| at freqHz.
func magnitudeDB(c Coefficients, freqHz float64) float64 {
	w := 2 * math.Pi * freqHz / c.SampleRate
	var num, den complex128
	for k, v := range c.B {
		num += complex(v, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	for k, v := range c.A {
		den += complex(v, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return 20 * math.Log10(cmplx.Abs(num/den))
}

func TestFIRShapes(t *testing.T) {
	lp, err := FIRLowPass(101, fs)
	if err != nil {
		t.Fatal(err)
	}
	hp, err := FIRHighPass(101, fs)
	if err != nil {
		t.Fatal(err)
	}
	bs, err := FIRNotch(101, fs)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		c     Coefficients
		freq  float64
		minDB float64
		maxDB float64
	}{
		{"lowpass DC", lp, 0, -1e-9, 1e-9},
		{"lowpass passband", lp, 50, -0.1, 0.1},
		{"lowpass cutoff", lp, 100, -6.5, -5.5},
		{"lowpass stopband", lp, 150, -200, -50},
		{"highpass Nyquist", hp, fs / 2, -1e-9, 1e-9},
		{"highpass passband", hp, 20, -0.1, 0.1},
		{"highpass DC", hp, 0, -4, -2},
		{"notch DC", bs, 0, -1e-9, 1e-9},
		{"notch passband", bs, 100, -0.1, 0.1},
		{"notch center", bs, 50, -4, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := magnitudeDB(tt.c, tt.freq)
			if got < tt.minDB || got > tt.maxDB {
				t.Fatalf("|H(%g Hz)| = %.3f dB, want [%g, %g]", tt.freq, got, tt.minDB, tt.maxDB)
			}
		})
	}
}

func TestFIRStructure(t *testing.T) {
	bank, err := FIRBank(101, fs)
	if err != nil {
		t.Fatal(err)
	}

	wantRoles := []Role{RoleHighPass, RoleNotch, RoleLowPass}
	for i, c := range bank {
		if c.Role != wantRoles[i] || c.Kind != KindFIR {
			t.Fatalf("bank[%d] = %s, want %s FIR", i, c.Label(), wantRoles[i])
		}
		if len(c.B) != 101 {
			t.Fatalf("%s: %d taps, want 101", c.Label(), len(c.B))
		}
		if len(c.A) != 1 || c.A[0] != 1 || !c.IsFIR() {
			t.Fatalf("%s: A = %v, want [1]", c.Label(), c.A)
		}
		if c.Order() != 100 {
			t.Fatalf("%s: Order() = %d, want 100", c.Label(), c.Order())
		}
		for i := range len(c.B) / 2 {
			if !almostEqual(c.B[i], c.B[len(c.B)-1-i], 1e-15) {
				t.Fatalf("%s: taps not symmetric at %d", c.Label(), i)
			}
		}
		if c.SampleRate != fs {
			t.Fatalf("%s: sample rate %v", c.Label(), c.SampleRate)
		}
	}
}

func TestFIRSingleTap(t *testing.T) {
	c, err := FIRLowPass(1, fs)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.B) != 1 || !almostEqual(c.B[0], 1, 1e-15) {
		t.Fatalf("B = %v, want [1]", c.B)
	}
}

func TestFIRThreeTapLowPass(t *testing.T) {
	c, err := FIRLowPass(3, fs)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0.0414024292690739, 0.9171951414618521, 0.0414024292690739}
	for i := range want {
		if !almostEqual(c.B[i], want[i], 1e-12) {
			t.Errorf("B[%d] = %.16f, want %.16f", i, c.B[i], want[i])
		}
	}
}

func TestFIRWithWindow(t *testing.T) {
	hamming, _ := FIRLowPass(101, fs)
	blackman, err := FIRLowPass(101, fs, WithWindow(window.TypeBlackman))
	if err != nil {
		t.Fatal(err)
	}

	same := true
	for i := range hamming.B {
		if hamming.B[i] != blackman.B[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("WithWindow had no effect")
	}

	if got := magnitudeDB(blackman, 0); !almostEqual(got, 0, 1e-9) {
		t.Fatalf("Blackman DC gain %.6f dB, want 0", got)
	}
	if got := magnitudeDB(blackman, 150); got > -70 {
		t.Fatalf("Blackman stopband %.2f dB, want < -70", got)
	}
}

func TestIIRBank(t *testing.T) {
	for order := 1; order <= 10; order++ {
		bank, err := IIRBank(order, fs)
		if err != nil {
			t.Fatalf("order %d: %v", order, err)
		}

		hp, nt, lp := bank[0], bank[1], bank[2]
		if hp.Role != RoleHighPass || nt.Role != RoleNotch || lp.Role != RoleLowPass {
			t.Fatalf("order %d: wrong cascade order %s, %s, %s", order, hp.Label(), nt.Label(), lp.Label())
		}

		for _, c := range []Coefficients{hp, lp} {
			if len(c.B) != order+1 || len(c.A) != order+1 {
				t.Fatalf("order %d %s: len(B)=%d len(A)=%d", order, c.Label(), len(c.B), len(c.A))
			}
			if c.A[0] != 1 {
				t.Fatalf("order %d %s: A[0]=%v", order, c.Label(), c.A[0])
			}
			if len(c.Sections) != (order+1)/2 {
				t.Fatalf("order %d %s: %d sections", order, c.Label(), len(c.Sections))
			}
			if err := checkStable(c.Sections); err != nil {
				t.Fatalf("order %d %s: %v", order, c.Label(), err)
			}
		}

		if got := sectionsDB(hp.Sections, DefaultHighPassHz); !almostEqual(got, -3.0103, 0.01) {
			t.Errorf("order %d: high-pass corner %.4f dB", order, got)
		}
		if got := sectionsDB(lp.Sections, DefaultLowPassHz); !almostEqual(got, -3.0103, 0.01) {
			t.Errorf("order %d: low-pass corner %.4f dB", order, got)
		}
		if got := sectionsDB(hp.Sections, fs/2); !almostEqual(got, 0, 1e-6) {
			t.Errorf("order %d: high-pass Nyquist gain %.6f dB", order, got)
		}
		if got := magnitudeDB(lp, 0); !almostEqual(got, 0, 1e-6) {
			t.Errorf("order %d: low-pass DC gain %.6f dB", order, got)
		}
	}
}

func TestExpandedPolynomialMatchesSections(t *testing.T) {
	// Low orders keep enough precision in B/A to match the cascade.
	for order := 1; order <= 4; order++ {
		hp, _ := IIRHighPass(order, fs)
		for _, f := range []float64{0.5, 1, 10, 100} {
			want := sectionsDB(hp.Sections, f)
			if got := magnitudeDB(hp, f); !almostEqual(got, want, 1e-3) {
				t.Errorf("order %d at %g Hz: B/A %.6f dB, sections %.6f dB", order, f, got, want)
			}
		}
	}
}

func TestButterworthRolloffGrowsWithOrder(t *testing.T) {
	prev := 0.0
	for order := 1; order <= 6; order++ {
		got := sectionsDB(ButterworthLP(100, order, fs), 150)
		if got >= prev {
			t.Fatalf("order %d: attenuation %.2f dB not below order %d (%.2f dB)", order, got, order-1, prev)
		}
		prev = got
	}
}

func TestButterworthInvalid(t *testing.T) {
	if ButterworthLP(100, 0, fs) != nil {
		t.Error("order 0 should return nil")
	}
	if ButterworthHP(200, 2, fs) != nil {
		t.Error("corner above Nyquist should return nil")
	}
}

func TestButterworthQ(t *testing.T) {
	// 4th order: Q = 0.5412, 1.3066.
	if got := butterworthQ(4, 0); !almostEqual(got, 1.3065629648763766, 1e-12) {
		t.Errorf("butterworthQ(4,0) = %v", got)
	}
	if got := butterworthQ(4, 1); !almostEqual(got, 0.541196100146197, 1e-12) {
		t.Errorf("butterworthQ(4,1) = %v", got)
	}
	if got := butterworthQ(2, 0); !almostEqual(got, 1/math.Sqrt2, 1e-12) {
		t.Errorf("butterworthQ(2,0) = %v", got)
	}
}

func TestIIRNotch(t *testing.T) {
	c, err := IIRNotch(fs)
	if err != nil {
		t.Fatal(err)
	}

	if len(c.B) != 3 || len(c.A) != 3 || len(c.Sections) != 1 {
		t.Fatalf("unexpected shape: B=%v A=%v sections=%d", c.B, c.A, len(c.Sections))
	}

	if got := magnitudeDB(c, 50); got > -100 {
		t.Errorf("center attenuation %.2f dB, want < -100", got)
	}
	for _, f := range []float64{0, 10, 100, fs / 2} {
		if got := magnitudeDB(c, f); !almostEqual(got, 0, 0.01) {
			t.Errorf("|H(%g)| = %.4f dB, want 0", f, got)
		}
	}
	// -3 dB bandwidth is 50/30 Hz.
	for _, f := range []float64{49.17, 50.83} {
		if got := magnitudeDB(c, f); !almostEqual(got, -3, 0.3) {
			t.Errorf("|H(%g)| = %.2f dB, want about -3", f, got)
		}
	}
}

func TestNotchInvalid(t *testing.T) {
	var zero biquad.Coefficients
	for _, c := range []biquad.Coefficients{Notch(0, 30, fs), Notch(200, 30, fs), Notch(50, 0, fs)} {
		if c != zero {
			t.Fatalf("invalid notch returned %+v, want zero coefficients", c)
		}
	}
}

func TestDesignErrors(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want error
	}{
		{"even FIR order", Spec{Kind: KindFIR, Role: RoleLowPass, Order: 2, Cutoffs: []float64{100}, SampleRate: fs}, core.ErrInvalidOrder},
		{"zero FIR order", Spec{Kind: KindFIR, Role: RoleLowPass, Order: 0, Cutoffs: []float64{100}, SampleRate: fs}, core.ErrInvalidOrder},
		{"negative IIR order", Spec{Kind: KindIIR, Role: RoleHighPass, Order: -1, Cutoffs: []float64{1}, SampleRate: fs}, core.ErrInvalidOrder},
		{"unknown kind", Spec{Kind: Kind(9), Role: RoleLowPass, Order: 3, Cutoffs: []float64{100}, SampleRate: fs}, core.ErrInvalidOrder},
		{"cutoff above Nyquist", Spec{Kind: KindIIR, Role: RoleLowPass, Order: 4, Cutoffs: []float64{130}, SampleRate: 250}, core.ErrInvalidCutoff},
		{"cutoff at Nyquist", Spec{Kind: KindFIR, Role: RoleLowPass, Order: 11, Cutoffs: []float64{180}, SampleRate: fs}, core.ErrInvalidCutoff},
		{"zero cutoff", Spec{Kind: KindFIR, Role: RoleHighPass, Order: 11, Cutoffs: []float64{0}, SampleRate: fs}, core.ErrInvalidCutoff},
		{"inverted band", Spec{Kind: KindFIR, Role: RoleNotch, Order: 11, Cutoffs: []float64{51, 49}, SampleRate: fs}, core.ErrInvalidCutoff},
		{"missing band edge", Spec{Kind: KindFIR, Role: RoleNotch, Order: 11, Cutoffs: []float64{50}, SampleRate: fs}, core.ErrInvalidCutoff},
		{"unknown role", Spec{Kind: KindFIR, Role: Role(7), Order: 11, Cutoffs: []float64{50}, SampleRate: fs}, core.ErrInvalidCutoff},
		{"zero Q", Spec{Kind: KindIIR, Role: RoleNotch, Cutoffs: []float64{50}, SampleRate: fs}, core.ErrInvalidQ},
		{"zero sample rate", Spec{Kind: KindFIR, Role: RoleLowPass, Order: 11, Cutoffs: []float64{50}}, core.ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Design(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			var pe *core.ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *core.ParamError", err)
			}
		})
	}
}

func TestBankErrorsPropagate(t *testing.T) {
	if _, err := FIRBank(2, fs); !errors.Is(err, core.ErrInvalidOrder) {
		t.Errorf("FIRBank(2): got %v", err)
	}
	// 100 Hz low-pass cannot exist below 200 Hz sampling.
	if _, err := IIRBank(4, 180); !errors.Is(err, core.ErrInvalidCutoff) {
		t.Errorf("IIRBank at 180 Hz: got %v", err)
	}
}

func TestLabels(t *testing.T) {
	c := Coefficients{Kind: KindIIR, Role: RoleLowPass}
	if c.Label() != "Low-Pass IIR" {
		t.Errorf("Label() = %q", c.Label())
	}
	if KindFIR.String() != "FIR" || RoleNotch.String() != "Notch" || RoleHighPass.String() != "High-Pass" {
		t.Error("unexpected String() values")
	}
	if Kind(5).String() != "Kind(5)" || Role(5).String() != "Role(5)" {
		t.Error("unexpected fallback String() values")
	}
}

// sectionsDB evaluates the cascade magnitude in dB at freqHz.
func sectionsDB(sections []biquad.Coefficients, freqHz float64) float64 {
	h := biquad.NewChain(sections).ResponseAt(2 * math.Pi * freqHz / fs)
	return 20 * math.Log10(cmplx.Abs(h))
}

func TestCheckStable(t *testing.T) {
	if err := checkStable(ButterworthHP(DefaultHighPassHz, 8, fs)); err != nil {
		t.Fatalf("Butterworth cascade: %v", err)
	}

	sections := append(ButterworthLP(DefaultLowPassHz, 2, fs), biquad.Coefficients{B0: 1, A1: -2.1, A2: 1.1})
	err := checkStable(sections)
	if !errors.Is(err, core.ErrInvalidCutoff) {
		t.Fatalf("got %v, want ErrInvalidCutoff", err)
	}
	var pe *core.ParamError
	if !errors.As(err, &pe) || pe.Param != "section" || pe.Value != 1 {
		t.Fatalf("unexpected error detail: %#v", err)
	}
}
