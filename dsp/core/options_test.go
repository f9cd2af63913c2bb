package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(1000), WithDuration(2.5))
	if cfg.SampleRate != 1000 {
		t.Fatalf("sample rate = %v, want 1000", cfg.SampleRate)
	}
	if cfg.Duration != 2.5 {
		t.Fatalf("duration = %v, want 2.5", cfg.Duration)
	}
	if got := cfg.Samples(); got != 2500 {
		t.Fatalf("samples = %d, want 2500", got)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithDuration(-1), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestSamplesRounds(t *testing.T) {
	tests := []struct {
		fs, dur float64
		want    int
	}{
		{360, 6, 2160},
		{250, 2, 500},
		{333, 2.5, 833},
		{2000, 15, 30000},
	}
	for _, tt := range tests {
		cfg := ProcessorConfig{SampleRate: tt.fs, Duration: tt.dur}
		if got := cfg.Samples(); got != tt.want {
			t.Errorf("Samples(%v, %v) = %d, want %d", tt.fs, tt.dur, got, tt.want)
		}
	}
}
