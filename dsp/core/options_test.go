package core

import "testing"

func TestApplySignalOptions(t *testing.T) {
	cfg := ApplySignalOptions(WithSampleRate(44100), WithDuration(0.5))
	if cfg.SampleRate != 44100 {
		t.Fatalf("sample rate = %v, want 44100", cfg.SampleRate)
	}
	if cfg.Samples() != 22050 {
		t.Fatalf("samples = %d, want 22050", cfg.Samples())
	}
	if cfg.Nyquist() != 22050 {
		t.Fatalf("nyquist = %v, want 22050", cfg.Nyquist())
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplySignalOptions(WithSampleRate(0), WithDuration(-1), nil)
	def := DefaultSignalConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
	if def.Samples() != 400 {
		t.Fatalf("default samples = %d, want 400", def.Samples())
	}
}
