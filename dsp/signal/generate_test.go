package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/internal/testutil"
)

func TestDefaultGenerator(t *testing.T) {
	g := NewGenerator()

	if g.Samples() != 400 {
		t.Fatalf("Samples = %d, want 400", g.Samples())
	}

	if g.Config().SampleRate != 80 || g.Config().Duration != 5 {
		t.Errorf("Config = %+v, want 80 Hz / 5 s", g.Config())
	}

	if g.Seed() != 1 {
		t.Errorf("Seed = %d, want 1", g.Seed())
	}
}

func TestTimeAxis(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(4), core.WithDuration(1))

	ts, err := g.TimeAxis()
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, ts, []float64{0, 0.25, 0.5, 0.75}, 0)
}

func TestSineMatchesReference(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000), core.WithDuration(0.01))

	s, err := g.Sine(1000, 0.5, 0.3)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, s, testutil.Sine(1000, 48000, 0.5, 0.3, 480), 1e-12)
}

func TestTonesIsSumOfSines(t *testing.T) {
	g := NewGenerator()

	mixed, err := g.Demo()
	if err != nil {
		t.Fatal(err)
	}

	parts := make([][]float64, 0, len(DemoTones()))
	for _, tone := range DemoTones() {
		s, err := g.Sine(tone.FreqHz, tone.Amplitude, tone.Phase)
		if err != nil {
			t.Fatal(err)
		}

		parts = append(parts, s)
	}

	sum, err := Mix(parts...)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, mixed, sum, 1e-12)

	// t = 0.5 s: sin(pi) + 0.2 sin(15.3 pi) + 0.1 sin(16.7 pi + 0.1) + 0.1 sin(23.45 pi + 0.8)
	want := math.Sin(math.Pi) + 0.2*math.Sin(15.3*math.Pi) +
		0.1*math.Sin(16.7*math.Pi+0.1) + 0.1*math.Sin(23.45*math.Pi+0.8)
	if math.Abs(mixed[40]-want) > 1e-12 {
		t.Errorf("demo[40] = %v, want %v", mixed[40], want)
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(42))
	g2 := NewGeneratorWithOptions(nil, WithSeed(42))

	n1, err := g1.WhiteNoise(1)
	if err != nil {
		t.Fatal(err)
	}

	n2, err := g2.WhiteNoise(1)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, n1, n2, 0)

	for i, v := range n1 {
		if v < -1 || v > 1 {
			t.Fatalf("noise[%d] = %v outside [-1, 1]", i, v)
		}
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)

	if g.Seed() != 99 {
		t.Fatalf("Seed() = %d, want 99", g.Seed())
	}

	a, err := g.WhiteNoise(1)
	if err != nil {
		t.Fatal(err)
	}

	g.SetSeed(100)

	b, err := g.WhiteNoise(1)
	if err != nil {
		t.Fatal(err)
	}

	diff, err := testutil.MaxAbsDiff(a, b)
	if err != nil {
		t.Fatal(err)
	}

	if diff == 0 {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestGeneratorErrors(t *testing.T) {
	g := NewGenerator()

	if _, err := g.WhiteNoise(-1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("negative amplitude: err = %v", err)
	}

	if _, err := g.Tones([]Tone{{FreqHz: math.NaN(), Amplitude: 1}}); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("NaN tone: err = %v", err)
	}

	short := NewGenerator(core.WithDuration(0.001))
	if _, err := short.Demo(); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("zero-length frame: err = %v", err)
	}

	if _, err := Mix(); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("empty mix: err = %v", err)
	}

	if _, err := Mix([]float64{1, 2}, []float64{1}); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("length mismatch: err = %v", err)
	}
}
