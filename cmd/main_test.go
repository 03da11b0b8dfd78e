package main

import (
	"math"
	"strings"
	"testing"

	"github.com/terrakok/TouchArena/gesture"
)

func TestReadSamples(t *testing.T) {
	in := strings.NewReader("t_ms,y\n0,0.0\n10,1.0\n20,4.0\n30,9.0\n")

	samples, err := readSamples(in)
	if err != nil {
		t.Fatalf("readSamples failed: %v", err)
	}
	if len(samples) != 4 {
		t.Fatalf("Expected 4 samples, got %d", len(samples))
	}
	if samples[0].T != 0 || samples[3].T != 30 {
		t.Errorf("Expected timestamps 0..30, got %d..%d", samples[0].T, samples[3].T)
	}
	if math.Abs(samples[2].Y-4.0) > 1e-9 {
		t.Errorf("Expected y=4.0 at the third sample, got %v", samples[2].Y)
	}
}

func TestReadSamplesWithoutHeader(t *testing.T) {
	in := strings.NewReader("0,1.5\n16,2.5\n")

	samples, err := readSamples(in)
	if err != nil {
		t.Fatalf("readSamples failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(samples))
	}
}

func TestReadSamplesRejectsBackwardsTime(t *testing.T) {
	in := strings.NewReader("0,0.0\n20,1.0\n10,2.0\n")

	if _, err := readSamples(in); err == nil {
		t.Error("Expected an error for backwards timestamps, got nil")
	}
}

func TestReadSamplesRejectsGarbage(t *testing.T) {
	in := strings.NewReader("0,0.0\nabc,def\n")

	if _, err := readSamples(in); err == nil {
		t.Error("Expected an error for an unparseable row, got nil")
	}
}

func TestReadSamplesAllowsTies(t *testing.T) {
	in := strings.NewReader("0,0.0\n10,1.0\n10,1.2\n20,4.0\n")

	samples, err := readSamples(in)
	if err != nil {
		t.Fatalf("readSamples rejected a tied timestamp: %v", err)
	}
	if len(samples) != 4 {
		t.Fatalf("Expected 4 samples, got %d", len(samples))
	}
}

func TestDemoGesture(t *testing.T) {
	samples := demoGesture()
	if len(samples) < 10 {
		t.Fatalf("Expected a usable demo gesture, got %d samples", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].T <= samples[i-1].T {
			t.Fatalf("Demo timestamps not strictly increasing at %d", i)
		}
	}
}

func TestDemoGestureProducesFit(t *testing.T) {
	rec := gesture.NewRecorder(gesture.Config{})
	rec.Start()
	for _, s := range demoGesture() {
		rec.Observe(s.T, s.Y)
	}

	kin, ok := rec.Kinematics()
	if !ok {
		t.Fatal("Expected the demo gesture to produce a fit")
	}
	// The flick decelerates toward its peak, so the window near the end
	// must carry a negative acceleration.
	if kin.Acceleration >= 0 {
		t.Errorf("Expected a decelerating demo flick, got acceleration %+.6f", kin.Acceleration)
	}
}
