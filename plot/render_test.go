package plot

import (
	"testing"

	"gocv.io/x/gocv"

	"github.com/terrakok/TouchArena/motion"
)

// countNonBlack converts the canvas to a Go image and counts pixels that
// were touched by any drawing call.
func countNonBlack(t *testing.T, img gocv.Mat) int {
	t.Helper()
	goImg, err := img.ToImage()
	if err != nil {
		t.Fatalf("ToImage failed: %v", err)
	}
	count := 0
	b := goImg.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := goImg.At(x, y).RGBA()
			if r != 0 || g != 0 || bl != 0 {
				count++
			}
		}
	}
	return count
}

func TestRenderWithFit(t *testing.T) {
	samples := []motion.Sample{
		{T: 0, Y: 0.0},
		{T: 10, Y: 1.0},
		{T: 20, Y: 4.0},
		{T: 30, Y: 9.0},
	}
	q, err := motion.Fit(samples)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	kin := motion.Derive(q, samples, 0.5, 0)

	img := Render(samples, q, kin, true, Options{Width: 320, Height: 200})
	defer img.Close()

	if img.Cols() != 320 || img.Rows() != 200 {
		t.Errorf("Expected a 320x200 canvas, got %dx%d", img.Cols(), img.Rows())
	}
	if n := countNonBlack(t, img); n == 0 {
		t.Error("Expected trail, curve and vectors on the canvas, got an all-black image")
	}
}

func TestRenderWithoutFit(t *testing.T) {
	samples := []motion.Sample{
		{T: 0, Y: 1.0},
		{T: 10, Y: 2.0},
	}

	img := Render(samples, motion.Quadratic{}, motion.Kinematics{}, false, Options{})
	defer img.Close()

	if img.Cols() != DefaultWidth || img.Rows() != DefaultHeight {
		t.Errorf("Expected default canvas %dx%d, got %dx%d", DefaultWidth, DefaultHeight, img.Cols(), img.Rows())
	}
	if n := countNonBlack(t, img); n == 0 {
		t.Error("Expected the trail and hint on the canvas, got an all-black image")
	}
}

func TestRenderNoSamples(t *testing.T) {
	img := Render(nil, motion.Quadratic{}, motion.Kinematics{}, false, Options{Width: 120, Height: 80})
	defer img.Close()

	if img.Cols() != 120 || img.Rows() != 80 {
		t.Errorf("Expected a 120x80 canvas, got %dx%d", img.Cols(), img.Rows())
	}
	// Only the hint text is drawn, but that's still not a black image.
	if n := countNonBlack(t, img); n == 0 {
		t.Error("Expected the no-samples hint on the canvas")
	}
}

func TestSpeedColor(t *testing.T) {
	up := speedColor(motion.Sample{T: 0, Y: 0.0}, motion.Sample{T: 10, Y: 5.0})
	if up.R <= up.B {
		t.Errorf("Expected a warm color for upward motion, got R=%d B=%d", up.R, up.B)
	}

	down := speedColor(motion.Sample{T: 0, Y: 0.0}, motion.Sample{T: 10, Y: -5.0})
	if down.B <= down.R {
		t.Errorf("Expected a cool color for downward motion, got R=%d B=%d", down.R, down.B)
	}

	// A zero-dt segment cannot produce a speed; it stays neutral.
	flat := speedColor(motion.Sample{T: 5, Y: 0.0}, motion.Sample{T: 5, Y: 100.0})
	if flat.R != SpeedMidLevel || flat.B != SpeedMidLevel {
		t.Errorf("Expected the neutral mid level for zero dt, got R=%d B=%d", flat.R, flat.B)
	}
}
