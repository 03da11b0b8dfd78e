package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"gocv.io/x/gocv"

	"github.com/terrakok/TouchArena/config"
	"github.com/terrakok/TouchArena/gesture"
	"github.com/terrakok/TouchArena/logger"
	"github.com/terrakok/TouchArena/motion"
	"github.com/terrakok/TouchArena/plot"
)

func main() {
	// --- Command-Line Flags ---
	configPath := flag.String("config", "", "Path to the YAML configuration file.")
	csvPath := flag.String("csv", "", "Path to a gesture recording (CSV rows of t_ms,y).")
	demo := flag.Bool("demo", false, "Replay the built-in synthetic flick instead of a recording.")
	plotPath := flag.String("plot", "", "Path to save a PNG rendering of the final estimator state.")
	windowSize := flag.Int("window", 0, "Override the sample window size (0 keeps the configured value).")
	horizon := flag.Int64("horizon", 0, "Override the forecast horizon in milliseconds (0 keeps the configured value).")
	verbose := flag.Bool("verbose", false, "Print the estimate after every sample.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.Log)

	if *windowSize > 0 {
		cfg.Window.Size = *windowSize
	}
	if *horizon > 0 {
		cfg.Forecast.HorizonMS = *horizon
	}

	// --- Load the Gesture ---
	var samples []motion.Sample
	switch {
	case *demo:
		samples = demoGesture()
		fmt.Printf("Replaying the built-in flick (%d samples).\n", len(samples))
	case *csvPath != "":
		f, err := os.Open(*csvPath)
		if err != nil {
			fmt.Printf("Error opening recording: %v\n", err)
			os.Exit(1)
		}
		samples, err = readSamples(f)
		f.Close()
		if err != nil {
			fmt.Printf("Error reading recording %s: %v\n", *csvPath, err)
			os.Exit(1)
		}
		fmt.Printf("Replaying %s (%d samples).\n", *csvPath, len(samples))
	default:
		fmt.Println("Usage: toucharena -csv <recording.csv> [flags], or toucharena -demo [flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if len(samples) == 0 {
		fmt.Println("The recording holds no samples.")
		os.Exit(1)
	}

	// --- Replay Through the Estimator ---
	rec := gesture.NewRecorder(cfg.Recorder())
	rec.Start()
	for _, s := range samples {
		rec.Observe(s.T, s.Y)
		if *verbose {
			if kin, ok := rec.Kinematics(); ok {
				fmt.Printf("t=%5dms  y=%9.3f  vel=%+8.4f  trk=%+8.4f\n", s.T, s.Y, kin.Velocity, kin.TrackerVelocity)
			} else {
				fmt.Printf("t=%5dms  y=%9.3f  (no fit yet)\n", s.T, s.Y)
			}
		}
	}
	log.WithField("samples", len(samples)).Debug("replay finished")

	// --- Report the Final Estimate ---
	q, hasFit := rec.Fit()
	kin, _ := rec.Kinematics()
	if hasFit {
		fmt.Printf("Quadratic over the last %d samples: y = %.6f*(t-%d)^2 + %.6f*(t-%d) + %.4f\n",
			len(rec.Samples()), q.A, q.T0, q.B, q.T0, q.C)
		fmt.Printf("Velocity at release: %+.4f units/ms (tracker: %+.4f units/ms)\n", kin.Velocity, kin.TrackerVelocity)
		fmt.Printf("Acceleration: %+.6f units/ms^2, fit RMSE: %.4f\n", kin.Acceleration, kin.RMSE)
		fmt.Printf("Forecast: y=%.3f at t=%dms (%dms past the last sample)\n", kin.Forecast.Y, kin.Forecast.T, cfg.Forecast.HorizonMS)
	} else {
		// Short or degenerate gestures legitimately have no estimate.
		fmt.Println("No stable fit for this gesture (fewer than three samples, or no time spread).")
	}

	if *plotPath != "" {
		img := plot.Render(rec.Samples(), q, kin, hasFit, cfg.PlotOptions())
		defer img.Close()
		if ok := gocv.IMWrite(*plotPath, img); !ok {
			fmt.Printf("Error writing plot to %s\n", *plotPath)
			os.Exit(1)
		}
		fmt.Printf("Plot saved to %s\n", *plotPath)
	}
}

// readSamples parses a gesture recording: CSV rows of "t_ms,y", with an
// optional header line. Timestamps must be non-decreasing; ties are allowed.
func readSamples(r io.Reader) ([]motion.Sample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	var samples []motion.Sample
	line := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected t_ms,y but got %d fields", line, len(record))
		}

		t, errT := strconv.ParseInt(record[0], 10, 64)
		y, errY := strconv.ParseFloat(record[1], 64)
		if errT != nil || errY != nil {
			if line == 1 {
				continue // header line
			}
			return nil, fmt.Errorf("line %d: cannot parse %v as t_ms,y", line, record)
		}

		if n := len(samples); n > 0 && t < samples[n-1].T {
			return nil, fmt.Errorf("line %d: timestamps go backwards (%d after %d)", line, t, samples[n-1].T)
		}
		samples = append(samples, motion.Sample{T: t, Y: y})
	}
	return samples, nil
}

// demoGesture synthesizes a flick: a press that accelerates upward, peaks
// and starts to fall, with a little measurement wobble. Sampled every 16ms
// for roughly half a second.
func demoGesture() []motion.Sample {
	var samples []motion.Sample
	for t := int64(0); t <= 480; t += 16 {
		ft := float64(t)
		y := 120 + 0.9*ft - 0.0011*ft*ft + 0.8*math.Sin(ft/23)
		samples = append(samples, motion.Sample{T: t, Y: y})
	}
	return samples
}
