package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/terrakok/TouchArena/config"
	"github.com/terrakok/TouchArena/gesture"
	"github.com/terrakok/TouchArena/logger"
	"github.com/terrakok/TouchArena/motion"
	"github.com/terrakok/TouchArena/plot"
)

// FitRequest carries one recorded gesture, samples ordered by timestamp.
type FitRequest struct {
	Samples []motion.Sample `json:"samples"`
}

// FitDTO is the wire form of a fitted quadratic: y = a*(t-t0)^2 + b*(t-t0) + c.
type FitDTO struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	C  float64 `json:"c"`
	T0 int64   `json:"t0"`
}

// FitResponse is the estimator state after the whole gesture has been
// replayed. Fit, Origin and Forecast are absent when no stable fit exists;
// the tracker velocity is reported either way.
type FitResponse struct {
	Fit             *FitDTO        `json:"fit"`
	Velocity        float64        `json:"velocity"`
	Acceleration    float64        `json:"acceleration"`
	TrackerVelocity float64        `json:"tracker_velocity"`
	RMSE            float64        `json:"rmse"`
	Origin          *motion.Sample `json:"origin,omitempty"`
	Forecast        *motion.Sample `json:"forecast,omitempty"`
}

type server struct {
	cfg config.Config
	log *logrus.Logger
}

// replay runs the request's samples through a fresh recorder, exactly as a
// live gesture would arrive.
func (s *server) replay(samples []motion.Sample) *gesture.Recorder {
	rec := gesture.NewRecorder(s.cfg.Recorder())
	rec.Start()
	for _, smp := range samples {
		rec.Observe(smp.T, smp.Y)
	}
	return rec
}

// decodeGesture parses and validates the request body shared by the fit and
// plot handlers. A nil slice return means the response has been written.
func (s *server) decodeGesture(w http.ResponseWriter, r *http.Request) []motion.Sample {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)
		return nil
	}

	var req FitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	if len(req.Samples) == 0 {
		http.Error(w, "At least one sample is required", http.StatusBadRequest)
		return nil
	}
	for i := 1; i < len(req.Samples); i++ {
		if req.Samples[i].T < req.Samples[i-1].T {
			http.Error(w, fmt.Sprintf("Samples out of order at index %d", i), http.StatusBadRequest)
			return nil
		}
	}
	return req.Samples
}

func (s *server) handleFit(w http.ResponseWriter, r *http.Request) {
	samples := s.decodeGesture(w, r)
	if samples == nil {
		return
	}

	rec := s.replay(samples)
	resp := buildFitResponse(rec)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.WithError(err).Error("encode fit response")
	}
}

func (s *server) handlePlot(w http.ResponseWriter, r *http.Request) {
	samples := s.decodeGesture(w, r)
	if samples == nil {
		return
	}

	opts := s.cfg.PlotOptions()
	if v, err := strconv.Atoi(r.URL.Query().Get("w")); err == nil && v > 0 {
		opts.Width = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("h")); err == nil && v > 0 {
		opts.Height = v
	}

	rec := s.replay(samples)
	q, hasFit := rec.Fit()
	kin, _ := rec.Kinematics()

	img := plot.Render(rec.Samples(), q, kin, hasFit, opts)
	defer img.Close()

	goImg, err := img.ToImage()
	if err != nil {
		http.Error(w, "Failed to convert image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, goImg); err != nil {
		http.Error(w, "Failed to encode image", http.StatusInternalServerError)
		return
	}
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// logged wraps a handler with a per-request debug line.
func (s *server) logged(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		s.log.WithFields(logrus.Fields{
			"handler":  name,
			"method":   r.Method,
			"duration": time.Since(start),
		}).Debug("request handled")
	}
}

func buildFitResponse(rec *gesture.Recorder) FitResponse {
	q, ok := rec.Fit()
	if !ok {
		return FitResponse{TrackerVelocity: rec.TrackerVelocity()}
	}

	kin, _ := rec.Kinematics()
	origin, forecast := kin.Origin, kin.Forecast
	return FitResponse{
		Fit:             &FitDTO{A: q.A, B: q.B, C: q.C, T0: q.T0},
		Velocity:        kin.Velocity,
		Acceleration:    kin.Acceleration,
		TrackerVelocity: kin.TrackerVelocity,
		RMSE:            kin.RMSE,
		Origin:          &origin,
		Forecast:        &forecast,
	}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/fit", s.logged("fit", s.handleFit))
	mux.HandleFunc("/v1/plot", s.logged("plot", s.handlePlot))
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}

func main() {
	configPath := flag.String("config", "", "Path to the YAML configuration file.")
	addr := flag.String("addr", "", "Listen address override (empty keeps the configured value).")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		return
	}
	log := logger.Setup(cfg.Log)
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	s := &server{cfg: cfg, log: log}

	log.Infof("Starting fit API on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, s.routes()); err != nil {
		log.Fatal(err)
	}
}
