package main

import (
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/terrakok/TouchArena/config"
	"github.com/terrakok/TouchArena/gesture"
	"github.com/terrakok/TouchArena/logger"
	"github.com/terrakok/TouchArena/motion"
)

//go:embed web/index.html
var htmlIndex []byte

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// inboundMessage is what the page sends: a gesture start, or one sample of
// the active gesture.
type inboundMessage struct {
	Type string  `json:"type"`
	T    int64   `json:"t"`
	Y    float64 `json:"y"`
}

// fitDTO is the wire form of the fitted quadratic.
type fitDTO struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	C  float64 `json:"c"`
	T0 int64   `json:"t0"`
}

// stateMessage is pushed back after every mutation: the retained window, the
// fit when one exists and the derived kinematics. The page draws the whole
// display from one of these.
type stateMessage struct {
	Type            string          `json:"type"`
	Samples         []motion.Sample `json:"samples"`
	Fit             *fitDTO         `json:"fit"`
	Velocity        float64         `json:"velocity"`
	Acceleration    float64         `json:"acceleration"`
	TrackerVelocity float64         `json:"tracker_velocity"`
	RMSE            float64         `json:"rmse"`
	Origin          *motion.Sample  `json:"origin,omitempty"`
	Forecast        *motion.Sample  `json:"forecast,omitempty"`
}

func buildState(rec *gesture.Recorder) stateMessage {
	msg := stateMessage{
		Type:            "state",
		Samples:         rec.Samples(),
		TrackerVelocity: rec.TrackerVelocity(),
	}

	q, ok := rec.Fit()
	if !ok {
		return msg
	}

	kin, _ := rec.Kinematics()
	origin, forecast := kin.Origin, kin.Forecast
	msg.Fit = &fitDTO{A: q.A, B: q.B, C: q.C, T0: q.T0}
	msg.Velocity = kin.Velocity
	msg.Acceleration = kin.Acceleration
	msg.TrackerVelocity = kin.TrackerVelocity
	msg.RMSE = kin.RMSE
	msg.Origin = &origin
	msg.Forecast = &forecast
	return msg
}

func serveWS(cfg config.Config, log *logrus.Logger, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log.WithField("remote", r.RemoteAddr).Info("arena client connected")

	// One recorder per connection: every visitor gets their own gesture.
	rec := gesture.NewRecorder(cfg.Recorder())
	rec.Start()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.WithField("remote", r.RemoteAddr).Info("arena client disconnected")
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.WithError(err).Debug("skipping malformed message")
			continue
		}

		switch msg.Type {
		case "start":
			rec.Start()
		case "sample":
			rec.Observe(msg.T, msg.Y)
		default:
			continue
		}

		if err := conn.WriteJSON(buildState(rec)); err != nil {
			log.WithError(err).Warn("write state")
			return
		}
	}
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

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(htmlIndex)
	})
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(cfg, log, w, r)
	})

	log.Infof("TouchArena live demo on %s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, nil))
}
