package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/terrakok/TouchArena/config"
	"github.com/terrakok/TouchArena/motion"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()

	require.Equal(t, motion.DefaultWindowSize, cfg.Window.Size)
	require.Equal(t, motion.DefaultSmoothing, cfg.Window.Smoothing)
	require.Equal(t, motion.DefaultForecastHorizon, cfg.Forecast.HorizonMS)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.NoError(t, cfg.Validate())
}

func TestLoadEmptyPathKeepsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toucharena.yaml")
	data := []byte(`
window:
  size: 12
  smoothing: 0.25
forecast:
  horizon_ms: 200
plot:
  width: 640
  height: 360
server:
  addr: ":9090"
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, 12, cfg.Window.Size)
	require.Equal(t, 0.25, cfg.Window.Smoothing)
	require.Equal(t, int64(200), cfg.Forecast.HorizonMS)
	require.Equal(t, 640, cfg.Plot.Width)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, "debug", cfg.Log.Level)

	// Untouched sections keep their defaults.
	require.Equal(t, config.Default().Plot.Padding, cfg.Plot.Padding)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: ["), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	data := []byte(`
window:
  smoothing: 1.5
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "smoothing")
}

func TestRecorderBridge(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Size = 7
	cfg.Forecast.HorizonMS = 90

	rc := cfg.Recorder()
	require.Equal(t, 7, rc.WindowSize)
	require.Equal(t, int64(90), rc.ForecastHorizon)
	require.Equal(t, cfg.Window.Smoothing, rc.Smoothing)
}
