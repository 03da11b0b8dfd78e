// Package config loads the YAML configuration shared by the TouchArena
// binaries. Every field has a working default, so running without a config
// file is always possible.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/terrakok/TouchArena/gesture"
	"github.com/terrakok/TouchArena/logger"
	"github.com/terrakok/TouchArena/motion"
	"github.com/terrakok/TouchArena/plot"
)

// Config is the on-disk configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Forecast ForecastConfig `yaml:"forecast"`
	Plot     PlotConfig     `yaml:"plot"`
	Server   ServerConfig   `yaml:"server"`
	Log      logger.Config  `yaml:"log"`
}

// WindowConfig tunes the sample window and the companion tracker.
type WindowConfig struct {
	Size      int     `yaml:"size"`
	Smoothing float64 `yaml:"smoothing"`
}

// ForecastConfig tunes the projected-motion look-ahead.
type ForecastConfig struct {
	HorizonMS int64 `yaml:"horizon_ms"`
}

// PlotConfig tunes the rendered canvas.
type PlotConfig struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Padding float64 `yaml:"padding"`
}

// ServerConfig tunes the HTTP surfaces.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Size:      motion.DefaultWindowSize,
			Smoothing: motion.DefaultSmoothing,
		},
		Forecast: ForecastConfig{
			HorizonMS: motion.DefaultForecastHorizon,
		},
		Plot: PlotConfig{
			Width:   plot.DefaultWidth,
			Height:  plot.DefaultHeight,
			Padding: plot.DefaultPadding,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: logger.Default(),
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the estimator or the renderer cannot work with.
func (c Config) Validate() error {
	if c.Window.Size < 0 {
		return fmt.Errorf("window.size must not be negative, got %d", c.Window.Size)
	}
	if c.Window.Smoothing < 0 || c.Window.Smoothing >= 1 {
		return fmt.Errorf("window.smoothing must be in [0, 1), got %g", c.Window.Smoothing)
	}
	if c.Forecast.HorizonMS < 0 {
		return fmt.Errorf("forecast.horizon_ms must not be negative, got %d", c.Forecast.HorizonMS)
	}
	if c.Plot.Width < 0 || c.Plot.Height < 0 {
		return fmt.Errorf("plot size must not be negative, got %dx%d", c.Plot.Width, c.Plot.Height)
	}
	if c.Plot.Padding < 0 || c.Plot.Padding >= 1 {
		return fmt.Errorf("plot.padding must be in [0, 1), got %g", c.Plot.Padding)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}

// Recorder returns the gesture configuration this file selects. Zero fields
// keep the motion package defaults.
func (c Config) Recorder() gesture.Config {
	return gesture.Config{
		WindowSize:      c.Window.Size,
		Smoothing:       c.Window.Smoothing,
		ForecastHorizon: c.Forecast.HorizonMS,
	}
}

// PlotOptions returns the render options this file selects.
func (c Config) PlotOptions() plot.Options {
	return plot.Options{
		Width:   c.Plot.Width,
		Height:  c.Plot.Height,
		Padding: c.Plot.Padding,
	}
}
