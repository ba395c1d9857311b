// Package config resolves driver settings from defaults, an optional YAML
// file, CHROMAVIEW_* environment variables and bound flags, in increasing
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"chromaview/core/load"
	"chromaview/core/render"
	"chromaview/core/scf"
	"chromaview/core/viewport"
)

// Keys understood in chromaview.yaml and as CHROMAVIEW_* variables.
const (
	KeyCanvasWidth     = "canvas_width"
	KeyCanvasHeight    = "canvas_height"
	KeyQualityThresh   = "quality_threshold"
	KeyHitRadius       = "hit_radius"
	KeyPolicy          = "policy"
	KeySCFPeakPolicy   = "scf.peak_policy"
	KeyABIFInlineSmall = "abif.inline_small_data"
	KeySeed            = "seed"
	KeyLogLevel        = "log_level"
)

// Config is the typed view of the settings.
type Config struct {
	CanvasWidth      int
	CanvasHeight     int
	QualityThreshold int
	HitRadius        float64
	Policy           load.Policy
	SCFPeaks         scf.PeakPolicy
	ABIFInlineSmall  bool
	Seed             uint64 // 0 = time based
	LogLevel         string
}

// New returns a viper instance with defaults and the environment wired.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyCanvasWidth, viewport.DefaultCanvasWidth)
	v.SetDefault(KeyCanvasHeight, render.DefaultHeight)
	v.SetDefault(KeyQualityThresh, viewport.DefaultQualityThreshold)
	v.SetDefault(KeyHitRadius, viewport.DefaultHitRadius)
	v.SetDefault(KeyPolicy, load.FallbackMock.String())
	v.SetDefault(KeySCFPeakPolicy, scf.PeakInterpolate.String())
	v.SetDefault(KeyABIFInlineSmall, false)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyLogLevel, "warn")

	v.SetEnvPrefix("chromaview")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (or chromaview.yaml in the working directory when file is
// empty; a missing default file is not an error) and decodes v into a
// Config.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("chromaview")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}
	return Decode(v)
}

// Decode validates the current values of v.
func Decode(v *viper.Viper) (Config, error) {
	c := Config{
		CanvasWidth:      v.GetInt(KeyCanvasWidth),
		CanvasHeight:     v.GetInt(KeyCanvasHeight),
		QualityThreshold: v.GetInt(KeyQualityThresh),
		HitRadius:        v.GetFloat64(KeyHitRadius),
		ABIFInlineSmall:  v.GetBool(KeyABIFInlineSmall),
		Seed:             v.GetUint64(KeySeed),
		LogLevel:         v.GetString(KeyLogLevel),
	}
	var err error
	if c.Policy, err = load.ParsePolicy(v.GetString(KeyPolicy)); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", KeyPolicy, err)
	}
	if c.SCFPeaks, err = scf.ParsePeakPolicy(v.GetString(KeySCFPeakPolicy)); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", KeySCFPeakPolicy, err)
	}
	switch {
	case c.CanvasWidth <= 0:
		return Config{}, fmt.Errorf("config %s must be > 0 (got %d)", KeyCanvasWidth, c.CanvasWidth)
	case c.CanvasHeight <= 0:
		return Config{}, fmt.Errorf("config %s must be > 0 (got %d)", KeyCanvasHeight, c.CanvasHeight)
	case c.HitRadius <= 0:
		return Config{}, fmt.Errorf("config %s must be > 0 (got %g)", KeyHitRadius, c.HitRadius)
	case c.QualityThreshold < 0 || c.QualityThreshold > 60:
		return Config{}, fmt.Errorf("config %s must be in [0,60] (got %d)", KeyQualityThresh, c.QualityThreshold)
	}
	return c, nil
}
