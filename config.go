package troupe

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Default stage dimensions, used by NewScene and as StageConfig defaults.
const (
	DefaultStageWidth  = 640
	DefaultStageHeight = 480
)

// StageConfig is the TOML-loadable setup for a scene and its backend window.
type StageConfig struct {
	Stage       StageSection       `toml:"stage"`
	Perspective PerspectiveSection `toml:"perspective"`
	Logging     LoggingSection     `toml:"logging"`
}

// StageSection configures the stage box, the window title and the pick mode.
type StageSection struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Title   string `toml:"title"`
	PickAll bool   `toml:"pick_all"`
}

// PerspectiveSection configures the projection handed to the backend. The
// default Aspect of 1 keeps stage units mapping 1:1 onto window pixels at
// depth zero; an explicit zero derives the ratio from the stage section's
// width and height instead.
type PerspectiveSection struct {
	Fovy   float64 `toml:"fovy"`
	Aspect float64 `toml:"aspect"`
	ZNear  float64 `toml:"z_near"`
	ZFar   float64 `toml:"z_far"`
}

// LoggingSection configures the scene logger.
type LoggingSection struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// DefaultStageConfig returns the built-in defaults: a 640x480 stage, a 60
// degree field of view with a z range of 0.1 to 100, and console logging at
// info level.
func DefaultStageConfig() *StageConfig {
	return &StageConfig{
		Stage: StageSection{
			Width:  DefaultStageWidth,
			Height: DefaultStageHeight,
			Title:  "troupe",
		},
		Perspective: PerspectiveSection{
			Fovy:   60.0,
			Aspect: 1.0,
			ZNear:  0.1,
			ZFar:   100.0,
		},
		Logging: LoggingSection{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadStageConfig reads a TOML stage configuration from path. Keys absent
// from the file keep their defaults.
func LoadStageConfig(path string) (*StageConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultStageConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ProjectionMatrix returns the perspective projection described by the
// config, deriving the aspect ratio from the stage box when Aspect is zero.
func (c *StageConfig) ProjectionMatrix() Matrix4 {
	aspect := c.Perspective.Aspect
	if aspect == 0 && c.Stage.Height != 0 {
		aspect = float64(c.Stage.Width) / float64(c.Stage.Height)
	}
	return Perspective(c.Perspective.Fovy, aspect, c.Perspective.ZNear, c.Perspective.ZFar)
}

// NewLogger builds a zap logger from the logging section. Unknown level
// strings fall back to info; any format other than "json" builds a console
// logger.
func (c *StageConfig) NewLogger() (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if c.Logging.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// Apply configures the scene from this config: stage size, pick mode and
// logger. The projection and window title are honored by backends that own
// a window.
func (c *StageConfig) Apply(s *Scene) {
	s.stage.Actor.SetSize(c.Stage.Width, c.Stage.Height)
	if c.Stage.PickAll {
		s.SetPickMode(PickAll)
	}
	if logger, err := c.NewLogger(); err == nil {
		s.SetLogger(logger)
	}
}
