// pkg/config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mzijlstra/Breakout/pkg/entity"
	"github.com/mzijlstra/Breakout/pkg/terrain"
)

// Game variants
const (
	VariantTerrain = "terrain"
	VariantClassic = "classic"
)

// Serve modes
const (
	ServeAim    = "aim"
	ServeRandom = "random"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains configuration for a breakout game
type GameConfig struct {
	Variant  string        `json:"variant" yaml:"variant" toml:"variant"`
	Seed     uint64        `json:"seed" yaml:"seed" toml:"seed"`
	TickRate int           `json:"tickRate" yaml:"tickRate" toml:"tickRate"`
	Field    FieldConfig   `json:"field" yaml:"field" toml:"field"`
	Ball     BallConfig    `json:"ball" yaml:"ball" toml:"ball"`
	Paddle   PaddleConfig  `json:"paddle" yaml:"paddle" toml:"paddle"`
	Bricks   BrickConfig   `json:"bricks" yaml:"bricks" toml:"bricks"`
	Dirt     DirtConfig    `json:"dirt" yaml:"dirt" toml:"dirt"`
	Terrain  TerrainConfig `json:"terrain" yaml:"terrain" toml:"terrain"`
}

// FieldConfig is the playfield size in pixels
type FieldConfig struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// BallConfig contains ball size and serve settings
type BallConfig struct {
	Width      int     `json:"width" yaml:"width" toml:"width"`
	Height     int     `json:"height" yaml:"height" toml:"height"`
	ServeForce float64 `json:"serveForce" yaml:"serveForce" toml:"serveForce"`
	ServeCone  float64 `json:"serveCone" yaml:"serveCone" toml:"serveCone"`
	ServeMode  string  `json:"serveMode" yaml:"serveMode" toml:"serveMode"`
}

// PaddleConfig contains paddle size and handling constants
type PaddleConfig struct {
	Width            int     `json:"width" yaml:"width" toml:"width"`
	Height           int     `json:"height" yaml:"height" toml:"height"`
	BottomMargin     int     `json:"bottomMargin" yaml:"bottomMargin" toml:"bottomMargin"`
	Acceleration     float64 `json:"acceleration" yaml:"acceleration" toml:"acceleration"`
	Gravity          float64 `json:"gravity" yaml:"gravity" toml:"gravity"`
	MaxAimDivergence float64 `json:"maxAimDivergence" yaml:"maxAimDivergence" toml:"maxAimDivergence"`
	Lookahead        float64 `json:"lookahead" yaml:"lookahead" toml:"lookahead"`
	GapTolerance     int     `json:"gapTolerance" yaml:"gapTolerance" toml:"gapTolerance"`
	AirDamping       float64 `json:"airDamping" yaml:"airDamping" toml:"airDamping"`
	BrakeDamping     float64 `json:"brakeDamping" yaml:"brakeDamping" toml:"brakeDamping"`
	BrakeStop        float64 `json:"brakeStop" yaml:"brakeStop" toml:"brakeStop"`
	GroundDamping    float64 `json:"groundDamping" yaml:"groundDamping" toml:"groundDamping"`
	GroundStop       float64 `json:"groundStop" yaml:"groundStop" toml:"groundStop"`
}

// BrickConfig describes the starting brick wall
type BrickConfig struct {
	Rows   int     `json:"rows" yaml:"rows" toml:"rows"`
	Top    int     `json:"top" yaml:"top" toml:"top"`
	Width  int     `json:"width" yaml:"width" toml:"width"`
	Height int     `json:"height" yaml:"height" toml:"height"`
	Drift  float64 `json:"drift" yaml:"drift" toml:"drift"`
}

// DirtConfig contains falling debris settings
type DirtConfig struct {
	Gravity    float64 `json:"gravity" yaml:"gravity" toml:"gravity"`
	MinDeposit int     `json:"minDeposit" yaml:"minDeposit" toml:"minDeposit"`
	MaxDeposit int     `json:"maxDeposit" yaml:"maxDeposit" toml:"maxDeposit"`
	Shade      uint8   `json:"shade" yaml:"shade" toml:"shade"`
}

// TerrainConfig contains ground generation and impact settings
type TerrainConfig struct {
	BaseHeight  float64 `json:"baseHeight" yaml:"baseHeight" toml:"baseHeight"`
	Amplitude   float64 `json:"amplitude" yaml:"amplitude" toml:"amplitude"`
	Octaves     int     `json:"octaves" yaml:"octaves" toml:"octaves"`
	CellSize    float64 `json:"cellSize" yaml:"cellSize" toml:"cellSize"`
	TopShade    uint8   `json:"topShade" yaml:"topShade" toml:"topShade"`
	DeepShade   uint8   `json:"deepShade" yaml:"deepShade" toml:"deepShade"`
	SplashRows  int     `json:"splashRows" yaml:"splashRows" toml:"splashRows"`
	SplashShade uint8   `json:"splashShade" yaml:"splashShade" toml:"splashShade"`
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	paddle := entity.DefaultPaddleTuning()
	dirt := entity.DefaultDirtTuning()

	return &GameConfig{
		Variant:  VariantTerrain,
		Seed:     1,
		TickRate: 60,
		Field: FieldConfig{
			Width:  640,
			Height: 480,
		},
		Ball: BallConfig{
			Width:      8,
			Height:     8,
			ServeForce: 3,
			ServeCone:  45,
			ServeMode:  ServeAim,
		},
		Paddle: PaddleConfig{
			Width:            32,
			Height:           8,
			BottomMargin:     20,
			Acceleration:     paddle.Acceleration,
			Gravity:          paddle.Gravity,
			MaxAimDivergence: paddle.MaxAimDivergence,
			Lookahead:        paddle.Lookahead,
			GapTolerance:     paddle.GapTolerance,
			AirDamping:       paddle.AirDamping,
			BrakeDamping:     paddle.BrakeDamping,
			BrakeStop:        paddle.BrakeStop,
			GroundDamping:    paddle.GroundDamping,
			GroundStop:       paddle.GroundStop,
		},
		Bricks: BrickConfig{
			Rows:   4,
			Top:    32,
			Width:  32,
			Height: 16,
			Drift:  1,
		},
		Dirt: DirtConfig{
			Gravity:    dirt.Gravity,
			MinDeposit: dirt.MinDeposit,
			MaxDeposit: dirt.MaxDeposit,
			Shade:      dirt.Shade,
		},
		Terrain: TerrainConfig{
			BaseHeight:  0.8,
			Amplitude:   48,
			Octaves:     3,
			CellSize:    128,
			TopShade:    255,
			DeepShade:   96,
			SplashRows:  4,
			SplashShade: 200,
		},
	}
}

// LoadConfig loads a configuration from a file. The format follows the file
// extension: .json, .yaml/.yml or .toml. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, config)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(config)
	case ".toml":
		_, err = toml.Decode(string(data), config)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file in the format implied by its
// extension.
func SaveConfig(config *GameConfig, path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(config)
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that every setting is usable by the simulation.
func (c *GameConfig) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Variant == VariantTerrain || c.Variant == VariantClassic, "variant must be terrain or classic"},
		{c.TickRate > 0, "tick rate must be positive"},
		{c.Field.Width > 0 && c.Field.Height > 0, "field size must be positive"},
		{c.Ball.Width > 0 && c.Ball.Height > 0, "ball size must be positive"},
		{c.Ball.ServeForce > 0, "serve force must be positive"},
		{c.Ball.ServeCone >= 0 && c.Ball.ServeCone <= 90, "serve cone must be within [0, 90]"},
		{c.Ball.ServeMode == ServeAim || c.Ball.ServeMode == ServeRandom, "serve mode must be aim or random"},
		{c.Paddle.Width > 0 && c.Paddle.Height > 0, "paddle size must be positive"},
		{c.Paddle.Width <= c.Field.Width && c.Paddle.Height <= c.Field.Height, "paddle must fit the field"},
		{c.Paddle.MaxAimDivergence >= 0 && c.Paddle.MaxAimDivergence < 90, "max aim divergence must be within [0, 90)"},
		{c.Paddle.GapTolerance >= 0, "gap tolerance must not be negative"},
		{inUnit(c.Paddle.AirDamping) && inUnit(c.Paddle.BrakeDamping) && inUnit(c.Paddle.GroundDamping), "damping factors must be within [0, 1]"},
		{c.Bricks.Rows >= 0, "brick rows must not be negative"},
		{c.Bricks.Width > 0 && c.Bricks.Height > 0, "brick size must be positive"},
		{c.Dirt.MinDeposit >= 0 && c.Dirt.MaxDeposit >= c.Dirt.MinDeposit, "dirt deposit range is empty"},
		{c.Terrain.BaseHeight >= 0 && c.Terrain.BaseHeight <= 1, "terrain base height must be within [0, 1]"},
		{c.Terrain.SplashRows >= 0, "splash rows must not be negative"},
	}
	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, check.msg)
		}
	}
	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// Classic reports whether the terrain-less variant is selected.
func (c *GameConfig) Classic() bool {
	return c.Variant == VariantClassic
}

// PaddleTuning returns the paddle handling constants.
func (c *GameConfig) PaddleTuning() entity.PaddleTuning {
	p := c.Paddle
	return entity.PaddleTuning{
		Acceleration:     p.Acceleration,
		Gravity:          p.Gravity,
		MaxAimDivergence: p.MaxAimDivergence,
		Lookahead:        p.Lookahead,
		GapTolerance:     p.GapTolerance,
		AirDamping:       p.AirDamping,
		BrakeDamping:     p.BrakeDamping,
		BrakeStop:        p.BrakeStop,
		GroundDamping:    p.GroundDamping,
		GroundStop:       p.GroundStop,
	}
}

// DirtTuning returns the debris constants.
func (c *GameConfig) DirtTuning() entity.DirtTuning {
	return entity.DirtTuning{
		Gravity:    c.Dirt.Gravity,
		MinDeposit: c.Dirt.MinDeposit,
		MaxDeposit: c.Dirt.MaxDeposit,
		Shade:      c.Dirt.Shade,
	}
}

// BrickLayout returns the starting wall description.
func (c *GameConfig) BrickLayout() entity.BrickLayout {
	return entity.BrickLayout{
		Rows:   c.Bricks.Rows,
		Top:    c.Bricks.Top,
		Width:  c.Bricks.Width,
		Height: c.Bricks.Height,
		Drift:  c.Bricks.Drift,
	}
}

// TerrainGenerator returns the generator for the configured ground.
func (c *GameConfig) TerrainGenerator() *terrain.NoiseGenerator {
	return &terrain.NoiseGenerator{
		Seed:       c.Seed,
		BaseHeight: c.Terrain.BaseHeight,
		Amplitude:  c.Terrain.Amplitude,
		Octaves:    c.Terrain.Octaves,
		CellSize:   c.Terrain.CellSize,
		TopShade:   c.Terrain.TopShade,
		DeepShade:  c.Terrain.DeepShade,
	}
}
