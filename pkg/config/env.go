// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Renderer names accepted by the executables.
const (
	RendererEngo     = "engo"
	RendererTerminal = "terminal"
	RendererNone     = "none"
)

// EnvironmentConfig holds process-level settings read from the environment.
type EnvironmentConfig struct {
	ConfigPath string
	LogLevel   string
	Renderer   string
}

// LoadConfigFromEnv reads BREAKOUT_CONFIG, BREAKOUT_LOG_LEVEL and
// BREAKOUT_RENDERER.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	env := &EnvironmentConfig{
		ConfigPath: os.Getenv("BREAKOUT_CONFIG"),
		LogLevel:   getEnvString("BREAKOUT_LOG_LEVEL", "info"),
		Renderer:   getEnvString("BREAKOUT_RENDERER", RendererEngo),
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}
	return env, nil
}

// Validate checks the environment values.
func (e *EnvironmentConfig) Validate() error {
	switch strings.ToLower(e.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, e.LogLevel)
	}
	switch e.Renderer {
	case RendererEngo, RendererTerminal, RendererNone:
	default:
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalidConfig, e.Renderer)
	}
	return nil
}

// ApplyEnvOverrides applies BREAKOUT_SEED, BREAKOUT_VARIANT,
// BREAKOUT_SERVE_MODE and BREAKOUT_TICK_RATE on top of a loaded config.
func ApplyEnvOverrides(c *GameConfig) error {
	if v := os.Getenv("BREAKOUT_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid BREAKOUT_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("BREAKOUT_VARIANT"); v != "" {
		c.Variant = strings.ToLower(v)
	}
	if v := os.Getenv("BREAKOUT_SERVE_MODE"); v != "" {
		c.Ball.ServeMode = strings.ToLower(v)
	}
	if v := os.Getenv("BREAKOUT_TICK_RATE"); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BREAKOUT_TICK_RATE: %w", err)
		}
		c.TickRate = rate
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
