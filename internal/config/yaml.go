package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file at path. If path is empty it
// searches the default location ("cascade.yaml") and silently falls back to
// built-in defaults when no file exists. Environment overrides are applied
// after the file, and the result is validated.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		if _, err := os.Stat("cascade.yaml"); err == nil {
			path = "cascade.yaml"
		} else {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Audio.SampleRate < MinSampleRate || c.Audio.SampleRate > MaxSampleRate {
		return fmt.Errorf("audio.sample_rate %d outside supported range [%d, %d]",
			c.Audio.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if c.Audio.FrameCapacity < 1 {
		return fmt.Errorf("audio.frame_capacity must be at least 1, got %d", c.Audio.FrameCapacity)
	}
	if c.Audio.DeviceID < MinDeviceID {
		return fmt.Errorf("audio.device %d is invalid", c.Audio.DeviceID)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render dimensions %dx%d are invalid", c.Render.Width, c.Render.Height)
	}
	if c.Transport.WSEnabled {
		if _, err := time.ParseDuration(c.Transport.MinSendInterval); err != nil {
			return fmt.Errorf("transport.min_send_interval is not a duration: %w", err)
		}
	}
	return nil
}

// SendInterval returns the parsed broadcast rate limit, or a ~30Hz default
// when the configured value does not parse.
func (c *Config) SendInterval() time.Duration {
	d, err := time.ParseDuration(c.Transport.MinSendInterval)
	if err != nil || d <= 0 {
		return 33 * time.Millisecond
	}
	return d
}

// applyEnvOverrides lets CASCADE_* environment variables override file
// values. Only the knobs useful outside a config file are exposed.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("CASCADE_DEBUG"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			c.Debug = bVal
		}
	}
	if val, ok := os.LookupEnv("CASCADE_LOG_LEVEL"); ok {
		c.LogLevel = val
	}
	if val, ok := os.LookupEnv("CASCADE_WS_ENABLED"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			c.Transport.WSEnabled = bVal
		}
	}
	if val, ok := os.LookupEnv("CASCADE_WS_PORT"); ok {
		c.Transport.WSPort = val
	}
}
