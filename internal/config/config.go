package config

import (
	"fmt"
	"os"

	"vxtimeline/internal/timeline"
	"vxtimeline/internal/types"
	"vxtimeline/internal/vxerr"

	"gopkg.in/yaml.v3"
)

// ProjectSettings are the defaults new sequences are created with.
type ProjectSettings struct {
	FrameRate  types.FrameRate
	Resolution types.Resolution
	// SampleRate is the audio sample rate in Hz.
	SampleRate uint32
}

// Config holds the fully processed application configuration.
type Config struct {
	LogLevel string
	Project  ProjectSettings
}

// rawProject maps the YAML file, where rates and sizes are written as
// "30000/1001" and "1920x1080".
type rawProject struct {
	FrameRate  string `yaml:"frame_rate"`
	Resolution string `yaml:"resolution"`
	SampleRate uint32 `yaml:"sample_rate"`
}

// rawConfig is the intermediate structure that maps directly to the YAML file.
type rawConfig struct {
	LogLevel string     `yaml:"log_level"`
	Project  rawProject `yaml:"project"`
}

// DefaultProjectSettings is 30 fps, 1920x1080, 48 kHz.
func DefaultProjectSettings() ProjectSettings {
	return ProjectSettings{
		FrameRate:  types.FPS30,
		Resolution: types.FullHD,
		SampleRate: 48000,
	}
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Project:  DefaultProjectSettings(),
	}
}

// NewSequence creates an empty sequence using these settings.
func (p ProjectSettings) NewSequence(name string) *timeline.Sequence {
	return timeline.NewSequence(name, p.FrameRate, p.Resolution)
}

// Load reads and parses the configuration file at path. An empty path or a
// missing file yields the defaults; keys absent from the file keep theirs.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file at %s: %w", path, err)
	}

	return Parse(data)
}

// Parse processes YAML config bytes over the defaults.
func Parse(data []byte) (*Config, error) {
	def := Default()
	raw := rawConfig{
		LogLevel: def.LogLevel,
		Project: rawProject{
			FrameRate:  def.Project.FrameRate.String(),
			Resolution: def.Project.Resolution.String(),
			SampleRate: def.Project.SampleRate,
		},
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, vxerr.Wrap(vxerr.DomainConfig, err, "failed to unmarshal config YAML")
	}

	frameRate, err := types.ParseFrameRate(raw.Project.FrameRate)
	if err != nil {
		return nil, vxerr.Wrap(vxerr.DomainConfig, err, "project.frame_rate")
	}
	resolution, err := types.ParseResolution(raw.Project.Resolution)
	if err != nil {
		return nil, vxerr.Wrap(vxerr.DomainConfig, err, "project.resolution")
	}
	if resolution.IsZero() {
		return nil, vxerr.Invalid(vxerr.DomainConfig, "project.resolution %s has a zero dimension", resolution)
	}
	if raw.Project.SampleRate == 0 {
		return nil, vxerr.Invalid(vxerr.DomainConfig, "project.sample_rate must be positive")
	}

	return &Config{
		LogLevel: raw.LogLevel,
		Project: ProjectSettings{
			FrameRate:  frameRate,
			Resolution: resolution,
			SampleRate: raw.Project.SampleRate,
		},
	}, nil
}

// Save writes the configuration back out in the same YAML layout.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) Marshal() ([]byte, error) {
	raw := rawConfig{
		LogLevel: c.LogLevel,
		Project: rawProject{
			FrameRate:  c.Project.FrameRate.String(),
			Resolution: c.Project.Resolution.String(),
			SampleRate: c.Project.SampleRate,
		},
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, vxerr.Wrap(vxerr.DomainConfig, err, "failed to marshal config YAML")
	}
	return data, nil
}
