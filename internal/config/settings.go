package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the runtime options that may come from a YAML file or
// command-line flags.
type Settings struct {
	Port      string `yaml:"port"`
	Baud      int    `yaml:"baud"`
	Demo      bool   `yaml:"demo"`
	Window    bool   `yaml:"window"`
	LogFile   string `yaml:"log_file"`
	ExportDir string `yaml:"export_dir"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Port: DefaultPort,
		Baud: DefaultBaud,
	}
}

// LoadSettings reads a YAML settings file. Keys missing from the file keep
// their default values.
func LoadSettings(path string) (Settings, error) {
	cfg := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports settings that cannot open a transport.
func (s Settings) Validate() error {
	if s.Demo {
		return nil
	}
	if s.Port == "" {
		return fmt.Errorf("settings: port is required unless demo mode is on")
	}
	if s.Baud <= 0 {
		return fmt.Errorf("settings: invalid baud rate %d", s.Baud)
	}
	return nil
}
