// Package config loads the simulation server configuration from YAML.
// Missing files fall back to defaults so the server starts out of the box.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when SKILLSIM_CONFIG is not set.
const DefaultPath = "config/simserver.yaml"

// PathFromEnv returns the config path from SKILLSIM_CONFIG or DefaultPath.
func PathFromEnv() string {
	if p := os.Getenv("SKILLSIM_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// loadYAML overlays the file at path onto cfg. A missing file leaves cfg as is.
func loadYAML(path string, cfg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
