// Package config loads cmcplan settings from defaults, an optional YAML file
// and CMCPLAN_ environment variables, in that order of precedence.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all runtime settings.
type Config struct {
	Templates TemplatesConfig `koanf:"templates"`
	Export    ExportConfig    `koanf:"export"`
	Log       LogConfig       `koanf:"log"`
	Server    ServerConfig    `koanf:"server"`
}

// TemplatesConfig points at extra modality datasets merged over the built-in one.
type TemplatesConfig struct {
	Dir string `koanf:"dir"`
}

// ExportConfig holds the directory export artifacts are written to.
type ExportConfig struct {
	Dir string `koanf:"dir"`
}

// LogConfig holds structured logging settings. Enabled is off for the
// interactive CLI by default; serve always logs.
type LogConfig struct {
	Enabled bool   `koanf:"enabled"`
	Level   string `koanf:"level"`
	Format  string `koanf:"format"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
