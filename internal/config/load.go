package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "CMCPLAN_"

	// EnvConfigFile names the YAML file to load when no path is given.
	EnvConfigFile = envPrefix + "CONFIG"
)

// Load reads configuration using a 3-layer hierarchy (highest precedence last):
//
//  1. Built-in defaults
//  2. YAML file at path, or at $CMCPLAN_CONFIG when path is empty
//  3. Environment variables (CMCPLAN_ prefix)
//
// Environment keys are matched against the known config keys so field-internal
// underscores survive:
//
//	CMCPLAN_SERVER_PORT          -> server.port
//	CMCPLAN_SERVER_READ_TIMEOUT  -> server.read_timeout
//	CMCPLAN_TEMPLATES_DIR        -> templates.dir
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	return load(path, true)
}

func load(path string, withEnv bool) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults.
	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	// Layer 2: optional config file.
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	// Layer 3: environment variables.
	if withEnv {
		envLookup := buildEnvLookup(k.Keys())
		if err := k.Load(env.Provider(".", env.Opt{
			Prefix: envPrefix,
			TransformFunc: func(key, value string) (string, any) {
				key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
				if koanfKey, ok := envLookup[key]; ok {
					return koanfKey, value
				}
				// Unknown keys are dropped.
				return "", nil
			},
		}), nil); err != nil {
			return nil, fmt.Errorf("loading env vars: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// buildEnvLookup maps env-style keys ("server_read_timeout") to koanf keys
// ("server.read_timeout").
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		lookup[strings.ReplaceAll(key, ".", "_")] = key
	}
	return lookup
}
