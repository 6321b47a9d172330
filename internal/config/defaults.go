package config

const (
	defaultServerPort = 8080
	defaultExportDir  = "."
)

// defaults returns the default configuration values, keyed the way koanf
// flattens Config. They are loaded first and overridden by the YAML file and env vars.
func defaults() map[string]any {
	return map[string]any{
		"templates.dir": "",
		"export.dir":    defaultExportDir,

		"log.enabled": false,
		"log.level":   "info",
		"log.format":  "text",

		"server.host":             "127.0.0.1",
		"server.port":             defaultServerPort,
		"server.read_timeout":     "5s",
		"server.write_timeout":    "10s",
		"server.shutdown_timeout": "10s",
	}
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	cfg, err := load("", false)
	if err != nil {
		panic("config: invalid defaults: " + err.Error())
	}
	return cfg
}
