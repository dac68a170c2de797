// FILE: src/internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

type Config struct {
	Quiet bool `toml:"quiet"`

	Forwarder ForwarderConfig `toml:"forwarder"`
	Formatter FormatterConfig `toml:"formatter"`
	Shipper   ShipperConfig   `toml:"shipper"`
	Filters   []FilterConfig  `toml:"filters"`
	Logging   *LogConfig      `toml:"logging"`
}

func defaults() *Config {
	hostname, _ := os.Hostname()

	return &Config{
		Forwarder: ForwarderConfig{
			Host:           "localhost",
			Port:           8088,
			TokenEnv:       "HEC_TOKEN",
			UseTLS:         true,
			VerifyTLS:      true,
			TimeoutSeconds: 30,
			DefaultHost:    hostname,
		},
		Formatter: FormatterConfig{
			Format:          "json",
			PruneEmpty:      true,
			TimestampFormat: "2006-01-02 15:04:05",
		},
		Shipper: ShipperConfig{
			BufferSize: 1000,
		},
		Logging: DefaultLogConfig(),
	}
}

func LoadWithCLI(cliArgs []string) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("HECSHIP_").
		WithFile(configPath).
		WithArgs(cliArgs).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, validateConfig(finalConfig)
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "HECSHIP_" + env
	return env
}

func GetConfigPath() string {
	if configFile := os.Getenv("HECSHIP_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("HECSHIP_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("HECSHIP_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "hecship.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "hecship.toml")
	}

	return "hecship.toml"
}
