// FILE: src/internal/config/validation.go
package config

import (
	"fmt"
	"os"
)

// validateConfig is the centralized validator for the entire configuration
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateForwarderConfig(&cfg.Forwarder); err != nil {
		return fmt.Errorf("forwarder config: %w", err)
	}

	if err := validateFormatterConfig(&cfg.Formatter); err != nil {
		return fmt.Errorf("formatter config: %w", err)
	}

	if err := validateShipperConfig(&cfg.Shipper); err != nil {
		return fmt.Errorf("shipper config: %w", err)
	}

	for i := range cfg.Filters {
		if err := validateFilterConfig(i, &cfg.Filters[i]); err != nil {
			return err
		}
	}

	if cfg.Logging != nil {
		if err := validateLogConfig(cfg.Logging); err != nil {
			return fmt.Errorf("logging config: %w", err)
		}
	}

	return nil
}

func validateForwarderConfig(cfg *ForwarderConfig) error {
	if cfg.Host == "" {
		return fmt.Errorf("missing collector host")
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid collector port: %d", cfg.Port)
	}

	if cfg.TimeoutSeconds < 1 {
		return fmt.Errorf("invalid timeout: %d seconds", cfg.TimeoutSeconds)
	}

	if cfg.TLS != nil {
		if err := validateTLSClientConfig(cfg.TLS); err != nil {
			return err
		}
	}

	return nil
}

func validateTLSClientConfig(cfg *TLSClientConfig) error {
	// Client cert and key only work as a pair
	if (cfg.ClientCertFile == "") != (cfg.ClientKeyFile == "") {
		return fmt.Errorf("both client_cert_file and client_key_file must be provided for mTLS")
	}

	for _, file := range []string{cfg.ServerCAFile, cfg.ClientCertFile, cfg.ClientKeyFile} {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("TLS file is not accessible: %w", err)
		}
	}

	validVersions := map[string]bool{"": true, "TLS1.0": true, "TLS1.1": true, "TLS1.2": true, "TLS1.3": true}
	if !validVersions[cfg.MinVersion] {
		return fmt.Errorf("invalid min TLS version: %s", cfg.MinVersion)
	}
	if !validVersions[cfg.MaxVersion] {
		return fmt.Errorf("invalid max TLS version: %s", cfg.MaxVersion)
	}

	return nil
}

func validateFormatterConfig(cfg *FormatterConfig) error {
	validFormats := map[string]bool{
		"": true, "json": true, "text": true, "raw": true,
	}
	if !validFormats[cfg.Format] {
		return fmt.Errorf("invalid formatter type: %s", cfg.Format)
	}

	seen := make(map[string]bool)
	for i, dk := range cfg.DefaultKeys {
		if dk.Key == "" {
			return fmt.Errorf("default key %d: missing key name", i)
		}
		if dk.Attribute == "" {
			return fmt.Errorf("default key %q: missing attribute name", dk.Key)
		}
		if seen[dk.Key] {
			return fmt.Errorf("duplicate default key: %s", dk.Key)
		}
		seen[dk.Key] = true
	}

	return nil
}

func validateShipperConfig(cfg *ShipperConfig) error {
	if cfg.BufferSize < 1 {
		return fmt.Errorf("invalid buffer size: %d", cfg.BufferSize)
	}

	if cfg.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit: %f", cfg.RateLimit)
	}

	if cfg.RateLimit > 0 && cfg.RateBurst < 1 {
		return fmt.Errorf("rate limiting enabled but burst is %d", cfg.RateBurst)
	}

	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	validOutputs := map[string]bool{
		"file": true, "stdout": true, "stderr": true,
		"both": true, "none": true,
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	if cfg.Console != nil {
		validTargets := map[string]bool{
			"stdout": true, "stderr": true, "split": true,
		}
		if !validTargets[cfg.Console.Target] {
			return fmt.Errorf("invalid console target: %s", cfg.Console.Target)
		}

		validFormats := map[string]bool{
			"txt": true, "json": true, "": true,
		}
		if !validFormats[cfg.Console.Format] {
			return fmt.Errorf("invalid console format: %s", cfg.Console.Format)
		}
	}

	return nil
}
