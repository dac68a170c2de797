// FILE: src/internal/config/forwarder.go
package config

// ForwarderConfig describes the HEC endpoint and the per-event defaults.
// It is resolved once at startup and immutable for the forwarder's lifetime.
type ForwarderConfig struct {
	// Collector endpoint
	Host string `toml:"host"`
	Port int64  `toml:"port"`

	// HEC token. When empty, the environment variable named by TokenEnv
	// is consulted instead.
	Token    string `toml:"token"`
	TokenEnv string `toml:"token_env"`

	// Transport
	UseTLS         bool             `toml:"use_tls"`
	VerifyTLS      bool             `toml:"verify_tls"`
	TLS            *TLSClientConfig `toml:"tls"`
	TimeoutSeconds int64            `toml:"timeout_seconds"`

	// Default envelope fields, each independently optional. A blank
	// default means the field is omitted and the collector applies
	// its own default.
	DefaultHost       string `toml:"default_host"`
	DefaultSource     string `toml:"default_source"`
	DefaultSourceType string `toml:"default_sourcetype"`
	DefaultIndex      string `toml:"default_index"`
}

// TLSClientConfig carries the optional TLS client settings beyond the
// basic use/verify flags: trusted server CA, mTLS keypair, version pins.
type TLSClientConfig struct {
	ServerCAFile   string `toml:"server_ca_file"`
	ServerName     string `toml:"server_name"`
	ClientCertFile string `toml:"client_cert_file"`
	ClientKeyFile  string `toml:"client_key_file"`

	MinVersion string `toml:"min_version"` // "TLS1.2", "TLS1.3"
	MaxVersion string `toml:"max_version"`
}
