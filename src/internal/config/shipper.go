// FILE: src/internal/config/shipper.go
package config

// ShipperConfig controls the queue that decouples record producers from
// the blocking forward call. One consumer drains the queue and forwards
// serially.
type ShipperConfig struct {
	// Queue capacity; records are dropped when the queue is full
	BufferSize int64 `toml:"buffer_size"`

	// Maximum events forwarded per second, 0 disables limiting
	RateLimit float64 `toml:"rate_limit"`

	// Burst allowance when rate limiting is enabled
	RateBurst int64 `toml:"rate_burst"`
}
