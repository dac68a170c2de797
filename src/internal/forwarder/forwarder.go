// FILE: src/internal/forwarder/forwarder.go
package forwarder

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"hecship/src/internal/config"
	"hecship/src/internal/core"
	ltls "hecship/src/internal/tls"
	"hecship/src/internal/version"

	"github.com/google/uuid"
	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
)

// EventPath is the collector's event-ingestion endpoint
const EventPath = "/services/collector/event"

// DefaultTokenEnv is consulted when no token or token_env is configured
const DefaultTokenEnv = "HEC_TOKEN"

// Forwarder sends event envelopes to a Splunk HTTP Event Collector.
// Each Forward call issues one blocking POST and never retries; callers
// needing asynchrony wrap it themselves (see service.Shipper).
type Forwarder struct {
	// Configuration
	url     string
	token   string
	timeout time.Duration

	// Default envelope fields
	defaultHost       string
	defaultSource     string
	defaultSourceType string
	defaultIndex      string

	// Network
	client     *fasthttp.Client
	tlsManager *ltls.ClientManager

	logger *log.Logger

	// Statistics
	totalForwarded   atomic.Uint64
	failedDeliveries atomic.Uint64
	lastForwarded    atomic.Value // time.Time
}

// New creates a forwarder from a resolved configuration. Host, port and
// token are validated here; the token falls back to the environment
// variable named by TokenEnv when not supplied explicitly.
func New(cfg config.ForwarderConfig, logger *log.Logger) (*Forwarder, error) {
	if cfg.Host == "" {
		return nil, &ConfigError{Field: "host", Reason: "must not be empty"}
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, &ConfigError{Field: "port", Reason: fmt.Sprintf("invalid TCP port %d", cfg.Port)}
	}

	token := cfg.Token
	if token == "" {
		tokenEnv := cfg.TokenEnv
		if tokenEnv == "" {
			tokenEnv = DefaultTokenEnv
		}
		token = os.Getenv(tokenEnv)
	}
	if token == "" {
		return nil, &ConfigError{Field: "token", Reason: "must not be empty"}
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	scheme := "http"
	if cfg.UseTLS {
		scheme = "https"
	}

	f := &Forwarder{
		url:               fmt.Sprintf("%s://%s:%d%s", scheme, cfg.Host, cfg.Port, EventPath),
		token:             token,
		timeout:           timeout,
		defaultHost:       cfg.DefaultHost,
		defaultSource:     cfg.DefaultSource,
		defaultSourceType: cfg.DefaultSourceType,
		defaultIndex:      cfg.DefaultIndex,
		logger:            logger,
	}
	f.lastForwarded.Store(time.Time{})

	f.client = &fasthttp.Client{
		MaxConnsPerHost:               10,
		MaxIdleConnDuration:           10 * time.Second,
		ReadTimeout:                   timeout,
		WriteTimeout:                  timeout,
		DisableHeaderNamesNormalizing: true,
	}

	if cfg.UseTLS {
		tlsManager, err := ltls.NewClientManager(cfg.TLS, cfg.VerifyTLS, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS client manager: %w", err)
		}
		f.tlsManager = tlsManager
		f.client.TLSConfig = tlsManager.GetConfig()
	}

	logger.Info("msg", "HEC forwarder initialized",
		"component", "forwarder",
		"url", f.url,
		"use_tls", cfg.UseTLS,
		"verify_tls", cfg.VerifyTLS,
		"timeout", timeout)

	return f, nil
}

// Forward delivers one event envelope to the collector. The event may be
// any JSON-serializable value; json.RawMessage passes pre-encoded
// documents through unchanged. A transport failure or non-2xx response
// is reported as a *DeliveryError.
func (f *Forwarder) Forward(event any, ov Overrides) error {
	eventTime := time.Now()
	if ov.Time != nil {
		eventTime = *ov.Time
	}

	env := envelope{
		Time:       epochSeconds(eventTime),
		Host:       resolveField(ov.Host, f.defaultHost),
		Source:     resolveField(ov.Source, f.defaultSource),
		SourceType: resolveField(ov.SourceType, f.defaultSourceType),
		Index:      resolveField(ov.Index, f.defaultIndex),
		Event:      event,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return &core.SerializationError{Key: "event", Err: err}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()

	req.SetRequestURI(f.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Splunk "+f.token)
	req.Header.Set("User-Agent", fmt.Sprintf("hecship/%s", version.Short()))
	req.Header.Set("X-Splunk-Request-Channel", uuid.NewString())
	req.SetBody(body)

	sendErr := f.client.DoTimeout(req, resp, f.timeout)

	// Capture response before releasing
	statusCode := resp.StatusCode()
	var responseBody []byte
	if len(resp.Body()) > 0 {
		responseBody = make([]byte, len(resp.Body()))
		copy(responseBody, resp.Body())
	}

	fasthttp.ReleaseRequest(req)
	fasthttp.ReleaseResponse(resp)

	if sendErr != nil {
		f.failedDeliveries.Add(1)
		return &DeliveryError{Err: sendErr}
	}

	if statusCode < 200 || statusCode >= 300 {
		f.failedDeliveries.Add(1)
		return &DeliveryError{StatusCode: statusCode, Body: responseBody}
	}

	f.totalForwarded.Add(1)
	f.lastForwarded.Store(time.Now())

	f.logger.Debug("msg", "Event forwarded",
		"component", "forwarder",
		"status_code", statusCode)
	return nil
}

// ForwardBatch delivers events one at a time with shared overrides,
// stopping at the first failure.
func (f *Forwarder) ForwardBatch(events []any, ov Overrides) error {
	for i, event := range events {
		if err := f.Forward(event, ov); err != nil {
			return fmt.Errorf("event %d of %d: %w", i+1, len(events), err)
		}
	}
	return nil
}

// GetStats returns the forwarder's delivery counters.
func (f *Forwarder) GetStats() map[string]any {
	lastForwarded, _ := f.lastForwarded.Load().(time.Time)

	return map[string]any{
		"url":               f.url,
		"total_forwarded":   f.totalForwarded.Load(),
		"failed_deliveries": f.failedDeliveries.Load(),
		"last_forwarded":    lastForwarded,
		"tls":               f.tlsManager.GetStats(),
	}
}
