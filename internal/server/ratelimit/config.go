package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig
const (
	EnvEnabled         = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	EnvWhitelist       = "RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "RATE_LIMIT_BLACKLIST"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (a trailing "/" matches by prefix)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig builds the limiter configuration from the environment. getenv is usually
// os.Getenv; unset or unparsable values fall back to the defaults.
func LoadConfig(getenv func(string) string) *Config {
	env := envReader(getenv)
	if !env.bool(EnvEnabled, true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.int(EnvDefaultLimit, 300),
		DefaultWindow:   env.duration(EnvDefaultWindow, time.Minute),
		CleanupInterval: env.duration(EnvCleanupInterval, 5*time.Minute),
		Whitelist:       parseIPList(env.string(EnvWhitelist, "")),
		Blacklist:       parseIPList(env.string(EnvBlacklist, "")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits of the portfolio server.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Model calls cost quota: strictest
		{Path: "/api/chat", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},

		// Composing a PDF is CPU bound
		{Path: "/cv.pdf", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/contact", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},

		// Everything else uses the default limit; /health is unlimited (see MatchEndpoint)
	}
}

type envReader func(string) string

func (e envReader) string(key, defaultValue string) string {
	if value := strings.TrimSpace(e(key)); value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) int(key string, defaultValue int) int {
	if v, err := strconv.Atoi(e.string(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func (e envReader) bool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(e.string(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func (e envReader) duration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(e.string(key, "")); err == nil {
		return v
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
