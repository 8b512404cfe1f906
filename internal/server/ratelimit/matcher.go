package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for routes that are never limited
var unlimited = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns nil when no configuration applies and the default limit should be used.
// A configured path ending in "/" matches every path under it; HEAD requests share
// the configuration of GET.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodHead {
		method = http.MethodGet
	}

	// Health checks and CORS preflights are never limited
	if (path == "/health" && method == http.MethodGet) || method == http.MethodOptions {
		u := unlimited
		return &u
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method || !strings.HasSuffix(c.Path, "/") || !strings.HasPrefix(path, c.Path) {
			continue
		}
		// Longest prefix wins
		if best == nil || len(c.Path) > len(best.Path) {
			best = c
		}
	}
	return best
}
