package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig overrides the default limit for one route. A Path ending
// in "/" matches every path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // defaults to Limit
}

// Environment variables read by LoadConfig
const (
	EnvEnabled         = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	EnvWhitelist       = "RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "RATE_LIMIT_BLACKLIST"
)

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig reads the RATE_LIMIT_* variables over DefaultConfig.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = envBool(EnvEnabled, cfg.Enabled)
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	cfg.DefaultLimit = envInt(EnvDefaultLimit, cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration(EnvDefaultWindow, cfg.DefaultWindow)
	cfg.CleanupInterval = envDuration(EnvCleanupInterval, cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv(EnvWhitelist))
	cfg.Blacklist = parseIPList(os.Getenv(EnvBlacklist))
	return cfg
}

// DefaultEndpointConfigs returns the per-route limits. Generation routes
// call the language model and get the strictest budget; the interview route
// scrapes a third-party site.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/study-plan", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/analyze", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/interview-questions", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},

		{Path: "/classify", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/score", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},

		{Path: "/documents", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/documents/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

func envInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

// parseIPList parses a comma-separated address list.
func parseIPList(list string) map[string]bool {
	ips := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			ips[ip] = true
		}
	}
	return ips
}
