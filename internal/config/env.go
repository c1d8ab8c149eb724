package config

import (
	"os"
	"strconv"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override file and default values
func LoadFromEnv(cfg *Config) {
	if base := os.Getenv("PRESENCEBOT_API_BASE"); base != "" {
		cfg.API.Base = base
	}

	if timeout := os.Getenv("PRESENCEBOT_API_TIMEOUT"); timeout != "" {
		if seconds, err := strconv.Atoi(timeout); err == nil && seconds > 0 {
			cfg.API.TimeoutSeconds = seconds
		}
	}

	if heartbeat := os.Getenv("PRESENCEBOT_HEARTBEAT"); heartbeat != "" {
		if seconds, err := strconv.ParseInt(heartbeat, 10, 64); err == nil && seconds > 0 {
			cfg.Report.HeartbeatSeconds = seconds
		}
	}

	if ttl := os.Getenv("PRESENCEBOT_CACHE_TTL"); ttl != "" {
		if seconds, err := strconv.Atoi(ttl); err == nil && seconds > 0 {
			cfg.Bot.CacheTTLSeconds = seconds
		}
	}

	if pidFile := os.Getenv("PRESENCEBOT_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	if webHost := os.Getenv("PRESENCEBOT_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("PRESENCEBOT_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}
}
