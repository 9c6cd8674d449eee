/*
Package configs loads the relay server's settings from environment variables.

It covers the running environment, listening port, allowed WebSocket origins, the
per-IP connection rate limit, and the size of each client's outbound queue.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPort             = 8080
	defaultConnectRate      = 1.0
	defaultConnectBurst     = 5
	defaultClientSendBuffer = 256
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string

	// ConnectRate is the sustained number of WebSocket upgrades allowed per second per IP.
	ConnectRate float64
	// ConnectBurst is the token bucket size for WebSocket upgrades per IP.
	ConnectBurst int

	// ClientSendBuffer is the capacity of each connection's outbound frame queue.
	ClientSendBuffer int
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads and validates the configuration from environment variables,
// applying defaults for anything unset.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	port, err := intFromEnv("PORT", defaultPort)
	if err != nil {
		return nil, err
	}
	if port < 1024 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", port, 1024, 65535)
	}
	cfg.Port = port

	cfg.AllowedOrigins = []string{}
	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	cfg.ConnectRate = defaultConnectRate
	if rateStr := os.Getenv("WS_CONNECT_RATE"); rateStr != "" {
		rate, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WS_CONNECT_RATE environment variable: %w", err)
		}
		if rate <= 0 {
			return nil, fmt.Errorf("WS_CONNECT_RATE must be positive, got %v", rate)
		}
		cfg.ConnectRate = rate
	}

	burst, err := intFromEnv("WS_CONNECT_BURST", defaultConnectBurst)
	if err != nil {
		return nil, err
	}
	if burst < 1 {
		return nil, fmt.Errorf("WS_CONNECT_BURST must be at least 1, got %d", burst)
	}
	cfg.ConnectBurst = burst

	sendBuffer, err := intFromEnv("CLIENT_SEND_BUFFER", defaultClientSendBuffer)
	if err != nil {
		return nil, err
	}
	if sendBuffer < 1 {
		return nil, fmt.Errorf("CLIENT_SEND_BUFFER must be at least 1, got %d", sendBuffer)
	}
	cfg.ClientSendBuffer = sendBuffer

	return cfg, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return value, nil
}
