// ABOUTME: Server configuration loaded from TRAYECTORIA_* environment variables.
// ABOUTME: Refuses non-loopback binds unless remote access is explicitly enabled with a token.
package server

import (
	"errors"
	"fmt"
	"net"
	"os"
)

var (
	ErrRemoteWithoutToken = errors.New(
		"TRAYECTORIA_ALLOW_REMOTE is true but TRAYECTORIA_AUTH_TOKEN is not set; refusing to start without authentication",
	)
	ErrNonLoopbackBind = errors.New(
		"TRAYECTORIA_BIND is a non-loopback address but TRAYECTORIA_ALLOW_REMOTE is not true",
	)
)

// Config holds the HTTP server configuration.
type Config struct {
	Bind        string // socket address (TRAYECTORIA_BIND, default 127.0.0.1:8312)
	AllowRemote bool   // allow non-loopback connections (TRAYECTORIA_ALLOW_REMOTE)
	AuthToken   string // bearer token required when AllowRemote is set
}

// ConfigFromEnv loads configuration from the environment with defaults,
// enforcing that remote exposure is an explicit, authenticated decision.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Bind:      envOrDefault("TRAYECTORIA_BIND", "127.0.0.1:8312"),
		AuthToken: os.Getenv("TRAYECTORIA_AUTH_TOKEN"),
	}
	switch os.Getenv("TRAYECTORIA_ALLOW_REMOTE") {
	case "true", "1", "yes":
		cfg.AllowRemote = true
	}

	if cfg.AllowRemote && cfg.AuthToken == "" {
		return Config{}, ErrRemoteWithoutToken
	}
	if !cfg.AllowRemote && !isLoopbackBind(cfg.Bind) {
		return Config{}, fmt.Errorf("%w: TRAYECTORIA_BIND=%s", ErrNonLoopbackBind, cfg.Bind)
	}

	return cfg, nil
}

// isLoopbackBind accepts 127.0.0.0/8, ::1, and the "localhost" hostname.
// An unparsable bind is handed through for net.Listen to reject later.
func isLoopbackBind(bind string) bool {
	host, _, err := net.SplitHostPort(bind)
	if err != nil || host == "" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return host == "localhost"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
