package web

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kingrea/techshop/internal/config"
)

const (
	// DefaultHost is the loopback interface used when no override is provided.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the default TCP port for the asset server.
	DefaultPort = 3000
	// DefaultStaticDir is the directory served when none is configured.
	DefaultStaticDir = "public"
	// DefaultReadTimeout guards hung clients.
	DefaultReadTimeout = 15 * time.Second
	// DefaultWriteTimeout bounds handler writes.
	DefaultWriteTimeout = 15 * time.Second
	// DefaultIdleTimeout bounds keep-alive connections.
	DefaultIdleTimeout = 60 * time.Second
)

// Settings captures runtime configuration for the asset/health server.
type Settings struct {
	Host         string
	Port         int
	StaticDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SettingsFromConfig builds Settings from .techshop/config.yaml plus
// environment overrides. PORT keeps its historical meaning; a port of 0
// asks the OS for an ephemeral port (used by tests).
func SettingsFromConfig(cfg *config.Config) Settings {
	settings := Settings{
		Host:         DefaultHost,
		Port:         DefaultPort,
		StaticDir:    DefaultStaticDir,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}
	if cfg != nil {
		raw := cfg.Shop.Server
		if host := strings.TrimSpace(raw.Host); host != "" {
			settings.Host = host
		}
		if raw.Port > 0 && raw.Port <= 65535 {
			settings.Port = raw.Port
		}
		if dir := strings.TrimSpace(raw.StaticDir); dir != "" {
			settings.StaticDir = dir
		}
	}
	settings.applyEnvOverrides()
	settings.normalize()
	return settings
}

func (s *Settings) applyEnvOverrides() {
	if s == nil {
		return
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if parsed, err := strconv.Atoi(port); err == nil && isValidPort(parsed) {
			s.Port = parsed
		}
	}
	if host := strings.TrimSpace(os.Getenv("TECHSHOP_HOST")); host != "" {
		s.Host = host
	}
	if dir := strings.TrimSpace(os.Getenv("TECHSHOP_STATIC_DIR")); dir != "" {
		s.StaticDir = dir
	}
}

func (s *Settings) normalize() {
	if s == nil {
		return
	}
	s.Host = strings.TrimSpace(s.Host)
	if s.Host == "" {
		s.Host = DefaultHost
	}
	if !isValidPort(s.Port) {
		s.Port = DefaultPort
	}
	s.StaticDir = strings.TrimSpace(s.StaticDir)
	if s.StaticDir == "" {
		s.StaticDir = DefaultStaticDir
	}
	if s.ReadTimeout <= 0 {
		s.ReadTimeout = DefaultReadTimeout
	}
	if s.WriteTimeout <= 0 {
		s.WriteTimeout = DefaultWriteTimeout
	}
	if s.IdleTimeout <= 0 {
		s.IdleTimeout = DefaultIdleTimeout
	}
}

// Address returns the TCP bind address in host:port form.
func (s Settings) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// URL returns the HTTP base URL for the server.
func (s Settings) URL() string {
	return "http://" + s.Address()
}

func isValidPort(port int) bool {
	return port >= 0 && port <= 65535
}
