package config

import (
	"fmt"
	"os"
	"strings"
)

// Config aggregates service configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	CORS   CORSConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// StoreConfig describes the persistence backend.
type StoreConfig struct {
	Path string
}

// CORSConfig describes the allowed cross-origin requester.
type CORSConfig struct {
	AllowedOrigin string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Store: StoreConfig{
			Path: getEnvOrDefault("TODO_DB_PATH", "todos.json"),
		},
		CORS: CORSConfig{
			AllowedOrigin: strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGIN")),
		},
	}, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
