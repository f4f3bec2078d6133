package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	envVar        = "ENV"
	baseURLVar    = "BASE_URL"
	defaultEnv    = "DEV"
	productionEnv = "PROD"
)

// source resolves a setting from the environment, then the config file, then the default.
type source struct {
	file map[string]string
}

func (s source) get(envVar, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	if value, ok := s.file[envVar]; ok && value != "" {
		return value
	}
	return defaultValue
}

func (s source) getDuration(envVar string, defaultValue time.Duration) time.Duration {
	raw := s.get(envVar, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warn().Err(err).Str("var", envVar).Str("value", raw).Msg("Invalid duration, using default")
		return defaultValue
	}
	return d
}

func (s source) getInt(envVar string, defaultValue int) int {
	raw := s.get(envVar, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Err(err).Str("var", envVar).Str("value", raw).Msg("Invalid integer, using default")
		return defaultValue
	}
	return n
}

func (s source) getBool(envVar string, defaultValue bool) bool {
	raw := s.get(envVar, "")
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warn().Err(err).Str("var", envVar).Str("value", raw).Msg("Invalid boolean, using default")
		return defaultValue
	}
	return b
}

type EnvVars struct {
	source
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.get(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.get(appNameVar, "GymBuddy")
}

func (e EnvVars) GetEnv() string {
	return e.get(envVar, defaultEnv)
}

// GetBaseURL returns the public URL of this front-end (e.g., "https://gym.example.com")
func (e EnvVars) GetBaseURL() string {
	return e.get(baseURLVar, "http://localhost:8080")
}

// GetEnv returns the environment variable value, or defaultValue when it is unset.
func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
