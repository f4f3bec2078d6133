package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// ConfigFileEnvVar names the environment variable holding the optional YAML config path.
const ConfigFileEnvVar = "GYMBUDDY_CONFIG"

type Config interface {
	EnvConfig
	APIConfig
	SessionConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

type SessionConfig interface {
	GetSessionStore() string
	GetSessionMaxAge() time.Duration
	GetSessionCookieName() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
}

type mainConfig struct {
	EnvVars
	API
	Sessions
	Security
}

// New returns a Config backed by environment variables only.
func New() Config {
	return newMainConfig(nil)
}

// Load reads an optional .env file from the working directory and an optional YAML file at path,
// then returns a Config resolving each value from the environment first, then the file, then defaults.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("[config Load] failed to read .env: %w", err)
	}
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[config Load] failed to read %s: %w", path, err)
	}
	values, err := parseFileConfig(data)
	if err != nil {
		return nil, fmt.Errorf("[config Load] failed to parse %s: %w", path, err)
	}
	return newMainConfig(values), nil
}

func newMainConfig(values map[string]string) mainConfig {
	s := source{file: values}
	return mainConfig{
		EnvVars:  EnvVars{s},
		API:      API{s},
		Sessions: Sessions{s},
		Security: Security{s},
	}
}
