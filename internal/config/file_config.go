package config

import "gopkg.in/yaml.v3"

// fileConfig is the YAML layout of the optional config file.
type fileConfig struct {
	Server struct {
		Port    string `yaml:"port"`
		AppName string `yaml:"app_name"`
		Env     string `yaml:"env"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`
	API struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Session struct {
		Store      string `yaml:"store"`
		MaxAge     string `yaml:"max_age"`
		CookieName string `yaml:"cookie_name"`
	} `yaml:"session"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       string `yaml:"db"`
	} `yaml:"redis"`
	Security struct {
		CSRFKey        string `yaml:"csrf_key"`
		CSRFEnabled    string `yaml:"csrf_enabled"`
		TrustedOrigins string `yaml:"trusted_origins"`
	} `yaml:"security"`
}

// parseFileConfig flattens the YAML document into values keyed by their environment variable names.
func parseFileConfig(data []byte) (map[string]string, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}
	return map[string]string{
		portEnvVar:        fc.Server.Port,
		appNameVar:        fc.Server.AppName,
		envVar:            fc.Server.Env,
		baseURLVar:        fc.Server.BaseURL,
		apiURLVar:         fc.API.BaseURL,
		apiTimeoutVar:     fc.API.Timeout,
		"SESSION_STORE":   fc.Session.Store,
		"SESSION_MAX_AGE": fc.Session.MaxAge,
		"SESSION_COOKIE":  fc.Session.CookieName,
		"REDIS_ADDR":      fc.Redis.Addr,
		"REDIS_PASSWORD":  fc.Redis.Password,
		"REDIS_DB":        fc.Redis.DB,
		"CSRF_KEY":        fc.Security.CSRFKey,
		"CSRF_ENABLED":    fc.Security.CSRFEnabled,
		"TRUSTED_ORIGINS": fc.Security.TrustedOrigins,
	}, nil
}
