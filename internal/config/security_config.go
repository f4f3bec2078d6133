package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

const csrfKeyLength = 32

type SecurityConfig interface {
	GetCSRFKey() ([]byte, error)
	GetCSRFEnabled() bool
	GetSecureCookies() bool
	GetTrustedOrigins() []string
}

type Security struct {
	source
}

var _ SecurityConfig = Security{}

// GetCSRFKey returns the hex-encoded 32 byte CSRF_KEY. Outside PROD a random key is generated when unset.
func (s Security) GetCSRFKey() ([]byte, error) {
	raw := s.get("CSRF_KEY", "")
	if raw == "" {
		if s.get(envVar, defaultEnv) == productionEnv {
			return nil, fmt.Errorf("[config GetCSRFKey] CSRF_KEY is required in %s", productionEnv)
		}
		key := make([]byte, csrfKeyLength)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("[config GetCSRFKey] failed to generate key: %w", err)
		}
		log.Warn().Msg("CSRF_KEY not set, using a random key for this run")
		return key, nil
	}

	key, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("[config GetCSRFKey] CSRF_KEY must be hex encoded: %w", err)
	}
	if len(key) != csrfKeyLength {
		return nil, fmt.Errorf("[config GetCSRFKey] CSRF_KEY must decode to %d bytes, got %d", csrfKeyLength, len(key))
	}
	return key, nil
}

func (s Security) GetCSRFEnabled() bool {
	return s.getBool("CSRF_ENABLED", true)
}

func (s Security) GetSecureCookies() bool {
	return s.get(envVar, defaultEnv) == productionEnv
}

// GetTrustedOrigins returns the hosts allowed to submit forms, from TRUSTED_ORIGINS or the BASE_URL host.
func (s Security) GetTrustedOrigins() []string {
	if raw := s.get("TRUSTED_ORIGINS", ""); raw != "" {
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return origins
	}
	u, err := url.Parse(EnvVars{s.source}.GetBaseURL())
	if err != nil || u.Host == "" {
		return nil
	}
	return []string{u.Host}
}
