package config

import "time"

const (
	apiURLVar     = "GYMBUDDY_API_URL"
	apiTimeoutVar = "GYMBUDDY_API_TIMEOUT"

	DefaultAPIBaseURL = "https://simple-gymbuddy.onrender.com"
)

type API struct {
	source
}

var _ APIConfig = API{}

func (a API) GetAPIBaseURL() string {
	return a.get(apiURLVar, DefaultAPIBaseURL)
}

// GetAPITimeout returns the upstream request timeout. Zero means no client-side timeout.
func (a API) GetAPITimeout() time.Duration {
	return a.getDuration(apiTimeoutVar, 0)
}
