package config

import "time"

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Sessions struct {
	source
}

var _ SessionConfig = Sessions{}

func (s Sessions) GetSessionStore() string {
	return s.get("SESSION_STORE", SessionStoreMemory)
}

func (s Sessions) GetSessionMaxAge() time.Duration {
	return s.getDuration("SESSION_MAX_AGE", 7*24*time.Hour)
}

func (s Sessions) GetSessionCookieName() string {
	return s.get("SESSION_COOKIE", "gymbuddy_session")
}

func (s Sessions) GetRedisAddr() string {
	return s.get("REDIS_ADDR", "localhost:6379")
}

func (s Sessions) GetRedisPassword() string {
	return s.get("REDIS_PASSWORD", "")
}

func (s Sessions) GetRedisDB() int {
	return s.getInt("REDIS_DB", 0)
}
