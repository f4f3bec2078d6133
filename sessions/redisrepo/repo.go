// Package redisrepo stores sessions in Redis so they survive restarts and can be shared by replicas.
package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/gymbuddy-web/internal/errors"
	"github.com/jrsteele09/gymbuddy-web/sessions"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "gymbuddy:session:"

var _ sessions.Repo = (*Repo)(nil)

type Repo struct {
	client redis.Cmdable
	ttl    time.Duration
}

// New returns a Repo whose entries expire ttl after their last write. A zero ttl never expires.
func New(client redis.Cmdable, ttl time.Duration) *Repo {
	return &Repo{client: client, ttl: ttl}
}

// NewClient connects to Redis and pings it
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("[redisrepo NewClient] ping %s: %w", addr, err)
	}
	return client, nil
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (r *Repo) Upsert(ctx context.Context, sessionID string, session sessions.Session) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("[redisrepo Upsert] encode: %w", err)
	}
	if err := r.client.Set(ctx, key(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("[redisrepo Upsert] %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, sessionID string) (sessions.Session, error) {
	if sessionID == "" {
		return sessions.Session{}, fmt.Errorf("sessionID is required")
	}
	data, err := r.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return sessions.Session{}, fmt.Errorf("[redisrepo Get] %w", err)
	}

	var session sessions.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return sessions.Session{}, fmt.Errorf("[redisrepo Get] decode: %w", err)
	}
	return session, nil
}

func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}
	if err := r.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("[redisrepo Delete] %w", err)
	}
	return nil
}
