package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fitbook/models"
	"fitbook/utils"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned for expired or unknown booking sessions.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// SessionStore persists in-flight booking sessions.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Save(ctx context.Context, session *models.BookingSession, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions in the booking cache DB.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore returns a store backed by the booking cache client.
func NewRedisSessionStore() *RedisSessionStore {
	return &RedisSessionStore{client: utils.GetBookingCacheClient()}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := s.client.Get(ctx, sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session %s: %w", sessionID, err)
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.BookingSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session %s: %w", session.SessionID, err)
	}
	if err := s.client.Set(ctx, session.SessionID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking session %s: %w", session.SessionID, err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionID).Err()
}
