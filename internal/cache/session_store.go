package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	sessionKeyPrefix  = "trait:session:"
	maxUpdateAttempts = 5
)

// SessionStore keeps in-progress sessions in Redis.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	// Update applies fn under optimistic locking and stores the result. fn may run
	// more than once if another writer modifies the session concurrently.
	Update(ctx context.Context, id string, fn func(*models.Session) error) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

type redisSessionStore struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, logger *zap.Logger, ttl time.Duration) SessionStore {
	return &redisSessionStore{
		client: client,
		logger: logger.Named("session_store"),
		ttl:    ttl,
	}
}

func SessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *redisSessionStore) Create(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	created, err := s.client.SetNX(ctx, SessionKey(session.ID), payload, s.ttl).Result()
	if err != nil {
		s.logger.Error("session create failed", zap.String("session_id", session.ID), zap.Error(err))
		return err
	}
	if !created {
		return fmt.Errorf("session %s: %w", session.ID, ErrConflict)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	payload, err := s.client.Get(ctx, SessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(payload)
}

func (s *redisSessionStore) Update(ctx context.Context, id string, fn func(*models.Session) error) (*models.Session, error) {
	key := SessionKey(id)
	var updated *models.Session

	txf := func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		session, err := decodeSession(payload)
		if err != nil {
			return err
		}
		if err := fn(session); err != nil {
			return err
		}

		next, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, s.ttl)
			return nil
		})
		if err == nil {
			updated = session
		}
		return err
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
		s.logger.Debug("session modified concurrently, retrying",
			zap.String("session_id", id), zap.Int("attempt", attempt))
	}

	s.logger.Warn("session update gave up after concurrent modifications", zap.String("session_id", id))
	return nil, fmt.Errorf("session %s: %w", id, ErrConflict)
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, SessionKey(id)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeSession(payload []byte) (*models.Session, error) {
	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if session.Responses == nil {
		session.Responses = models.ResponseSet{}
	}
	return &session, nil
}
