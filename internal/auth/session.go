package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"commons/internal/models"
	"commons/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SessionTTL is the fixed lifetime of a login session.
const SessionTTL = 24 * time.Hour

// SessionStore persists login sessions. Lookup returns 0 for unknown or expired IDs.
type SessionStore interface {
	Create(ctx context.Context, userID uint) (string, error)
	Lookup(ctx context.Context, id string) (uint, error)
	Destroy(ctx context.Context, id string) error
}

// DBSessionStore keeps sessions in the sessions table.
type DBSessionStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDBSessionStore(db *gorm.DB) *DBSessionStore {
	return &DBSessionStore{db: db, now: time.Now}
}

func (s *DBSessionStore) Create(ctx context.Context, userID uint) (string, error) {
	defer observability.TrackQuery("create", "sessions")()

	now := s.now().UTC()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return session.ID, nil
}

func (s *DBSessionStore) Lookup(ctx context.Context, id string) (uint, error) {
	defer observability.TrackQuery("get", "sessions")()

	var session models.Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, s.now().UTC()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("lookup session: %w", err)
	}
	return session.UserID, nil
}

func (s *DBSessionStore) Destroy(ctx context.Context, id string) error {
	defer observability.TrackQuery("delete", "sessions")()

	if err := s.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// PurgeExpired deletes sessions past their expiry and returns how many were removed.
func (s *DBSessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("delete", "sessions")()

	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now().UTC()).Delete(&models.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// RedisSessionStore keeps sessions as expiring Redis keys.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *RedisSessionStore) Create(ctx context.Context, userID uint) (string, error) {
	id := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKey(id), strconv.FormatUint(uint64(userID), 10), SessionTTL).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

func (s *RedisSessionStore) Lookup(ctx context.Context, id string) (uint, error) {
	val, err := s.rdb.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("lookup session: %w", err)
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("lookup session: corrupt value %q", val)
	}
	return uint(userID), nil
}

func (s *RedisSessionStore) Destroy(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
