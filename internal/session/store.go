// Package session owns the client's authentication state: a durable
// key-value mirror of token, user and theme, and the in-memory controller
// that keeps both sides moving as one.
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/moodmunch/web/internal/domain/user"
	"github.com/moodmunch/web/internal/infrastructure/config"
)

// Record is the durable session payload. It is a passive mirror of the
// controller's memory, never a source of truth after hydration.
type Record struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
	Theme string     `json:"theme,omitempty"`
}

// Complete reports whether the record can hydrate an authenticated session
func (r Record) Complete() bool {
	return r.Token != "" && r.User != nil
}

// Store is durable key-value storage for session records. Read returns
// ok=false for missing records; implementations treat undecodable payloads
// as missing rather than failing, so a corrupt record can never wedge
// startup into anything worse than a logged-out state.
type Store interface {
	Read(ctx context.Context, sid string) (Record, bool, error)
	Write(ctx context.Context, sid string, rec Record) error
	Clear(ctx context.Context, sid string) error
}

// RedisStore persists session records in Redis with the session TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(cfg *config.Config, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})
	return &RedisStore{
		client: client,
		ttl:    cfg.Session.MaxAge,
		logger: logger,
	}
}

// Ping verifies the Redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the Redis connection pool
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(sid string) string {
	return "moodmunch:session:" + sid
}

// Read fetches a session record; a corrupt payload reads as missing
func (s *RedisStore) Read(ctx context.Context, sid string) (Record, bool, error) {
	raw, err := s.client.Get(ctx, s.key(sid)).Bytes()
	if err == redis.Nil {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.logger.Warn("discarding undecodable session record",
			zap.String("session_id", sid),
			zap.Error(err),
		)
		return Record{}, false, nil
	}
	return rec, true, nil
}

// Write persists a session record under the session TTL
func (s *RedisStore) Write(ctx context.Context, sid string, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sid), payload, s.ttl).Err()
}

// Clear removes a session record
func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.client.Del(ctx, s.key(sid)).Err()
}

// FileStore persists session records as JSON files under a state directory.
// It is the fallback when Redis is disabled, and shares the fail-open
// semantics: an unreadable or undecodable file reads as missing.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates a file-backed session store rooted at dir
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) path(sid string) string {
	// Session IDs are url-safe base64; no path traversal risk beyond
	// refusing separators outright.
	return filepath.Join(s.dir, filepath.Base(sid)+".json")
}

// Read fetches a session record; missing or corrupt files read as missing
func (s *FileStore) Read(_ context.Context, sid string) (Record, bool, error) {
	raw, err := os.ReadFile(s.path(sid))
	if os.IsNotExist(err) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.logger.Warn("discarding undecodable session file",
			zap.String("session_id", sid),
			zap.Error(err),
		)
		return Record{}, false, nil
	}
	return rec, true, nil
}

// Write persists a session record atomically
func (s *FileStore) Write(_ context.Context, sid string, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	tmp := s.path(sid) + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(sid))
}

// Clear removes a session record
func (s *FileStore) Clear(_ context.Context, sid string) error {
	err := os.Remove(s.path(sid))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
