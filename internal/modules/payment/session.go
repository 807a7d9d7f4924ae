package payment

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

// SessionStore keeps payment sessions keyed by payload md5 with a TTL,
// so abandoned checkouts clean themselves up.
type SessionStore interface {
	Save(ctx context.Context, s *domain.PaymentSession, ttl time.Duration) error
	Get(ctx context.Context, md5Hash string) (*domain.PaymentSession, error)
	Delete(ctx context.Context, md5Hash string) error
}

const sessionKeyPrefix = "payment_session:"

// RedisSessionStore stores sessions as JSON values in Redis.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *domain.PaymentSession, ttl time.Duration) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sess.MD5Hash, raw, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, md5Hash string) (*domain.PaymentSession, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+md5Hash).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var sess domain.PaymentSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, md5Hash string) error {
	return s.client.Del(ctx, sessionKeyPrefix+md5Hash).Err()
}

// MemorySessionStore is the in-process fallback used when no Redis URL
// is configured, and in tests.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session   domain.PaymentSession
	expiresAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[string]memoryEntry{}}
}

func (s *MemorySessionStore) Save(_ context.Context, sess *domain.PaymentSession, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.MD5Hash] = memoryEntry{session: *sess, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, md5Hash string) (*domain.PaymentSession, error) {
	s.mu.RLock()
	entry, ok := s.sessions[md5Hash]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}
	cp := entry.session
	return &cp, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, md5Hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, md5Hash)
	return nil
}
