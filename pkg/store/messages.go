package store

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"DirectChat/models"
	"DirectChat/pkg/cache"

	"gorm.io/gorm"
)

const historyKeyPrefix = "history"

// MessageStore appends messages and serves pair histories. When a cache
// is configured, histories are cached per unordered pair and dropped on
// every write to that pair.
type MessageStore struct {
	db       *gorm.DB
	cache    *cache.Cache
	cacheTTL time.Duration

	// versions counts writes per pair key. A history read only fills the
	// cache when no write to its pair landed while it was querying.
	mu       sync.Mutex
	versions map[string]uint64
}

func NewMessageStore(db *gorm.DB, c *cache.Cache, ttl time.Duration) *MessageStore {
	if ttl <= 0 {
		c = nil
	}
	return &MessageStore{db: db, cache: c, cacheTTL: ttl, versions: make(map[string]uint64)}
}

// RecordMessage inserts an immutable message. The timestamp is assigned
// here, never taken from the caller.
func (s *MessageStore) RecordMessage(ctx context.Context, from, to, body string, kind models.MessageKind) (*models.Message, error) {
	msg := models.Message{FromUser: from, ToUser: to, Body: body, Kind: kind}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		if errors.Is(err, models.ErrInvalidMessage) {
			return nil, validationErr("%v", err)
		}
		return nil, storeErr("create message", err)
	}
	s.invalidate(cache.PairKey(historyKeyPrefix, from, to))
	return &msg, nil
}

// History returns every message exchanged between a and b in either
// direction, oldest first. Equal timestamps fall back to id order.
func (s *MessageStore) History(ctx context.Context, a, b string) ([]models.Message, error) {
	key := cache.PairKey(historyKeyPrefix, a, b)
	version := s.version(key)
	if v, ok := s.cache.Get(key); ok {
		if msgs, ok := v.([]models.Message); ok {
			return slices.Clone(msgs), nil
		}
	}

	msgs := []models.Message{}
	err := s.db.WithContext(ctx).
		Where("(from_user = ? AND to_user = ?) OR (from_user = ? AND to_user = ?)", a, b, b, a).
		Order("timestamp ASC").Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, storeErr("load history", err)
	}
	s.fill(key, version, msgs)
	return msgs, nil
}

func (s *MessageStore) version(key string) uint64 {
	if s.cache == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[key]
}

func (s *MessageStore) invalidate(key string) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[key]++
	s.cache.Delete(key)
}

// fill caches msgs unless the pair was written after version was read.
func (s *MessageStore) fill(key string, version uint64, msgs []models.Message) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.versions[key] != version {
		return
	}
	s.cache.Set(key, slices.Clone(msgs), s.cacheTTL)
}
