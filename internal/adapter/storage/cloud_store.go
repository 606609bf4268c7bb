package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"trendcloud/internal/cloud"
	"trendcloud/internal/trend"
)

// CloudEntry is one stored word cloud: the immutable dataset of a page load,
// its prepared words, and the popup controller serving detail fetches for it.
type CloudEntry struct {
	ID        string
	Dataset   trend.Dataset
	Words     []cloud.Word
	Popup     *cloud.PopupController
	CreatedAt time.Time
}

// CloudStore keeps datasets between the page render and the follow-up
// filter/popup requests. Entries expire after a TTL; nothing persists across
// restarts.
type CloudStore struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]*CloudEntry
}

// DefaultTTL is how long a rendered cloud stays addressable.
const DefaultTTL = time.Hour

// NewCloudStore creates a store with the given TTL (DefaultTTL when
// non-positive).
func NewCloudStore(ttl time.Duration) *CloudStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CloudStore{
		ttl:     ttl,
		entries: make(map[string]*CloudEntry),
	}
}

// Put stores a new cloud and returns its entry with a fresh ID.
func (s *CloudStore) Put(dataset trend.Dataset, words []cloud.Word, popup *cloud.PopupController) *CloudEntry {
	entry := &CloudEntry{
		ID:        uuid.NewString(),
		Dataset:   dataset,
		Words:     words,
		Popup:     popup,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.mu.Unlock()
	return entry
}

// Get returns the entry for id. Expired entries are treated as absent.
func (s *CloudStore) Get(id string) (*CloudEntry, bool) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok || time.Since(entry.CreatedAt) > s.ttl {
		return nil, false
	}
	return entry, true
}

// Sweep removes expired entries and reports how many were dropped.
func (s *CloudStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for id, entry := range s.entries {
		if now.Sub(entry.CreatedAt) > s.ttl {
			delete(s.entries, id)
			dropped++
		}
	}
	return dropped
}

// Len reports how many entries are held, expired or not.
func (s *CloudStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Run sweeps periodically until ctx is canceled.
func (s *CloudStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}
