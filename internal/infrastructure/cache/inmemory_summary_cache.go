package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/easybill/backend/internal/domain/billing"
	"github.com/google/uuid"
)

type summaryEntry struct {
	summaries []billing.MonthlySummary
	expiresAt time.Time
}

// InMemorySummaryCache implements billing.SummaryCache with a process-local map.
// Suitable for single-instance deployments and testing.
type InMemorySummaryCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]summaryEntry
	// generations survive eviction; they only ever grow
	generations map[uuid.UUID]int64
	ttl         time.Duration
	now         func() time.Time
	stopChan    chan struct{}
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

// NewInMemorySummaryCache creates the cache and starts a background
// goroutine that evicts expired entries
func NewInMemorySummaryCache(ttl time.Duration) *InMemorySummaryCache {
	c := &InMemorySummaryCache{
		entries:     make(map[uuid.UUID]summaryEntry),
		generations: make(map[uuid.UUID]int64),
		ttl:         ttl,
		now:         time.Now,
		stopChan:    make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns a copy of the cached summaries and the account's generation
func (c *InMemorySummaryCache) Get(_ context.Context, accountID uuid.UUID) ([]billing.MonthlySummary, int64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	gen := c.generations[accountID]
	e, ok := c.entries[accountID]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, gen, false, nil
	}
	return slices.Clone(e.summaries), gen, true, nil
}

// Set stores a copy of summaries unless the account was invalidated since generation
func (c *InMemorySummaryCache) Set(_ context.Context, accountID uuid.UUID, generation int64, summaries []billing.MonthlySummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[accountID] != generation {
		return nil
	}
	c.entries[accountID] = summaryEntry{
		summaries: slices.Clone(summaries),
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// Invalidate drops the entry of an account and advances its generation
func (c *InMemorySummaryCache) Invalidate(_ context.Context, accountID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, accountID)
	c.generations[accountID]++
	return nil
}

// Len returns the number of entries, expired ones included
func (c *InMemorySummaryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine
func (c *InMemorySummaryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
	})
	c.wg.Wait()
	return nil
}

func (c *InMemorySummaryCache) cleanupLoop() {
	defer c.wg.Done()

	interval := c.ttl
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stopChan:
			return
		}
	}
}

func (c *InMemorySummaryCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
		}
	}
}

var _ billing.SummaryCache = (*InMemorySummaryCache)(nil)
