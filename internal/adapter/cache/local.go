package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

// LocalCache is an in-process fallback for deployments without Redis,
// such as single-node setups and the test harness. Entries carry an
// optional deadline; expired keys are dropped lazily on read and swept
// periodically in the background.
type LocalCache struct {
	mu      sync.RWMutex
	entries map[string]localEntry
	log     *zap.Logger
	done    chan struct{}
}

type localEntry struct {
	value    string
	deadline int64 // unix nanos, 0 means no expiry
}

func (e localEntry) expired(now int64) bool {
	return e.deadline != 0 && e.deadline <= now
}

func NewLocalCache(sweepInterval time.Duration, log *zap.Logger) ports.Cache {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	c := &LocalCache{
		entries: make(map[string]localEntry),
		log:     log,
		done:    make(chan struct{}),
	}
	go c.sweepLoop(sweepInterval)

	log.Info("Using local in-memory cache",
		zap.Duration("sweep_interval", sweepInterval),
	)
	return c
}

func (c *LocalCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && entry.expired(time.Now().UnixNano()) {
		c.mu.Lock()
		// Re-check under the write lock; Set may have replaced the entry.
		if cur, still := c.entries[key]; still && cur.expired(time.Now().UnixNano()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		ok = false
	}
	if !ok {
		return "", fmt.Errorf("cache miss: %s", key)
	}
	return entry.value, nil
}

func (c *LocalCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	encoded, err := encodeValue(value)
	if err != nil {
		return err
	}

	entry := localEntry{value: encoded}
	if expiration > 0 {
		entry.deadline = time.Now().Add(expiration).UnixNano()
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

func (c *LocalCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *LocalCache) Ping(ctx context.Context) error {
	return nil
}

func (c *LocalCache) Close() error {
	close(c.done)
	return nil
}

func (c *LocalCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := c.sweep(time.Now().UnixNano()); n > 0 {
				c.log.Debug("Swept expired cache entries", zap.Int("count", n))
			}
		case <-c.done:
			return
		}
	}
}

func (c *LocalCache) sweep(now int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func encodeValue(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal cache value: %w", err)
		}
		return string(data), nil
	}
}
