package mocks

import (
	"context"
	"sync"
	"time"
)

// MockCache is an in-memory ports.Cache for tests.
type MockCache struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string]string)}
}

func (c *MockCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := value.(string); ok {
		c.data[key] = s
	}
	return nil
}

func (c *MockCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *MockCache) Ping(ctx context.Context) error { return nil }

func (c *MockCache) Close() error { return nil }

// MockMessageQueue records published messages for assertions.
type MockMessageQueue struct {
	mu        sync.Mutex
	Published map[string][][]byte
}

func NewMockMessageQueue() *MockMessageQueue {
	return &MockMessageQueue{Published: make(map[string][][]byte)}
}

func (q *MockMessageQueue) Publish(subject string, data []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Published[subject] = append(q.Published[subject], data)
	return nil
}

func (q *MockMessageQueue) Subscribe(subject string, handler func(data []byte) error) error {
	return nil
}

func (q *MockMessageQueue) Connected() bool { return true }

func (q *MockMessageQueue) Close() error { return nil }

// MockNotifier records broadcast payloads.
type MockNotifier struct {
	mu       sync.Mutex
	Messages [][]byte
}

func (n *MockNotifier) Broadcast(message []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, message)
}
