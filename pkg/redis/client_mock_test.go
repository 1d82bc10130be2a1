package redis

import (
	"context"
	"errors"
	"sync"
	"time"

	rdClient "github.com/redis/go-redis/v9"
)

// mockClient keeps values in memory and records every command it served.
type mockClient struct {
	rdClient.UniversalClient

	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
	calls  []string
	err    error
}

func newMockClient() *mockClient {
	return &mockClient{
		values: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (m *mockClient) recordCall(name, key string) {
	m.calls = append(m.calls, name+" "+key)
}

func (m *mockClient) Get(_ context.Context, key string) *rdClient.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordCall("GET", key)

	if m.err != nil {
		return rdClient.NewStringResult("", m.err)
	}
	val, ok := m.values[key]
	if !ok {
		return rdClient.NewStringResult("", rdClient.Nil)
	}
	return rdClient.NewStringResult(val, nil)
}

func (m *mockClient) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *rdClient.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordCall("SET", key)

	if m.err != nil {
		return rdClient.NewStatusResult("", m.err)
	}
	s, ok := value.(string)
	if !ok {
		return rdClient.NewStatusResult("", errors.New("mock: only string values are supported"))
	}
	m.values[key] = s
	m.ttls[key] = ttl
	return rdClient.NewStatusResult("OK", nil)
}

func (m *mockClient) Del(_ context.Context, keys ...string) *rdClient.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, key := range keys {
		m.recordCall("DEL", key)
		if _, ok := m.values[key]; ok {
			delete(m.values, key)
			delete(m.ttls, key)
			n++
		}
	}
	if m.err != nil {
		return rdClient.NewIntResult(0, m.err)
	}
	return rdClient.NewIntResult(n, nil)
}
