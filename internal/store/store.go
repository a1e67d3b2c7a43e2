// Package store persists the kiosk's small amount of state: the operator's
// credential for the current session and the chosen performance profile.
package store

import (
	"context"
	"errors"
	"sync"
)

// Keys used by the kiosk.
const (
	KeyCredential = "deAuth"
	KeySettings   = "scannerSettings"
)

// ErrClosed is returned by a store used after Close.
var ErrClosed = errors.New("store closed")

// KV is a string key/value store.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Memory is a thread-safe in-memory KV. It backs session-scoped values that
// must not outlive the process.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements KV.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Put implements KV.
func (m *Memory) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete implements KV.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
