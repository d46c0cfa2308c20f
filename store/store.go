// Package store is the closet's durable key-value persistence. Values are JSON
// documents; reads never fail (they fall back to a default) and writes never
// fail to the caller (a failed write is logged and the previous value stays).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/raushankrgupta/virtual-closet/logger"
)

// Fixed logical keys for the two canonical collections.
const (
	KeyItems   = "clothingItems"
	KeyOutfits = "outfits"
)

// Backend is the raw storage underneath a Store. Put must replace the value
// atomically: a failed Put leaves the previous value readable.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

type Store struct {
	backend Backend
	log     *logger.Logger
	timeout time.Duration
}

func New(backend Backend, log *logger.Logger, timeout time.Duration) *Store {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Store{backend: backend, log: log.With("service", "Store"), timeout: timeout}
}

func (s *Store) Close() error {
	if s == nil || s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// Load returns the value stored under key, or def when the key is missing,
// unreadable or holds something that does not decode into T.
func Load[T any](s *Store, key string, def T) T {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.Error("read failed, using default", "key", key, "error", err)
		return def
	}
	if !ok {
		s.log.Debug("key not found, using default", "key", key)
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn("stored value is malformed, using default", "key", key, "error", err)
		return def
	}
	return v
}

// Save writes value under key. Failures are logged and swallowed.
func Save[T any](s *Store, key string, value T) {
	if err := s.save(key, value); err != nil {
		s.log.Error("write failed, keeping previous value", "key", key, "error", err)
	}
}

func (s *Store) save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.backend.Put(ctx, key, raw)
}

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("store: backend closed")
