// Package cache provides the process-local key-value stores used by the
// signup handshake. Entries are bounded both in count and in lifetime.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

// Store is a string keyed key-value store. Implementations must be safe for
// concurrent use.
type Store[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Delete(key string)
}

// ExpirableStore is a Store backed by an LRU whose entries are evicted once
// they are older than the configured ttl, or when the store is full.
type ExpirableStore[V any] struct {
	lru *expirable.LRU[string, V]
}

// NewExpirableStore creates a store holding at most size entries for at most
// ttl each. A size of 0 disables the count bound, a ttl of 0 disables expiry.
func NewExpirableStore[V any](name string, size int, ttl time.Duration) *ExpirableStore[V] {
	logger := logrus.WithField("from", name)
	onEvict := func(key string, _ V) {
		logger.Debugf("evicted entry for %s", key)
	}
	logger.Infof("created store with size %d and ttl %v", size, ttl)
	return &ExpirableStore[V]{
		lru: expirable.NewLRU[string, V](size, onEvict, ttl),
	}
}

func (s *ExpirableStore[V]) Get(key string) (V, bool) {
	return s.lru.Get(key)
}

func (s *ExpirableStore[V]) Set(key string, value V) {
	s.lru.Add(key, value)
}

func (s *ExpirableStore[V]) Delete(key string) {
	s.lru.Remove(key)
}

// Len returns the number of live entries.
func (s *ExpirableStore[V]) Len() int {
	return s.lru.Len()
}
