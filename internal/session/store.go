// Package session stores verified provider tokens keyed by identity.
//
// Entries carry a TTL so stale credentials are evicted instead of
// accumulating for the lifetime of the process.
package session

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Store maps an identity (phone number) to its verified bearer token.
type Store struct {
	c *cache.Cache
}

// NewStore creates a Store whose entries expire after ttl.
func NewStore(ttl time.Duration) *Store {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &Store{c: cache.New(ttl, cleanup)}
}

// Put records the verified token for an identity, resetting its TTL.
func (s *Store) Put(identity, token string) {
	s.c.SetDefault(identity, token)
}

// Get returns the token for an identity, if present and unexpired.
func (s *Store) Get(identity string) (string, bool) {
	v, ok := s.c.Get(identity)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Delete drops the token for an identity.
func (s *Store) Delete(identity string) {
	s.c.Delete(identity)
}
