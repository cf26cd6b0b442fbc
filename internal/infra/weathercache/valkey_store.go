// Package weathercache caches raw CWA payloads so bursts of queries for the
// same city inside the TTL reuse one upstream fetch.
package weathercache

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStore caches payloads in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "weather"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get returns the cached payload for a key, if present.
func (s *ValkeyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	cmd := s.client.B().Get().Key(s.fullKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

// Set caches the payload under a key with the given TTL.
func (s *ValkeyStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	builder := s.client.B().Set().Key(s.fullKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) fullKey(key string) string {
	return s.prefix + ":" + key
}
