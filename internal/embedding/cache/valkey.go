package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStore keeps entries in Valkey, optionally with a TTL.
type ValkeyStore struct {
	client valkey.Client
	ttl    time.Duration
}

// NewValkeyStore connects to address and pings it.
func NewValkeyStore(ctx context.Context, address, password string, ttl time.Duration) (*ValkeyStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Valkey client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping Valkey: %w", err)
	}

	return &ValkeyStore{client: client, ttl: ttl}, nil
}

func (s *ValkeyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key string, value []byte) error {
	set := s.client.B().Set().Key(key).Value(valkey.BinaryString(value))

	var cmd valkey.Completed
	if seconds := int64(s.ttl / time.Second); seconds > 0 {
		cmd = set.ExSeconds(seconds).Build()
	} else {
		cmd = set.Build()
	}

	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *ValkeyStore) Close() {
	s.client.Close()
}
