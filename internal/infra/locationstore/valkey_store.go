package locationstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/Ahsan786123/solar-time-app/internal/domain/location"
)

// ValkeyStore shares recent fixes across service instances.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "solar"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (location.Fix, bool, error) {
	cmd := s.client.B().Get().Key(s.fixKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return location.Fix{}, false, nil
		}
		return location.Fix{}, false, err
	}
	var fix location.Fix
	if err := json.Unmarshal([]byte(payload), &fix); err != nil {
		return location.Fix{}, false, err
	}
	return fix, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, key string, fix location.Fix, ttl time.Duration) error {
	payload, err := json.Marshal(fix)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.fixKey(key)).Value(string(payload))
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

func (s *ValkeyStore) fixKey(key string) string {
	return fmt.Sprintf("%s:fix:%s", s.prefix, key)
}

var _ location.Store = (*ValkeyStore)(nil)
