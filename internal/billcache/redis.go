package billcache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/tundex/airtime-bot/internal/types"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "bill:"

// Redis is a durable Store. It outlives process recycling, so a reference
// vended by one invocation stays resolvable in the next one.
type Redis struct {
	client *goredis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewRedis(client *goredis.Client, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
		log:    slog.With("component", "billcache"),
	}
}

func (r *Redis) Put(ctx context.Context, reference string,
	bill *types.BillDetail) error {

	data, err := json.Marshal(bill)
	if err != nil {
		return fmt.Errorf("couldn't marshal bill %q: %w", reference, err)
	}

	err = r.client.Set(ctx, keyPrefix+reference, data, r.ttl).Err()
	if err != nil {
		return fmt.Errorf("couldn't store bill %q: %w", reference, err)
	}

	r.log.Debug("Stored bill", "reference", reference)

	return nil
}

func (r *Redis) Get(ctx context.Context, reference string) (
	*types.BillDetail, error) {

	data, err := r.client.Get(ctx, keyPrefix+reference).Bytes()
	if err == goredis.Nil {
		return nil, notFound(reference)
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch bill %q: %w", reference, err)
	}

	var bill types.BillDetail
	if err := json.Unmarshal(data, &bill); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal bill %q: %w", reference, err)
	}

	return &bill, nil
}
