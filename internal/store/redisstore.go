package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/goalrush/goalrush/internal/game"
)

const accountKeyPrefix = "goalrush:account:"

// RedisStore keeps one JSON record per account id instead of a single blob.
// Each save rewrites every record in one pipeline; the latest committed
// state is always what a restart reads back.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, accounts []*game.Account) error {
	pipe := s.client.TxPipeline()
	for _, a := range accounts {
		rec := RecordFromAccount(a)
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode account %d: %w", a.ID, err)
		}
		pipe.Set(ctx, fmt.Sprintf("%s%d", accountKeyPrefix, a.ID), data, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) ([]*game.Account, error) {
	var accounts []*game.Account
	iter := s.client.Scan(ctx, 0, accountKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", iter.Val(), err)
		}
		var rec AccountRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", iter.Val(), err)
		}
		accounts = append(accounts, rec.ToAccount())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan accounts: %w", err)
	}
	return accounts, nil
}
