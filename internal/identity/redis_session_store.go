package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/rueidis"
)

type RedisSessionStore struct {
	client rueidis.Client
	prefix string
}

func NewRedisSessionStore(client rueidis.Client, keyPrefix string) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *RedisSessionStore) Save(ctx context.Context, token string, rec TokenRecord, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	seconds := int64(ttl / time.Second)
	if seconds <= 0 {
		seconds = 1
	}

	cmd := r.client.B().Set().Key(r.key(token)).Value(string(payload)).ExSeconds(seconds).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisSessionStore) Load(ctx context.Context, token string) (TokenRecord, error) {
	cmd := r.client.B().Get().Key(r.key(token)).Build()
	raw, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return TokenRecord{}, ErrSessionNotFound
		}
		return TokenRecord{}, err
	}

	var rec TokenRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return TokenRecord{}, err
	}
	return rec, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, tokens ...string) error {
	if len(tokens) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tokens))
	for _, t := range tokens {
		keys = append(keys, r.key(t))
	}

	cmd := r.client.B().Del().Key(keys...).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisSessionStore) Ping(ctx context.Context) error {
	return r.client.Do(ctx, r.client.B().Ping().Build()).Error()
}

// Tokens are never stored in clear; the key is the sha256 of the token.
func (r *RedisSessionStore) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return r.prefix + hex.EncodeToString(sum[:])
}
