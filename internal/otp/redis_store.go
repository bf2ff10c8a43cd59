package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyOTP holds the pending code of a phone: otp:{phone} -> Record JSON
const KeyOTP = "otp:%s"

// expiryGrace keeps an expired record readable for a moment so callers can
// tell an expired code from a missing one.
const expiryGrace = time.Minute

// RedisStore keeps codes in Redis with a TTL, shared by every API instance
type RedisStore struct {
	Client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client, now: time.Now}
}

// NewRedisClient connects to addr and checks the connection
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func (s *RedisStore) key(phone string) string {
	return fmt.Sprintf(KeyOTP, phone)
}

func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	ttl := rec.ExpiresAt.Sub(s.now()) + expiryGrace
	if ttl <= 0 {
		ttl = expiryGrace
	}
	return s.Client.Set(ctx, s.key(rec.Phone), payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, phone string) (*Record, error) {
	raw, err := s.Client.Get(ctx, s.key(phone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode otp record: %w", err)
	}
	return &rec, nil
}

// consumeScript deletes KEYS[1] only while its record still holds ARGV[1]
var consumeScript = redis.NewScript(`
local raw = redis.call("GET", KEYS[1])
if not raw then
	return 0
end
if cjson.decode(raw).code ~= ARGV[1] then
	return 0
end
return redis.call("DEL", KEYS[1])
`)

func (s *RedisStore) Consume(ctx context.Context, phone, code string) (bool, error) {
	n, err := consumeScript.Run(ctx, s.Client, []string{s.key(phone)}, code).Int()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
