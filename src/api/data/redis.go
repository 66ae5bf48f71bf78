package data

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionPrefix = "sess:"
	statePrefix   = "oauthstate:"
	streamContent = "draftforge.content"
)

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// Sessions is the Redis-backed liveness record for issued tokens. A JWT is
// only honoured while its jti key exists; logout deletes the key.
type Sessions struct {
	rdb *redis.Client
}

func NewSessions(rdb *redis.Client) *Sessions {
	return &Sessions{rdb: rdb}
}

func (s *Sessions) Put(ctx context.Context, jti string, userID uint64, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionPrefix+jti, strconv.FormatUint(userID, 10), ttl).Err()
}

func (s *Sessions) Get(ctx context.Context, jti string) (uint64, error) {
	v, err := s.rdb.Get(ctx, sessionPrefix+jti).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(v, 10, 64)
}

func (s *Sessions) Delete(ctx context.Context, jti string) error {
	return s.rdb.Del(ctx, sessionPrefix+jti).Err()
}

// SetOAuthState stores a short-lived anti-forgery nonce for the Google
// redirect flow.
func SetOAuthState(ctx context.Context, rdb *redis.Client, state string) error {
	return rdb.Set(ctx, statePrefix+state, "1", 5*time.Minute).Err()
}

// TakeOAuthState consumes the nonce; a second use fails.
func TakeOAuthState(ctx context.Context, rdb *redis.Client, state string) error {
	return rdb.GetDel(ctx, statePrefix+state).Err()
}

// PublishContentEvent appends a generated-content record to the event
// stream for downstream consumers.
func PublishContentEvent(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamContent,
		Values: payload,
	}).Result()
	return err
}
