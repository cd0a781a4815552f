package token

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/markbase/markbase/core/logger"
)

var _ Store = (*RedisStore)(nil)

// RedisStore implements Store on Redis for distributed deployments. It keeps
// two keys per live token: email -> token for the liveness check and
// token -> email for revocation by token value. Both expire with the token.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed token store. Records expire after ttl,
// which should match the codec's token lifetime.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "markbase:token:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) emailKey(email string) string {
	return s.prefix + "email:" + email
}

func (s *RedisStore) tokenKey(token string) string {
	return s.prefix + "token:" + token
}

// putScript replaces the live token for an email and drops the reverse
// mapping of the token it supersedes, all in one atomic step.
var putScript = redis.NewScript(`
	local old = redis.call('GET', KEYS[1])
	if old then
		redis.call('DEL', ARGV[3] .. old)
	end
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
	redis.call('SET', ARGV[3] .. ARGV[1], ARGV[4], 'PX', ARGV[2])
	return 1
`)

func (s *RedisStore) Put(ctx context.Context, email, token string) error {
	_, err := putScript.Run(ctx, s.client,
		[]string{s.emailKey(email)},
		token,
		s.ttl.Milliseconds(),
		s.prefix+"token:",
		email,
	).Result()
	if err != nil {
		return fmt.Errorf("redis token store: put failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Exists(ctx context.Context, token, email string) bool {
	current, err := s.client.Get(ctx, s.emailKey(email)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.Log.Error("redis token store: lookup failed",
			zap.String("email", email),
			zap.Error(err),
		)
		return false
	}
	return current == token
}

// deleteScript removes both mappings for a token. The forward key is only
// deleted if it still points at this token, so revoking a superseded token
// cannot knock out its successor.
var deleteScript = redis.NewScript(`
	local email = redis.call('GET', KEYS[1])
	if not email then
		return 0
	end
	redis.call('DEL', KEYS[1])
	local ek = ARGV[1] .. email
	if redis.call('GET', ek) == ARGV[2] then
		redis.call('DEL', ek)
	end
	return 1
`)

func (s *RedisStore) DeleteByToken(ctx context.Context, token string) (bool, error) {
	result, err := deleteScript.Run(ctx, s.client,
		[]string{s.tokenKey(token)},
		s.prefix+"email:",
		token,
	).Result()
	if err != nil {
		return false, fmt.Errorf("redis token store: delete failed: %w", err)
	}

	deleted, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("redis token store: unexpected result type")
	}
	return deleted == 1, nil
}
