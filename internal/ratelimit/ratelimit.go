package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// KeyPrefix is shared by every bucket so the admin can clear them in one go.
const KeyPrefix = "rate_limit:"

// takeScript refills the bucket for the time elapsed since the last refill,
// then consumes one token when available. It returns {allowed, remaining}.
var takeScript = redis.NewScript(`
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local refill_rate = tonumber(ARGV[2])
	local window = tonumber(ARGV[3])
	local now = tonumber(ARGV[4])

	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local tokens = tonumber(bucket[1]) or capacity
	local last_refill = tonumber(bucket[2]) or now

	local tokens_to_add = math.floor(((now - last_refill) / window) * refill_rate)
	if tokens_to_add > 0 then
		tokens = math.min(capacity, tokens + tokens_to_add)
		last_refill = now
	end

	local allowed = 0
	if tokens > 0 then
		tokens = tokens - 1
		allowed = 1
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill', last_refill)
	redis.call('EXPIRE', key, window * 2)
	return {allowed, tokens}
`)

// peekScript reports the tokens available without consuming one.
var peekScript = redis.NewScript(`
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local refill_rate = tonumber(ARGV[2])
	local window = tonumber(ARGV[3])
	local now = tonumber(ARGV[4])

	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local tokens = tonumber(bucket[1]) or capacity
	local last_refill = tonumber(bucket[2]) or now

	local tokens_to_add = math.floor(((now - last_refill) / window) * refill_rate)
	if tokens_to_add > 0 then
		tokens = math.min(capacity, tokens + tokens_to_add)
	end

	return tokens
`)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	Reset     time.Duration
}

// TokenBucket is a Redis-backed token bucket shared by every instance of the service.
type TokenBucket struct {
	redis    *redis.Client
	capacity int64         // maximum number of tokens
	refill   int64         // tokens added per window
	window   time.Duration // refill window
	now      func() time.Time
}

// NewTokenBucket creates a bucket holding capacity tokens and refilling refillRate per minute.
func NewTokenBucket(redisClient *redis.Client, capacity, refillRate int64) *TokenBucket {
	return &TokenBucket{
		redis:    redisClient,
		capacity: capacity,
		refill:   refillRate,
		window:   time.Minute,
		now:      time.Now,
	}
}

func (tb *TokenBucket) Capacity() int64 {
	return tb.capacity
}

func key(subject, action string) string {
	return fmt.Sprintf("%s%s:%s", KeyPrefix, subject, action)
}

func (tb *TokenBucket) args() []interface{} {
	return []interface{}{tb.capacity, tb.refill, int64(tb.window.Seconds()), tb.now().Unix()}
}

// Allow consumes a token for subject performing action.
func (tb *TokenBucket) Allow(ctx context.Context, subject, action string) (Decision, error) {
	decision := Decision{Limit: tb.capacity, Reset: tb.window}

	result, err := takeScript.Run(ctx, tb.redis, []string{key(subject, action)}, tb.args()...).Result()
	if err != nil {
		return decision, fmt.Errorf("rate limit check failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return decision, fmt.Errorf("unexpected result from rate limit script: %v", result)
	}
	allowed, ok1 := values[0].(int64)
	remaining, ok2 := values[1].(int64)
	if !ok1 || !ok2 {
		return decision, fmt.Errorf("unexpected result from rate limit script: %v", result)
	}

	decision.Allowed = allowed == 1
	decision.Remaining = remaining
	return decision, nil
}

// GetRemaining returns the tokens left for subject performing action.
func (tb *TokenBucket) GetRemaining(ctx context.Context, subject, action string) (int64, error) {
	result, err := peekScript.Run(ctx, tb.redis, []string{key(subject, action)}, tb.args()...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get remaining tokens: %w", err)
	}

	remaining, ok := result.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected result type from remaining tokens script")
	}

	return remaining, nil
}

// Reset clears the bucket for subject performing action.
func (tb *TokenBucket) Reset(ctx context.Context, subject, action string) error {
	return tb.redis.Del(ctx, key(subject, action)).Err()
}
