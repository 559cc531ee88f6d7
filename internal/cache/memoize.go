package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
)

// BuildKey derives a deterministic cache key from a prefix and the call
// arguments. Arguments are serialized as JSON (map keys sort during
// marshaling) and hashed with the full sha256 digest so distinct
// argument shapes cannot collide.
func BuildKey(prefix string, args ...any) string {
	payload, err := json.Marshal(args)
	if err != nil {
		// Fall back to the formatted value. Arguments here are plain
		// strings and numbers, so this path is not expected in practice.
		payload = []byte(fmt.Sprintf("%+v", args))
	}
	sum := sha256.Sum256(payload)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// CallWithCache consults the cache under a key derived from prefix and
// args, and on miss runs fn and stores the result for ttl. It is the
// explicit equivalent of a memoization decorator.
func CallWithCache[T any](ctx context.Context, c *Cache, prefix string, ttl time.Duration, fn func(context.Context) (T, error), args ...any) (T, error) {
	key := BuildKey(prefix, args...)

	if cached, ok := c.Get(key); ok {
		if typed, ok := cached.(T); ok {
			logx.Debug("Cache hit for %s", prefix)
			return typed, nil
		}
	}

	logx.Debug("Cache miss for %s, computing", prefix)
	result, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.Set(key, result, ttl)
	return result, nil
}
