package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const reportGenKey = "report:gen"

// ReportCache keeps encoded report summaries. Every key embeds the current
// generation; Invalidate bumps it so older entries are never read again and
// simply expire.
type ReportCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewReportCache(rdb redis.Cmdable, ttl time.Duration) *ReportCache {
	return &ReportCache{rdb: rdb, ttl: ttl}
}

func (c *ReportCache) Load(ctx context.Context, key string) ([]byte, bool, error) {
	full, err := c.key(ctx, key)
	if err != nil {
		return nil, false, err
	}
	b, err := c.rdb.Get(ctx, full).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return b, true, nil
}

func (c *ReportCache) Store(ctx context.Context, key string, b []byte) error {
	full, err := c.key(ctx, key)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, full, b, c.ttl).Err()
}

func (c *ReportCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, reportGenKey).Err()
}

func (c *ReportCache) key(ctx context.Context, key string) (string, error) {
	gen, err := c.rdb.Get(ctx, reportGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return "report:" + strconv.FormatInt(gen, 10) + ":" + key, nil
}
