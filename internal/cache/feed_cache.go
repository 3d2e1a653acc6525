package cache

import (
	"context"
	"microblog-backend/internal/util"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// FeedCache 缓存渲染好的信息流页面，按 信息流类型+页码 作为键，
// 任何帖子写入都会显式失效对应类型的全部页。
// 缓存只是优化，Redis 故障时直接回源数据库
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFeedCache(addr, password string, ttl time.Duration) (*FeedCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	util.Logger.Info("信息流缓存已连接", zap.String("addr", addr))
	return &FeedCache{rdb: rdb, ttl: ttl}, nil
}

func key(kind string) string {
	return "feed:" + kind
}

// Get 读取指定类型信息流的某一页，未命中返回 (nil, false)
func (c *FeedCache) Get(ctx context.Context, kind string, page int) ([]byte, bool) {
	data, err := c.rdb.HGet(ctx, key(kind), strconv.Itoa(page)).Bytes()
	if err != nil {
		if err != redis.Nil {
			util.Logger.Warn("读取信息流缓存失败", zap.Error(err), zap.String("kind", kind))
		}
		return nil, false
	}
	return data, true
}

// Set 写入一页缓存。同一类型的所有页挂在一个 hash 下，方便整体失效
func (c *FeedCache) Set(ctx context.Context, kind string, page int, data []byte) {
	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, key(kind), strconv.Itoa(page), data)
	pipe.Expire(ctx, key(kind), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		util.Logger.Warn("写入信息流缓存失败", zap.Error(err), zap.String("kind", kind))
	}
}

// Invalidate 让指定类型信息流的全部页失效
func (c *FeedCache) Invalidate(ctx context.Context, kinds ...string) {
	keys := make([]string, len(kinds))
	for i, kind := range kinds {
		keys[i] = key(kind)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		util.Logger.Warn("失效信息流缓存失败", zap.Error(err))
	}
}
