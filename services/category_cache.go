package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	categoryCachePrefix = "category:path:v:"
	categoryVersionKey  = "category:version"
	categoryCacheTTL    = 24 * time.Hour
)

// CachedCategoryResolver decorates a CategoryResolver with a Redis cache.
// The taxonomy changes rarely, so resolved path -> id mappings are cached
// under a version-stamped key; bumping the version invalidates everything
// without enumerating keys. The cache is explicitly constructed and
// injected, never ambient module state.
type CachedCategoryResolver struct {
	redis *redis.Client
	inner CategoryResolver
}

func NewCachedCategoryResolver(rdb *redis.Client, inner CategoryResolver) *CachedCategoryResolver {
	return &CachedCategoryResolver{redis: rdb, inner: inner}
}

func (r *CachedCategoryResolver) ResolveCategory(ctx context.Context, path string) (string, error) {
	key, err := r.cacheKey(ctx, path)
	if err == nil {
		if cached, err := r.redis.Get(ctx, key).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	categoryID, err := r.inner.ResolveCategory(ctx, path)
	if err != nil {
		return "", err
	}

	if key != "" {
		if err := r.redis.Set(ctx, key, categoryID, categoryCacheTTL).Err(); err != nil {
			zap.L().Warn("failed to cache category resolution", zap.String("path", path), zap.Error(err))
		}
	}
	return categoryID, nil
}

// Invalidate drops all cached resolutions by bumping the version.
func (r *CachedCategoryResolver) Invalidate(ctx context.Context) error {
	newVersion, err := r.redis.Incr(ctx, categoryVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate category cache: %w", err)
	}
	zap.L().Info("category cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

func (r *CachedCategoryResolver) cacheKey(ctx context.Context, path string) (string, error) {
	version, err := r.redis.Get(ctx, categoryVersionKey).Int64()
	if err == redis.Nil {
		if err := r.redis.Set(ctx, categoryVersionKey, 1, 0).Err(); err != nil {
			return "", err
		}
		version = 1
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d:%s", categoryCachePrefix, version, strings.ToLower(strings.TrimSpace(path))), nil
}
