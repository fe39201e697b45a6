package services

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/utils"
)

const menuListPrefix = "menu:list:"

// MenuCache caches catalog listings. Implementations must tolerate backend
// failures by reporting a miss.
type MenuCache interface {
	GetList(ctx context.Context, filter repository.MenuFilter) ([]models.MenuItem, bool)
	SetList(ctx context.Context, filter repository.MenuFilter, items []models.MenuItem)
	Invalidate(ctx context.Context)
}

func NewMenuCache(rdb *redis.Client, ttl time.Duration) MenuCache {
	if rdb == nil {
		return noopMenuCache{}
	}
	return &RedisMenuCache{rdb: rdb, ttl: ttl}
}

type RedisMenuCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func menuListKey(filter repository.MenuFilter) string {
	return menuListPrefix + url.QueryEscape(filter.Category) + ":" + strconv.FormatBool(filter.AvailableOnly)
}

func (c *RedisMenuCache) GetList(ctx context.Context, filter repository.MenuFilter) ([]models.MenuItem, bool) {
	var items []models.MenuItem
	found, err := utils.GetCache(ctx, c.rdb, menuListKey(filter), &items)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("menu cache read failed")
		return nil, false
	}
	return items, found
}

func (c *RedisMenuCache) SetList(ctx context.Context, filter repository.MenuFilter, items []models.MenuItem) {
	if err := utils.SetCache(ctx, c.rdb, menuListKey(filter), items, c.ttl); err != nil {
		utils.ErrorLogger.WithError(err).Warn("menu cache write failed")
	}
}

func (c *RedisMenuCache) Invalidate(ctx context.Context) {
	if err := utils.DeleteCachePattern(ctx, c.rdb, menuListPrefix+"*"); err != nil {
		utils.ErrorLogger.WithError(err).Warn("menu cache invalidation failed")
	}
}

type noopMenuCache struct{}

func (noopMenuCache) GetList(context.Context, repository.MenuFilter) ([]models.MenuItem, bool) {
	return nil, false
}

func (noopMenuCache) SetList(context.Context, repository.MenuFilter, []models.MenuItem) {}

func (noopMenuCache) Invalidate(context.Context) {}
