package cache

import (
	"context"
	"fmt"
	"time"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/port"

	"github.com/karlseguin/ccache/v3"
)

const (
	favoriteStatusMaxSize = 10000
	defaultFavoriteTTL    = 5 * time.Minute
)

// FavoriteStatusCache - кеш статуса избранного по паре (пользователь, объект).
// Промах читает значение у платформы от имени пользователя из контекста.
type FavoriteStatusCache struct {
	cache     *ccache.Cache[bool]
	favorites port.FavoritesServicePort
	ttl       time.Duration
}

func NewFavoriteStatusCache(favorites port.FavoritesServicePort, ttl time.Duration) *FavoriteStatusCache {
	if ttl <= 0 {
		ttl = defaultFavoriteTTL
	}
	return &FavoriteStatusCache{
		cache:     ccache.New(ccache.Configure[bool]().MaxSize(favoriteStatusMaxSize)),
		favorites: favorites,
		ttl:       ttl,
	}
}

func favoriteKey(userID, propertyID string) string {
	return userID + ":" + propertyID
}

func (c *FavoriteStatusCache) Get(ctx context.Context, userID, propertyID string) (bool, error) {
	item := c.cache.Get(favoriteKey(userID, propertyID))
	if item != nil && !item.Expired() {
		contextkeys.LoggerFromContext(ctx).Debug("Favorite status cache hit", port.Fields{
			"user_id":     userID,
			"property_id": propertyID,
		})
		return item.Value(), nil
	}
	return c.Refresh(ctx, userID, propertyID)
}

func (c *FavoriteStatusCache) Set(userID, propertyID string, isFavorite bool) {
	c.cache.Set(favoriteKey(userID, propertyID), isFavorite, c.ttl)
}

func (c *FavoriteStatusCache) Refresh(ctx context.Context, userID, propertyID string) (bool, error) {
	isFavorite, err := c.favorites.IsPropertyFavorite(ctx, propertyID)
	if err != nil {
		return false, fmt.Errorf("failed to read favorite status: %w", err)
	}
	c.Set(userID, propertyID, isFavorite)
	return isFavorite, nil
}

func (c *FavoriteStatusCache) Stop() {
	c.cache.Stop()
}
