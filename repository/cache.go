package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodexpress/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	cacheKeyRestaurants    = "catalog:restaurants"
	cacheKeyRestaurantByID = "catalog:restaurant:"
	cacheKeyMenu           = "catalog:menu:"
	cacheKeyPrefix         = "catalog:"
)

// CatalogCache is a read-through Redis cache over catalog reads. The catalog only
// changes on reseed, so entries are TTL-bound and flushed wholesale.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a new CatalogCache
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// GetRestaurants returns the cached restaurant list; found is false on a miss.
func (c *CatalogCache) GetRestaurants(ctx context.Context) ([]models.Restaurant, bool, error) {
	var restaurants []models.Restaurant
	found, err := c.get(ctx, cacheKeyRestaurants, &restaurants)
	return restaurants, found, err
}

// SetRestaurants caches the restaurant list.
func (c *CatalogCache) SetRestaurants(ctx context.Context, restaurants []models.Restaurant) error {
	return c.set(ctx, cacheKeyRestaurants, restaurants)
}

// GetRestaurant returns a cached restaurant; found is false on a miss.
func (c *CatalogCache) GetRestaurant(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, bool, error) {
	var restaurant models.Restaurant
	found, err := c.get(ctx, cacheKeyRestaurantByID+id.Hex(), &restaurant)
	if !found || err != nil {
		return nil, found, err
	}
	return &restaurant, true, nil
}

// SetRestaurant caches a single restaurant.
func (c *CatalogCache) SetRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	return c.set(ctx, cacheKeyRestaurantByID+restaurant.ID.Hex(), restaurant)
}

// GetMenu returns a cached menu; found is false on a miss.
func (c *CatalogCache) GetMenu(ctx context.Context, restaurantID primitive.ObjectID) ([]models.MenuItem, bool, error) {
	var items []models.MenuItem
	found, err := c.get(ctx, cacheKeyMenu+restaurantID.Hex(), &items)
	return items, found, err
}

// SetMenu caches a restaurant's menu.
func (c *CatalogCache) SetMenu(ctx context.Context, restaurantID primitive.ObjectID, items []models.MenuItem) error {
	return c.set(ctx, cacheKeyMenu+restaurantID.Hex(), items)
}

// Flush drops every catalog entry. Called after a reseed.
func (c *CatalogCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, cacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("flush catalog cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan catalog cache: %w", err)
	}
	return nil
}

func (c *CatalogCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *CatalogCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
