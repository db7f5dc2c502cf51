package services

import (
	"context"

	"foodexpress/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogService serves restaurant and menu reads, optionally through a cache.
// The order domain never writes through it.
type CatalogService struct {
	catalog CatalogRepository
	cache   CatalogCache
	logger  *logrus.Logger
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(catalog CatalogRepository, cache CatalogCache, logger *logrus.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, cache: cache, logger: logger}
}

// ListRestaurants returns all restaurants.
func (s *CatalogService) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	if s.cache != nil {
		restaurants, found, err := s.cache.GetRestaurants(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("Catalog cache read failed")
		} else if found {
			return restaurants, nil
		}
	}

	restaurants, err := s.catalog.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetRestaurants(ctx, restaurants); err != nil {
			s.logger.WithError(err).Warn("Catalog cache write failed")
		}
	}
	return restaurants, nil
}

// GetRestaurant returns a single restaurant, or apperr.ErrNotFound.
func (s *CatalogService) GetRestaurant(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	if s.cache != nil {
		restaurant, found, err := s.cache.GetRestaurant(ctx, id)
		if err != nil {
			s.logger.WithError(err).Warn("Catalog cache read failed")
		} else if found {
			return restaurant, nil
		}
	}

	restaurant, err := s.catalog.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetRestaurant(ctx, restaurant); err != nil {
			s.logger.WithError(err).Warn("Catalog cache write failed")
		}
	}
	return restaurant, nil
}

// ListMenu returns a restaurant's menu. An unknown restaurant yields an empty list.
func (s *CatalogService) ListMenu(ctx context.Context, restaurantID primitive.ObjectID) ([]models.MenuItem, error) {
	if s.cache != nil {
		items, found, err := s.cache.GetMenu(ctx, restaurantID)
		if err != nil {
			s.logger.WithError(err).Warn("Catalog cache read failed")
		} else if found {
			return items, nil
		}
	}

	items, err := s.catalog.ListMenu(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetMenu(ctx, restaurantID, items); err != nil {
			s.logger.WithError(err).Warn("Catalog cache write failed")
		}
	}
	return items, nil
}
