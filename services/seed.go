package services

import (
	"context"

	"foodexpress/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeedService replaces the catalog with the demo data set. It is an external
// collaborator of the order domain, not part of it.
type SeedService struct {
	catalog CatalogRepository
	cache   CatalogCache
	logger  *logrus.Logger
}

// NewSeedService creates a new SeedService. cache may be nil.
func NewSeedService(catalog CatalogRepository, cache CatalogCache, logger *logrus.Logger) *SeedService {
	return &SeedService{catalog: catalog, cache: cache, logger: logger}
}

// Seed swaps the whole catalog for the demo set and flushes the catalog cache.
func (s *SeedService) Seed(ctx context.Context) error {
	restaurants, items := demoCatalog()
	if err := s.catalog.ReplaceCatalog(ctx, restaurants, items); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Flush(ctx); err != nil {
			s.logger.WithError(err).Warn("Failed to flush catalog cache after reseed")
		}
	}
	s.logger.WithFields(logrus.Fields{
		"restaurants": len(restaurants),
		"menu_items":  len(items),
	}).Info("Demo catalog seeded")
	return nil
}

// demoCatalog builds the demo data set. Ids are generated client-side so menu items
// can reference their restaurants within a single batch.
func demoCatalog() ([]models.Restaurant, []models.MenuItem) {
	pizzaPalace := primitive.NewObjectID()
	burgerHouse := primitive.NewObjectID()
	sushiMaster := primitive.NewObjectID()
	tacoFiesta := primitive.NewObjectID()
	veganStreet := primitive.NewObjectID()

	restaurants := []models.Restaurant{
		{
			ID:           pizzaPalace,
			Name:         "Pizza Palace",
			Image:        "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=400",
			Rating:       4.5,
			DeliveryTime: "30-40 min",
			Category:     "Italian",
			IsOpen:       true,
		},
		{
			ID:           burgerHouse,
			Name:         "Burger House",
			Image:        "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=400",
			Rating:       4.3,
			DeliveryTime: "25-35 min",
			Category:     "Fast Food",
			IsOpen:       true,
		},
		{
			ID:           sushiMaster,
			Name:         "Sushi Master",
			Image:        "https://images.unsplash.com/photo-1579584425555-c3ce17fd4351?w=400",
			Rating:       4.7,
			DeliveryTime: "40-50 min",
			Category:     "Japanese",
			IsOpen:       true,
		},
		{
			ID:           tacoFiesta,
			Name:         "Taco Fiesta",
			Image:        "https://images.unsplash.com/photo-1600891964599-f61ba0e24092?w=400",
			Rating:       4.6,
			DeliveryTime: "20-30 min",
			Category:     "Mexican",
			IsOpen:       true,
		},
		{
			ID:           veganStreet,
			Name:         "Vegan Street Food",
			Image:        "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=400",
			Rating:       4.8,
			DeliveryTime: "25-35 min",
			Category:     "Vegan",
			IsOpen:       true,
		},
	}

	items := []models.MenuItem{
		{
			ID: primitive.NewObjectID(), RestaurantID: pizzaPalace,
			Name: "Margherita Pizza", Description: "Classic cheese pizza", Price: 12.99,
			Image:    "https://images.unsplash.com/photo-1574071318508-1cdbab80d002?w=400",
			Category: "Pizza", IsAvailable: true,
		},
		{
			ID: primitive.NewObjectID(), RestaurantID: pizzaPalace,
			Name: "Pepperoni Pizza", Description: "Spicy pepperoni with cheese", Price: 10.99,
			Image:    "https://images.unsplash.com/photo-1628840042765-356cda07504e?w=400",
			Category: "Pizza", IsAvailable: true,
		},
		{
			ID: primitive.NewObjectID(), RestaurantID: pizzaPalace,
			Name: "BBQ Chicken Pizza", Description: "BBQ sauce, chicken, red onions, cheese", Price: 15.99,
			Image:    "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?w=400",
			Category: "Pizza", IsAvailable: true,
		},
		{
			ID: primitive.NewObjectID(), RestaurantID: burgerHouse,
			Name: "Classic Burger", Description: "Beef patty with lettuce and tomato", Price: 9.99,
			Image:    "https://images.unsplash.com/photo-1550547660-d9450f859349?w=400",
			Category: "Burger", IsAvailable: true,
		},
		{
			ID: primitive.NewObjectID(), RestaurantID: burgerHouse,
			Name: "Cheese Burger", Description: "Two beef patties with double cheese", Price: 10.99,
			Image:    "https://images.unsplash.com/photo-1553979459-d2229ba7433b?w=400",
			Category: "Burger", IsAvailable: true,
		},
		{
			ID: primitive.NewObjectID(), RestaurantID: burgerHouse,
			Name: "Chicken Burger", Description: "Crispy fried chicken fillet with sauces and veggies", Price: 12.99,
			Image:    "https://images.unsplash.com/photo-1606755962773-d324e0a13086?w=400",
			Category: "Burger", IsAvailable: true,
		},
		{
			ID: primitive.NewObjectID(), RestaurantID: sushiMaster,
			Name: "California Roll", Description: "Crab, avocado, cucumber", Price: 14.99,
			Image:    "https://images.unsplash.com/photo-1617196034796-73dfa7b1fd56?w=400",
			Category: "Sushi", IsAvailable: true,
		},
		{
			ID: primitive.NewObjectID(), RestaurantID: sushiMaster,
			Name: "Salmon Nigiri", Description: "Fresh salmon on rice", Price: 21.99,
			Image:    "https://images.unsplash.com/photo-1579871494447-9811cf80d66c?w=400",
			Category: "Sushi", IsAvailable: true,
		},
		{
			ID: primitive.NewObjectID(), RestaurantID: tacoFiesta,
			Name: "Beef Taco", Description: "Spicy beef with lettuce, cheese, onions and avocado", Price: 6.99,
			Image:    "https://images.unsplash.com/photo-1551504734-5ee1c4a1479b?w=400",
			Category: "Taco", IsAvailable: true,
		},
		{
			ID: primitive.NewObjectID(), RestaurantID: tacoFiesta,
			Name: "Chicken Taco", Description: "Grilled chicken with salsa", Price: 6.49,
			Image:    "https://images.unsplash.com/photo-1565299585323-38d6b0865b47?w=400",
			Category: "Taco", IsAvailable: true,
		},
		{
			ID: primitive.NewObjectID(), RestaurantID: veganStreet,
			Name: "Vegan Bowl", Description: "Quinoa, chickpeas, veggies, avocado", Price: 9.99,
			Image:    "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=400",
			Category: "Bowl", IsAvailable: true,
		},
		{
			ID: primitive.NewObjectID(), RestaurantID: veganStreet,
			Name: "Vegan Wrap", Description: "Spinach wrap with hummus", Price: 8.99,
			Image:    "https://images.unsplash.com/photo-1626700051175-6818013e1d4f?w=400",
			Category: "Wrap", IsAvailable: true,
		},
	}

	return restaurants, items
}
